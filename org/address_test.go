package org_test

import (
	"testing"

	"github.com/facturo/einvoice/org"
	"github.com/stretchr/testify/assert"
)

func TestParseAddressCommaList(t *testing.T) {
	t.Run("full italian address", func(t *testing.T) {
		a := org.ParseAddressCommaList("Via Roma 42, Milano, 20100 MI, IT", "IT")
		assert.Equal(t, "Via Roma", a.Street)
		assert.Equal(t, "42", a.HouseNumber)
		assert.Equal(t, "Milano", a.City)
		assert.Equal(t, "20100", a.PostalCode)
		assert.Equal(t, "MI", a.Province)
		assert.Equal(t, "IT", a.Country)
	})

	t.Run("us address with region and zip", func(t *testing.T) {
		a := org.ParseAddressCommaList("123 Main St, Springfield, IL 62704, USA", "US")
		assert.Equal(t, "123 Main St", a.Street)
		assert.Equal(t, "", a.HouseNumber)
		assert.Equal(t, "Springfield", a.City)
		assert.Equal(t, "62704", a.PostalCode)
		assert.Equal(t, "IL", a.Province)
		assert.Equal(t, "US", a.Country)
	})

	t.Run("street only", func(t *testing.T) {
		a := org.ParseAddressCommaList("Hauptstraße 5", "DE")
		assert.Equal(t, "Hauptstraße", a.Street)
		assert.Equal(t, "5", a.HouseNumber)
		assert.Equal(t, "", a.City)
		assert.Equal(t, "DE", a.Country)
	})

	t.Run("empty degrades to hint", func(t *testing.T) {
		a := org.ParseAddressCommaList("", "IT")
		assert.Equal(t, org.Address{Country: "IT"}, a)
	})
}

func TestParseAddressLines(t *testing.T) {
	t.Run("german two line address", func(t *testing.T) {
		a := org.ParseAddressLines("Musterstraße 12\n12345 Berlin", "DE")
		assert.Equal(t, "Musterstraße", a.Street)
		assert.Equal(t, "12", a.HouseNumber)
		assert.Equal(t, "12345", a.PostalCode)
		assert.Equal(t, "Berlin", a.City)
		assert.Equal(t, "DE", a.Country)
	})

	t.Run("postal code after city", func(t *testing.T) {
		a := org.ParseAddressLines("10 Downing Street\nLondon SW1A2AA\nGB", "DE")
		assert.Equal(t, "10 Downing Street", a.Street)
		assert.Equal(t, "London", a.City)
		assert.Equal(t, "SW1A2AA", a.PostalCode)
		assert.Equal(t, "GB", a.Country)
	})

	t.Run("single line keeps the hint country", func(t *testing.T) {
		a := org.ParseAddressLines("Musterstraße 12", "DE")
		assert.Equal(t, "Musterstraße", a.Street)
		assert.Equal(t, "12", a.HouseNumber)
		assert.Equal(t, "DE", a.Country)
	})

	t.Run("windows line endings", func(t *testing.T) {
		a := org.ParseAddressLines("Musterstraße 12\r\n12345 Berlin", "DE")
		assert.Equal(t, "Berlin", a.City)
		assert.Equal(t, "12345", a.PostalCode)
	})

	t.Run("never fails on garbage", func(t *testing.T) {
		a := org.ParseAddressLines(",,,\n\n\n", "")
		assert.Equal(t, org.Address{Street: ",,,"}, a)
	})
}
