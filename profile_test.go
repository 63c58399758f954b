package einvoice_test

import (
	"strings"
	"testing"
	"time"

	einvoice "github.com/facturo/einvoice"
	"github.com/facturo/einvoice/bill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice(t *testing.T) *bill.Invoice {
	t.Helper()
	items := []bill.InvoiceItem{
		{Description: "Consulting services", Quantity: 2, UnitPrice: 100.00, LineTotal: 200.00},
	}
	totals, err := bill.CalculateTotals(items, 10, 0, 8.5)
	require.NoError(t, err)

	return &bill.Invoice{
		Number:         "INV-2026-001",
		Currency:       "EUR",
		IssueDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		DiscountPercentage: 10,
		TaxRate:        8.5,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		Items:          items,
		Customer: bill.Customer{
			Name:    "Muster GmbH",
			Address: "Hauptstraße 5, Berlin, 10115, DE",
			TaxID:   "DE123456789",
		},
	}
}

func testBusiness() *bill.BusinessSettings {
	return &bill.BusinessSettings{
		CompanyName:    "Acme Corp",
		CompanyAddress: "Via Roma 42, Milano, 20100 MI, IT",
		CompanyTaxID:   "IT01234567890",
		Currency:       "EUR",
		BankAccount:    "DE89 3704 0044 0532 0130 00",
	}
}

func TestProfiles(t *testing.T) {
	ps := einvoice.Profiles()
	require.Len(t, ps, 2)
	assert.Equal(t, "facturx22", ps[0].ID)
	assert.Equal(t, "ubl21", ps[1].ID)
	for _, p := range ps {
		assert.Equal(t, "application/xml", p.MediaType)
		assert.Equal(t, "xml", p.FileExtension)
		assert.NotEmpty(t, p.Name)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "ubl21", einvoice.Resolve("ubl21").ID)
	assert.Equal(t, "facturx22", einvoice.Resolve("  FacturX22 ").ID)
	assert.Equal(t, "ubl21", einvoice.Resolve("").ID)
	assert.Equal(t, "ubl21", einvoice.Resolve("no-such-profile").ID)
}

func TestGenerate(t *testing.T) {
	inv := testInvoice(t)
	biz := testBusiness()

	t.Run("each profile reports the computed total", func(t *testing.T) {
		for _, id := range []string{"ubl21", "facturx22"} {
			t.Run(id, func(t *testing.T) {
				xml, p, err := einvoice.Generate(id, inv, biz, einvoice.Options{})
				require.NoError(t, err)
				assert.Equal(t, id, p.ID)
				assert.Contains(t, string(xml), "195.30")
				assert.Equal(t, 1, strings.Count(string(xml), "<cbc:ID>INV-2026-001</cbc:ID>")+
					strings.Count(string(xml), "<ram:ID>INV-2026-001</ram:ID>"))
			})
		}

		xml, err := einvoice.GenerateFatturaPA(inv, biz, einvoice.Options{})
		require.NoError(t, err)
		assert.Contains(t, string(xml), "<ImportoPagamento>195.30</ImportoPagamento>")
	})

	t.Run("exactly one line element per item", func(t *testing.T) {
		ublXML, _, err := einvoice.Generate("ubl21", inv, biz, einvoice.Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(ublXML), "<cac:InvoiceLine>"))

		ciiXML, _, err := einvoice.Generate("facturx22", inv, biz, einvoice.Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(ciiXML), "<ram:IncludedSupplyChainTradeLineItem>"))

		paXML, err := einvoice.GenerateFatturaPA(inv, biz, einvoice.Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(paXML), "<DettaglioLinee>"))
	})

	t.Run("generation is deterministic", func(t *testing.T) {
		first, _, err := einvoice.Generate("ubl21", inv, biz, einvoice.Options{})
		require.NoError(t, err)
		second, _, err := einvoice.Generate("ubl21", inv, biz, einvoice.Options{})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("options flow through to the dialects", func(t *testing.T) {
		xml, _, err := einvoice.Generate("facturx22", inv, biz, einvoice.Options{
			GuidelineURN:     "urn:factur-x.eu:2p2:basic",
			OrderReferenceID: "ORD-7",
		})
		require.NoError(t, err)
		assert.Contains(t, string(xml), "urn:factur-x.eu:2p2:basic")
		assert.Contains(t, string(xml), "<ram:IssuerAssignedID>ORD-7</ram:IssuerAssignedID>")

		paXML, err := einvoice.GenerateFatturaPA(inv, biz, einvoice.Options{BuyerIsPA: true})
		require.NoError(t, err)
		assert.Contains(t, string(paXML), "<CodiceDestinatario>999999</CodiceDestinatario>")
	})

	t.Run("generation fails without an invoice", func(t *testing.T) {
		_, _, err := einvoice.Generate("ubl21", nil, biz, einvoice.Options{})
		assert.Error(t, err)
	})
}
