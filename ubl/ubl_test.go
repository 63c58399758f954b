package ubl_test

import (
	"strings"
	"testing"
	"time"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/ubl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice() *bill.Invoice {
	due := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	return &bill.Invoice{
		Number:         "INV-2026-001",
		Currency:       "EUR",
		IssueDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:        &due,
		Subtotal:       200.00,
		DiscountAmount: 20.00,
		TaxRate:        8.5,
		TaxAmount:      15.30,
		Total:          195.30,
		PaymentTerms:   "Net 30",
		Items: []bill.InvoiceItem{
			{Description: "Consulting services", Quantity: 2, UnitPrice: 100.00, LineTotal: 200.00},
		},
		Customer: bill.Customer{
			Name:    "Muster GmbH & Co.",
			Email:   "billing@muster.example",
			Address: "Hauptstraße 5, Berlin, 10115, DE",
			TaxID:   "DE123456789",
		},
	}
}

func testBusiness() *bill.BusinessSettings {
	return &bill.BusinessSettings{
		CompanyName:    "Acme Corp",
		CompanyAddress: "Via Roma 42, Milano, 20100 MI, IT",
		CompanyEmail:   "info@acme.example",
		CompanyTaxID:   "IT01234567890",
		Currency:       "EUR",
		BankAccount:    "DE89370400440532013000",
	}
}

func TestConvert(t *testing.T) {
	t.Run("document header", func(t *testing.T) {
		doc, err := ubl.Convert(testInvoice(), testBusiness())
		require.NoError(t, err)

		assert.Equal(t, "2.1", doc.UBLVersionID)
		assert.Equal(t, "urn:cen.eu:en16931:2017", doc.CustomizationID)
		assert.Equal(t, "urn:fdc:peppol.eu:2017:poacc:billing:3.0", doc.ProfileID)
		assert.Equal(t, "INV-2026-001", doc.ID)
		assert.Equal(t, "2026-01-15", doc.IssueDate)
		assert.Equal(t, "2026-02-14", doc.DueDate)
		assert.Equal(t, "380", doc.InvoiceTypeCode)
		assert.Equal(t, "EUR", doc.DocumentCurrencyCode)
	})

	t.Run("totals", func(t *testing.T) {
		doc, err := ubl.Convert(testInvoice(), testBusiness())
		require.NoError(t, err)

		require.Len(t, doc.TaxTotal, 1)
		tt := doc.TaxTotal[0]
		assert.Equal(t, "15.30", tt.TaxAmount.Value)
		require.Len(t, tt.TaxSubtotal, 1)
		assert.Equal(t, "180.00", tt.TaxSubtotal[0].TaxableAmount.Value)
		assert.Equal(t, "S", tt.TaxSubtotal[0].TaxCategory.ID)
		assert.Equal(t, "8.50", tt.TaxSubtotal[0].TaxCategory.Percent)
		assert.Equal(t, "VAT", tt.TaxSubtotal[0].TaxCategory.TaxScheme.ID)

		lmt := doc.LegalMonetaryTotal
		assert.Equal(t, "180.00", lmt.LineExtensionAmount.Value)
		assert.Equal(t, "180.00", lmt.TaxExclusiveAmount.Value)
		assert.Equal(t, "195.30", lmt.TaxInclusiveAmount.Value)
		assert.Equal(t, "195.30", lmt.PayableAmount.Value)
		assert.Equal(t, "EUR", lmt.PayableAmount.CurrencyID)
	})

	t.Run("lines", func(t *testing.T) {
		doc, err := ubl.Convert(testInvoice(), testBusiness())
		require.NoError(t, err)

		require.Len(t, doc.InvoiceLines, 1)
		line := doc.InvoiceLines[0]
		assert.Equal(t, "1", line.ID)
		assert.Equal(t, "EA", line.InvoicedQuantity.UnitCode)
		assert.Equal(t, "2", line.InvoicedQuantity.Value)
		assert.Equal(t, "200.00", line.LineExtensionAmount.Value)
		assert.Equal(t, "Consulting services", line.Item.Name)
		assert.Equal(t, "S", line.Item.ClassifiedTaxCategory.ID)
		assert.Equal(t, "100.00", line.Price.PriceAmount.Value)
	})

	t.Run("parties", func(t *testing.T) {
		doc, err := ubl.Convert(testInvoice(), testBusiness())
		require.NoError(t, err)

		seller := doc.AccountingSupplierParty.Party
		require.NotNil(t, seller)
		assert.Equal(t, "Acme Corp", seller.PartyName.Name)
		assert.Equal(t, "Via Roma", seller.PostalAddress.StreetName)
		assert.Equal(t, "42", seller.PostalAddress.BuildingNumber)
		assert.Equal(t, "Milano", seller.PostalAddress.CityName)
		assert.Equal(t, "20100", seller.PostalAddress.PostalZone)
		assert.Equal(t, "IT", seller.PostalAddress.Country.IdentificationCode)
		require.Len(t, seller.PartyTaxScheme, 1)
		assert.Equal(t, "IT01234567890", seller.PartyTaxScheme[0].CompanyID)
		require.NotNil(t, seller.PartyLegalEntity)
		assert.Equal(t, "Acme Corp", seller.PartyLegalEntity.RegistrationName)

		buyer := doc.AccountingCustomerParty.Party
		require.NotNil(t, buyer)
		assert.Equal(t, "Muster GmbH & Co.", buyer.PartyName.Name)
		assert.Equal(t, "DE", buyer.PostalAddress.Country.IdentificationCode)
		require.Len(t, buyer.PartyTaxScheme, 1)
		assert.Nil(t, buyer.PartyLegalEntity)
	})

	t.Run("payment means only with a bank account", func(t *testing.T) {
		biz := testBusiness()
		doc, err := ubl.Convert(testInvoice(), biz)
		require.NoError(t, err)
		require.Len(t, doc.PaymentMeans, 1)
		assert.Equal(t, "30", doc.PaymentMeans[0].PaymentMeansCode)
		assert.Equal(t, "DE89370400440532013000", doc.PaymentMeans[0].PayeeFinancialAccount.ID)
		assert.Equal(t, "2026-02-14", doc.PaymentMeans[0].PaymentDueDate)

		biz.BankAccount = ""
		doc, err = ubl.Convert(testInvoice(), biz)
		require.NoError(t, err)
		assert.Empty(t, doc.PaymentMeans)
	})

	t.Run("tax registration is gated on a plausible identifier", func(t *testing.T) {
		inv := testInvoice()
		inv.Customer.TaxID = "2024-01-15T10:30:00Z"
		doc, err := ubl.Convert(inv, testBusiness())
		require.NoError(t, err)
		assert.Empty(t, doc.AccountingCustomerParty.Party.PartyTaxScheme)
	})

	t.Run("endpoint options", func(t *testing.T) {
		doc, err := ubl.Convert(testInvoice(), testBusiness(),
			ubl.WithSellerEndpoint("0192:123456785", "0192"),
			ubl.WithBuyerEndpoint("9915:test", ""),
		)
		require.NoError(t, err)

		seller := doc.AccountingSupplierParty.Party
		require.NotNil(t, seller.EndpointID)
		assert.Equal(t, "0192:123456785", seller.EndpointID.Value)
		assert.Equal(t, "0192", seller.EndpointID.SchemeID)

		buyer := doc.AccountingCustomerParty.Party
		require.NotNil(t, buyer.EndpointID)
		assert.Empty(t, buyer.EndpointID.SchemeID)
	})

	t.Run("country fallback chain", func(t *testing.T) {
		inv := testInvoice()
		inv.Customer.Address = "1 Short St"
		inv.Customer.CountryCode = ""
		doc, err := ubl.Convert(inv, testBusiness(), ubl.WithBuyerCountry("fr"))
		require.NoError(t, err)
		assert.Equal(t, "FR", doc.AccountingCustomerParty.Party.PostalAddress.Country.IdentificationCode)

		inv.Customer.Address = ""
		doc, err = ubl.Convert(inv, testBusiness())
		require.NoError(t, err)
		assert.Equal(t, "US", doc.AccountingCustomerParty.Party.PostalAddress.Country.IdentificationCode)
	})

	t.Run("nil invoice", func(t *testing.T) {
		_, err := ubl.Convert(nil, testBusiness())
		assert.Error(t, err)
	})
}

func TestBytes(t *testing.T) {
	doc, err := ubl.Convert(testInvoice(), testBusiness())
	require.NoError(t, err)

	out, err := ubl.Bytes(doc)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>"))
	assert.Contains(t, s, "xmlns=\"urn:oasis:names:specification:ubl:schema:xsd:Invoice-2\"")
	assert.Contains(t, s, "<cbc:InvoiceTypeCode>380</cbc:InvoiceTypeCode>")
	assert.Contains(t, s, "<cbc:PayableAmount currencyID=\"EUR\">195.30</cbc:PayableAmount>")
	// Metacharacters in party names must come out escaped.
	assert.Contains(t, s, "Muster GmbH &amp; Co.")

	repeat, err := ubl.Bytes(doc)
	require.NoError(t, err)
	assert.Equal(t, out, repeat)
}
