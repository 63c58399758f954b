package ubl

import (
	"encoding/xml"
	"errors"
	"time"

	"github.com/facturo/einvoice/bill"
)

// Invoice represents the root element of a UBL 2.1 Invoice document.
type Invoice struct {
	XMLName      xml.Name `xml:"Invoice"`
	UBLNamespace string   `xml:"xmlns,attr"`
	CACNamespace string   `xml:"xmlns:cac,attr"`
	CBCNamespace string   `xml:"xmlns:cbc,attr"`

	UBLVersionID         string   `xml:"cbc:UBLVersionID"`
	CustomizationID      string   `xml:"cbc:CustomizationID"`
	ProfileID            string   `xml:"cbc:ProfileID"`
	ID                   string   `xml:"cbc:ID"`
	IssueDate            string   `xml:"cbc:IssueDate"`
	DueDate              string   `xml:"cbc:DueDate,omitempty"`
	InvoiceTypeCode      string   `xml:"cbc:InvoiceTypeCode"`
	DocumentCurrencyCode string   `xml:"cbc:DocumentCurrencyCode"`
	Note                 []string `xml:"cbc:Note,omitempty"`

	AccountingSupplierParty SupplierParty  `xml:"cac:AccountingSupplierParty"`
	AccountingCustomerParty CustomerParty  `xml:"cac:AccountingCustomerParty"`
	PaymentMeans            []PaymentMeans `xml:"cac:PaymentMeans,omitempty"`
	PaymentTerms            []PaymentTerms `xml:"cac:PaymentTerms,omitempty"`
	TaxTotal                []TaxTotal     `xml:"cac:TaxTotal"`
	LegalMonetaryTotal      MonetaryTotal  `xml:"cac:LegalMonetaryTotal"`
	InvoiceLines            []InvoiceLine  `xml:"cac:InvoiceLine"`
}

// InvoiceTypeCodeCommercial is the UNTDID 1001 code for a commercial
// invoice, the only document type this exporter produces.
const InvoiceTypeCodeCommercial = "380"

func newInvoice(inv *bill.Invoice, biz *bill.BusinessSettings, o *options) (*Invoice, error) {
	if inv == nil {
		return nil, errors.New("invoice is required")
	}
	if biz == nil {
		biz = new(bill.BusinessSettings)
	}

	currency := bill.DocumentCurrency(inv, biz, "USD")

	issueDate := inv.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	doc := &Invoice{
		UBLNamespace:         NamespaceUBLInvoice,
		CACNamespace:         NamespaceCAC,
		CBCNamespace:         NamespaceCBC,
		UBLVersionID:         Version,
		CustomizationID:      CustomizationID,
		ProfileID:            ProfileID,
		ID:                   inv.Number,
		IssueDate:            issueDate.Format("2006-01-02"),
		InvoiceTypeCode:      InvoiceTypeCodeCommercial,
		DocumentCurrencyCode: currency,
	}
	if inv.DueDate != nil {
		doc.DueDate = inv.DueDate.Format("2006-01-02")
	}

	if notes := firstNonEmpty(inv.Notes, biz.DefaultNotes); notes != "" {
		doc.Note = []string{notes}
	}

	doc.AccountingSupplierParty = SupplierParty{Party: newSellerParty(biz, o)}
	doc.AccountingCustomerParty = CustomerParty{Party: newBuyerParty(&inv.Customer, o)}

	if pm := newPaymentMeans(biz, doc.DueDate); pm != nil {
		doc.PaymentMeans = []PaymentMeans{*pm}
	}
	if terms := firstNonEmpty(biz.PaymentTerms, inv.PaymentTerms); terms != "" {
		doc.PaymentTerms = []PaymentTerms{{Note: terms}}
	}

	doc.TaxTotal = []TaxTotal{newTaxTotal(inv, currency)}
	doc.LegalMonetaryTotal = newMonetaryTotal(inv, currency)
	doc.InvoiceLines = newLines(inv, currency)

	return doc, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
