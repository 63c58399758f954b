// Package bill defines the invoice snapshot model consumed by the XML
// dialects and the financial computation engine that produces its totals.
//
// An Invoice here is a fully-joined, read-only record: items and customer
// are already attached and the monetary fields were finalized when the
// invoice was created or last updated. Serializers format these figures;
// they never recompute them.
package bill

import (
	"strings"
	"time"
)

// Invoice status values. They are informational to this package — nothing
// in the export path branches on them.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Invoice is an invoice-with-details snapshot.
//
// Invariants, established by CalculateTotals (or the per-line variant)
// before the record is stored:
//
//	Total    == Subtotal - DiscountAmount + TaxAmount   (to the cent)
//	Subtotal == sum of Items[i].LineTotal               (to the cent)
type Invoice struct {
	Number             string        `json:"invoiceNumber"`
	Currency           string        `json:"currency"`
	IssueDate          time.Time     `json:"issueDate"`
	DueDate            *time.Time    `json:"dueDate,omitempty"`
	Status             string        `json:"status"`
	Subtotal           float64       `json:"subtotal"`
	DiscountAmount     float64       `json:"discountAmount"`
	DiscountPercentage float64       `json:"discountPercentage"`
	TaxRate            float64       `json:"taxRate"`
	TaxAmount          float64       `json:"taxAmount"`
	Total              float64       `json:"total"`
	PaymentTerms       string        `json:"paymentTerms,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	Items              []InvoiceItem `json:"items"`
	Customer           Customer      `json:"customer"`

	// Taxes optionally carries a normalized multi-rate breakdown. When
	// present, the Factur-X dialect emits one trade-tax block per entry
	// instead of synthesizing a single line from TaxRate.
	Taxes []TaxLine `json:"taxes,omitempty"`
}

// InvoiceItem is a single invoice line. LineTotal is Quantity × UnitPrice
// as finalized at creation time.
type InvoiceItem struct {
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	TaxPercent  *float64 `json:"taxPercent,omitempty"`
	LineTotal   float64  `json:"lineTotal"`
}

// TaxLine is one entry of a normalized per-rate tax breakdown.
type TaxLine struct {
	Percent       float64 `json:"percent"`
	TaxableAmount float64 `json:"taxableAmount"`
	TaxAmount     float64 `json:"taxAmount"`
}

// Customer is the buyer party referenced by an invoice.
type Customer struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
	Reference   string `json:"reference,omitempty"`
}

// BusinessSettings is the seller party: process-wide configuration loaded
// once per request and never mutated by this module.
type BusinessSettings struct {
	CompanyName        string `json:"companyName"`
	CompanyAddress     string `json:"companyAddress,omitempty"`
	CompanyCity        string `json:"companyCity,omitempty"`
	CompanyPostalCode  string `json:"companyPostalCode,omitempty"`
	CompanyEmail       string `json:"companyEmail,omitempty"`
	CompanyPhone       string `json:"companyPhone,omitempty"`
	CompanyTaxID       string `json:"companyTaxId,omitempty"`
	CompanyCountryCode string `json:"companyCountryCode,omitempty"`
	Currency           string `json:"currency"`
	PaymentTerms       string `json:"paymentTerms,omitempty"`
	BankAccount        string `json:"bankAccount,omitempty"`
	PaymentMethods     string `json:"paymentMethods,omitempty"`
	DefaultNotes       string `json:"defaultNotes,omitempty"`
}

// TaxCategoryCode maps a tax rate to the EN16931 category code shared by
// the UBL and Factur-X dialects: standard-rated for a positive rate,
// zero-rated otherwise. FatturaPA has its own vocabulary and resolves it
// in its own package.
func TaxCategoryCode(rate float64) string {
	if rate > 0 {
		return "S"
	}
	return "Z"
}

// DocumentCurrency picks the currency code to stamp on a document: the
// invoice's, else the seller's, else the dialect fallback, uppercased.
func DocumentCurrency(inv *Invoice, biz *BusinessSettings, fallback string) string {
	c := inv.Currency
	if c == "" && biz != nil {
		c = biz.Currency
	}
	if c == "" {
		c = fallback
	}
	return strings.ToUpper(c)
}
