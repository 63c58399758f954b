package ubl

import (
	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/num"
)

// Amount represents a monetary amount with its currency attribute.
type Amount struct {
	CurrencyID string `xml:"currencyID,attr"`
	Value      string `xml:",chardata"`
}

// TaxTotal represents the invoice-level tax total.
type TaxTotal struct {
	TaxAmount   Amount        `xml:"cbc:TaxAmount"`
	TaxSubtotal []TaxSubtotal `xml:"cac:TaxSubtotal"`
}

// TaxSubtotal represents one per-category tax breakdown entry.
type TaxSubtotal struct {
	TaxableAmount Amount      `xml:"cbc:TaxableAmount"`
	TaxAmount     Amount      `xml:"cbc:TaxAmount"`
	TaxCategory   TaxCategory `xml:"cac:TaxCategory"`
}

// TaxCategory represents a tax category with its scheme.
type TaxCategory struct {
	ID        string    `xml:"cbc:ID"`
	Percent   string    `xml:"cbc:Percent"`
	TaxScheme TaxScheme `xml:"cac:TaxScheme"`
}

// MonetaryTotal represents the document totals block.
type MonetaryTotal struct {
	LineExtensionAmount Amount `xml:"cbc:LineExtensionAmount"`
	TaxExclusiveAmount  Amount `xml:"cbc:TaxExclusiveAmount"`
	TaxInclusiveAmount  Amount `xml:"cbc:TaxInclusiveAmount"`
	PayableAmount       Amount `xml:"cbc:PayableAmount"`
}

func newAmount(currency string, v float64) Amount {
	return Amount{CurrencyID: currency, Value: num.Format2(v)}
}

// newTaxTotal builds the tax breakdown. The data model carries a single
// invoice-level rate, so there is exactly one subtotal; its taxable
// amount is the discounted subtotal.
func newTaxTotal(inv *bill.Invoice, currency string) TaxTotal {
	taxable := inv.Subtotal - inv.DiscountAmount
	return TaxTotal{
		TaxAmount: newAmount(currency, inv.TaxAmount),
		TaxSubtotal: []TaxSubtotal{{
			TaxableAmount: newAmount(currency, taxable),
			TaxAmount:     newAmount(currency, inv.TaxAmount),
			TaxCategory: TaxCategory{
				ID:        bill.TaxCategoryCode(inv.TaxRate),
				Percent:   num.Format2(inv.TaxRate),
				TaxScheme: TaxScheme{ID: TaxSchemeVAT},
			},
		}},
	}
}

func newMonetaryTotal(inv *bill.Invoice, currency string) MonetaryTotal {
	net := inv.Subtotal - inv.DiscountAmount
	return MonetaryTotal{
		LineExtensionAmount: newAmount(currency, net),
		TaxExclusiveAmount:  newAmount(currency, net),
		TaxInclusiveAmount:  newAmount(currency, inv.Total),
		PayableAmount:       newAmount(currency, inv.Total),
	}
}
