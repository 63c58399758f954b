package cii

import (
	"math"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/num"
	"github.com/facturo/einvoice/org"
)

// PaymentMeansCodeSEPACredit is the UNTDID 4461 code for a SEPA credit
// transfer.
const PaymentMeansCodeSEPACredit = "58"

// Settlement is the header trade settlement block, in schema order.
type Settlement struct {
	PaymentReference    string         `xml:"ram:PaymentReference,omitempty"`
	InvoiceCurrencyCode string         `xml:"ram:InvoiceCurrencyCode"`
	PaymentMeans        []PaymentMeans `xml:"ram:SpecifiedTradeSettlementPaymentMeans,omitempty"`
	TradeTaxes          []TradeTax     `xml:"ram:ApplicableTradeTax"`
	PaymentTerms        *PaymentTerms  `xml:"ram:SpecifiedTradePaymentTerms,omitempty"`
	Summation           Summation      `xml:"ram:SpecifiedTradeSettlementHeaderMonetarySummation"`
}

// PaymentMeans is a settlement payment means entry.
type PaymentMeans struct {
	TypeCode       string           `xml:"ram:TypeCode"`
	PayeeAccount   *CreditorAccount `xml:"ram:PayeePartyCreditorFinancialAccount,omitempty"`
}

// CreditorAccount is the payee's financial account.
type CreditorAccount struct {
	IBANID string `xml:"ram:IBANID"`
}

// TradeTax is one per-rate entry of the tax breakdown.
type TradeTax struct {
	CalculatedAmount      Amount `xml:"ram:CalculatedAmount"`
	TypeCode              string `xml:"ram:TypeCode"`
	BasisAmount           Amount `xml:"ram:BasisAmount"`
	CategoryCode          string `xml:"ram:CategoryCode"`
	RateApplicablePercent string `xml:"ram:RateApplicablePercent"`
}

// PaymentTerms is the free-text payment terms block.
type PaymentTerms struct {
	Description string `xml:"ram:Description"`
}

// Summation is the header monetary summation.
type Summation struct {
	LineTotalAmount     Amount `xml:"ram:LineTotalAmount"`
	TaxBasisTotalAmount Amount `xml:"ram:TaxBasisTotalAmount"`
	TaxTotalAmount      Amount `xml:"ram:TaxTotalAmount"`
	GrandTotalAmount    Amount `xml:"ram:GrandTotalAmount"`
	DuePayableAmount    Amount `xml:"ram:DuePayableAmount"`
}

// Amount is a monetary amount with its currency attribute.
type Amount struct {
	CurrencyID string `xml:"currencyID,attr"`
	Value      string `xml:",chardata"`
}

func newAmount(currency string, v float64) Amount {
	return Amount{CurrencyID: currency, Value: num.Format2(v)}
}

func newSettlement(inv *bill.Invoice, biz *bill.BusinessSettings, currency string) Settlement {
	s := Settlement{
		PaymentReference:    inv.Number,
		InvoiceCurrencyCode: currency,
		TradeTaxes:          newTradeTaxes(inv, currency),
		Summation:           newSummation(inv, currency),
	}
	// SEPA payment means only with a usable IBAN; a free-form account
	// reference has no place in the IBANID element.
	if iban := org.ExtractIBAN(biz.BankAccount); iban != "" {
		s.PaymentMeans = []PaymentMeans{{
			TypeCode:     PaymentMeansCodeSEPACredit,
			PayeeAccount: &CreditorAccount{IBANID: iban},
		}}
	}
	if terms := firstNonEmpty(biz.PaymentTerms, inv.PaymentTerms); terms != "" {
		s.PaymentTerms = &PaymentTerms{Description: terms}
	}
	return s
}

// newTradeTaxes prefers the normalized per-rate breakdown when the
// invoice carries one. Otherwise a single entry is synthesized from the
// invoice-level rate, and when no tax applies at all a zero-rated entry
// keeps the breakdown present, as EN 16931 requires at least one.
func newTradeTaxes(inv *bill.Invoice, currency string) []TradeTax {
	taxable := math.Max(0, inv.Subtotal-inv.DiscountAmount)

	if len(inv.Taxes) > 0 {
		out := make([]TradeTax, 0, len(inv.Taxes))
		for _, t := range inv.Taxes {
			out = append(out, newTradeTax(currency, t.Percent, t.TaxableAmount, t.TaxAmount))
		}
		return out
	}
	if inv.TaxAmount > 0 {
		return []TradeTax{newTradeTax(currency, inv.TaxRate, taxable, inv.TaxAmount)}
	}
	return []TradeTax{newTradeTax(currency, 0, taxable, 0)}
}

func newTradeTax(currency string, percent, taxable, amount float64) TradeTax {
	return TradeTax{
		CalculatedAmount:      newAmount(currency, amount),
		TypeCode:              "VAT",
		BasisAmount:           newAmount(currency, taxable),
		CategoryCode:          bill.TaxCategoryCode(percent),
		RateApplicablePercent: num.Format2(percent),
	}
}

func newSummation(inv *bill.Invoice, currency string) Summation {
	return Summation{
		LineTotalAmount:     newAmount(currency, inv.Subtotal),
		TaxBasisTotalAmount: newAmount(currency, math.Max(0, inv.Subtotal-inv.DiscountAmount)),
		TaxTotalAmount:      newAmount(currency, inv.TaxAmount),
		GrandTotalAmount:    newAmount(currency, inv.Total),
		DuePayableAmount:    newAmount(currency, inv.Total),
	}
}
