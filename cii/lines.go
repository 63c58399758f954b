package cii

import (
	"strconv"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/num"
)

// UnitCodeUnit is the UN/ECE Recommendation 20 code for "unit" (C62).
const UnitCodeUnit = "C62"

// LineItem is one included supply chain trade line item.
type LineItem struct {
	LineDocument LineDocument   `xml:"ram:AssociatedDocumentLineDocument"`
	Product      TradeProduct   `xml:"ram:SpecifiedTradeProduct"`
	Agreement    LineAgreement  `xml:"ram:SpecifiedLineTradeAgreement"`
	Delivery     LineDelivery   `xml:"ram:SpecifiedLineTradeDelivery"`
	Settlement   LineSettlement `xml:"ram:SpecifiedLineTradeSettlement"`
}

// LineDocument carries the line identifier.
type LineDocument struct {
	LineID string `xml:"ram:LineID"`
}

// TradeProduct names the product or service billed on the line.
type TradeProduct struct {
	Name string `xml:"ram:Name"`
}

// LineAgreement carries the gross and net unit prices.
type LineAgreement struct {
	GrossPrice TradePrice `xml:"ram:GrossPriceProductTradePrice"`
	NetPrice   TradePrice `xml:"ram:NetPriceProductTradePrice"`
}

// TradePrice wraps a unit price amount.
type TradePrice struct {
	ChargeAmount Amount `xml:"ram:ChargeAmount"`
}

// LineDelivery carries the billed quantity.
type LineDelivery struct {
	BilledQuantity UnitAmount `xml:"ram:BilledQuantity"`
}

// UnitAmount is a quantity with its unit code attribute.
type UnitAmount struct {
	UnitCode string `xml:"unitCode,attr"`
	Value    string `xml:",chardata"`
}

// LineSettlement carries the line tax and monetary summation.
type LineSettlement struct {
	TradeTax  LineTradeTax  `xml:"ram:ApplicableTradeTax"`
	Summation LineSummation `xml:"ram:SpecifiedTradeSettlementLineMonetarySummation"`
}

// LineTradeTax is the tax classification of a line.
type LineTradeTax struct {
	TypeCode              string `xml:"ram:TypeCode"`
	CategoryCode          string `xml:"ram:CategoryCode"`
	RateApplicablePercent string `xml:"ram:RateApplicablePercent"`
}

// LineSummation carries the line total.
type LineSummation struct {
	LineTotalAmount Amount `xml:"ram:LineTotalAmount"`
}

func newLines(inv *bill.Invoice, currency string) []LineItem {
	lines := make([]LineItem, 0, len(inv.Items))
	for i, it := range inv.Items {
		rate := inv.TaxRate
		if it.TaxPercent != nil {
			rate = *it.TaxPercent
		}
		lineTotal := it.LineTotal
		if lineTotal == 0 {
			lineTotal = it.Quantity * it.UnitPrice
		}
		price := newAmount(currency, it.UnitPrice)
		lines = append(lines, LineItem{
			LineDocument: LineDocument{LineID: strconv.Itoa(i + 1)},
			Product:      TradeProduct{Name: it.Description},
			Agreement: LineAgreement{
				GrossPrice: TradePrice{ChargeAmount: price},
				NetPrice:   TradePrice{ChargeAmount: price},
			},
			Delivery: LineDelivery{
				BilledQuantity: UnitAmount{UnitCode: UnitCodeUnit, Value: num.Format2(it.Quantity)},
			},
			Settlement: LineSettlement{
				TradeTax: LineTradeTax{
					TypeCode:              "VAT",
					CategoryCode:          bill.TaxCategoryCode(rate),
					RateApplicablePercent: num.Format2(rate),
				},
				Summation: LineSummation{LineTotalAmount: newAmount(currency, lineTotal)},
			},
		})
	}
	return lines
}
