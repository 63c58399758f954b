package ubl

import (
	"strconv"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/num"
)

// UnitCodeEach is the UN/ECE Recommendation 20 unit for "each".
const UnitCodeEach = "EA"

// InvoiceLine represents a single invoice line.
type InvoiceLine struct {
	ID                  string   `xml:"cbc:ID"`
	InvoicedQuantity    Quantity `xml:"cbc:InvoicedQuantity"`
	LineExtensionAmount Amount   `xml:"cbc:LineExtensionAmount"`
	Item                Item     `xml:"cac:Item"`
	Price               Price    `xml:"cac:Price"`
}

// Quantity represents a quantity with a unit code.
type Quantity struct {
	UnitCode string `xml:"unitCode,attr"`
	Value    string `xml:",chardata"`
}

// Item represents the item sold on an invoice line.
type Item struct {
	Name                  string                `xml:"cbc:Name"`
	ClassifiedTaxCategory ClassifiedTaxCategory `xml:"cac:ClassifiedTaxCategory"`
}

// ClassifiedTaxCategory represents an item's tax classification.
type ClassifiedTaxCategory struct {
	ID        string    `xml:"cbc:ID"`
	Percent   string    `xml:"cbc:Percent"`
	TaxScheme TaxScheme `xml:"cac:TaxScheme"`
}

// Price represents the unit price of an item.
type Price struct {
	PriceAmount Amount `xml:"cbc:PriceAmount"`
}

func newLines(inv *bill.Invoice, currency string) []InvoiceLine {
	lines := make([]InvoiceLine, 0, len(inv.Items))
	for i, it := range inv.Items {
		rate := inv.TaxRate
		if it.TaxPercent != nil {
			rate = *it.TaxPercent
		}
		lineExt := it.LineTotal
		if lineExt == 0 {
			lineExt = it.Quantity * it.UnitPrice
		}
		lines = append(lines, InvoiceLine{
			ID: strconv.Itoa(i + 1),
			InvoicedQuantity: Quantity{
				UnitCode: UnitCodeEach,
				Value:    strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			},
			LineExtensionAmount: newAmount(currency, lineExt),
			Item: Item{
				Name: it.Description,
				ClassifiedTaxCategory: ClassifiedTaxCategory{
					ID:        bill.TaxCategoryCode(rate),
					Percent:   num.Format2(rate),
					TaxScheme: TaxScheme{ID: TaxSchemeVAT},
				},
			},
			Price: Price{PriceAmount: newAmount(currency, it.UnitPrice)},
		})
	}
	return lines
}
