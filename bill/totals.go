package bill

import (
	"errors"
	"math"
	"strconv"

	"github.com/facturo/einvoice/num"
	"github.com/invopop/validation"
)

// Totals is the finalized monetary tuple stored on an invoice. Both
// computation modes produce this same shape, so the serializers never
// need to know which mode ran.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	Total          float64 `json:"total"`
}

// CalculateTotals derives invoice totals with the tax applied once at
// invoice level:
//
//  1. subtotal = round2(Σ quantity × unitPrice)
//  2. a positive discountPercentage wins over any explicit
//     discountAmount: effective = round2(subtotal × pct / 100)
//  3. the taxable base subtotal − effective is deliberately NOT rounded
//     again before the rate is applied; stored documents are defined
//     relative to this two-stage rounding, so it must not be "fixed"
//  4. taxAmount = round2(base × taxRate / 100)
//  5. total = round2(subtotal − effective + taxAmount)
//
// A zero taxRate still yields a zero tax figure rather than omitting it;
// display policy belongs to the serializers.
//
// Boundary contract: a non-finite or negative quantity or unit price is
// rejected with a field-path error. Everything past that guard is total
// arithmetic and cannot fail.
func CalculateTotals(items []InvoiceItem, discountPercentage, discountAmount, taxRate float64) (Totals, error) {
	if err := validateItems(items); err != nil {
		return Totals{}, err
	}

	var sum float64
	for _, it := range items {
		sum += it.Quantity * it.UnitPrice
	}
	subtotal := num.Round2(sum)

	effective := discountAmount
	if discountPercentage > 0 {
		effective = num.Round2(subtotal * discountPercentage / 100)
	}

	taxable := subtotal - effective
	taxAmount := num.Round2(taxable * taxRate / 100)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: num.Round2(effective),
		TaxAmount:      taxAmount,
		Total:          num.Round2(subtotal - effective + taxAmount),
	}, nil
}

// CalculateLineTotals is the per-line aggregation mode: the discount is
// distributed proportionally across lines (the last line takes the
// remainder so the configured discount is preserved exactly), tax is
// rounded per line, and tax-inclusive unit prices have their tax portion
// extracted rather than added. It feeds the same Totals tuple as
// CalculateTotals so downstream consumers are mode-agnostic.
func CalculateLineTotals(items []InvoiceItem, discountPercentage, discountAmount, taxRate float64, pricesIncludeTax bool) (Totals, error) {
	if err := validateItems(items); err != nil {
		return Totals{}, err
	}

	rate := math.Max(0, taxRate) / 100

	gross := make([]float64, len(items))
	var subtotal float64
	for i, it := range items {
		gross[i] = it.Quantity * it.UnitPrice
		subtotal += gross[i]
	}

	effective := discountAmount
	if discountPercentage > 0 {
		effective = subtotal * discountPercentage / 100
	}
	// The discount can neither be negative nor exceed the subtotal.
	effective = math.Min(math.Max(effective, 0), math.Max(subtotal, 0))

	var taxAmount, total float64
	if subtotal > 0 {
		distributed := 0.0
		var sumTax, sumTotal float64
		for i, g := range gross {
			var lineDiscount float64
			if i == len(gross)-1 {
				lineDiscount = num.Round2(effective - distributed)
			} else {
				lineDiscount = num.Round2(effective * g / subtotal)
				distributed += lineDiscount
			}
			afterDiscount := math.Max(0, g-lineDiscount)
			if pricesIncludeTax {
				net := afterDiscount
				if rate > 0 {
					net = afterDiscount / (1 + rate)
				}
				sumTax += num.Round2(afterDiscount - net)
				sumTotal += num.Round2(afterDiscount)
			} else {
				lineTax := num.Round2(afterDiscount * rate)
				sumTax += lineTax
				sumTotal += num.Round2(afterDiscount + lineTax)
			}
		}
		taxAmount = num.Round2(sumTax)
		total = num.Round2(sumTotal)
	} else {
		afterDiscount := subtotal - effective
		if pricesIncludeTax {
			net := afterDiscount
			if rate > 0 {
				net = afterDiscount / (1 + rate)
			}
			taxAmount = num.Round2(afterDiscount - net)
			total = num.Round2(afterDiscount)
		} else {
			taxAmount = num.Round2(afterDiscount * rate)
			total = num.Round2(afterDiscount + taxAmount)
		}
	}

	return Totals{
		Subtotal:       num.Round2(subtotal),
		DiscountAmount: num.Round2(effective),
		TaxAmount:      taxAmount,
		Total:          total,
	}, nil
}

func validateItems(items []InvoiceItem) error {
	errs := validation.Errors{}
	for i, it := range items {
		fields := validation.Errors{}
		if !isFiniteNonNegative(it.Quantity) {
			fields["quantity"] = errors.New("must be a finite, non-negative number")
		}
		if !isFiniteNonNegative(it.UnitPrice) {
			fields["unitPrice"] = errors.New("must be a finite, non-negative number")
		}
		if len(fields) > 0 {
			errs[strconv.Itoa(i)] = fields
		}
	}
	if len(errs) > 0 {
		return validation.Errors{"items": errs}
	}
	return nil
}

func isFiniteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}
