package bill_test

import (
	"math"
	"testing"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/num"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals(t *testing.T) {
	t.Run("reference scenario", func(t *testing.T) {
		items := []bill.InvoiceItem{
			{Description: "Consulting", Quantity: 2, UnitPrice: 100.00},
		}
		totals, err := bill.CalculateTotals(items, 10, 0, 8.5)
		require.NoError(t, err)

		assert.Equal(t, 200.00, totals.Subtotal)
		assert.Equal(t, 20.00, totals.DiscountAmount)
		assert.Equal(t, 15.30, totals.TaxAmount)
		assert.Equal(t, 195.30, totals.Total)
	})

	t.Run("percentage wins over explicit amount", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: 2, UnitPrice: 100}}
		totals, err := bill.CalculateTotals(items, 10, 55, 0)
		require.NoError(t, err)
		assert.Equal(t, 20.00, totals.DiscountAmount)
	})

	t.Run("explicit flat discount", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: 3, UnitPrice: 25}}
		totals, err := bill.CalculateTotals(items, 0, 15, 20)
		require.NoError(t, err)
		assert.Equal(t, 75.00, totals.Subtotal)
		assert.Equal(t, 15.00, totals.DiscountAmount)
		assert.Equal(t, 12.00, totals.TaxAmount)
		assert.Equal(t, 72.00, totals.Total)
	})

	t.Run("zero tax is reported, not omitted", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: 1, UnitPrice: 100}}
		totals, err := bill.CalculateTotals(items, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, bill.Totals{Subtotal: 100, DiscountAmount: 0, TaxAmount: 0, Total: 100}, totals)
	})

	t.Run("empty item list", func(t *testing.T) {
		totals, err := bill.CalculateTotals(nil, 0, 0, 19)
		require.NoError(t, err)
		assert.Equal(t, bill.Totals{}, totals)
	})

	t.Run("taxable base is not rounded before the rate applies", func(t *testing.T) {
		// The base 100 − 0.2467 = 99.7533 feeds the rate unrounded. A
		// single-stage computation that first rounded the base to 99.75
		// would report 199.50 here instead.
		items := []bill.InvoiceItem{{Quantity: 1, UnitPrice: 100}}
		totals, err := bill.CalculateTotals(items, 0, 0.2467, 200)
		require.NoError(t, err)
		assert.Equal(t, 199.51, totals.TaxAmount)
	})

	t.Run("invariant holds across configurations", func(t *testing.T) {
		items := []bill.InvoiceItem{
			{Quantity: 3, UnitPrice: 19.99},
			{Quantity: 1.5, UnitPrice: 7.35},
			{Quantity: 12, UnitPrice: 0.07},
		}
		cases := []struct {
			name     string
			pct, amt float64
			rate     float64
		}{
			{"no discount no tax", 0, 0, 0},
			{"flat discount", 0, 5, 19},
			{"percentage discount", 7.5, 0, 21},
			{"both supplied", 12, 3, 8.5},
			{"zero rate with discount", 50, 0, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				totals, err := bill.CalculateTotals(items, tc.pct, tc.amt, tc.rate)
				require.NoError(t, err)

				var sum float64
				for _, it := range items {
					sum += it.Quantity * it.UnitPrice
				}
				assert.Equal(t, num.Round2(sum), totals.Subtotal)
				assert.InDelta(t, totals.Total, totals.Subtotal-totals.DiscountAmount+totals.TaxAmount, 0.005)
			})
		}
	})

	t.Run("rejects non-finite quantity", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: math.NaN(), UnitPrice: 10}}
		_, err := bill.CalculateTotals(items, 0, 0, 19)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		items := []bill.InvoiceItem{
			{Quantity: 1, UnitPrice: 10},
			{Quantity: 1, UnitPrice: -4},
		}
		_, err := bill.CalculateTotals(items, 0, 0, 19)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unitPrice")
	})
}

func TestCalculateLineTotals(t *testing.T) {
	t.Run("distributes the discount with last line remainder", func(t *testing.T) {
		items := []bill.InvoiceItem{
			{Quantity: 1, UnitPrice: 100},
			{Quantity: 1, UnitPrice: 50},
		}
		totals, err := bill.CalculateLineTotals(items, 0, 10, 10, false)
		require.NoError(t, err)

		// Line discounts 6.67 + 3.33 preserve the configured 10.00.
		assert.Equal(t, 150.00, totals.Subtotal)
		assert.Equal(t, 10.00, totals.DiscountAmount)
		assert.Equal(t, 14.00, totals.TaxAmount)
		assert.Equal(t, 154.00, totals.Total)
	})

	t.Run("extracts tax from inclusive prices", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: 1, UnitPrice: 122}}
		totals, err := bill.CalculateLineTotals(items, 0, 0, 22, true)
		require.NoError(t, err)

		assert.Equal(t, 122.00, totals.Subtotal)
		assert.Equal(t, 22.00, totals.TaxAmount)
		assert.Equal(t, 122.00, totals.Total)
	})

	t.Run("caps the discount at the subtotal", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: 1, UnitPrice: 40}}
		totals, err := bill.CalculateLineTotals(items, 0, 100, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 40.00, totals.DiscountAmount)
		assert.Equal(t, 0.00, totals.Total)
	})

	t.Run("matches the invoice-level mode for a single line without discount", func(t *testing.T) {
		items := []bill.InvoiceItem{{Quantity: 2, UnitPrice: 100}}
		line, err := bill.CalculateLineTotals(items, 0, 0, 8.5, false)
		require.NoError(t, err)
		total, err := bill.CalculateTotals(items, 0, 0, 8.5)
		require.NoError(t, err)
		assert.Equal(t, total, line)
	})
}
