// Package num provides the monetary rounding and formatting helpers shared
// by the totals engine and every XML dialect.
//
// Amounts are plain float64 values throughout the export core; they are
// rounded only at "finalization" points (stored totals, tag values), never
// repeatedly on intermediate results.
package num

import (
	"math"
	"strconv"
)

// Round2 rounds x to two decimal places using round-half-away-from-zero
// semantics. NaN and infinities propagate unchanged.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Format2 renders a monetary value with exactly two fraction digits,
// rounding first with Round2. This is the single formatting path used for
// every amount, percent and quantity tag that the dialects emit with
// two decimals.
func Format2(x float64) string {
	return strconv.FormatFloat(Round2(x), 'f', 2, 64)
}
