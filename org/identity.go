package org

import (
	"regexp"
	"strings"
)

// EmptyVATID is the all-zero placeholder emitted when no usable VAT
// number can be extracted and the target schema requires a fixed-width
// numeric identifier (FatturaPA's 11-digit IdCodice).
const EmptyVATID = "00000000000"

var (
	nonDigitPattern  = regexp.MustCompile(`[^0-9]`)
	taxCodePattern   = regexp.MustCompile(`^[A-Z0-9]{16}$`)
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)
	vatLabelPattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-./ ]{1,31}$`)
	ibanPattern      = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{1,30}$`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// ExtractVATID reduces a free-text tax ID to the 11-digit numeric form
// FatturaPA mandates: digits only, left-padded with zeros when shorter,
// truncated when longer, the all-zero placeholder when nothing usable
// remains.
func ExtractVATID(taxID string) string {
	s := nonDigitPattern.ReplaceAllString(strings.TrimSpace(taxID), "")
	switch {
	case s == "":
		return EmptyVATID
	case len(s) >= 11:
		return s[:11]
	default:
		return strings.Repeat("0", 11-len(s)) + s
	}
}

// ExtractTaxCode shapes a tax ID into the Italian fiscal-code form:
// uppercased and truncated to 16 characters. A value already matching the
// 16-character alphanumeric pattern passes through unchanged.
func ExtractTaxCode(taxID string) string {
	s := strings.ToUpper(strings.TrimSpace(taxID))
	if taxCodePattern.MatchString(s) {
		return s
	}
	if len(s) > 16 {
		s = s[:16]
	}
	return s
}

// IsLikelyVATID reports whether a free-text value is plausible as a VAT
// registration number. Values shorter than three characters are rejected,
// as are ISO-8601 timestamp shapes (a date accidentally routed into a
// tax-ID field must not surface as a registration). Emitting a clearly
// wrong identifier is worse than omitting the optional registration
// block, so callers skip the block entirely on a negative answer.
func IsLikelyVATID(v string) bool {
	s := strings.TrimSpace(v)
	if len(s) < 3 {
		return false
	}
	if timestampPattern.MatchString(s) {
		return false
	}
	return vatLabelPattern.MatchString(s)
}

// ExtractIBAN normalizes a configured bank account and returns it only if
// it has the general IBAN shape (two letters, two check digits, up to 30
// alphanumerics, 15–34 characters overall). Anything else yields the
// empty string: payment-means blocks are omitted rather than filled with
// an invalid IBAN.
func ExtractIBAN(v string) string {
	s := strings.ToUpper(whitespaceRegexp.ReplaceAllString(v, ""))
	if len(s) < 15 || len(s) > 34 {
		return ""
	}
	if !ibanPattern.MatchString(s) {
		return ""
	}
	return s
}
