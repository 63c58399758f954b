// Package org holds the party-level heuristics: best-effort decomposition
// of free-text addresses and country-aware extraction of tax identifiers.
// Everything here is tolerant by design — malformed input degrades to
// empty fields or placeholders, it never fails document generation.
package org

import (
	"regexp"
	"strings"
)

// Address is the structured result of a best-effort address parse. Any
// field except Country may be empty.
type Address struct {
	Street      string
	HouseNumber string
	City        string
	PostalCode  string
	Province    string
	Country     string
}

// ParseFunc is the capability shared by the address parsing strategies:
// free text plus an ISO 3166-1 alpha-2 country hint in, structured
// address out.
type ParseFunc func(text, countryHint string) Address

var (
	postal5Pattern     = regexp.MustCompile(`\b(\d{5})\b`)
	postalTailPattern  = regexp.MustCompile(`([A-Za-z0-9-]{3,10})$`)
	provincePattern    = regexp.MustCompile(`\b([A-Z]{2})\b`)
	countryTokenRegexp = regexp.MustCompile(`^[A-Z]{2,3}$`)
	digitPattern       = regexp.MustCompile(`\d`)
)

// ParseAddressCommaList decomposes a comma-delimited address of the shape
// conventional to UBL and FatturaPA sample data, e.g.
// "Via Roma 42, Milano, 20100 MI, IT". The first segment is the street
// (with a trailing digit-bearing token split off as the house number), the
// second the city; the remainder is scanned for a postal code and a
// two-letter province, and a trailing 2–3 letter token is taken as the
// country.
//
// ParseAddressLines covers the newline-delimited shape used by EN16931
// sample addresses. The two strategies are deliberately distinct: each
// standard's reference examples use a different conventional input shape.
func ParseAddressCommaList(text, countryHint string) Address {
	out := Address{Country: strings.ToUpper(strings.TrimSpace(countryHint))}
	parts := splitAndTrim(text, ",")
	if len(parts) == 0 {
		return out
	}

	out.Street, out.HouseNumber = splitHouseNumber(parts[0])
	if len(parts) > 1 {
		out.City = parts[1]
	}
	if len(parts) > 2 {
		tail := strings.Join(parts[2:], " ")
		if m := postal5Pattern.FindStringSubmatch(tail); m != nil {
			out.PostalCode = m[1]
		} else if m := postalTailPattern.FindStringSubmatch(tail); m != nil && digitPattern.MatchString(m[1]) {
			out.PostalCode = m[1]
		}
		if m := provincePattern.FindStringSubmatch(tail); m != nil {
			out.Province = m[1]
		}
	}

	if cc := countryToken(parts[len(parts)-1]); cc != "" {
		out.Country = cc
	}
	return out
}

// ParseAddressLines decomposes a newline-delimited address of the shape
// conventional to EN16931 sample data, e.g. "Musterstraße 12\n12345
// Berlin\nDE". The first line is the street with an optional house
// number, the second a postal code and city in either order, and an
// optional third line carries a country token.
func ParseAddressLines(text, countryHint string) Address {
	out := Address{Country: strings.ToUpper(strings.TrimSpace(countryHint))}
	lines := splitAndTrim(text, "\n")
	if len(lines) == 0 {
		return out
	}

	out.Street, out.HouseNumber = splitHouseNumber(lines[0])

	if len(lines) > 1 {
		tokens := strings.Fields(lines[1])
		switch {
		case len(tokens) > 1 && digitPattern.MatchString(tokens[0]):
			out.PostalCode = tokens[0]
			out.City = strings.Join(tokens[1:], " ")
		case len(tokens) > 1 && digitPattern.MatchString(tokens[len(tokens)-1]):
			out.PostalCode = tokens[len(tokens)-1]
			out.City = strings.Join(tokens[:len(tokens)-1], " ")
		default:
			out.City = lines[1]
		}
	}

	if len(lines) > 2 {
		if cc := countryToken(lines[len(lines)-1]); cc != "" {
			out.Country = cc
		} else if m := provincePattern.FindStringSubmatch(lines[2]); m != nil {
			out.Province = m[1]
		}
	}
	return out
}

func splitAndTrim(text, sep string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitHouseNumber splits a trailing digit-bearing token off a street
// segment. "Main Street" stays intact; "Via Roma 42" becomes
// ("Via Roma", "42").
func splitHouseNumber(segment string) (street, houseNumber string) {
	tokens := strings.Fields(segment)
	if len(tokens) > 1 && digitPattern.MatchString(tokens[len(tokens)-1]) {
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
	return segment, ""
}

func countryToken(s string) string {
	cc := strings.ToUpper(strings.TrimSpace(s))
	if !countryTokenRegexp.MatchString(cc) {
		return ""
	}
	if len(cc) == 3 {
		cc = cc[:2]
	}
	return cc
}
