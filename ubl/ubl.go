// Package ubl renders invoices as UBL 2.1 documents aligned with the
// PEPPOL BIS Billing 3.0 profile. The output is a standards-aligned
// subset: all mandatory elements plus the recommended ones commonly
// required for successful exchange. Optional identifiers that are not
// configured, such as PEPPOL endpoint IDs, are omitted rather than
// invented.
package ubl

import (
	"encoding/xml"

	"github.com/facturo/einvoice/bill"
)

// Version is the version of UBL documents generated by this package.
const Version = "2.1"

// UBL namespace constants.
const (
	NamespaceUBLInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCAC        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceCBC        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// PEPPOL BIS Billing 3.0 identifiers.
const (
	CustomizationID = "urn:cen.eu:en16931:2017"
	ProfileID       = "urn:fdc:peppol.eu:2017:poacc:billing:3.0"
)

// DefaultCountryCode is stamped on a postal address when neither the
// record, the options, nor the free-text address yields a country.
const DefaultCountryCode = "US"

type options struct {
	sellerEndpointID       string
	sellerEndpointSchemeID string
	buyerEndpointID        string
	buyerEndpointSchemeID  string
	sellerCountry          string
	buyerCountry           string
}

// Option configures the conversion to UBL.
type Option func(*options)

// WithSellerEndpoint adds a PEPPOL EndpointID for the supplier party.
// The scheme ID may be empty, in which case the attribute is omitted.
func WithSellerEndpoint(id, schemeID string) Option {
	return func(o *options) {
		o.sellerEndpointID = id
		o.sellerEndpointSchemeID = schemeID
	}
}

// WithBuyerEndpoint adds a PEPPOL EndpointID for the customer party.
func WithBuyerEndpoint(id, schemeID string) Option {
	return func(o *options) {
		o.buyerEndpointID = id
		o.buyerEndpointSchemeID = schemeID
	}
}

// WithSellerCountry overrides the seller country code when the seller
// record carries no explicit country. It takes precedence over any
// country token parsed from the free-text address.
func WithSellerCountry(code string) Option {
	return func(o *options) { o.sellerCountry = code }
}

// WithBuyerCountry sets a fallback buyer country code.
func WithBuyerCountry(code string) Option {
	return func(o *options) { o.buyerCountry = code }
}

// Convert maps an invoice and the seller's business settings onto a UBL
// Invoice document. Monetary figures are formatted as stored; nothing is
// recomputed here.
func Convert(inv *bill.Invoice, biz *bill.BusinessSettings, opts ...Option) (*Invoice, error) {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}
	return newInvoice(inv, biz, o)
}

// Bytes returns the raw XML of the UBL document including the XML
// header.
func Bytes(in *Invoice) ([]byte, error) {
	b, err := xml.MarshalIndent(in, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}
