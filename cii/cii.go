// Package cii renders invoices as UN/CEFACT Cross Industry Invoice
// documents conforming to the Factur-X / ZUGFeRD 2.2 EN 16931 profile.
// Elements are emitted in the order the CII schema prescribes, so the
// output validates against the official XSDs.
package cii

import (
	"encoding/xml"

	"github.com/facturo/einvoice/bill"
)

// CII namespace constants.
const (
	NamespaceRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NamespaceRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NamespaceQDT = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"
	NamespaceUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// GuidelineEN16931 identifies the Factur-X 2.2 EN 16931 conformance
// level, the default for documents generated by this package.
const GuidelineEN16931 = "urn:factur-x.eu:2p2:en16931"

// BusinessProcessDefault is the default business process type stamped
// into the document context.
const BusinessProcessDefault = "A1"

// DefaultCountryCode is used when no country can be determined for a
// postal address.
const DefaultCountryCode = "DE"

// PlaceholderGLN fills the party endpoint when no Global Location
// Number is configured. Receivers treat the all-zero GLN as "not
// assigned".
const PlaceholderGLN = "0000000000000"

type options struct {
	sellerCountry    string
	buyerCountry     string
	guideline        string
	businessProcess  string
	orderReferenceID string
	sellerGLN        string
	buyerGLN         string
}

// Option configures the conversion to CII.
type Option func(*options)

// WithSellerCountry overrides the seller country code when the seller
// record carries no explicit country.
func WithSellerCountry(code string) Option {
	return func(o *options) { o.sellerCountry = code }
}

// WithBuyerCountry overrides the buyer country code when the customer
// record carries no explicit country.
func WithBuyerCountry(code string) Option {
	return func(o *options) { o.buyerCountry = code }
}

// WithGuideline selects the Factur-X conformance level URN, e.g. the
// basic or extended profile instead of EN 16931.
func WithGuideline(urn string) Option {
	return func(o *options) { o.guideline = urn }
}

// WithBusinessProcess sets the business process type in the document
// context.
func WithBusinessProcess(id string) Option {
	return func(o *options) { o.businessProcess = id }
}

// WithOrderReference adds a buyer order reference to the trade
// agreement.
func WithOrderReference(id string) Option {
	return func(o *options) { o.orderReferenceID = id }
}

// WithSellerGLN sets the seller's Global Location Number.
func WithSellerGLN(gln string) Option {
	return func(o *options) { o.sellerGLN = gln }
}

// WithBuyerGLN sets the buyer's Global Location Number.
func WithBuyerGLN(gln string) Option {
	return func(o *options) { o.buyerGLN = gln }
}

// Convert maps an invoice and the seller's business settings onto a
// CrossIndustryInvoice document.
func Convert(inv *bill.Invoice, biz *bill.BusinessSettings, opts ...Option) (*Document, error) {
	o := &options{
		guideline:       GuidelineEN16931,
		businessProcess: BusinessProcessDefault,
	}
	for _, opt := range opts {
		opt(o)
	}
	return newDocument(inv, biz, o)
}

// Bytes returns the raw XML of the CII document including the XML
// header.
func Bytes(doc *Document) ([]byte, error) {
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}
