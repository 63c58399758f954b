// Package fatturapa renders invoices as FatturaPA documents for the
// Italian SDI exchange system, following the v1.2 schema. The output is
// the subset needed for ordinary B2B and PA invoices: transmission
// data, both parties, lines, the tax summary and payment data.
package fatturapa

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/xmltext"
)

// FatturaPA namespaces.
const (
	NamespaceFatturaPA = "http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2"
	NamespaceXMLDSig   = "http://www.w3.org/2000/09/xmldsig#"
)

// TransmissionFormatPA is the default transmission format (public
// administration recipients).
const TransmissionFormatPA = "FPA12"

// Recipient codes: the fixed PA routing code and the marker for
// recipients reached through an authorized intermediary.
const (
	RecipientCodePA         = "999999"
	RecipientCodeAuthorized = "AUTORIZ"
)

// DefaultSenderCode fills IdTrasmittente when no SDI sender code is
// configured.
const DefaultSenderCode = "01234567890"

// DefaultCountryCode is used when no country can be determined for a
// party seat.
const DefaultCountryCode = "IT"

type options struct {
	sellerCountry      string
	buyerCountry       string
	buyerIsPA          bool
	senderCode         string
	transmissionFormat string
}

// Option configures the conversion to FatturaPA.
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

// WithBuyerIsPA marks the recipient as a public administration, which
// switches the recipient code to the fixed PA routing value.
func WithBuyerIsPA(isPA bool) Option {
	return func(o *options) { o.buyerIsPA = isPA }
}

// WithSenderCode sets the SDI IdTrasmittente code.
func WithSenderCode(code string) Option {
	return func(o *options) { o.senderCode = code }
}

// WithTransmissionFormat sets the FormatoTrasmissione value, e.g. FPR12
// for private recipients. It is uppercased and also stamped on the root
// element's versione attribute.
func WithTransmissionFormat(format string) Option {
	return func(o *options) { o.transmissionFormat = format }
}

// Document is a complete FatturaPA document: the versione attribute for
// the root element plus the header and body trees.
type Document struct {
	Versione string
	Header   Header
	Body     Body
}

// Convert maps an invoice and the seller's business settings onto a
// FatturaPA document.
func Convert(inv *bill.Invoice, biz *bill.BusinessSettings, opts ...Option) (*Document, error) {
	if inv == nil {
		return nil, errors.New("invoice is required")
	}
	if biz == nil {
		biz = new(bill.BusinessSettings)
	}
	o := &options{
		senderCode:         DefaultSenderCode,
		transmissionFormat: TransmissionFormatPA,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.transmissionFormat = strings.ToUpper(strings.TrimSpace(o.transmissionFormat))

	issueDate := inv.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Document{
		Versione: o.transmissionFormat,
		Header:   newHeader(inv, biz, o),
		Body:     newBody(inv, biz, issueDate),
	}, nil
}

// Bytes returns the raw XML of the document including the XML header.
// The namespaced root element is assembled by hand around the marshaled
// header and body; encoding/xml escapes element content, the versione
// attribute is escaped explicitly.
func Bytes(doc *Document) ([]byte, error) {
	h, err := xml.MarshalIndent(doc.Header, "  ", "  ")
	if err != nil {
		return nil, err
	}
	b, err := xml.MarshalIndent(doc.Body, "  ", "  ")
	if err != nil {
		return nil, err
	}
	out := fmt.Sprintf("%s<p:FatturaElettronica versione=\"%s\" xmlns:p=\"%s\" xmlns:ds=\"%s\">\n%s\n%s\n</p:FatturaElettronica>",
		xml.Header, xmltext.Escape(doc.Versione), NamespaceFatturaPA, NamespaceXMLDSig, h, b)
	return []byte(out), nil
}
