package einvoice

import (
	"sort"
	"strings"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/cii"
	"github.com/facturo/einvoice/fatturapa"
	"github.com/facturo/einvoice/ubl"
)

// DefaultProfileID is the profile used when an unknown or empty
// identifier is requested.
const DefaultProfileID = "ubl21"

// Options collects the per-request knobs accepted across the export
// profiles. Each profile reads only the fields that concern it.
type Options struct {
	// PEPPOL endpoint identifiers (UBL).
	SellerEndpointID       string
	SellerEndpointSchemeID string
	BuyerEndpointID        string
	BuyerEndpointSchemeID  string

	// Country fallbacks applied when a party record has no explicit
	// country (all profiles).
	SellerCountryCode string
	BuyerCountryCode  string

	// Factur-X conformance level, business process and references (CII).
	GuidelineURN     string
	BusinessProcess  string
	OrderReferenceID string
	SellerGLN        string
	BuyerGLN         string

	// SDI transmission parameters (FatturaPA).
	SenderCode         string
	TransmissionFormat string
	BuyerIsPA          bool
}

// Profile describes one registered export format.
type Profile struct {
	ID            string
	Name          string
	Description   string
	MediaType     string
	FileExtension string

	generate func(inv *bill.Invoice, biz *bill.BusinessSettings, opts Options) ([]byte, error)
}

// Generate renders the invoice in this profile's format.
func (p Profile) Generate(inv *bill.Invoice, biz *bill.BusinessSettings, opts Options) ([]byte, error) {
	return p.generate(inv, biz, opts)
}

var profiles = map[string]Profile{
	"ubl21": {
		ID:            "ubl21",
		Name:          "UBL 2.1 (PEPPOL BIS Billing 3.0)",
		Description:   "Universal Business Language invoice aligned with the PEPPOL BIS Billing 3.0 profile",
		MediaType:     "application/xml",
		FileExtension: "xml",
		generate:      generateUBL,
	},
	"facturx22": {
		ID:            "facturx22",
		Name:          "Factur-X / ZUGFeRD 2.2 (EN 16931)",
		Description:   "UN/CEFACT Cross Industry Invoice conforming to the Factur-X 2.2 EN 16931 profile",
		MediaType:     "application/xml",
		FileExtension: "xml",
		generate:      generateCII,
	},
}

// Profiles lists the registered export profiles sorted by ID.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve looks up a profile by its identifier, case-insensitively. An
// unknown or empty identifier resolves to the default profile, so a
// caller always gets a usable profile back.
func Resolve(id string) Profile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(id))]; ok {
		return p
	}
	return profiles[DefaultProfileID]
}

// Generate renders the invoice with the profile identified by id and
// reports which profile actually ran, so callers can derive file names
// and content types from it.
func Generate(id string, inv *bill.Invoice, biz *bill.BusinessSettings, opts Options) ([]byte, Profile, error) {
	p := Resolve(id)
	b, err := p.Generate(inv, biz, opts)
	return b, p, err
}

// GenerateFatturaPA renders the invoice as a FatturaPA document. The
// Italian format sits outside the profile registry: it is requested
// through a dedicated endpoint rather than profile selection.
func GenerateFatturaPA(inv *bill.Invoice, biz *bill.BusinessSettings, opts Options) ([]byte, error) {
	doc, err := fatturapa.Convert(inv, biz,
		fatturapa.WithSellerCountry(opts.SellerCountryCode),
		fatturapa.WithBuyerCountry(opts.BuyerCountryCode),
		fatturapa.WithBuyerIsPA(opts.BuyerIsPA),
		fatturapa.WithSenderCode(firstNonEmpty(opts.SenderCode, fatturapa.DefaultSenderCode)),
		fatturapa.WithTransmissionFormat(firstNonEmpty(opts.TransmissionFormat, fatturapa.TransmissionFormatPA)),
	)
	if err != nil {
		return nil, err
	}
	return fatturapa.Bytes(doc)
}

func generateUBL(inv *bill.Invoice, biz *bill.BusinessSettings, opts Options) ([]byte, error) {
	var ublOpts []ubl.Option
	if opts.SellerEndpointID != "" {
		ublOpts = append(ublOpts, ubl.WithSellerEndpoint(opts.SellerEndpointID, opts.SellerEndpointSchemeID))
	}
	if opts.BuyerEndpointID != "" {
		ublOpts = append(ublOpts, ubl.WithBuyerEndpoint(opts.BuyerEndpointID, opts.BuyerEndpointSchemeID))
	}
	if opts.SellerCountryCode != "" {
		ublOpts = append(ublOpts, ubl.WithSellerCountry(opts.SellerCountryCode))
	}
	if opts.BuyerCountryCode != "" {
		ublOpts = append(ublOpts, ubl.WithBuyerCountry(opts.BuyerCountryCode))
	}
	doc, err := ubl.Convert(inv, biz, ublOpts...)
	if err != nil {
		return nil, err
	}
	return ubl.Bytes(doc)
}

func generateCII(inv *bill.Invoice, biz *bill.BusinessSettings, opts Options) ([]byte, error) {
	var ciiOpts []cii.Option
	if opts.SellerCountryCode != "" {
		ciiOpts = append(ciiOpts, cii.WithSellerCountry(opts.SellerCountryCode))
	}
	if opts.BuyerCountryCode != "" {
		ciiOpts = append(ciiOpts, cii.WithBuyerCountry(opts.BuyerCountryCode))
	}
	if opts.GuidelineURN != "" {
		ciiOpts = append(ciiOpts, cii.WithGuideline(opts.GuidelineURN))
	}
	if opts.BusinessProcess != "" {
		ciiOpts = append(ciiOpts, cii.WithBusinessProcess(opts.BusinessProcess))
	}
	if opts.OrderReferenceID != "" {
		ciiOpts = append(ciiOpts, cii.WithOrderReference(opts.OrderReferenceID))
	}
	if opts.SellerGLN != "" {
		ciiOpts = append(ciiOpts, cii.WithSellerGLN(opts.SellerGLN))
	}
	if opts.BuyerGLN != "" {
		ciiOpts = append(ciiOpts, cii.WithBuyerGLN(opts.BuyerGLN))
	}
	doc, err := cii.Convert(inv, biz, ciiOpts...)
	if err != nil {
		return nil, err
	}
	return cii.Bytes(doc)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
