package cii

import (
	"strings"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/org"
)

// SchemeIDVAT is the registration scheme qualifier for a VAT
// identifier.
const SchemeIDVAT = "VA"

// SchemeIDGLN is the ISO 6523 code for GS1 Global Location Numbers.
const SchemeIDGLN = "0088"

// Agreement is the header trade agreement: the trading parties and
// their references, in schema order.
type Agreement struct {
	BuyerReference string          `xml:"ram:BuyerReference,omitempty"`
	Seller         TradeParty      `xml:"ram:SellerTradeParty"`
	Buyer          TradeParty      `xml:"ram:BuyerTradeParty"`
	BuyerOrder     *ReferencedDoc  `xml:"ram:BuyerOrderReferencedDocument,omitempty"`
}

// ReferencedDoc points at a related document by its issuer-assigned
// identifier.
type ReferencedDoc struct {
	IssuerAssignedID string `xml:"ram:IssuerAssignedID"`
}

// TradeParty is a seller or buyer party.
type TradeParty struct {
	ID                       string             `xml:"ram:ID,omitempty"`
	Name                     string             `xml:"ram:Name"`
	DefinedTradeContact      *TradeContact      `xml:"ram:DefinedTradeContact,omitempty"`
	PostalTradeAddress       TradeAddress       `xml:"ram:PostalTradeAddress"`
	URIUniversalCommunication *URICommunication `xml:"ram:URIUniversalCommunication,omitempty"`
	SpecifiedTaxRegistration []TaxRegistration  `xml:"ram:SpecifiedTaxRegistration,omitempty"`
}

// TradeContact carries the party's contact details.
type TradeContact struct {
	PersonName string            `xml:"ram:PersonName,omitempty"`
	Telephone  *Telephone        `xml:"ram:TelephoneUniversalCommunication,omitempty"`
	Email      *URICommunication `xml:"ram:EmailURIUniversalCommunication,omitempty"`
}

// Telephone wraps a complete phone number.
type Telephone struct {
	CompleteNumber string `xml:"ram:CompleteNumber"`
}

// URICommunication is a scheme-qualified endpoint identifier.
type URICommunication struct {
	URIID SchemeID `xml:"ram:URIID"`
}

// SchemeID is an identifier with its scheme qualifier attribute.
type SchemeID struct {
	SchemeID string `xml:"schemeID,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// TradeAddress is a structured postal address.
type TradeAddress struct {
	PostcodeCode string `xml:"ram:PostcodeCode,omitempty"`
	LineOne      string `xml:"ram:LineOne,omitempty"`
	CityName     string `xml:"ram:CityName,omitempty"`
	CountryID    string `xml:"ram:CountryID"`
}

// TaxRegistration is a scheme-qualified tax registration identifier.
type TaxRegistration struct {
	ID SchemeID `xml:"ram:ID"`
}

func newAgreement(inv *bill.Invoice, biz *bill.BusinessSettings, o *options) Agreement {
	ag := Agreement{
		BuyerReference: inv.Customer.Reference,
		Seller: newTradeParty(
			biz.CompanyName,
			biz.CompanyTaxID,
			biz.CompanyAddress,
			biz.CompanyCity,
			biz.CompanyPostalCode,
			biz.CompanyCountryCode,
			o.sellerCountry,
			biz.CompanyEmail,
			biz.CompanyPhone,
			o.sellerGLN,
		),
		Buyer: newTradeParty(
			inv.Customer.Name,
			inv.Customer.TaxID,
			inv.Customer.Address,
			inv.Customer.City,
			inv.Customer.PostalCode,
			inv.Customer.CountryCode,
			o.buyerCountry,
			inv.Customer.Email,
			inv.Customer.Phone,
			o.buyerGLN,
		),
	}
	if o.orderReferenceID != "" {
		ag.BuyerOrder = &ReferencedDoc{IssuerAssignedID: o.orderReferenceID}
	}
	return ag
}

// newTradeParty assembles a party block. Addresses arrive as free text
// in the newline-delimited shape conventional to EN 16931 examples;
// explicit record fields win over anything parsed from it.
func newTradeParty(name, taxID, addrText, city, postalCode, countryCode, countryOverride, email, phone, gln string) TradeParty {
	parsed := org.ParseAddressLines(addrText, "")

	line := parsed.Street
	if parsed.HouseNumber != "" {
		line += " " + parsed.HouseNumber
	}
	cc := firstNonEmpty(countryCode, countryOverride, parsed.Country, DefaultCountryCode)

	p := TradeParty{
		Name: name,
		PostalTradeAddress: TradeAddress{
			PostcodeCode: firstNonEmpty(postalCode, parsed.PostalCode),
			LineOne:      line,
			CityName:     firstNonEmpty(city, parsed.City),
			CountryID:    strings.ToUpper(strings.TrimSpace(cc)),
		},
		URIUniversalCommunication: &URICommunication{
			URIID: SchemeID{SchemeID: SchemeIDGLN, Value: firstNonEmpty(gln, PlaceholderGLN)},
		},
	}
	if org.IsLikelyVATID(taxID) {
		p.ID = taxID
		p.SpecifiedTaxRegistration = []TaxRegistration{{
			ID: SchemeID{SchemeID: SchemeIDVAT, Value: taxID},
		}}
	}
	if email != "" || phone != "" {
		tc := &TradeContact{}
		if phone != "" {
			tc.Telephone = &Telephone{CompleteNumber: phone}
		}
		if email != "" {
			tc.Email = &URICommunication{URIID: SchemeID{Value: email}}
		}
		p.DefinedTradeContact = tc
	}
	return p
}
