package ubl

import (
	"strings"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/org"
)

// TaxSchemeVAT is the tax scheme code for VAT.
const TaxSchemeVAT = "VAT"

// SupplierParty represents the supplier party in a transaction.
type SupplierParty struct {
	Party *Party `xml:"cac:Party"`
}

// CustomerParty represents the customer party in a transaction.
type CustomerParty struct {
	Party *Party `xml:"cac:Party"`
}

// Party represents a party involved in a transaction.
type Party struct {
	EndpointID       *EndpointID       `xml:"cbc:EndpointID,omitempty"`
	PartyName        *PartyName        `xml:"cac:PartyName,omitempty"`
	PostalAddress    *PostalAddress    `xml:"cac:PostalAddress,omitempty"`
	PartyTaxScheme   []PartyTaxScheme  `xml:"cac:PartyTaxScheme,omitempty"`
	PartyLegalEntity *PartyLegalEntity `xml:"cac:PartyLegalEntity,omitempty"`
	Contact          *Contact          `xml:"cac:Contact,omitempty"`
}

// EndpointID represents a PEPPOL endpoint identifier.
type EndpointID struct {
	SchemeID string `xml:"schemeID,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// PartyName represents the name of a party.
type PartyName struct {
	Name string `xml:"cbc:Name"`
}

// PostalAddress represents a postal address.
type PostalAddress struct {
	StreetName     string   `xml:"cbc:StreetName,omitempty"`
	BuildingNumber string   `xml:"cbc:BuildingNumber,omitempty"`
	CityName       string   `xml:"cbc:CityName,omitempty"`
	PostalZone     string   `xml:"cbc:PostalZone,omitempty"`
	Country        *Country `xml:"cac:Country"`
}

// Country represents a country.
type Country struct {
	IdentificationCode string `xml:"cbc:IdentificationCode"`
}

// PartyTaxScheme represents a party's tax scheme registration.
type PartyTaxScheme struct {
	CompanyID string    `xml:"cbc:CompanyID"`
	TaxScheme TaxScheme `xml:"cac:TaxScheme"`
}

// TaxScheme represents a tax scheme.
type TaxScheme struct {
	ID string `xml:"cbc:ID"`
}

// PartyLegalEntity represents the legal entity of a party.
type PartyLegalEntity struct {
	RegistrationName string `xml:"cbc:RegistrationName"`
	CompanyID        string `xml:"cbc:CompanyID,omitempty"`
}

// Contact represents contact information.
type Contact struct {
	ElectronicMail string `xml:"cbc:ElectronicMail,omitempty"`
	Telephone      string `xml:"cbc:Telephone,omitempty"`
}

func newSellerParty(biz *bill.BusinessSettings, o *options) *Party {
	p := &Party{
		PartyName: &PartyName{Name: biz.CompanyName},
		PostalAddress: newPostalAddress(
			biz.CompanyAddress,
			biz.CompanyCity,
			biz.CompanyPostalCode,
			biz.CompanyCountryCode,
			o.sellerCountry,
		),
		PartyLegalEntity: &PartyLegalEntity{
			RegistrationName: biz.CompanyName,
			CompanyID:        biz.CompanyTaxID,
		},
	}
	if o.sellerEndpointID != "" {
		p.EndpointID = &EndpointID{SchemeID: o.sellerEndpointSchemeID, Value: o.sellerEndpointID}
	}
	if org.IsLikelyVATID(biz.CompanyTaxID) {
		p.PartyTaxScheme = []PartyTaxScheme{{
			CompanyID: biz.CompanyTaxID,
			TaxScheme: TaxScheme{ID: TaxSchemeVAT},
		}}
	}
	if biz.CompanyEmail != "" || biz.CompanyPhone != "" {
		p.Contact = &Contact{
			ElectronicMail: biz.CompanyEmail,
			Telephone:      biz.CompanyPhone,
		}
	}
	return p
}

func newBuyerParty(c *bill.Customer, o *options) *Party {
	p := &Party{
		PartyName: &PartyName{Name: c.Name},
		PostalAddress: newPostalAddress(
			c.Address,
			c.City,
			c.PostalCode,
			c.CountryCode,
			o.buyerCountry,
		),
	}
	if o.buyerEndpointID != "" {
		p.EndpointID = &EndpointID{SchemeID: o.buyerEndpointSchemeID, Value: o.buyerEndpointID}
	}
	if org.IsLikelyVATID(c.TaxID) {
		p.PartyTaxScheme = []PartyTaxScheme{{
			CompanyID: c.TaxID,
			TaxScheme: TaxScheme{ID: TaxSchemeVAT},
		}}
	}
	if c.Email != "" || c.Phone != "" {
		p.Contact = &Contact{
			ElectronicMail: c.Email,
			Telephone:      c.Phone,
		}
	}
	return p
}

// newPostalAddress decomposes a free-text address and overlays the
// record's explicit fields on top of whatever was parsed. The country
// code resolves explicit field first, then the option fallback, then the
// parsed token, and finally DefaultCountryCode.
func newPostalAddress(text, city, postalCode, countryCode, countryFallback string) *PostalAddress {
	parsed := org.ParseAddressCommaList(text, "")
	addr := &PostalAddress{
		StreetName:     parsed.Street,
		BuildingNumber: parsed.HouseNumber,
		CityName:       firstNonEmpty(city, parsed.City),
		PostalZone:     firstNonEmpty(postalCode, parsed.PostalCode),
	}
	cc := firstNonEmpty(countryCode, countryFallback, parsed.Country, DefaultCountryCode)
	addr.Country = &Country{IdentificationCode: normalizeCountry(cc)}
	return addr
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
