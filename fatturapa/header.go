package fatturapa

import (
	"encoding/xml"
	"strings"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/org"
)

// RegimeFiscaleOrdinario is the ordinary tax regime, the only one this
// exporter emits.
const RegimeFiscaleOrdinario = "RF01"

// DefaultSenderEmail fills ContattiTrasmittente when the seller has no
// email configured; the SDI schema requires a transmitter contact.
const DefaultSenderEmail = "info@company.it"

// Header is the FatturaElettronicaHeader tree.
type Header struct {
	XMLName          xml.Name         `xml:"FatturaElettronicaHeader"`
	DatiTrasmissione DatiTrasmissione `xml:"DatiTrasmissione"`
	Seller           Party            `xml:"CedentePrestatore"`
	Buyer            Party            `xml:"CessionarioCommittente"`
}

// DatiTrasmissione carries the SDI routing data.
type DatiTrasmissione struct {
	IdTrasmittente       IdFiscale `xml:"IdTrasmittente"`
	ProgressivoInvio     string    `xml:"ProgressivoInvio"`
	FormatoTrasmissione  string    `xml:"FormatoTrasmissione"`
	CodiceDestinatario   string    `xml:"CodiceDestinatario"`
	ContattiTrasmittente Contatti  `xml:"ContattiTrasmittente"`
}

// IdFiscale is a country-qualified fiscal identifier.
type IdFiscale struct {
	IdPaese  string `xml:"IdPaese"`
	IdCodice string `xml:"IdCodice"`
}

// Contatti carries the transmitter contact email.
type Contatti struct {
	Email string `xml:"Email"`
}

// Party is a seller or buyer block with registry data and seat.
type Party struct {
	DatiAnagrafici DatiAnagrafici `xml:"DatiAnagrafici"`
	Sede           Sede           `xml:"Sede"`
}

// DatiAnagrafici is the registry data of a party. RegimeFiscale is only
// set on the seller.
type DatiAnagrafici struct {
	IdFiscaleIVA  IdFiscale  `xml:"IdFiscaleIVA"`
	CodiceFiscale string     `xml:"CodiceFiscale,omitempty"`
	Anagrafica    Anagrafica `xml:"Anagrafica"`
	RegimeFiscale string     `xml:"RegimeFiscale,omitempty"`
}

// Anagrafica carries the party denomination.
type Anagrafica struct {
	Denominazione string `xml:"Denominazione"`
}

// Sede is the registered seat of a party. The SDI schema requires every
// field, so missing data degrades to generic placeholders.
type Sede struct {
	Indirizzo    string `xml:"Indirizzo"`
	NumeroCivico string `xml:"NumeroCivico"`
	CAP          string `xml:"CAP"`
	Comune       string `xml:"Comune"`
	Provincia    string `xml:"Provincia"`
	Nazione      string `xml:"Nazione"`
}

func newHeader(inv *bill.Invoice, biz *bill.BusinessSettings, o *options) Header {
	sellerVAT := org.ExtractVATID(biz.CompanyTaxID)
	buyerVAT := org.ExtractVATID(inv.Customer.TaxID)
	sellerCF := org.ExtractTaxCode(biz.CompanyTaxID)
	buyerCF := org.ExtractTaxCode(inv.Customer.TaxID)

	recipientCode := RecipientCodeAuthorized
	if o.buyerIsPA {
		recipientCode = RecipientCodePA
	}

	h := Header{
		DatiTrasmissione: DatiTrasmissione{
			IdTrasmittente:      IdFiscale{IdPaese: "IT", IdCodice: o.senderCode},
			ProgressivoInvio:    "1",
			FormatoTrasmissione: o.transmissionFormat,
			CodiceDestinatario:  recipientCode,
			ContattiTrasmittente: Contatti{
				Email: firstNonEmpty(biz.CompanyEmail, DefaultSenderEmail),
			},
		},
		Seller: Party{
			DatiAnagrafici: DatiAnagrafici{
				IdFiscaleIVA:  IdFiscale{IdPaese: "IT", IdCodice: sellerVAT},
				CodiceFiscale: sellerCF,
				Anagrafica:    Anagrafica{Denominazione: firstNonEmpty(biz.CompanyName, "Company")},
				RegimeFiscale: RegimeFiscaleOrdinario,
			},
			Sede: newSede(biz.CompanyAddress, biz.CompanyCity, biz.CompanyPostalCode, biz.CompanyCountryCode, o.sellerCountry),
		},
		Buyer: Party{
			DatiAnagrafici: DatiAnagrafici{
				IdFiscaleIVA: IdFiscale{IdPaese: "IT", IdCodice: buyerVAT},
				Anagrafica:   Anagrafica{Denominazione: firstNonEmpty(inv.Customer.Name, "Cliente")},
			},
			Sede: newSede(inv.Customer.Address, inv.Customer.City, inv.Customer.PostalCode, inv.Customer.CountryCode, o.buyerCountry),
		},
	}
	// The fiscal code is redundant when it collapses to the same digits
	// as the VAT number.
	if buyerCF != buyerVAT {
		h.Buyer.DatiAnagrafici.CodiceFiscale = buyerCF
	}
	return h
}

// newSede decomposes a comma-delimited address into the seat block,
// substituting the conventional placeholders for anything missing.
func newSede(text, city, postalCode, countryCode, countryOverride string) Sede {
	parsed := org.ParseAddressCommaList(text, "")
	cc := firstNonEmpty(countryCode, countryOverride, parsed.Country, DefaultCountryCode)
	return Sede{
		Indirizzo:    firstNonEmpty(parsed.Street, "Via Generica"),
		NumeroCivico: firstNonEmpty(parsed.HouseNumber, "1"),
		CAP:          firstNonEmpty(postalCode, parsed.PostalCode, "00000"),
		Comune:       firstNonEmpty(city, parsed.City, "Roma"),
		Provincia:    firstNonEmpty(parsed.Province, "RM"),
		Nazione:      strings.ToUpper(strings.TrimSpace(cc)),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
