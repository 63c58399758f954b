package fatturapa

import (
	"encoding/xml"
	"math"
	"strconv"
	"time"

	"github.com/facturo/einvoice/bill"
	"github.com/facturo/einvoice/num"
	"github.com/facturo/einvoice/org"
)

// Document and payment codes emitted by this exporter.
const (
	TipoDocumentoFattura      = "TD01" // ordinary invoice
	CondizioniPagamentoIntero = "TP02" // payment in full
	ModalitaPagamentoBonifico = "MP05" // bank transfer
	ModalitaPagamentoAltro    = "MP23" // unspecified means
	EsigibilitaImmediata      = "I"    // VAT due immediately
	UnitaMisuraDefault        = "PC"
)

// Body is the FatturaElettronicaBody tree.
type Body struct {
	XMLName         xml.Name        `xml:"FatturaElettronicaBody"`
	DatiGenerali    DatiGenerali    `xml:"DatiGenerali"`
	DatiBeniServizi DatiBeniServizi `xml:"DatiBeniServizi"`
	DatiPagamento   DatiPagamento   `xml:"DatiPagamento"`
}

// DatiGenerali wraps the general document data.
type DatiGenerali struct {
	Documento DatiGeneraliDocumento `xml:"DatiGeneraliDocumento"`
}

// DatiGeneraliDocumento is the document header: type, currency, date,
// number and causal text.
type DatiGeneraliDocumento struct {
	TipoDocumento string `xml:"TipoDocumento"`
	Divisa        string `xml:"Divisa"`
	Data          string `xml:"Data"`
	Numero        string `xml:"Numero"`
	Causale       string `xml:"Causale"`
}

// DatiBeniServizi groups the lines and the tax summary.
type DatiBeniServizi struct {
	Linee     []DettaglioLinee `xml:"DettaglioLinee"`
	Riepilogo DatiRiepilogo    `xml:"DatiRiepilogo"`
}

// DettaglioLinee is one invoice line.
type DettaglioLinee struct {
	NumeroLinea    string `xml:"NumeroLinea"`
	Descrizione    string `xml:"Descrizione"`
	Quantita       string `xml:"Quantita"`
	UnitaMisura    string `xml:"UnitaMisura"`
	PrezzoUnitario string `xml:"PrezzoUnitario"`
	PrezzoTotale   string `xml:"PrezzoTotale"`
	AliquotaIVA    string `xml:"AliquotaIVA"`
	Natura         string `xml:"Natura"`
}

// DatiRiepilogo is the per-rate tax summary. The data model carries a
// single invoice-level rate, so there is exactly one.
type DatiRiepilogo struct {
	AliquotaIVA       string `xml:"AliquotaIVA"`
	Natura            string `xml:"Natura"`
	ImponibileImporto string `xml:"ImponibileImporto"`
	Imposta           string `xml:"Imposta"`
	EsigibilitaIVA    string `xml:"EsigibilitaIVA"`
}

// DatiPagamento carries the payment terms and details.
type DatiPagamento struct {
	CondizioniPagamento string             `xml:"CondizioniPagamento"`
	Dettaglio           DettaglioPagamento `xml:"DettaglioPagamento"`
}

// DettaglioPagamento is a single payment detail entry.
type DettaglioPagamento struct {
	ModalitaPagamento     string `xml:"ModalitaPagamento"`
	DataScadenzaPagamento string `xml:"DataScadenzaPagamento"`
	ImportoPagamento      string `xml:"ImportoPagamento"`
	IBAN                  string `xml:"IBAN,omitempty"`
}

// natureCode resolves the FatturaPA tax nature for a rate: N1 (excluded
// under art. 15) for a zero rate, S otherwise.
func natureCode(rate float64) string {
	if rate == 0 {
		return "N1"
	}
	return "S"
}

func newBody(inv *bill.Invoice, biz *bill.BusinessSettings, issueDate time.Time) Body {
	currency := bill.DocumentCurrency(inv, biz, "EUR")
	issue := issueDate.Format("2006-01-02")
	due := issue
	if inv.DueDate != nil {
		due = inv.DueDate.Format("2006-01-02")
	}

	iban := org.ExtractIBAN(biz.BankAccount)
	modalita := ModalitaPagamentoAltro
	if iban != "" {
		modalita = ModalitaPagamentoBonifico
	}

	taxable := math.Max(0, inv.Subtotal-inv.DiscountAmount)

	return Body{
		DatiGenerali: DatiGenerali{
			Documento: DatiGeneraliDocumento{
				TipoDocumento: TipoDocumentoFattura,
				Divisa:        currency,
				Data:          issue,
				Numero:        inv.Number,
				Causale:       firstNonEmpty(inv.Notes, "Fattura"),
			},
		},
		DatiBeniServizi: DatiBeniServizi{
			Linee: newLinee(inv),
			Riepilogo: DatiRiepilogo{
				AliquotaIVA:       num.Format2(inv.TaxRate),
				Natura:            natureCode(inv.TaxRate),
				ImponibileImporto: num.Format2(taxable),
				Imposta:           num.Format2(inv.TaxAmount),
				EsigibilitaIVA:    EsigibilitaImmediata,
			},
		},
		DatiPagamento: DatiPagamento{
			CondizioniPagamento: CondizioniPagamentoIntero,
			Dettaglio: DettaglioPagamento{
				ModalitaPagamento:     modalita,
				DataScadenzaPagamento: due,
				ImportoPagamento:      num.Format2(inv.Total),
				IBAN:                  iban,
			},
		},
	}
}

func newLinee(inv *bill.Invoice) []DettaglioLinee {
	linee := make([]DettaglioLinee, 0, len(inv.Items))
	for i, it := range inv.Items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		lineTotal := it.LineTotal
		if lineTotal == 0 {
			lineTotal = qty * it.UnitPrice
		}
		linee = append(linee, DettaglioLinee{
			NumeroLinea:    strconv.Itoa(i + 1),
			Descrizione:    firstNonEmpty(it.Description, "Servizio"),
			Quantita:       num.Format2(qty),
			UnitaMisura:    UnitaMisuraDefault,
			PrezzoUnitario: num.Format2(it.UnitPrice),
			PrezzoTotale:   num.Format2(lineTotal),
			AliquotaIVA:    num.Format2(inv.TaxRate),
			Natura:         natureCode(inv.TaxRate),
		})
	}
	return linee
}
