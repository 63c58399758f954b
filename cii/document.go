package cii

import (
	"encoding/xml"
	"errors"
	"time"

	"github.com/facturo/einvoice/bill"
)

// TypeCodeCommercialInvoice is the UNTDID 1001 code for a commercial
// invoice.
const TypeCodeCommercialInvoice = "380"

// DateFormatCCYYMMDD is the UNTDID 2379 qualifier for dates written as
// CCYYMMDD.
const DateFormatCCYYMMDD = "102"

// Document represents the rsm:CrossIndustryInvoice root element.
type Document struct {
	XMLName      xml.Name `xml:"rsm:CrossIndustryInvoice"`
	RSMNamespace string   `xml:"xmlns:rsm,attr"`
	RAMNamespace string   `xml:"xmlns:ram,attr"`
	QDTNamespace string   `xml:"xmlns:qdt,attr"`
	UDTNamespace string   `xml:"xmlns:udt,attr"`

	Context     ExchangedContext  `xml:"rsm:ExchangedDocumentContext"`
	Header      ExchangedDocument `xml:"rsm:ExchangedDocument"`
	Transaction Transaction       `xml:"rsm:SupplyChainTradeTransaction"`
}

// ExchangedContext carries the business process and guideline
// parameters that identify the document profile.
type ExchangedContext struct {
	BusinessProcess *ContextParameter `xml:"ram:BusinessProcessSpecifiedDocumentContextParameter,omitempty"`
	Guideline       ContextParameter  `xml:"ram:GuidelineSpecifiedDocumentContextParameter"`
}

// ContextParameter is a single document context identifier.
type ContextParameter struct {
	ID string `xml:"ram:ID"`
}

// ExchangedDocument is the document header.
type ExchangedDocument struct {
	ID            string   `xml:"ram:ID"`
	TypeCode      string   `xml:"ram:TypeCode"`
	IssueDateTime DateTime `xml:"ram:IssueDateTime"`
	IncludedNote  []Note   `xml:"ram:IncludedNote,omitempty"`
}

// DateTime wraps a formatted date string.
type DateTime struct {
	DateTimeString FormattedDate `xml:"udt:DateTimeString"`
}

// FormattedDate is a date with its UNTDID 2379 format qualifier.
type FormattedDate struct {
	Format string `xml:"format,attr"`
	Value  string `xml:",chardata"`
}

// Note is a free-text document note.
type Note struct {
	Content string `xml:"ram:Content"`
}

// Transaction groups the trade line items and the header agreement,
// delivery and settlement blocks, in schema order.
type Transaction struct {
	Lines      []LineItem `xml:"ram:IncludedSupplyChainTradeLineItem"`
	Agreement  Agreement  `xml:"ram:ApplicableHeaderTradeAgreement"`
	Delivery   Delivery   `xml:"ram:ApplicableHeaderTradeDelivery"`
	Settlement Settlement `xml:"ram:ApplicableHeaderTradeSettlement"`
}

// Delivery is the header trade delivery block. The data model has no
// separate delivery date, so the actual delivery event mirrors the
// issue date.
type Delivery struct {
	ActualDeliveryEvent *DeliveryEvent `xml:"ram:ActualDeliverySupplyChainEvent,omitempty"`
}

// DeliveryEvent wraps the occurrence date of a supply chain event.
type DeliveryEvent struct {
	OccurrenceDateTime DateTime `xml:"ram:OccurrenceDateTime"`
}

func newDocument(inv *bill.Invoice, biz *bill.BusinessSettings, o *options) (*Document, error) {
	if inv == nil {
		return nil, errors.New("invoice is required")
	}
	if biz == nil {
		biz = new(bill.BusinessSettings)
	}

	currency := bill.DocumentCurrency(inv, biz, "EUR")

	issueDate := inv.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	issue := formatDate(issueDate)

	doc := &Document{
		RSMNamespace: NamespaceRSM,
		RAMNamespace: NamespaceRAM,
		QDTNamespace: NamespaceQDT,
		UDTNamespace: NamespaceUDT,
		Context: ExchangedContext{
			Guideline: ContextParameter{ID: o.guideline},
		},
		Header: ExchangedDocument{
			ID:            inv.Number,
			TypeCode:      TypeCodeCommercialInvoice,
			IssueDateTime: newDateTime(issue),
		},
	}
	if o.businessProcess != "" {
		doc.Context.BusinessProcess = &ContextParameter{ID: o.businessProcess}
	}
	if inv.Notes != "" {
		doc.Header.IncludedNote = []Note{{Content: inv.Notes}}
	}

	doc.Transaction = Transaction{
		Lines:     newLines(inv, currency),
		Agreement: newAgreement(inv, biz, o),
		Delivery: Delivery{
			ActualDeliveryEvent: &DeliveryEvent{OccurrenceDateTime: newDateTime(issue)},
		},
		Settlement: newSettlement(inv, biz, currency),
	}
	return doc, nil
}

func newDateTime(v string) DateTime {
	return DateTime{DateTimeString: FormattedDate{Format: DateFormatCCYYMMDD, Value: v}}
}

func formatDate(t time.Time) string {
	return t.Format("20060102")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
