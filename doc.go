// Package einvoice turns finalized invoice records into electronic
// invoice documents. Three formats are supported: UBL 2.1 (PEPPOL BIS
// Billing 3.0), Factur-X / ZUGFeRD 2.2 (EN 16931 CII syntax) and
// FatturaPA for the Italian SDI.
//
// The UBL and Factur-X formats are selected through the profile
// registry:
//
//	xml, profile, err := einvoice.Generate("facturx22", inv, biz, einvoice.Options{})
//
// FatturaPA is generated through its own entry point, GenerateFatturaPA.
//
// All monetary figures on the invoice are treated as final. The
// serializers format what is stored; computing totals is the job of
// bill.CalculateTotals before the record is persisted.
package einvoice
