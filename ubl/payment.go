package ubl

import "github.com/facturo/einvoice/bill"

// PaymentMeansCodeCreditTransfer is the UNTDID 4461 code for a credit
// transfer.
const PaymentMeansCodeCreditTransfer = "30"

// PaymentMeans represents the payment means block.
type PaymentMeans struct {
	PaymentMeansCode      string                 `xml:"cbc:PaymentMeansCode"`
	PaymentDueDate        string                 `xml:"cbc:PaymentDueDate,omitempty"`
	PayeeFinancialAccount *PayeeFinancialAccount `xml:"cac:PayeeFinancialAccount,omitempty"`
}

// PayeeFinancialAccount represents the seller's financial account.
type PayeeFinancialAccount struct {
	ID string `xml:"cbc:ID"`
}

// PaymentTerms represents the payment terms block.
type PaymentTerms struct {
	Note string `xml:"cbc:Note"`
}

// newPaymentMeans emits a credit transfer block when a bank account is
// configured. The account ID is passed through as stored; PEPPOL does
// not require it to be an IBAN.
func newPaymentMeans(biz *bill.BusinessSettings, dueDate string) *PaymentMeans {
	if biz.BankAccount == "" {
		return nil
	}
	return &PaymentMeans{
		PaymentMeansCode:      PaymentMeansCodeCreditTransfer,
		PaymentDueDate:        dueDate,
		PayeeFinancialAccount: &PayeeFinancialAccount{ID: biz.BankAccount},
	}
}
