package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// C2BEvent is a citizen purchase at a retailer.
type C2BEvent struct {
	Type          string          `json:"type"`
	TransactionID string          `json:"transactionId"`
	Channel       string          `json:"channel"`
	Payer         C2BPayer        `json:"payer"`
	Payee         C2BPayee        `json:"payee"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	Timestamp     string          `json:"timestamp"`
	Metadata      C2BMetadata     `json:"metadata"`
}

// C2BPayer identifies the paying citizen.
type C2BPayer struct {
	Name     string `json:"name"`
	MSISDN   string `json:"msisdn"`
	IDNumber string `json:"idNumber"`
}

// C2BPayee identifies the receiving merchant.
type C2BPayee struct {
	Name       string `json:"name"`
	MerchantID string `json:"merchantId"`
	TerminalID string `json:"terminalId"`
}

// C2BMetadata carries the reference and store location.
type C2BMetadata struct {
	Reference string `json:"reference"`
	Location  string `json:"location"`
}

func (e *C2BEvent) Kind() Kind { return KindC2B }

func (e *C2BEvent) Validate() error { return nil }

func (e *C2BEvent) Summary() string {
	return fmt.Sprintf("c2b %s %s %s -> %s", e.Amount.StringFixed(2), e.Currency, e.Payer.IDNumber, e.Payee.MerchantID)
}

// ISO8583Message approximates an ISO 8583 0200 financial request.
// Amount is in minor units.
type ISO8583Message struct {
	MTI                  string `json:"mti"`
	ProcessingCode       string `json:"processingCode"`
	Amount               int64  `json:"amount"`
	TransmissionDateTime string `json:"transmissionDateTime"`
	STAN                 int    `json:"stan"`
	RRN                  string `json:"rrn"`
	CardNumber           string `json:"cardNumber"`
	Expiry               string `json:"expiry"`
	POSEntryMode         string `json:"posEntryMode"`
	AcquirerID           string `json:"acquirerId"`
	TerminalID           string `json:"terminalId"`
	MerchantID           string `json:"merchantId"`
	Currency             string `json:"currency"`
	CardholderName       string `json:"cardholderName"`
	Description          string `json:"description"`
	Timestamp            string `json:"timestamp"`
}

func (m *ISO8583Message) Kind() Kind { return KindISO8583 }

func (m *ISO8583Message) Validate() error { return nil }

func (m *ISO8583Message) Summary() string {
	return fmt.Sprintf("iso8583 mti=%s stan=%06d amount=%d %s", m.MTI, m.STAN, m.Amount, m.Currency)
}

// CustomerCreditTransfer approximates an ISO 20022 pain.001 document.
type CustomerCreditTransfer struct {
	Initiation CreditTransferInitiation `json:"CstmrCdtTrfInitn"`
}

type CreditTransferInitiation struct {
	GroupHeader GroupHeader          `json:"GrpHdr"`
	Payments    []PaymentInformation `json:"PmtInf"`
}

type GroupHeader struct {
	MessageID        string `json:"MsgId"`
	CreationDateTime string `json:"CreDtTm"`
	NumberOfTxs      string `json:"NbOfTxs"`
}

type PaymentInformation struct {
	PaymentInfoID        string                 `json:"PmtInfId"`
	PaymentMethod        string                 `json:"PmtMtd"`
	RequestedExecutionDt string                 `json:"ReqdExctnDt"`
	Debtor               Party                  `json:"Dbtr"`
	DebtorAccount        CashAccount            `json:"DbtrAcct"`
	Creditor             Party                  `json:"Cdtr"`
	CreditorAccount      CashAccount            `json:"CdtrAcct"`
	Transactions         []CreditTransferTxInfo `json:"CdtTrfTxInf"`
}

type Party struct {
	Name string `json:"Nm"`
}

type CashAccount struct {
	ID AccountID `json:"Id"`
}

type AccountID struct {
	IBAN string `json:"IBAN"`
}

type CreditTransferTxInfo struct {
	PaymentID      PaymentID        `json:"PmtId"`
	Amount         InstructedAmount `json:"Amt"`
	RemittanceInfo RemittanceInfo   `json:"RmtInf"`
}

type PaymentID struct {
	EndToEndID string `json:"EndToEndId"`
}

type InstructedAmount struct {
	Instructed CurrencyAmount `json:"InstdAmt"`
}

type CurrencyAmount struct {
	Currency string          `json:"Ccy"`
	Value    decimal.Decimal `json:"Value"`
}

type RemittanceInfo struct {
	Unstructured []string `json:"Ustrd"`
}

func (d *CustomerCreditTransfer) Kind() Kind { return KindISO20022 }

func (d *CustomerCreditTransfer) Validate() error { return nil }

func (d *CustomerCreditTransfer) Summary() string {
	if len(d.Initiation.Payments) == 0 || len(d.Initiation.Payments[0].Transactions) == 0 {
		return "iso20022 msg=" + d.Initiation.GroupHeader.MessageID
	}

	pmt := d.Initiation.Payments[0]
	amt := pmt.Transactions[0].Amount.Instructed
	return fmt.Sprintf("iso20022 %s %s %s -> %s", amt.Value.StringFixed(2), amt.Currency, pmt.Debtor.Name, pmt.Creditor.Name)
}
