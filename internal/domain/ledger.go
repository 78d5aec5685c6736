package domain

import "time"

// DepositEntryType classifies movements on the deposit ledger. Deposits
// never appear on invoices; they are tracked here instead.
type DepositEntryType string

const (
	DepositHeld      DepositEntryType = "DEPOSIT_HELD"
	DepositRefund    DepositEntryType = "DEPOSIT_REFUND"
	DepositDeduction DepositEntryType = "DEPOSIT_DEDUCTION"
)

// DepositEntry records one movement of deposit money for a contract.
// Amounts are signed from the shop's point of view: positive when money
// is taken in, negative when it is paid out or written off.
type DepositEntry struct {
	ID          int32            `json:"id"`
	ContractID  int32            `json:"contract_id"`
	AmountCents int64            `json:"amount_cents"`
	Type        DepositEntryType `json:"type"`
	PaymentRef  string           `json:"payment_ref"`
	Description string           `json:"description"`
	CreatedOn   time.Time        `json:"created_on"`
}
