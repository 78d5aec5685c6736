package domain

import "time"

type ContractState string

const (
	ContractStateDraft     ContractState = "DRAFT"
	ContractStateConfirmed ContractState = "CONFIRMED"
	ContractStateOngoing   ContractState = "ONGOING"
	ContractStateReturned  ContractState = "RETURNED"
	ContractStateClosed    ContractState = "CLOSED"
	ContractStateCancelled ContractState = "CANCELLED"
)

// IsTerminal reports whether s is a terminal contract state.
func (s ContractState) IsTerminal() bool {
	return s == ContractStateClosed || s == ContractStateCancelled
}

// Contract is the binding, stateful record of one bike's rental from
// booking through return and settlement.
//
// Lifecycle: DRAFT → CONFIRMED → ONGOING → RETURNED → CLOSED, with
// CANCELLED reachable from any non-terminal state.
type Contract struct {
	ID         int32  `json:"id"`
	Reference  string `json:"reference"` // CONT/YYYY/NNNN
	QuoteID    *int32 `json:"quote_id,omitempty"`
	CustomerID int32  `json:"customer_id"`
	BikeID     int32  `json:"bike_id"`

	Tier             RentalTier `json:"tier"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`

	// Derived amounts. Duration and SubtotalCents are recomputed whenever
	// the dates change; TotalPriceCents whenever any fee changes.
	UnitPriceCents  int64   `json:"unit_price_cents"`
	Duration        float64 `json:"duration"`
	SubtotalCents   int64   `json:"subtotal_cents"`
	TotalPriceCents int64   `json:"total_price_cents"`

	DepositCents    int64 `json:"deposit_cents"`
	DepositPaid     bool  `json:"deposit_paid"`
	DepositReturned bool  `json:"deposit_returned"`

	LateFeeCents       int64 `json:"late_fee_cents"`
	DamageFeeCents     int64 `json:"damage_fee_cents"`
	AdditionalFeeCents int64 `json:"additional_fee_cents"`

	DamageReported        bool   `json:"damage_reported"`
	DamageDescription     string `json:"damage_description,omitempty"`
	DepositDeductionCents int64  `json:"deposit_deduction_cents"`
	DeductionReason       string `json:"deduction_reason,omitempty"`

	ConditionStart  BikeCondition `json:"condition_start"`
	ConditionReturn BikeCondition `json:"condition_return,omitempty"`
	ConditionNotes  string        `json:"condition_notes,omitempty"`

	State ContractState `json:"state"`

	InvoiceID *int32 `json:"invoice_id,omitempty"`
	Invoiced  bool   `json:"invoiced"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// ReturnInput carries everything the return step collects at the counter.
// It is applied to the contract in a single atomic update.
type ReturnInput struct {
	ReturnDate            time.Time     `json:"return_date"`
	ConditionReturn       BikeCondition `json:"condition_return"`
	DamageReported        bool          `json:"damage_reported"`
	DamageDescription     string        `json:"damage_description"`
	DepositDeductionCents int64         `json:"deposit_deduction_cents"`
	DeductionReason       string        `json:"deduction_reason"`
	Notes                 string        `json:"notes"`
}
