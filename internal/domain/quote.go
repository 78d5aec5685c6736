package domain

import "time"

// RentalTier is the pricing granularity for a rental.
type RentalTier string

const (
	TierHour  RentalTier = "HOUR"
	TierDay   RentalTier = "DAY"
	TierWeek  RentalTier = "WEEK"
	TierMonth RentalTier = "MONTH"
)

// ValidTier reports whether t is one of the four supported tiers.
func ValidTier(t RentalTier) bool {
	switch t {
	case TierHour, TierDay, TierWeek, TierMonth:
		return true
	}
	return false
}

type QuoteState string

const (
	QuoteStateDraft     QuoteState = "DRAFT"
	QuoteStateSent      QuoteState = "SENT"
	QuoteStateConfirmed QuoteState = "CONFIRMED"
	QuoteStateCancelled QuoteState = "CANCELLED"
)

// Quote aggregates prospective rental lines for a customer before
// commitment. Totals are always derived from the current lines.
type Quote struct {
	ID         int32       `json:"id"`
	Reference  string      `json:"reference"` // LOC/YYYY/NNNN
	CustomerID int32       `json:"customer_id"`
	OrderDate  time.Time   `json:"order_date"`
	Lines      []QuoteLine `json:"lines"`

	AmountUntaxedCents int64 `json:"amount_untaxed_cents"`
	AmountTaxCents     int64 `json:"amount_tax_cents"`
	AmountTotalCents   int64 `json:"amount_total_cents"`
	TotalDepositCents  int64 `json:"total_deposit_cents"`

	State        QuoteState `json:"state"`
	Note         string     `json:"note,omitempty"`
	InternalNote string     `json:"internal_note,omitempty"`
	// BookingKey deduplicates public website submissions: resubmitting the
	// same key returns the quote it already created.
	BookingKey string `json:"booking_key,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// QuoteLine is one prospective bike rental. Its identity is frozen once a
// contract has been spawned from it: the contract copies the values and
// never references the line mutably.
type QuoteLine struct {
	ID      int32 `json:"id"`
	QuoteID int32 `json:"quote_id"`
	BikeID  int32 `json:"bike_id"`

	Tier      RentalTier `json:"tier"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`

	UnitPriceCents int64   `json:"unit_price_cents"`
	Quantity       float64 `json:"quantity"`
	Duration       float64 `json:"duration"`
	SubtotalCents  int64   `json:"subtotal_cents"`
	DepositCents   int64   `json:"deposit_cents"`

	Note string `json:"note,omitempty"`
}
