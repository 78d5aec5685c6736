// Package pricing holds the rental price and duration arithmetic shared by
// quotes and contracts. All functions are pure; callers persist the results.
package pricing

import (
	"math"
	"time"

	"bikeshop-rental-backend/internal/domain"
)

// TaxRateBasisPoints is the Belgian VAT rate applied to rental totals.
const TaxRateBasisPoints = 2100

const (
	hoursPerDay  = 24.0
	daysPerWeek  = 7.0
	daysPerMonth = 30.0
)

// Duration converts the span between start and end into tier units.
//
// Day durations are whole elapsed days with a minimum of one: a shop rents
// by the calendar day over the counter, never by a fraction of one.
func Duration(tier domain.RentalTier, start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	elapsed := end.Sub(start)
	hours := elapsed.Hours()
	switch tier {
	case domain.TierHour:
		return hours
	case domain.TierDay:
		days := math.Floor(hours / hoursPerDay)
		if days < 1 {
			days = 1
		}
		return days
	case domain.TierWeek:
		return hours / hoursPerDay / daysPerWeek
	case domain.TierMonth:
		return hours / hoursPerDay / daysPerMonth
	}
	return 0
}

// HoursEquivalent converts a duration expressed in tier units back into
// hours, for the bike's lifetime statistics.
func HoursEquivalent(tier domain.RentalTier, duration float64) float64 {
	switch tier {
	case domain.TierHour:
		return duration
	case domain.TierDay:
		return duration * hoursPerDay
	case domain.TierWeek:
		return duration * daysPerWeek * hoursPerDay
	case domain.TierMonth:
		return duration * daysPerMonth * hoursPerDay
	}
	return 0
}

// Subtotal computes unit price x duration x quantity, rounded to the cent.
func Subtotal(unitPriceCents int64, duration, quantity float64) int64 {
	return int64(math.Round(float64(unitPriceCents) * duration * quantity))
}

// Tax computes the VAT on an untaxed amount.
func Tax(untaxedCents int64) int64 {
	return int64(math.Round(float64(untaxedCents) * TaxRateBasisPoints / 10000))
}

// PriceFor looks up the bike's unit price for a tier. It replaces the
// source form's price auto-fill: the caller invokes it explicitly before
// constructing a line.
func PriceFor(bike *domain.Bike, tier domain.RentalTier) int64 {
	switch tier {
	case domain.TierHour:
		return bike.PricePerHourCents
	case domain.TierDay:
		return bike.PricePerDayCents
	case domain.TierWeek:
		return bike.PricePerWeekCents
	case domain.TierMonth:
		return bike.PricePerMonthCents
	}
	return 0
}

// RecomputeLine refreshes the derived fields of a quote line from its
// dates, tier, price and quantity. The held deposit scales with quantity:
// every bike on the line needs its own deposit.
func RecomputeLine(line *domain.QuoteLine, depositRateCents int64) {
	line.Duration = Duration(line.Tier, line.StartDate, line.EndDate)
	line.SubtotalCents = Subtotal(line.UnitPriceCents, line.Duration, line.Quantity)
	line.DepositCents = int64(math.Round(float64(depositRateCents) * line.Quantity))
}

// QuoteTotals derives the quote amounts from its current lines. It is
// idempotent and safe to call after every line mutation; the totals are
// never a source of truth on their own.
func QuoteTotals(q *domain.Quote) {
	var untaxed, deposit int64
	for _, line := range q.Lines {
		untaxed += line.SubtotalCents
		deposit += line.DepositCents
	}
	q.AmountUntaxedCents = untaxed
	q.AmountTaxCents = Tax(untaxed)
	q.AmountTotalCents = untaxed + q.AmountTaxCents
	q.TotalDepositCents = deposit
}

// RecomputeContract refreshes the contract's derived amounts. The billed
// duration always covers the planned start/end period; time kept past the
// planned end is charged through the late fee, never through the subtotal.
func RecomputeContract(c *domain.Contract) {
	c.Duration = Duration(c.Tier, c.StartDate, c.EndDate)
	c.SubtotalCents = Subtotal(c.UnitPriceCents, c.Duration, 1)
	c.TotalPriceCents = c.SubtotalCents + c.LateFeeCents + c.DamageFeeCents + c.AdditionalFeeCents
}

// LateFee charges the overrun beyond the planned end date at the contract's
// unit price, in whole tier units rounded up. Zero when returned on time.
func LateFee(c *domain.Contract, actualReturn time.Time) int64 {
	if !actualReturn.After(c.EndDate) {
		return 0
	}
	overrun := Duration(c.Tier, c.EndDate, actualReturn)
	if c.Tier != domain.TierDay {
		overrun = math.Ceil(overrun)
	}
	return int64(overrun) * c.UnitPriceCents
}
