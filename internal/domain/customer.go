package domain

import "time"

type LoyaltyLevel string

const (
	LoyaltyLevelNone     LoyaltyLevel = ""
	LoyaltyLevelBronze   LoyaltyLevel = "BRONZE"
	LoyaltyLevelSilver   LoyaltyLevel = "SILVER"
	LoyaltyLevelGold     LoyaltyLevel = "GOLD"
	LoyaltyLevelPlatinum LoyaltyLevel = "PLATINUM"
)

// LoyaltyLevelFor derives the loyalty level from accumulated points.
func LoyaltyLevelFor(points int32) LoyaltyLevel {
	switch {
	case points >= 1000:
		return LoyaltyLevelPlatinum
	case points >= 500:
		return LoyaltyLevelGold
	case points >= 200:
		return LoyaltyLevelSilver
	case points >= 50:
		return LoyaltyLevelBronze
	default:
		return LoyaltyLevelNone
	}
}

type Customer struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Identity check consulted as a contract confirm-guard.
	IDCardNumber string `json:"id_card_number,omitempty"`
	IDVerified   bool   `json:"id_verified"`

	LoyaltyMember bool  `json:"loyalty_member"`
	LoyaltyPoints int32 `json:"loyalty_points"`

	Blacklisted     bool   `json:"blacklisted"`
	BlacklistReason string `json:"blacklist_reason,omitempty"`

	PreferredCategory BikeCategory `json:"preferred_category,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// LoyaltyLevel is derived from the current point balance.
func (c *Customer) LoyaltyLevel() LoyaltyLevel {
	return LoyaltyLevelFor(c.LoyaltyPoints)
}

// CustomerRentalStats summarizes a customer's rental history. The numbers
// are computed by query, never stored.
type CustomerRentalStats struct {
	ContractCount    int32 `json:"contract_count"`
	TotalSpentCents  int64 `json:"total_spent_cents"`
	ActiveContracts  int32 `json:"active_contracts"`
}
