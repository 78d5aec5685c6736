package domain

import "time"

type BikeCategory string

const (
	BikeCategoryCity     BikeCategory = "CITY"
	BikeCategoryMountain BikeCategory = "MOUNTAIN"
	BikeCategoryRoad     BikeCategory = "ROAD"
	BikeCategoryElectric BikeCategory = "ELECTRIC"
	BikeCategoryKids     BikeCategory = "KIDS"
)

type FrameSize string

const (
	FrameSizeXS FrameSize = "XS"
	FrameSizeS  FrameSize = "S"
	FrameSizeM  FrameSize = "M"
	FrameSizeL  FrameSize = "L"
	FrameSizeXL FrameSize = "XL"
)

// AvailabilityState is the shared resource the contract state machine
// serializes access to. It is mutated only through contract transitions
// and the maintenance operations on BikeService.
type AvailabilityState string

const (
	AvailabilityAvailable   AvailabilityState = "AVAILABLE"
	AvailabilityRented      AvailabilityState = "RENTED"
	AvailabilityMaintenance AvailabilityState = "MAINTENANCE"
	AvailabilitySold        AvailabilityState = "SOLD"
)

// BikeCondition grades the state of a bike at rental start and at return.
// ConditionDamaged is only used at return.
type BikeCondition string

const (
	ConditionExcellent BikeCondition = "EXCELLENT"
	ConditionGood      BikeCondition = "GOOD"
	ConditionFair      BikeCondition = "FAIR"
	ConditionPoor      BikeCondition = "POOR"
	ConditionDamaged   BikeCondition = "DAMAGED"
)

type Bike struct {
	ID           int32        `json:"id"`
	Name         string       `json:"name"`
	Category     BikeCategory `json:"category"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Year         int32        `json:"year"`
	FrameSize    FrameSize    `json:"frame_size"`
	WheelSize    int32        `json:"wheel_size"`
	SerialNumber string       `json:"serial_number"`

	// Electric bike characteristics, zero for non-electric categories.
	BatteryCapacityWh int32 `json:"battery_capacity_wh,omitempty"`
	MotorPowerW       int32 `json:"motor_power_w,omitempty"`
	AutonomyKm        int32 `json:"autonomy_km,omitempty"`

	ForRental    bool              `json:"for_rental"`
	Availability AvailabilityState `json:"availability"`

	// Per-tier rental prices. A zero price means the tier is not offered.
	PricePerHourCents  int64 `json:"price_per_hour_cents"`
	PricePerDayCents   int64 `json:"price_per_day_cents"`
	PricePerWeekCents  int64 `json:"price_per_week_cents"`
	PricePerMonthCents int64 `json:"price_per_month_cents"`
	DepositCents       int64 `json:"deposit_cents"`

	// Lifetime rental statistics, accrued on contract closure.
	TotalRentalHours  float64    `json:"total_rental_hours"`
	TotalRevenueCents int64      `json:"total_revenue_cents"`
	LastRentalDate    *time.Time `json:"last_rental_date,omitempty"`

	MaintenanceNotes string `json:"maintenance_notes,omitempty"`

	// Version guards concurrent availability flips.
	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// IsElectric is derived from the category.
func (b *Bike) IsElectric() bool {
	return b.Category == BikeCategoryElectric
}
