package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type bikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) repository.BikeRepository {
	return &bikeRepository{db: db}
}

const bikeColumns = `id, name, category, brand, model, year, frame_size, wheel_size, serial_number,
	battery_capacity_wh, motor_power_w, autonomy_km, for_rental, availability,
	price_per_hour_cents, price_per_day_cents, price_per_week_cents, price_per_month_cents,
	deposit_cents, total_rental_hours, total_revenue_cents, last_rental_date,
	maintenance_notes, version, created_on, updated_on`

func scanBike(row interface{ Scan(...interface{}) error }) (*domain.Bike, error) {
	b := &domain.Bike{}
	err := row.Scan(&b.ID, &b.Name, &b.Category, &b.Brand, &b.Model, &b.Year, &b.FrameSize,
		&b.WheelSize, &b.SerialNumber, &b.BatteryCapacityWh, &b.MotorPowerW, &b.AutonomyKm,
		&b.ForRental, &b.Availability, &b.PricePerHourCents, &b.PricePerDayCents,
		&b.PricePerWeekCents, &b.PricePerMonthCents, &b.DepositCents, &b.TotalRentalHours,
		&b.TotalRevenueCents, &b.LastRentalDate, &b.MaintenanceNotes, &b.Version,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	query := `INSERT INTO bikes (name, category, brand, model, year, frame_size, wheel_size, serial_number,
	          battery_capacity_wh, motor_power_w, autonomy_km, for_rental, availability,
	          price_per_hour_cents, price_per_day_cents, price_per_week_cents, price_per_month_cents,
	          deposit_cents, maintenance_notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.Name, b.Category, b.Brand, b.Model, b.Year,
		b.FrameSize, b.WheelSize, b.SerialNumber, b.BatteryCapacityWh, b.MotorPowerW,
		b.AutonomyKm, b.ForRental, b.Availability, b.PricePerHourCents, b.PricePerDayCents,
		b.PricePerWeekCents, b.PricePerMonthCents, b.DepositCents, b.MaintenanceNotes,
		now, now).Scan(&b.ID)
}

func (r *bikeRepository) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE id = $1`
	b, err := scanBike(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	query := `UPDATE bikes SET name=$1, category=$2, brand=$3, model=$4, year=$5, frame_size=$6,
	          wheel_size=$7, serial_number=$8, battery_capacity_wh=$9, motor_power_w=$10, autonomy_km=$11,
	          for_rental=$12, price_per_hour_cents=$13, price_per_day_cents=$14, price_per_week_cents=$15,
	          price_per_month_cents=$16, deposit_cents=$17, maintenance_notes=$18, updated_on=$19
	          WHERE id=$20`
	res, err := r.db.ExecContext(ctx, query, b.Name, b.Category, b.Brand, b.Model, b.Year,
		b.FrameSize, b.WheelSize, b.SerialNumber, b.BatteryCapacityWh, b.MotorPowerW,
		b.AutonomyKm, b.ForRental, b.PricePerHourCents, b.PricePerDayCents, b.PricePerWeekCents,
		b.PricePerMonthCents, b.DepositCents, b.MaintenanceNotes, time.Now(), b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bikeRepository) ListForRental(ctx context.Context, category domain.BikeCategory) ([]domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE for_rental = TRUE AND availability = $1`
	args := []interface{}{domain.AvailabilityAvailable}
	if category != "" {
		query += " AND category = $2"
		args = append(args, category)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		b, err := scanBike(rows)
		if err != nil {
			return nil, err
		}
		bikes = append(bikes, *b)
	}
	return bikes, rows.Err()
}

// ClaimForRental is the single point where a bike moves to RENTED. The
// WHERE clause is the compare-and-set that keeps two contracts from holding
// the same bike under concurrent confirmation attempts.
func (r *bikeRepository) ClaimForRental(ctx context.Context, bikeID int32) error {
	query := `UPDATE bikes SET availability=$1, version=version+1, updated_on=$2
	          WHERE id=$3 AND for_rental=TRUE AND availability=$4`
	res, err := r.db.ExecContext(ctx, query, domain.AvailabilityRented, time.Now(),
		bikeID, domain.AvailabilityAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bikes WHERE id=$1)`, bikeID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrBikeUnavailable
	}
	return nil
}

func (r *bikeRepository) Release(ctx context.Context, bikeID int32, to domain.AvailabilityState) error {
	query := `UPDATE bikes SET availability=$1, version=version+1, updated_on=$2
	          WHERE id=$3 AND availability=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), bikeID, domain.AvailabilityRented)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bikeRepository) SetAvailability(ctx context.Context, bikeID int32, from, to domain.AvailabilityState) error {
	query := `UPDATE bikes SET availability=$1, version=version+1, updated_on=$2
	          WHERE id=$3 AND availability=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), bikeID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bikes WHERE id=$1)`, bikeID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrBikeUnavailable
	}
	return nil
}

func (r *bikeRepository) AccrueStats(ctx context.Context, bikeID int32, hours float64, revenueCents int64, lastRental time.Time) error {
	query := `UPDATE bikes SET total_rental_hours = total_rental_hours + $1,
	          total_revenue_cents = total_revenue_cents + $2,
	          last_rental_date = $3, updated_on = $4
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, hours, revenueCents, lastRental, time.Now(), bikeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
