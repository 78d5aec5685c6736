package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, reference, quote_id, customer_id, bike_id, tier,
	start_date, end_date, actual_return_date,
	unit_price_cents, duration, subtotal_cents, total_price_cents,
	deposit_cents, deposit_paid, deposit_returned,
	late_fee_cents, damage_fee_cents, additional_fee_cents,
	damage_reported, damage_description, deposit_deduction_cents, deduction_reason,
	condition_start, condition_return, condition_notes,
	state, invoice_id, invoiced, created_on, updated_on`

func scanContract(row interface{ Scan(...interface{}) error }) (*domain.Contract, error) {
	c := &domain.Contract{}
	var conditionReturn sql.NullString
	err := row.Scan(&c.ID, &c.Reference, &c.QuoteID, &c.CustomerID, &c.BikeID, &c.Tier,
		&c.StartDate, &c.EndDate, &c.ActualReturnDate,
		&c.UnitPriceCents, &c.Duration, &c.SubtotalCents, &c.TotalPriceCents,
		&c.DepositCents, &c.DepositPaid, &c.DepositReturned,
		&c.LateFeeCents, &c.DamageFeeCents, &c.AdditionalFeeCents,
		&c.DamageReported, &c.DamageDescription, &c.DepositDeductionCents, &c.DeductionReason,
		&c.ConditionStart, &conditionReturn, &c.ConditionNotes,
		&c.State, &c.InvoiceID, &c.Invoiced, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if conditionReturn.Valid {
		c.ConditionReturn = domain.BikeCondition(conditionReturn.String)
	}
	return c, nil
}

// insertContract is shared with the quote confirmation transaction.
func insertContract(ctx context.Context, q querier, c *domain.Contract) error {
	ref, err := nextReference(ctx, q, "contract_ref_seq", "CONT")
	if err != nil {
		return err
	}
	c.Reference = ref

	query := `INSERT INTO contracts (reference, quote_id, customer_id, bike_id, tier,
	          start_date, end_date, unit_price_cents, duration, subtotal_cents, total_price_cents,
	          deposit_cents, condition_start, state, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`
	now := time.Now()
	return q.QueryRowContext(ctx, query, c.Reference, c.QuoteID, c.CustomerID, c.BikeID,
		c.Tier, c.StartDate, c.EndDate, c.UnitPriceCents, c.Duration, c.SubtotalCents,
		c.TotalPriceCents, c.DepositCents, c.ConditionStart, c.State, now, now).Scan(&c.ID)
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	return insertContract(ctx, r.db, c)
}

func (r *contractRepository) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET start_date=$1, end_date=$2, actual_return_date=$3,
	          unit_price_cents=$4, duration=$5, subtotal_cents=$6, total_price_cents=$7,
	          deposit_cents=$8, deposit_paid=$9, deposit_returned=$10,
	          late_fee_cents=$11, damage_fee_cents=$12, additional_fee_cents=$13,
	          damage_reported=$14, damage_description=$15, deposit_deduction_cents=$16,
	          deduction_reason=$17, condition_start=$18, condition_return=$19, condition_notes=$20,
	          state=$21, invoice_id=$22, invoiced=$23, updated_on=$24
	          WHERE id=$25`
	var conditionReturn sql.NullString
	if c.ConditionReturn != "" {
		conditionReturn = sql.NullString{String: string(c.ConditionReturn), Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query, c.StartDate, c.EndDate, c.ActualReturnDate,
		c.UnitPriceCents, c.Duration, c.SubtotalCents, c.TotalPriceCents,
		c.DepositCents, c.DepositPaid, c.DepositReturned,
		c.LateFeeCents, c.DamageFeeCents, c.AdditionalFeeCents,
		c.DamageReported, c.DamageDescription, c.DepositDeductionCents, c.DeductionReason,
		c.ConditionStart, conditionReturn, c.ConditionNotes,
		c.State, c.InvoiceID, c.Invoiced, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contractRepository) list(ctx context.Context, where string, args ...interface{}) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ` + where
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}

func (r *contractRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error) {
	return r.list(ctx, `WHERE customer_id = $1 ORDER BY start_date DESC`, customerID)
}

func (r *contractRepository) ListByState(ctx context.Context, state domain.ContractState) ([]domain.Contract, error) {
	return r.list(ctx, `WHERE state = $1 ORDER BY start_date DESC`, state)
}

func (r *contractRepository) ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Contract, error) {
	return r.list(ctx, `WHERE state = $1 AND end_date >= $2 AND end_date < $3 ORDER BY end_date`,
		domain.ContractStateOngoing, from, to)
}

func (r *contractRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Contract, error) {
	return r.list(ctx, `WHERE state = $1 AND end_date < $2 ORDER BY end_date`,
		domain.ContractStateOngoing, asOf)
}
