package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type quoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

const quoteColumns = `id, reference, customer_id, order_date,
	amount_untaxed_cents, amount_tax_cents, amount_total_cents, total_deposit_cents,
	state, note, internal_note, booking_key, created_on, updated_on`

const quoteLineColumns = `id, quote_id, bike_id, tier, start_date, end_date,
	unit_price_cents, quantity, duration, subtotal_cents, deposit_cents, note`

func scanQuote(row interface{ Scan(...interface{}) error }) (*domain.Quote, error) {
	q := &domain.Quote{}
	err := row.Scan(&q.ID, &q.Reference, &q.CustomerID, &q.OrderDate,
		&q.AmountUntaxedCents, &q.AmountTaxCents, &q.AmountTotalCents, &q.TotalDepositCents,
		&q.State, &q.Note, &q.InternalNote, &q.BookingKey, &q.CreatedOn, &q.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *quoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	ref, err := nextReference(ctx, r.db, "quote_ref_seq", "LOC")
	if err != nil {
		return err
	}
	q.Reference = ref

	query := `INSERT INTO quotes (reference, customer_id, order_date,
	          amount_untaxed_cents, amount_tax_cents, amount_total_cents, total_deposit_cents,
	          state, note, internal_note, booking_key, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, q.Reference, q.CustomerID, q.OrderDate,
		q.AmountUntaxedCents, q.AmountTaxCents, q.AmountTotalCents, q.TotalDepositCents,
		q.State, q.Note, q.InternalNote, q.BookingKey, now, now).Scan(&q.ID)
}

func (r *quoteRepository) GetByID(ctx context.Context, id int32) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.linesFor(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return q, nil
}

func (r *quoteRepository) GetByBookingKey(ctx context.Context, key string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE booking_key = $1`
	q, err := scanQuote(r.db.QueryRowContext(ctx, query, key))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.linesFor(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return q, nil
}

func (r *quoteRepository) linesFor(ctx context.Context, quoteID int32) ([]domain.QuoteLine, error) {
	query := `SELECT ` + quoteLineColumns + ` FROM quote_lines WHERE quote_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.QuoteLine
	for rows.Next() {
		var l domain.QuoteLine
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.BikeID, &l.Tier, &l.StartDate, &l.EndDate,
			&l.UnitPriceCents, &l.Quantity, &l.Duration, &l.SubtotalCents, &l.DepositCents,
			&l.Note); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *quoteRepository) Update(ctx context.Context, q *domain.Quote) error {
	query := `UPDATE quotes SET amount_untaxed_cents=$1, amount_tax_cents=$2,
	          amount_total_cents=$3, total_deposit_cents=$4, state=$5, note=$6,
	          internal_note=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, q.AmountUntaxedCents, q.AmountTaxCents,
		q.AmountTotalCents, q.TotalDepositCents, q.State, q.Note, q.InternalNote,
		time.Now(), q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quoteRepository) AddLine(ctx context.Context, l *domain.QuoteLine) error {
	query := `INSERT INTO quote_lines (quote_id, bike_id, tier, start_date, end_date,
	          unit_price_cents, quantity, duration, subtotal_cents, deposit_cents, note)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.QuoteID, l.BikeID, l.Tier, l.StartDate,
		l.EndDate, l.UnitPriceCents, l.Quantity, l.Duration, l.SubtotalCents,
		l.DepositCents, l.Note).Scan(&l.ID)
}

func (r *quoteRepository) DeleteLine(ctx context.Context, lineID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quote_lines WHERE id = $1`, lineID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quoteRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE customer_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	return quotes, rows.Err()
}

// ConfirmWithContracts runs the whole confirmation in one transaction so a
// failed contract insert never leaves a half-confirmed quote behind.
func (r *quoteRepository) ConfirmWithContracts(ctx context.Context, q *domain.Quote, contracts []*domain.Contract) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin confirmation transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range contracts {
		if err := insertContract(ctx, tx, c); err != nil {
			return fmt.Errorf("failed to create contract for bike %d: %w", c.BikeID, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE quotes SET state=$1, updated_on=$2 WHERE id=$3`,
		domain.QuoteStateConfirmed, time.Now(), q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit confirmation: %w", err)
	}
	q.State = domain.QuoteStateConfirmed
	return nil
}
