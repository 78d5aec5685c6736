package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type depositLedgerRepository struct {
	db *sql.DB
}

func NewDepositLedgerRepository(db *sql.DB) repository.DepositLedgerRepository {
	return &depositLedgerRepository{db: db}
}

func (r *depositLedgerRepository) CreateEntry(ctx context.Context, e *domain.DepositEntry) error {
	query := `INSERT INTO deposit_ledger (contract_id, amount_cents, type, payment_ref, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.ContractID, e.AmountCents, e.Type,
		e.PaymentRef, e.Description, time.Now()).Scan(&e.ID)
}

func (r *depositLedgerRepository) ListByContract(ctx context.Context, contractID int32) ([]domain.DepositEntry, error) {
	query := `SELECT id, contract_id, amount_cents, type, payment_ref, description, created_on
	          FROM deposit_ledger WHERE contract_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DepositEntry
	for rows.Next() {
		var e domain.DepositEntry
		if err := rows.Scan(&e.ID, &e.ContractID, &e.AmountCents, &e.Type, &e.PaymentRef,
			&e.Description, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
