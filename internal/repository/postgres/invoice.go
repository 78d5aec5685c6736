package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin invoice transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO invoices (customer_id, contract_id, invoice_date, state, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, inv.CustomerID, inv.ContractID, inv.InvoiceDate,
		inv.State, time.Now()).Scan(&inv.ID); err != nil {
		return err
	}

	lineQuery := `INSERT INTO invoice_lines (invoice_id, description, quantity, unit_price_cents)
	              VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range inv.Lines {
		line := &inv.Lines[i]
		line.InvoiceID = inv.ID
		if err := tx.QueryRowContext(ctx, lineQuery, line.InvoiceID, line.Description,
			line.Quantity, line.UnitPriceCents).Scan(&line.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT id, customer_id, contract_id, invoice_date, state, created_on
	          FROM invoices WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.CustomerID,
		&inv.ContractID, &inv.InvoiceDate, &inv.State, &inv.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, description, quantity, unit_price_cents
		 FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Description, &l.Quantity, &l.UnitPriceCents); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, l)
	}
	return inv, rows.Err()
}
