package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, email, phone, id_card_number, id_verified,
	loyalty_member, loyalty_points, blacklisted, blacklist_reason, preferred_category,
	created_on, updated_on`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.IDCardNumber, &c.IDVerified,
		&c.LoyaltyMember, &c.LoyaltyPoints, &c.Blacklisted, &c.BlacklistReason,
		&c.PreferredCategory, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, id_card_number, id_verified,
	          loyalty_member, loyalty_points, blacklisted, blacklist_reason, preferred_category,
	          created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.IDCardNumber,
		c.IDVerified, c.LoyaltyMember, c.LoyaltyPoints, c.Blacklisted, c.BlacklistReason,
		c.PreferredCategory, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3, id_card_number=$4, id_verified=$5,
	          loyalty_member=$6, loyalty_points=$7, blacklisted=$8, blacklist_reason=$9,
	          preferred_category=$10, updated_on=$11 WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.IDCardNumber,
		c.IDVerified, c.LoyaltyMember, c.LoyaltyPoints, c.Blacklisted, c.BlacklistReason,
		c.PreferredCategory, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepository) AddLoyaltyPoints(ctx context.Context, id int32, points int32) error {
	query := `UPDATE customers SET loyalty_points = loyalty_points + $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, points, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RentalStats derives the customer's rental figures from the contracts
// table; nothing is stored on the customer row.
func (r *customerRepository) RentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error) {
	query := `SELECT count(*),
	          COALESCE(sum(total_price_cents) FILTER (WHERE state IN ('RETURNED', 'CLOSED')), 0),
	          count(*) FILTER (WHERE state IN ('CONFIRMED', 'ONGOING'))
	          FROM contracts WHERE customer_id = $1`
	stats := &domain.CustomerRentalStats{}
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&stats.ContractCount, &stats.TotalSpentCents, &stats.ActiveContracts)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
