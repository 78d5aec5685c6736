package repository

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"
)

type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) error
	GetByID(ctx context.Context, id int32) (*domain.Bike, error)
	Update(ctx context.Context, bike *domain.Bike) error
	ListForRental(ctx context.Context, category domain.BikeCategory) ([]domain.Bike, error)

	// ClaimForRental flips AVAILABLE -> RENTED with a compare-and-set so two
	// contracts can never hold the same bike. Returns domain.ErrBikeUnavailable
	// when the bike exists but is not AVAILABLE.
	ClaimForRental(ctx context.Context, bikeID int32) error
	// Release moves the bike out of RENTED into the given state.
	Release(ctx context.Context, bikeID int32, to domain.AvailabilityState) error
	// SetAvailability moves a bike between AVAILABLE and MAINTENANCE/SOLD
	// outside of a rental.
	SetAvailability(ctx context.Context, bikeID int32, from, to domain.AvailabilityState) error

	// AccrueStats adds one closed contract's duration and revenue to the
	// bike's lifetime statistics.
	AccrueStats(ctx context.Context, bikeID int32, hours float64, revenueCents int64, lastRental time.Time) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	AddLoyaltyPoints(ctx context.Context, id int32, points int32) error
	RentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error)
}

type QuoteRepository interface {
	// Create assigns the LOC/YYYY/NNNN reference from the quote sequence.
	Create(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, id int32) (*domain.Quote, error)
	// GetByBookingKey finds the quote created for a website booking key.
	GetByBookingKey(ctx context.Context, key string) (*domain.Quote, error)
	Update(ctx context.Context, quote *domain.Quote) error
	AddLine(ctx context.Context, line *domain.QuoteLine) error
	DeleteLine(ctx context.Context, lineID int32) error
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Quote, error)

	// ConfirmWithContracts creates every contract and marks the quote
	// confirmed inside one transaction, so confirmation is all-or-nothing.
	// Contract references are assigned from the contract sequence.
	ConfirmWithContracts(ctx context.Context, quote *domain.Quote, contracts []*domain.Contract) error
}

type ContractRepository interface {
	// Create assigns the CONT/YYYY/NNNN reference from the contract sequence.
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id int32) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error)
	ListByState(ctx context.Context, state domain.ContractState) ([]domain.Contract, error)
	// ListEndingBetween returns ongoing contracts whose planned end falls in
	// [from, to), for return reminders.
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Contract, error)
	// ListOverdue returns ongoing contracts whose planned end is before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Contract, error)
}

type InvoiceRepository interface {
	// Create persists the invoice and its lines in one transaction.
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
}

type DepositLedgerRepository interface {
	CreateEntry(ctx context.Context, entry *domain.DepositEntry) error
	ListByContract(ctx context.Context, contractID int32) ([]domain.DepositEntry, error)
}

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}
