package service

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"
)

type QuoteService interface {
	CreateQuote(ctx context.Context, customerID int32, note string) (*domain.Quote, error)
	GetQuote(ctx context.Context, quoteID int32) (*domain.Quote, error)
	ListQuotesByCustomer(ctx context.Context, customerID int32) ([]domain.Quote, error)
	AddLine(ctx context.Context, quoteID, bikeID int32, tier domain.RentalTier, start, end time.Time, quantity float64) (*domain.Quote, error)
	RemoveLine(ctx context.Context, quoteID, lineID int32) (*domain.Quote, error)
	SendQuote(ctx context.Context, quoteID int32) (*domain.Quote, error)
	ConfirmQuote(ctx context.Context, quoteID int32) (*domain.Quote, []domain.Contract, error)
	CancelQuote(ctx context.Context, quoteID int32) (*domain.Quote, error)

	// SubmitBooking is the public website flow: one bike, one period, a fresh
	// quote with a single auto-priced line. Resubmitting the same booking key
	// returns the quote already created instead of a duplicate.
	SubmitBooking(ctx context.Context, customerID, bikeID int32, tier domain.RentalTier, start, end time.Time, bookingKey string) (*domain.Quote, error)
}

type ContractService interface {
	CreateContract(ctx context.Context, customerID, bikeID int32, tier domain.RentalTier, start, end time.Time) (*domain.Contract, error)
	GetContract(ctx context.Context, contractID int32) (*domain.Contract, error)
	ListContractsByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error)
	ListContractsByState(ctx context.Context, state domain.ContractState) ([]domain.Contract, error)

	MarkDepositPaid(ctx context.Context, contractID int32) (*domain.Contract, error)
	ConfirmContract(ctx context.Context, contractID int32) (*domain.Contract, error)
	StartRental(ctx context.Context, contractID int32) (*domain.Contract, error)
	ProcessReturn(ctx context.Context, contractID int32, input domain.ReturnInput) (*domain.Contract, error)
	SetFees(ctx context.Context, contractID int32, damageFeeCents, additionalFeeCents int64) (*domain.Contract, error)
	CloseContract(ctx context.Context, contractID int32) (*domain.Contract, error)
	CancelContract(ctx context.Context, contractID int32, reason string) (*domain.Contract, error)
	ReturnDeposit(ctx context.Context, contractID int32) (*domain.Contract, error)

	DepositHistory(ctx context.Context, contractID int32) ([]domain.DepositEntry, error)
}

type BikeService interface {
	AddBike(ctx context.Context, bike *domain.Bike) error
	GetBike(ctx context.Context, bikeID int32) (*domain.Bike, error)
	UpdateBike(ctx context.Context, bike *domain.Bike) error
	ListRentalCatalog(ctx context.Context, category domain.BikeCategory) ([]domain.Bike, error)
	PriceQuote(ctx context.Context, bikeID int32, tier domain.RentalTier) (int64, error)
	StartMaintenance(ctx context.Context, bikeID int32, notes string) error
	EndMaintenance(ctx context.Context, bikeID int32) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, customerID int32) (*domain.Customer, error)
	VerifyID(ctx context.Context, customerID int32, idCardNumber string) (*domain.Customer, error)
	EnrollLoyalty(ctx context.Context, customerID int32) (*domain.Customer, error)
	Blacklist(ctx context.Context, customerID int32, reason string) (*domain.Customer, error)
	Unblacklist(ctx context.Context, customerID int32) (*domain.Customer, error)
	RentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error)
}

type InvoiceService interface {
	GetInvoice(ctx context.Context, invoiceID int32) (*domain.Invoice, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.StaffUser, error)
}

type EmailService interface {
	SendQuoteNotification(ctx context.Context, email, customerName string, quote *domain.Quote) error
	SendReturnReminder(ctx context.Context, email, customerName string, contract *domain.Contract) error
	SendOverdueNotice(ctx context.Context, email, customerName string, contract *domain.Contract) error
}
