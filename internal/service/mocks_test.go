package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bikeshop-rental-backend/internal/domain"
)

// MockBikeRepo
type MockBikeRepo struct {
	mock.Mock
}

func (m *MockBikeRepo) Create(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeRepo) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *MockBikeRepo) Update(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeRepo) ListForRental(ctx context.Context, category domain.BikeCategory) ([]domain.Bike, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Bike), args.Error(1)
}
func (m *MockBikeRepo) ClaimForRental(ctx context.Context, bikeID int32) error {
	args := m.Called(ctx, bikeID)
	return args.Error(0)
}
func (m *MockBikeRepo) Release(ctx context.Context, bikeID int32, to domain.AvailabilityState) error {
	args := m.Called(ctx, bikeID, to)
	return args.Error(0)
}
func (m *MockBikeRepo) SetAvailability(ctx context.Context, bikeID int32, from, to domain.AvailabilityState) error {
	args := m.Called(ctx, bikeID, from, to)
	return args.Error(0)
}
func (m *MockBikeRepo) AccrueStats(ctx context.Context, bikeID int32, hours float64, revenueCents int64, lastRental time.Time) error {
	args := m.Called(ctx, bikeID, hours, revenueCents, lastRental)
	return args.Error(0)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) AddLoyaltyPoints(ctx context.Context, id int32, points int32) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}
func (m *MockCustomerRepo) RentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerRentalStats), args.Error(1)
}

// MockQuoteRepo
type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockQuoteRepo) GetByID(ctx context.Context, id int32) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteRepo) GetByBookingKey(ctx context.Context, key string) (*domain.Quote, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteRepo) Update(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockQuoteRepo) AddLine(ctx context.Context, line *domain.QuoteLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}
func (m *MockQuoteRepo) DeleteLine(ctx context.Context, lineID int32) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}
func (m *MockQuoteRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Quote, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Quote), args.Error(1)
}
func (m *MockQuoteRepo) ConfirmWithContracts(ctx context.Context, quote *domain.Quote, contracts []*domain.Contract) error {
	args := m.Called(ctx, quote, contracts)
	return args.Error(0)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) ListByState(ctx context.Context, state domain.ContractState) ([]domain.Contract, error) {
	args := m.Called(ctx, state)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Contract, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Contract, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Contract), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, entry *domain.DepositEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByContract(ctx context.Context, contractID int32) ([]domain.DepositEntry, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]domain.DepositEntry), args.Error(1)
}

// MockStaffRepo
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendQuoteNotification(ctx context.Context, email, customerName string, quote *domain.Quote) error {
	args := m.Called(ctx, email, customerName, quote)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, customerName string, contract *domain.Contract) error {
	args := m.Called(ctx, email, customerName, contract)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueNotice(ctx context.Context, email, customerName string, contract *domain.Contract) error {
	args := m.Called(ctx, email, customerName, contract)
	return args.Error(0)
}
