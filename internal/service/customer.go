package service

import (
	"context"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return domain.NewValidationError("name", "customer name is required")
	}
	if customer.Email == "" {
		return domain.NewValidationError("email", "customer email is required")
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, customerID)
}

func (s *customerService) VerifyID(ctx context.Context, customerID int32, idCardNumber string) (*domain.Customer, error) {
	if idCardNumber == "" {
		return nil, domain.NewValidationError("id_card_number", "ID card number is required")
	}
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.IDCardNumber = idCardNumber
	c.IDVerified = true
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) EnrollLoyalty(ctx context.Context, customerID int32) (*domain.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.LoyaltyMember = true
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Blacklist(ctx context.Context, customerID int32, reason string) (*domain.Customer, error) {
	if reason == "" {
		return nil, domain.NewValidationError("reason", "a blacklist reason is required")
	}
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.Blacklisted = true
	c.BlacklistReason = reason
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Unblacklist(ctx context.Context, customerID int32) (*domain.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.Blacklisted = false
	c.BlacklistReason = ""
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) RentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.customerRepo.RentalStats(ctx, customerID)
}
