package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/logger"
	"bikeshop-rental-backend/internal/pricing"
	"bikeshop-rental-backend/internal/repository"
)

type contractService struct {
	contractRepo repository.ContractRepository
	bikeRepo     repository.BikeRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	ledgerRepo   repository.DepositLedgerRepository

	// loyaltyEarnDivisorCents: one loyalty point per this many cents of
	// closed-contract total.
	loyaltyEarnDivisorCents int64
}

func NewContractService(
	contractRepo repository.ContractRepository,
	bikeRepo repository.BikeRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.DepositLedgerRepository,
	loyaltyEarnDivisorCents int64,
) ContractService {
	if loyaltyEarnDivisorCents <= 0 {
		loyaltyEarnDivisorCents = 100
	}
	return &contractService{
		contractRepo:            contractRepo,
		bikeRepo:                bikeRepo,
		customerRepo:            customerRepo,
		invoiceRepo:             invoiceRepo,
		ledgerRepo:              ledgerRepo,
		loyaltyEarnDivisorCents: loyaltyEarnDivisorCents,
	}
}

func (s *contractService) CreateContract(ctx context.Context, customerID, bikeID int32, tier domain.RentalTier, start, end time.Time) (*domain.Contract, error) {
	if !domain.ValidTier(tier) {
		return nil, domain.NewValidationError("tier", "unknown rental tier")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("end_date", "must be after start date")
	}

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return nil, err
	}
	if !bike.ForRental {
		return nil, domain.NewValidationError("bike_id", "bike is not offered for rental")
	}
	unitPrice := pricing.PriceFor(bike, tier)
	if unitPrice == 0 {
		return nil, domain.NewValidationError("tier", "bike has no price for this tier")
	}

	c := &domain.Contract{
		CustomerID:     customerID,
		BikeID:         bikeID,
		Tier:           tier,
		StartDate:      start,
		EndDate:        end,
		UnitPriceCents: unitPrice,
		DepositCents:   bike.DepositCents,
		ConditionStart: domain.ConditionGood,
		State:          domain.ContractStateDraft,
	}
	pricing.RecomputeContract(c)

	if err := s.contractRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}

func (s *contractService) GetContract(ctx context.Context, contractID int32) (*domain.Contract, error) {
	return s.contractRepo.GetByID(ctx, contractID)
}

func (s *contractService) ListContractsByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error) {
	return s.contractRepo.ListByCustomer(ctx, customerID)
}

func (s *contractService) ListContractsByState(ctx context.Context, state domain.ContractState) ([]domain.Contract, error) {
	return s.contractRepo.ListByState(ctx, state)
}

func (s *contractService) MarkDepositPaid(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.ContractStateDraft && c.State != domain.ContractStateConfirmed {
		return nil, domain.NewGuardError("contract", string(c.State), "mark deposit paid", "deposit is collected before the rental starts")
	}
	if c.DepositPaid {
		return nil, domain.NewGuardError("contract", string(c.State), "mark deposit paid", "deposit already paid")
	}

	entry := &domain.DepositEntry{
		ContractID:  c.ID,
		AmountCents: c.DepositCents,
		Type:        domain.DepositHeld,
		PaymentRef:  uuid.NewString(),
		Description: fmt.Sprintf("Deposit held for %s", c.Reference),
	}
	if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	c.DepositPaid = true
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) ConfirmContract(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.ContractStateDraft {
		return nil, domain.NewGuardError("contract", string(c.State), "confirm", "only draft contracts can be confirmed")
	}

	customer, err := s.customerRepo.GetByID(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IDVerified {
		return nil, domain.NewGuardError("contract", string(c.State), "confirm", "customer identity has not been verified")
	}
	if customer.Blacklisted {
		return nil, domain.NewGuardError("contract", string(c.State), "confirm", "customer is blacklisted from renting")
	}

	// Confirmation reserves nothing: the bike is only claimed at pickup.
	c.State = domain.ContractStateConfirmed
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) StartRental(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.ContractStateConfirmed {
		return nil, domain.NewGuardError("contract", string(c.State), "start rental", "only confirmed contracts can start")
	}
	if !c.DepositPaid {
		return nil, domain.NewGuardError("contract", string(c.State), "start rental", "deposit has not been paid")
	}

	if err := s.bikeRepo.ClaimForRental(ctx, c.BikeID); err != nil {
		if errors.Is(err, domain.ErrBikeUnavailable) {
			return nil, domain.NewGuardError("contract", string(c.State), "start rental", "bike is no longer available")
		}
		return nil, err
	}

	c.State = domain.ContractStateOngoing
	if err := s.contractRepo.Update(ctx, c); err != nil {
		// Hand the bike back so it is not stranded in RENTED.
		if relErr := s.bikeRepo.Release(ctx, c.BikeID, domain.AvailabilityAvailable); relErr != nil {
			logger.Error("failed to release bike after aborted start", "bike_id", c.BikeID, "error", relErr)
		}
		return nil, err
	}

	logger.Info("rental started", "contract", c.Reference, "bike_id", c.BikeID)
	return c, nil
}

func (s *contractService) ProcessReturn(ctx context.Context, contractID int32, input domain.ReturnInput) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.ContractStateOngoing {
		return nil, domain.NewGuardError("contract", string(c.State), "process return", "only ongoing rentals can be returned")
	}

	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now()
	}
	if returnDate.Before(c.StartDate) {
		return nil, domain.NewValidationError("return_date", "cannot be before the rental start")
	}
	switch input.ConditionReturn {
	case domain.ConditionExcellent, domain.ConditionGood, domain.ConditionFair,
		domain.ConditionPoor, domain.ConditionDamaged:
	default:
		return nil, domain.NewValidationError("condition_return", "unknown bike condition")
	}
	if input.DamageReported && input.DepositDeductionCents <= 0 {
		return nil, domain.NewValidationError("deposit_deduction_cents", "reported damage requires a deposit deduction")
	}
	if input.DepositDeductionCents < 0 || input.DepositDeductionCents > c.DepositCents {
		return nil, domain.NewValidationError("deposit_deduction_cents", "deduction must be between zero and the deposit amount")
	}
	if input.DepositDeductionCents > 0 && input.DeductionReason == "" {
		return nil, domain.NewValidationError("deduction_reason", "a deduction needs a reason")
	}

	// All validated; the whole return is applied in one update.
	c.ActualReturnDate = &returnDate
	c.ConditionReturn = input.ConditionReturn
	c.DamageReported = input.DamageReported
	c.DamageDescription = input.DamageDescription
	c.DepositDeductionCents = input.DepositDeductionCents
	c.DeductionReason = input.DeductionReason
	if input.Notes != "" {
		c.ConditionNotes = input.Notes
	}
	c.LateFeeCents = pricing.LateFee(c, returnDate)
	pricing.RecomputeContract(c)
	c.State = domain.ContractStateReturned

	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to record return: %w", err)
	}

	logger.Info("bike returned", "contract", c.Reference,
		"condition", c.ConditionReturn, "late_fee_cents", c.LateFeeCents)
	return c, nil
}

func (s *contractService) SetFees(ctx context.Context, contractID int32, damageFeeCents, additionalFeeCents int64) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.ContractStateReturned {
		return nil, domain.NewGuardError("contract", string(c.State), "set fees", "fees are assessed between return and closure")
	}
	if damageFeeCents < 0 || additionalFeeCents < 0 {
		return nil, domain.NewValidationError("fees", "fees cannot be negative")
	}

	c.DamageFeeCents = damageFeeCents
	c.AdditionalFeeCents = additionalFeeCents
	pricing.RecomputeContract(c)

	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) CloseContract(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.ContractStateReturned {
		return nil, domain.NewGuardError("contract", string(c.State), "close", "only returned contracts can be closed")
	}
	if c.DamageReported && c.DepositDeductionCents <= 0 {
		return nil, domain.NewGuardError("contract", string(c.State), "close", "reported damage requires a deposit deduction")
	}

	if !c.Invoiced {
		inv := buildInvoice(c)
		if err := s.invoiceRepo.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("failed to generate invoice: %w", err)
		}
		c.InvoiceID = &inv.ID
		c.Invoiced = true
	}

	c.State = domain.ContractStateClosed
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	// A bike coming back poor or damaged goes straight to the workshop.
	releaseTo := domain.AvailabilityAvailable
	if c.ConditionReturn == domain.ConditionPoor || c.ConditionReturn == domain.ConditionDamaged {
		releaseTo = domain.AvailabilityMaintenance
	}
	if err := s.bikeRepo.Release(ctx, c.BikeID, releaseTo); err != nil {
		logger.Error("failed to release bike on closure", "bike_id", c.BikeID, "error", err)
	}

	hours := pricing.HoursEquivalent(c.Tier, c.Duration)
	lastRental := c.EndDate
	if c.ActualReturnDate != nil {
		lastRental = *c.ActualReturnDate
	}
	if err := s.bikeRepo.AccrueStats(ctx, c.BikeID, hours, c.TotalPriceCents, lastRental); err != nil {
		logger.Error("failed to accrue bike stats", "bike_id", c.BikeID, "error", err)
	}

	customer, err := s.customerRepo.GetByID(ctx, c.CustomerID)
	if err == nil && customer.LoyaltyMember {
		points := int32(c.TotalPriceCents / s.loyaltyEarnDivisorCents)
		if points > 0 {
			if err := s.customerRepo.AddLoyaltyPoints(ctx, customer.ID, points); err != nil {
				logger.Error("failed to add loyalty points", "customer_id", customer.ID, "error", err)
			}
		}
	}

	logger.Info("contract closed", "contract", c.Reference,
		"total_cents", c.TotalPriceCents, "hours", hours)
	return c, nil
}

// buildInvoice turns a settled contract into a draft invoice: the base rental
// line priced per tier unit, plus one line per non-zero fee. The deposit is
// never billed.
func buildInvoice(c *domain.Contract) *domain.Invoice {
	inv := &domain.Invoice{
		CustomerID:  c.CustomerID,
		ContractID:  &c.ID,
		InvoiceDate: time.Now(),
		State:       domain.InvoiceStateDraft,
		Lines: []domain.InvoiceLine{
			{
				Description:    fmt.Sprintf("Bike rental %s", c.Reference),
				Quantity:       c.Duration,
				UnitPriceCents: c.UnitPriceCents,
			},
		},
	}
	if c.LateFeeCents > 0 {
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			Description:    "Late return fee",
			Quantity:       1,
			UnitPriceCents: c.LateFeeCents,
		})
	}
	if c.DamageFeeCents > 0 {
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			Description:    "Damage repair fee",
			Quantity:       1,
			UnitPriceCents: c.DamageFeeCents,
		})
	}
	if c.AdditionalFeeCents > 0 {
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			Description:    "Additional charges",
			Quantity:       1,
			UnitPriceCents: c.AdditionalFeeCents,
		})
	}
	return inv
}

func (s *contractService) CancelContract(ctx context.Context, contractID int32, reason string) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.State.IsTerminal() {
		return nil, domain.NewGuardError("contract", string(c.State), "cancel", "contract is already settled")
	}

	wasOngoing := c.State == domain.ContractStateOngoing
	c.State = domain.ContractStateCancelled
	if reason != "" {
		c.ConditionNotes = reason
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if wasOngoing {
		if err := s.bikeRepo.Release(ctx, c.BikeID, domain.AvailabilityAvailable); err != nil {
			logger.Error("failed to release bike on cancellation", "bike_id", c.BikeID, "error", err)
		}
	}
	return c, nil
}

func (s *contractService) ReturnDeposit(ctx context.Context, contractID int32) (*domain.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	// A cancelled contract with a paid deposit still owes the customer a
	// refund, so both terminal states may settle.
	if c.State != domain.ContractStateClosed && c.State != domain.ContractStateCancelled {
		return nil, domain.NewGuardError("contract", string(c.State), "return deposit", "deposit is settled once the contract is closed or cancelled")
	}
	if !c.DepositPaid {
		return nil, domain.NewGuardError("contract", string(c.State), "return deposit", "no deposit was collected")
	}
	if c.DepositReturned {
		return nil, domain.NewGuardError("contract", string(c.State), "return deposit", "deposit already settled")
	}

	if c.DepositDeductionCents > 0 {
		deduction := &domain.DepositEntry{
			ContractID:  c.ID,
			AmountCents: -c.DepositDeductionCents,
			Type:        domain.DepositDeduction,
			PaymentRef:  uuid.NewString(),
			Description: c.DeductionReason,
		}
		if err := s.ledgerRepo.CreateEntry(ctx, deduction); err != nil {
			return nil, fmt.Errorf("failed to record deposit deduction: %w", err)
		}
	}

	refund := c.DepositCents - c.DepositDeductionCents
	if refund > 0 {
		entry := &domain.DepositEntry{
			ContractID:  c.ID,
			AmountCents: -refund,
			Type:        domain.DepositRefund,
			PaymentRef:  uuid.NewString(),
			Description: fmt.Sprintf("Deposit refund for %s", c.Reference),
		}
		if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record deposit refund: %w", err)
		}
	}

	c.DepositReturned = true
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("deposit settled", "contract", c.Reference,
		"refund_cents", refund, "deduction_cents", c.DepositDeductionCents)
	return c, nil
}

func (s *contractService) DepositHistory(ctx context.Context, contractID int32) ([]domain.DepositEntry, error) {
	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByContract(ctx, contractID)
}
