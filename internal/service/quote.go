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

type quoteService struct {
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	bikeRepo     repository.BikeRepository
	emailSvc     EmailService
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	bikeRepo repository.BikeRepository,
	emailSvc EmailService,
) QuoteService {
	return &quoteService{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		bikeRepo:     bikeRepo,
		emailSvc:     emailSvc,
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, customerID int32, note string) (*domain.Quote, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	q := &domain.Quote{
		CustomerID: customerID,
		OrderDate:  time.Now(),
		State:      domain.QuoteStateDraft,
		Note:       note,
	}
	if err := s.quoteRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	return q, nil
}

func (s *quoteService) GetQuote(ctx context.Context, quoteID int32) (*domain.Quote, error) {
	return s.quoteRepo.GetByID(ctx, quoteID)
}

func (s *quoteService) ListQuotesByCustomer(ctx context.Context, customerID int32) ([]domain.Quote, error) {
	return s.quoteRepo.ListByCustomer(ctx, customerID)
}

// mutable reports whether lines may still be added or removed.
func mutable(state domain.QuoteState) bool {
	return state == domain.QuoteStateDraft || state == domain.QuoteStateSent
}

func (s *quoteService) AddLine(ctx context.Context, quoteID, bikeID int32, tier domain.RentalTier, start, end time.Time, quantity float64) (*domain.Quote, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !mutable(q.State) {
		return nil, domain.NewGuardError("quote", string(q.State), "add line", "lines are frozen once the quote leaves draft/sent")
	}

	if !domain.ValidTier(tier) {
		return nil, domain.NewValidationError("tier", "unknown rental tier")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("end_date", "must be after start date")
	}
	if quantity <= 0 {
		quantity = 1
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

	line := &domain.QuoteLine{
		QuoteID:        q.ID,
		BikeID:         bikeID,
		Tier:           tier,
		StartDate:      start,
		EndDate:        end,
		UnitPriceCents: unitPrice,
		Quantity:       quantity,
	}
	pricing.RecomputeLine(line, bike.DepositCents)

	if err := s.quoteRepo.AddLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to add quote line: %w", err)
	}

	q.Lines = append(q.Lines, *line)
	pricing.QuoteTotals(q)
	if err := s.quoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) RemoveLine(ctx context.Context, quoteID, lineID int32) (*domain.Quote, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !mutable(q.State) {
		return nil, domain.NewGuardError("quote", string(q.State), "remove line", "lines are frozen once the quote leaves draft/sent")
	}

	found := false
	remaining := q.Lines[:0]
	for _, l := range q.Lines {
		if l.ID == lineID {
			found = true
			continue
		}
		remaining = append(remaining, l)
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	if err := s.quoteRepo.DeleteLine(ctx, lineID); err != nil {
		return nil, err
	}

	q.Lines = remaining
	pricing.QuoteTotals(q)
	if err := s.quoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) SendQuote(ctx context.Context, quoteID int32) (*domain.Quote, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q.State != domain.QuoteStateDraft {
		return nil, domain.NewGuardError("quote", string(q.State), "send", "only draft quotes can be sent")
	}
	if len(q.Lines) == 0 {
		return nil, domain.NewValidationError("lines", "cannot send a quote with no lines")
	}

	q.State = domain.QuoteStateSent
	if err := s.quoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, q.CustomerID)
	if err == nil {
		if err := s.emailSvc.SendQuoteNotification(ctx, customer.Email, customer.Name, q); err != nil {
			logger.Warn("failed to send quote email", "quote", q.Reference, "error", err)
		}
	}
	return q, nil
}

func (s *quoteService) ConfirmQuote(ctx context.Context, quoteID int32) (*domain.Quote, []domain.Contract, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}
	if !mutable(q.State) {
		return nil, nil, domain.NewGuardError("quote", string(q.State), "confirm", "only draft or sent quotes can be confirmed")
	}
	if len(q.Lines) == 0 {
		return nil, nil, domain.NewValidationError("lines", "cannot confirm a quote with no lines")
	}

	customer, err := s.customerRepo.GetByID(ctx, q.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if customer.Blacklisted {
		return nil, nil, domain.NewGuardError("quote", string(q.State), "confirm", "customer is blacklisted from renting")
	}

	// Totals are recomputed one last time before the quote is frozen.
	pricing.QuoteTotals(q)

	contracts := make([]*domain.Contract, 0, len(q.Lines))
	for _, line := range q.Lines {
		quoteID := q.ID
		c := &domain.Contract{
			QuoteID:        &quoteID,
			CustomerID:     q.CustomerID,
			BikeID:         line.BikeID,
			Tier:           line.Tier,
			StartDate:      line.StartDate,
			EndDate:        line.EndDate,
			UnitPriceCents: line.UnitPriceCents,
			DepositCents:   line.DepositCents,
			ConditionStart: domain.ConditionGood,
			State:          domain.ContractStateDraft,
		}
		pricing.RecomputeContract(c)
		contracts = append(contracts, c)
	}

	if err := s.quoteRepo.ConfirmWithContracts(ctx, q, contracts); err != nil {
		return nil, nil, fmt.Errorf("failed to confirm quote %s: %w", q.Reference, err)
	}

	logger.Info("quote confirmed", "quote", q.Reference, "contracts", len(contracts))

	out := make([]domain.Contract, len(contracts))
	for i, c := range contracts {
		out[i] = *c
	}
	return q, out, nil
}

func (s *quoteService) CancelQuote(ctx context.Context, quoteID int32) (*domain.Quote, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	// Spawned contracts are never retracted, so a confirmed quote stays
	// confirmed.
	if q.State == domain.QuoteStateConfirmed || q.State == domain.QuoteStateCancelled {
		return nil, domain.NewGuardError("quote", string(q.State), "cancel", "quote is already settled")
	}

	q.State = domain.QuoteStateCancelled
	if err := s.quoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) SubmitBooking(ctx context.Context, customerID, bikeID int32, tier domain.RentalTier, start, end time.Time, bookingKey string) (*domain.Quote, error) {
	if bookingKey == "" {
		bookingKey = uuid.NewString()
	} else if existing, err := s.quoteRepo.GetByBookingKey(ctx, bookingKey); err == nil {
		// Resubmitted booking; hand back the quote it already created.
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := s.bikeRepo.GetByID(ctx, bikeID); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	q := &domain.Quote{
		CustomerID: customerID,
		OrderDate:  time.Now(),
		State:      domain.QuoteStateDraft,
		// Tag the website submission so the counter staff can tell it apart
		// from quotes they typed in themselves.
		InternalNote: fmt.Sprintf("web booking %s", bookingKey),
		BookingKey:   bookingKey,
	}
	if err := s.quoteRepo.Create(ctx, q); err != nil {
		// A concurrent resubmission may have won the unique booking key.
		if existing, lookupErr := s.quoteRepo.GetByBookingKey(ctx, bookingKey); lookupErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create booking quote: %w", err)
	}

	return s.AddLine(ctx, q.ID, bikeID, tier, start, end, 1)
}
