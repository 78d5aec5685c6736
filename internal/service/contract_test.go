package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bikeshop-rental-backend/internal/domain"
)

func newContractFixture() (*MockContractRepo, *MockBikeRepo, *MockCustomerRepo, *MockInvoiceRepo, *MockLedgerRepo, ContractService) {
	contractRepo := new(MockContractRepo)
	bikeRepo := new(MockBikeRepo)
	customerRepo := new(MockCustomerRepo)
	invoiceRepo := new(MockInvoiceRepo)
	ledgerRepo := new(MockLedgerRepo)
	svc := NewContractService(contractRepo, bikeRepo, customerRepo, invoiceRepo, ledgerRepo, 100)
	return contractRepo, bikeRepo, customerRepo, invoiceRepo, ledgerRepo, svc
}

var rentalStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func testContract(state domain.ContractState) *domain.Contract {
	return &domain.Contract{
		ID:             20,
		Reference:      "CONT/2025/0001",
		CustomerID:     1,
		BikeID:         7,
		Tier:           domain.TierDay,
		StartDate:      rentalStart,
		EndDate:        rentalStart.Add(48 * time.Hour),
		UnitPriceCents: 2000,
		Duration:       2,
		SubtotalCents:  4000,
		TotalPriceCents: 4000,
		DepositCents:   15000,
		ConditionStart: domain.ConditionGood,
		State:          state,
	}
}

func TestContractService_MarkDepositPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes a held ledger entry", func(t *testing.T) {
		contractRepo, _, _, _, ledgerRepo, svc := newContractFixture()
		c := testContract(domain.ContractStateDraft)
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		ledgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("*domain.DepositEntry")).
			Run(func(args mock.Arguments) {
				e := args.Get(1).(*domain.DepositEntry)
				assert.Equal(t, domain.DepositHeld, e.Type)
				assert.Equal(t, int64(15000), e.AmountCents)
				assert.NotEmpty(t, e.PaymentRef)
			}).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		paid, err := svc.MarkDepositPaid(ctx, 20)
		assert.NoError(t, err)
		assert.True(t, paid.DepositPaid)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("Twice fails", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateConfirmed)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)

		_, err := svc.MarkDepositPaid(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})
}

func TestContractService_ConfirmContract(t *testing.T) {
	ctx := context.Background()

	t.Run("Requires verified identity", func(t *testing.T) {
		contractRepo, _, customerRepo, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateDraft), nil)
		customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1, IDVerified: false}, nil)

		_, err := svc.ConfirmContract(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})

	t.Run("Rejects blacklisted customer", func(t *testing.T) {
		contractRepo, _, customerRepo, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateDraft), nil)
		customerRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Customer{ID: 1, IDVerified: true, Blacklisted: true}, nil)

		_, err := svc.ConfirmContract(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})

	t.Run("Success leaves the bike untouched", func(t *testing.T) {
		contractRepo, bikeRepo, customerRepo, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateDraft)
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1, IDVerified: true}, nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		confirmed, err := svc.ConfirmContract(ctx, 20)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStateConfirmed, confirmed.State)
		bikeRepo.AssertNotCalled(t, "ClaimForRental", mock.Anything, mock.Anything)
	})
}

func TestContractService_StartRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Unpaid deposit blocks pickup", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateConfirmed), nil)

		_, err := svc.StartRental(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})

	t.Run("Claims the bike", func(t *testing.T) {
		contractRepo, bikeRepo, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateConfirmed)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		bikeRepo.On("ClaimForRental", ctx, int32(7)).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		started, err := svc.StartRental(ctx, 20)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStateOngoing, started.State)
	})

	t.Run("Concurrent claim loses", func(t *testing.T) {
		contractRepo, bikeRepo, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateConfirmed)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		bikeRepo.On("ClaimForRental", ctx, int32(7)).Return(domain.ErrBikeUnavailable)

		_, err := svc.StartRental(ctx, 20)
		assert.True(t, domain.IsGuard(err))
		contractRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestContractService_ProcessReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("On-time return recomputes and transitions", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateOngoing)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		returned, err := svc.ProcessReturn(ctx, 20, domain.ReturnInput{
			ReturnDate:      rentalStart.Add(48 * time.Hour),
			ConditionReturn: domain.ConditionGood,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStateReturned, returned.State)
		assert.Equal(t, int64(0), returned.LateFeeCents)
		assert.Equal(t, 2.0, returned.Duration)
		assert.Equal(t, int64(4000), returned.TotalPriceCents)
	})

	t.Run("Late return assesses the late fee once", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateOngoing)
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		// One day over on a 2-day contract: the subtotal stays at the
		// planned 2 days and the extra day is billed as the late fee, so
		// three days of use cost exactly three day rates.
		returned, err := svc.ProcessReturn(ctx, 20, domain.ReturnInput{
			ReturnDate:      rentalStart.Add(72 * time.Hour),
			ConditionReturn: domain.ConditionGood,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(2000), returned.LateFeeCents)
		assert.Equal(t, 2.0, returned.Duration)
		assert.Equal(t, int64(4000), returned.SubtotalCents)
		assert.Equal(t, int64(6000), returned.TotalPriceCents)
	})

	t.Run("Damage without deduction is rejected", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateOngoing), nil)

		_, err := svc.ProcessReturn(ctx, 20, domain.ReturnInput{
			ReturnDate:        rentalStart.Add(48 * time.Hour),
			ConditionReturn:   domain.ConditionDamaged,
			DamageReported:    true,
			DamageDescription: "bent rim",
		})
		assert.True(t, domain.IsValidation(err))
		contractRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Only ongoing rentals can be returned", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateConfirmed), nil)

		_, err := svc.ProcessReturn(ctx, 20, domain.ReturnInput{
			ConditionReturn: domain.ConditionGood,
		})
		assert.True(t, domain.IsGuard(err))
	})
}

func TestContractService_CloseContract(t *testing.T) {
	ctx := context.Background()

	returnedContract := func() *domain.Contract {
		c := testContract(domain.ContractStateReturned)
		ret := rentalStart.Add(48 * time.Hour)
		c.ActualReturnDate = &ret
		c.ConditionReturn = domain.ConditionGood
		c.DepositPaid = true
		return c
	}

	t.Run("Generates the invoice and accrues stats", func(t *testing.T) {
		contractRepo, bikeRepo, customerRepo, invoiceRepo, _, svc := newContractFixture()
		c := returnedContract()
		c.DamageFeeCents = 1500
		c.TotalPriceCents = 5500
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).
			Run(func(args mock.Arguments) {
				inv := args.Get(1).(*domain.Invoice)
				inv.ID = 30
				assert.Len(t, inv.Lines, 2)
				assert.Equal(t, 2.0, inv.Lines[0].Quantity)
				assert.Equal(t, int64(2000), inv.Lines[0].UnitPriceCents)
				assert.Equal(t, int64(1500), inv.Lines[1].UnitPriceCents)
			}).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)
		bikeRepo.On("Release", ctx, int32(7), domain.AvailabilityAvailable).Return(nil)
		bikeRepo.On("AccrueStats", ctx, int32(7), 48.0, int64(5500), *c.ActualReturnDate).Return(nil)
		customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1}, nil)

		closed, err := svc.CloseContract(ctx, 20)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStateClosed, closed.State)
		assert.True(t, closed.Invoiced)
		assert.Equal(t, int32(30), *closed.InvoiceID)
		bikeRepo.AssertExpectations(t)
	})

	t.Run("Poor condition routes the bike to maintenance", func(t *testing.T) {
		contractRepo, bikeRepo, customerRepo, invoiceRepo, _, svc := newContractFixture()
		c := returnedContract()
		c.ConditionReturn = domain.ConditionPoor
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)
		bikeRepo.On("Release", ctx, int32(7), domain.AvailabilityMaintenance).Return(nil)
		bikeRepo.On("AccrueStats", ctx, int32(7), 48.0, int64(4000), *c.ActualReturnDate).Return(nil)
		customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1}, nil)

		_, err := svc.CloseContract(ctx, 20)
		assert.NoError(t, err)
		bikeRepo.AssertExpectations(t)
	})

	t.Run("Loyalty member earns one point per euro", func(t *testing.T) {
		contractRepo, bikeRepo, customerRepo, invoiceRepo, _, svc := newContractFixture()
		c := returnedContract()
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)
		bikeRepo.On("Release", ctx, mock.Anything, mock.Anything).Return(nil)
		bikeRepo.On("AccrueStats", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		customerRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Customer{ID: 1, LoyaltyMember: true}, nil)
		customerRepo.On("AddLoyaltyPoints", ctx, int32(1), int32(40)).Return(nil)

		_, err := svc.CloseContract(ctx, 20)
		assert.NoError(t, err)
		customerRepo.AssertExpectations(t)
	})

	t.Run("Damage reported but no deduction recorded", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		c := returnedContract()
		c.DamageReported = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)

		_, err := svc.CloseContract(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})

	t.Run("Cannot close before return", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateOngoing), nil)

		_, err := svc.CloseContract(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})
}

func TestContractService_CancelContract(t *testing.T) {
	ctx := context.Background()

	t.Run("Closed contract cannot be cancelled", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		contractRepo.On("GetByID", ctx, int32(20)).Return(testContract(domain.ContractStateClosed), nil)

		_, err := svc.CancelContract(ctx, 20, "changed my mind")
		assert.True(t, domain.IsGuard(err))
	})

	t.Run("Cancelling an ongoing rental restores the bike", func(t *testing.T) {
		contractRepo, bikeRepo, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateOngoing)
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		contractRepo.On("Update", ctx, c).Return(nil)
		bikeRepo.On("Release", ctx, int32(7), domain.AvailabilityAvailable).Return(nil)

		cancelled, err := svc.CancelContract(ctx, 20, "bike recalled")
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStateCancelled, cancelled.State)
		bikeRepo.AssertExpectations(t)
	})

	t.Run("Cancelling a draft leaves the bike alone", func(t *testing.T) {
		contractRepo, bikeRepo, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateDraft)
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		_, err := svc.CancelContract(ctx, 20, "")
		assert.NoError(t, err)
		bikeRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContractService_ReturnDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Refund is deposit minus deduction", func(t *testing.T) {
		contractRepo, _, _, _, ledgerRepo, svc := newContractFixture()
		c := testContract(domain.ContractStateClosed)
		c.DepositPaid = true
		c.DepositDeductionCents = 5000
		c.DeductionReason = "scratched frame"
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)

		var entries []*domain.DepositEntry
		ledgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("*domain.DepositEntry")).
			Run(func(args mock.Arguments) {
				entries = append(entries, args.Get(1).(*domain.DepositEntry))
			}).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		settled, err := svc.ReturnDeposit(ctx, 20)
		assert.NoError(t, err)
		assert.True(t, settled.DepositReturned)
		assert.Len(t, entries, 2)
		assert.Equal(t, domain.DepositDeduction, entries[0].Type)
		assert.Equal(t, int64(-5000), entries[0].AmountCents)
		assert.Equal(t, domain.DepositRefund, entries[1].Type)
		assert.Equal(t, int64(-10000), entries[1].AmountCents)
	})

	t.Run("Full refund writes a single entry", func(t *testing.T) {
		contractRepo, _, _, _, ledgerRepo, svc := newContractFixture()
		c := testContract(domain.ContractStateClosed)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.DepositEntry) bool {
			return e.Type == domain.DepositRefund && e.AmountCents == -15000
		})).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		_, err := svc.ReturnDeposit(ctx, 20)
		assert.NoError(t, err)
		ledgerRepo.AssertNumberOfCalls(t, "CreateEntry", 1)
	})

	t.Run("Cancelled contract refunds the held deposit", func(t *testing.T) {
		contractRepo, _, _, _, ledgerRepo, svc := newContractFixture()
		c := testContract(domain.ContractStateCancelled)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
		ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.DepositEntry) bool {
			return e.Type == domain.DepositRefund && e.AmountCents == -15000
		})).Return(nil)
		contractRepo.On("Update", ctx, c).Return(nil)

		settled, err := svc.ReturnDeposit(ctx, 20)
		assert.NoError(t, err)
		assert.True(t, settled.DepositReturned)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("Requires a terminal state", func(t *testing.T) {
		contractRepo, _, _, _, _, svc := newContractFixture()
		c := testContract(domain.ContractStateReturned)
		c.DepositPaid = true
		contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)

		_, err := svc.ReturnDeposit(ctx, 20)
		assert.True(t, domain.IsGuard(err))
	})
}

// Walks one rental front to back: two-day day-tier rental, clean return,
// closure with invoice and stats, then deposit settlement.
func TestContractService_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	contractRepo, bikeRepo, customerRepo, invoiceRepo, ledgerRepo, svc := newContractFixture()

	c := testContract(domain.ContractStateDraft)
	customer := &domain.Customer{ID: 1, Name: "Ann", IDVerified: true, LoyaltyMember: true}

	contractRepo.On("GetByID", ctx, int32(20)).Return(c, nil)
	contractRepo.On("Update", ctx, c).Return(nil)
	customerRepo.On("GetByID", ctx, int32(1)).Return(customer, nil)
	ledgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("*domain.DepositEntry")).Return(nil)
	bikeRepo.On("ClaimForRental", ctx, int32(7)).Return(nil)
	bikeRepo.On("Release", ctx, int32(7), domain.AvailabilityAvailable).Return(nil)
	bikeRepo.On("AccrueStats", ctx, int32(7), 48.0, int64(4000), mock.AnythingOfType("time.Time")).Return(nil)
	invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) {
			inv := args.Get(1).(*domain.Invoice)
			inv.ID = 30
			assert.Len(t, inv.Lines, 1)
			assert.Equal(t, 2.0, inv.Lines[0].Quantity)
		}).Return(nil)
	customerRepo.On("AddLoyaltyPoints", ctx, int32(1), int32(40)).Return(nil)

	_, err := svc.MarkDepositPaid(ctx, 20)
	assert.NoError(t, err)

	_, err = svc.ConfirmContract(ctx, 20)
	assert.NoError(t, err)

	_, err = svc.StartRental(ctx, 20)
	assert.NoError(t, err)

	returned, err := svc.ProcessReturn(ctx, 20, domain.ReturnInput{
		ReturnDate:      rentalStart.Add(48 * time.Hour),
		ConditionReturn: domain.ConditionGood,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(4000), returned.TotalPriceCents)

	closed, err := svc.CloseContract(ctx, 20)
	assert.NoError(t, err)
	assert.Equal(t, domain.ContractStateClosed, closed.State)

	settled, err := svc.ReturnDeposit(ctx, 20)
	assert.NoError(t, err)
	assert.True(t, settled.DepositReturned)

	bikeRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
}
