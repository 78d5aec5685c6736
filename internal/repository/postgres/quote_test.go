package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"bikeshop-rental-backend/internal/domain"
)

func TestQuoteRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewQuoteRepository(db)

	mock.ExpectQuery(`SELECT nextval\('quote_ref_seq'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(7)))
	mock.ExpectQuery("INSERT INTO quotes").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	q := &domain.Quote{
		CustomerID: 3,
		OrderDate:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		State:      domain.QuoteStateDraft,
	}

	err = repo.Create(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, int32(10), q.ID)
	assert.Equal(t, fmt.Sprintf("LOC/%d/0007", time.Now().Year()), q.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_GetByBookingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewQuoteRepository(db)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cols := []string{"id", "reference", "customer_id", "order_date",
		"amount_untaxed_cents", "amount_tax_cents", "amount_total_cents", "total_deposit_cents",
		"state", "note", "internal_note", "booking_key", "created_on", "updated_on"}

	t.Run("Known key returns the quote with lines", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM quotes WHERE booking_key").
			WithArgs("web-abc-123").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				10, "LOC/2025/0007", 3, now,
				2000, 420, 2420, 10000,
				"DRAFT", "", "web booking web-abc-123", "web-abc-123", now, now))
		mock.ExpectQuery("SELECT (.+) FROM quote_lines WHERE quote_id").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quote_id", "bike_id", "tier",
				"start_date", "end_date", "unit_price_cents", "quantity", "duration",
				"subtotal_cents", "deposit_cents", "note"}).
				AddRow(100, 10, 7, "DAY", now, now.Add(24*time.Hour), 2000, 1.0, 1.0, 2000, 10000, ""))

		q, err := repo.GetByBookingKey(context.Background(), "web-abc-123")
		assert.NoError(t, err)
		assert.Equal(t, int32(10), q.ID)
		assert.Equal(t, "web-abc-123", q.BookingKey)
		assert.Len(t, q.Lines, 1)
	})

	t.Run("Unknown key is not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM quotes WHERE booking_key").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByBookingKey(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_ConfirmWithContracts(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	newContract := func(bikeID int32) *domain.Contract {
		quoteID := int32(10)
		return &domain.Contract{
			QuoteID:        &quoteID,
			CustomerID:     3,
			BikeID:         bikeID,
			Tier:           domain.TierDay,
			StartDate:      start,
			EndDate:        start.Add(48 * time.Hour),
			UnitPriceCents: 2000,
			Duration:       2,
			SubtotalCents:  4000,
			ConditionStart: domain.ConditionGood,
			State:          domain.ContractStateDraft,
		}
	}

	t.Run("One contract per line, quote flipped in the same transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := NewQuoteRepository(db)
		contracts := []*domain.Contract{newContract(7), newContract(8)}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT nextval\('contract_ref_seq'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(12)))
		mock.ExpectQuery("INSERT INTO contracts").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
		mock.ExpectQuery(`SELECT nextval\('contract_ref_seq'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(13)))
		mock.ExpectQuery("INSERT INTO contracts").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec("UPDATE quotes SET state").
			WithArgs(domain.QuoteStateConfirmed, sqlmock.AnyArg(), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		q := &domain.Quote{ID: 10, State: domain.QuoteStateSent}
		err = repo.ConfirmWithContracts(context.Background(), q, contracts)
		assert.NoError(t, err)
		assert.Equal(t, domain.QuoteStateConfirmed, q.State)
		assert.Equal(t, int32(20), contracts[0].ID)
		assert.Equal(t, int32(21), contracts[1].ID)
		year := time.Now().Year()
		assert.Equal(t, fmt.Sprintf("CONT/%d/0012", year), contracts[0].Reference)
		assert.Equal(t, fmt.Sprintf("CONT/%d/0013", year), contracts[1].Reference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed insert rolls the whole confirmation back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := NewQuoteRepository(db)
		contracts := []*domain.Contract{newContract(7), newContract(8)}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT nextval\('contract_ref_seq'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(12)))
		mock.ExpectQuery("INSERT INTO contracts").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
		mock.ExpectQuery(`SELECT nextval\('contract_ref_seq'\)`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		q := &domain.Quote{ID: 10, State: domain.QuoteStateSent}
		err = repo.ConfirmWithContracts(context.Background(), q, contracts)
		assert.Error(t, err)
		assert.Equal(t, domain.QuoteStateSent, q.State)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
