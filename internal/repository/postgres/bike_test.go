package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"bikeshop-rental-backend/internal/domain"
)

func TestBikeRepository_ClaimForRental(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBikeRepository(db)
	ctx := context.Background()

	t.Run("Available bike is claimed", func(t *testing.T) {
		mock.ExpectExec("UPDATE bikes SET availability").
			WithArgs(domain.AvailabilityRented, sqlmock.AnyArg(), int32(7), domain.AvailabilityAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ClaimForRental(ctx, 7)
		assert.NoError(t, err)
	})

	t.Run("Bike already rented", func(t *testing.T) {
		mock.ExpectExec("UPDATE bikes SET availability").
			WithArgs(domain.AvailabilityRented, sqlmock.AnyArg(), int32(7), domain.AvailabilityAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.ClaimForRental(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrBikeUnavailable)
	})

	t.Run("Bike does not exist", func(t *testing.T) {
		mock.ExpectExec("UPDATE bikes SET availability").
			WithArgs(domain.AvailabilityRented, sqlmock.AnyArg(), int32(99), domain.AvailabilityAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.ClaimForRental(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBikeRepository_Release(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBikeRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE bikes SET availability").
		WithArgs(domain.AvailabilityMaintenance, sqlmock.AnyArg(), int32(7), domain.AvailabilityRented).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Release(ctx, 7, domain.AvailabilityMaintenance)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBikeRepository_AccrueStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBikeRepository(db)
	ctx := context.Background()
	lastRental := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE bikes SET total_rental_hours").
		WithArgs(48.0, int64(4000), lastRental, sqlmock.AnyArg(), int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AccrueStats(ctx, 7, 48.0, 4000, lastRental)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
