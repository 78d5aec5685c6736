package postgres

import (
	"database/sql"

	"bikeshop-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BikeRepository
	repository.CustomerRepository
	repository.QuoteRepository
	repository.ContractRepository
	repository.InvoiceRepository
	repository.DepositLedgerRepository
	repository.StaffRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		BikeRepository:          NewBikeRepository(db),
		CustomerRepository:      NewCustomerRepository(db),
		QuoteRepository:         NewQuoteRepository(db),
		ContractRepository:      NewContractRepository(db),
		InvoiceRepository:       NewInvoiceRepository(db),
		DepositLedgerRepository: NewDepositLedgerRepository(db),
		StaffRepository:         NewStaffRepository(db),
	}
}
