package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "bikeshop-rental-backend/internal/api/http"
	"bikeshop-rental-backend/internal/config"
	"bikeshop-rental-backend/internal/logger"
	"bikeshop-rental-backend/internal/repository/postgres"
	"bikeshop-rental-backend/internal/security"
	"bikeshop-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Bike Shop Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.StaffRepository, tokenManager)
	bikeSvc := service.NewBikeService(store.BikeRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	invoiceSvc := service.NewInvoiceService(store.InvoiceRepository)
	quoteSvc := service.NewQuoteService(
		store.QuoteRepository,
		store.CustomerRepository,
		store.BikeRepository,
		emailSvc,
	)
	contractSvc := service.NewContractService(
		store.ContractRepository,
		store.BikeRepository,
		store.CustomerRepository,
		store.InvoiceRepository,
		store.DepositLedgerRepository,
		cfg.Rental.LoyaltyEarnDivisorCents,
	)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Quotes:    quoteSvc,
		Contracts: contractSvc,
		Bikes:     bikeSvc,
		Customers: customerSvc,
		Invoices:  invoiceSvc,
		Auth:      authSvc,
		Tokens:    tokenManager,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
