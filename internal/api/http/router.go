// Package http exposes the rental workflow as a JSON REST API.
package http

import (
	"github.com/gorilla/mux"

	"bikeshop-rental-backend/internal/security"
	"bikeshop-rental-backend/internal/service"
)

type RouterDeps struct {
	Quotes    service.QuoteService
	Contracts service.ContractService
	Bikes     service.BikeService
	Customers service.CustomerService
	Invoices  service.InvoiceService
	Auth      service.AuthService
	Tokens    security.TokenManager
}

// NewRouter wires all handlers. Public routes cover the storefront (catalog,
// price lookup, booking submission) and staff login; everything else sits
// behind the staff token middleware.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.Auth)
	bikeHandler := NewBikeHandler(deps.Bikes)
	customerHandler := NewCustomerHandler(deps.Customers)
	quoteHandler := NewQuoteHandler(deps.Quotes)
	contractHandler := NewContractHandler(deps.Contracts, deps.Invoices)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public storefront
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/bikes", bikeHandler.Catalog).Methods("GET")
	api.HandleFunc("/bikes/{id}", bikeHandler.Get).Methods("GET")
	api.HandleFunc("/bikes/{id}/price", bikeHandler.Price).Methods("GET")
	api.HandleFunc("/bookings", quoteHandler.SubmitBooking).Methods("POST")

	// Staff back office
	staff := api.NewRoute().Subrouter()
	staff.Use(AuthMiddleware(deps.Tokens))

	staff.HandleFunc("/bikes", bikeHandler.Create).Methods("POST")
	staff.HandleFunc("/bikes/{id}", bikeHandler.Update).Methods("PUT")
	staff.HandleFunc("/bikes/{id}/maintenance", bikeHandler.StartMaintenance).Methods("POST")
	staff.HandleFunc("/bikes/{id}/maintenance", bikeHandler.EndMaintenance).Methods("DELETE")

	staff.HandleFunc("/customers", customerHandler.Create).Methods("POST")
	staff.HandleFunc("/customers/{id}", customerHandler.Get).Methods("GET")
	staff.HandleFunc("/customers/{id}/verify-id", customerHandler.VerifyID).Methods("POST")
	staff.HandleFunc("/customers/{id}/loyalty", customerHandler.EnrollLoyalty).Methods("POST")
	staff.HandleFunc("/customers/{id}/blacklist", RequireManager(customerHandler.Blacklist)).Methods("POST")
	staff.HandleFunc("/customers/{id}/blacklist", RequireManager(customerHandler.Unblacklist)).Methods("DELETE")
	staff.HandleFunc("/customers/{id}/stats", customerHandler.RentalStats).Methods("GET")
	staff.HandleFunc("/customers/{id}/quotes", quoteHandler.ListByCustomer).Methods("GET")
	staff.HandleFunc("/customers/{id}/contracts", contractHandler.ListByCustomer).Methods("GET")

	staff.HandleFunc("/quotes", quoteHandler.Create).Methods("POST")
	staff.HandleFunc("/quotes/{id}", quoteHandler.Get).Methods("GET")
	staff.HandleFunc("/quotes/{id}/lines", quoteHandler.AddLine).Methods("POST")
	staff.HandleFunc("/quotes/{id}/lines/{lineID}", quoteHandler.RemoveLine).Methods("DELETE")
	staff.HandleFunc("/quotes/{id}/send", quoteHandler.Send).Methods("POST")
	staff.HandleFunc("/quotes/{id}/confirm", quoteHandler.Confirm).Methods("POST")
	staff.HandleFunc("/quotes/{id}/cancel", quoteHandler.Cancel).Methods("POST")

	staff.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	staff.HandleFunc("/contracts", contractHandler.ListByState).Methods("GET")
	staff.HandleFunc("/contracts/{id}", contractHandler.Get).Methods("GET")
	staff.HandleFunc("/contracts/{id}/deposit", contractHandler.MarkDepositPaid).Methods("POST")
	staff.HandleFunc("/contracts/{id}/confirm", contractHandler.Confirm).Methods("POST")
	staff.HandleFunc("/contracts/{id}/start", contractHandler.StartRental).Methods("POST")
	staff.HandleFunc("/contracts/{id}/return", contractHandler.ProcessReturn).Methods("POST")
	staff.HandleFunc("/contracts/{id}/fees", contractHandler.SetFees).Methods("PUT")
	staff.HandleFunc("/contracts/{id}/close", contractHandler.Close).Methods("POST")
	staff.HandleFunc("/contracts/{id}/cancel", contractHandler.Cancel).Methods("POST")
	staff.HandleFunc("/contracts/{id}/deposit/return", contractHandler.ReturnDeposit).Methods("POST")
	staff.HandleFunc("/contracts/{id}/deposit/history", contractHandler.DepositHistory).Methods("GET")

	staff.HandleFunc("/invoices/{id}", contractHandler.GetInvoice).Methods("GET")

	return r
}
