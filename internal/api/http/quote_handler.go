package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/service"
)

type QuoteHandler struct {
	quotes service.QuoteService
}

func NewQuoteHandler(quotes service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

type createQuoteRequest struct {
	CustomerID int32  `json:"customer_id"`
	Note       string `json:"note"`
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := h.quotes.CreateQuote(r.Context(), req.CustomerID, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quote id"})
		return
	}
	q, err := h.quotes.GetQuote(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	quotes, err := h.quotes.ListQuotesByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

type addLineRequest struct {
	BikeID    int32     `json:"bike_id"`
	Tier      string    `json:"tier"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Quantity  float64   `json:"quantity"`
}

func (h *QuoteHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quote id"})
		return
	}
	var req addLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := h.quotes.AddLine(r.Context(), id, req.BikeID, domain.RentalTier(req.Tier),
		req.StartDate, req.EndDate, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quote id"})
		return
	}
	lineID, ok := pathID(r, "lineID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid line id"})
		return
	}
	q, err := h.quotes.RemoveLine(r.Context(), id, lineID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quote id"})
		return
	}
	q, err := h.quotes.SendQuote(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type confirmQuoteResponse struct {
	Quote     *domain.Quote     `json:"quote"`
	Contracts []domain.Contract `json:"contracts"`
}

func (h *QuoteHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quote id"})
		return
	}
	q, contracts, err := h.quotes.ConfirmQuote(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmQuoteResponse{Quote: q, Contracts: contracts})
}

func (h *QuoteHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quote id"})
		return
	}
	q, err := h.quotes.CancelQuote(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type bookingRequest struct {
	CustomerID     int32     `json:"customer_id"`
	BikeID         int32     `json:"bike_id"`
	Tier           string    `json:"tier"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

// SubmitBooking is the public website entry point: no staff token required.
func (h *QuoteHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := h.quotes.SubmitBooking(r.Context(), req.CustomerID, req.BikeID,
		domain.RentalTier(req.Tier), req.StartDate, req.EndDate, req.IdempotencyKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}
