package http

import (
	"net/http"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/service"
)

type ContractHandler struct {
	contracts service.ContractService
	invoices  service.InvoiceService
}

func NewContractHandler(contracts service.ContractService, invoices service.InvoiceService) *ContractHandler {
	return &ContractHandler{contracts: contracts, invoices: invoices}
}

type createContractRequest struct {
	CustomerID int32     `json:"customer_id"`
	BikeID     int32     `json:"bike_id"`
	Tier       string    `json:"tier"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.contracts.CreateContract(r.Context(), req.CustomerID, req.BikeID,
		domain.RentalTier(req.Tier), req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	c, err := h.contracts.GetContract(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	contracts, err := h.contracts.ListContractsByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (h *ContractHandler) ListByState(w http.ResponseWriter, r *http.Request) {
	state := domain.ContractState(r.URL.Query().Get("state"))
	if state == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "state query parameter is required"})
		return
	}
	contracts, err := h.contracts.ListContractsByState(r.Context(), state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

// transition runs one no-body lifecycle action.
func (h *ContractHandler) transition(w http.ResponseWriter, r *http.Request,
	action func(r *http.Request, id int32) (*domain.Contract, error)) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	c, err := action(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) MarkDepositPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id int32) (*domain.Contract, error) {
		return h.contracts.MarkDepositPaid(r.Context(), id)
	})
}

func (h *ContractHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id int32) (*domain.Contract, error) {
		return h.contracts.ConfirmContract(r.Context(), id)
	})
}

func (h *ContractHandler) StartRental(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id int32) (*domain.Contract, error) {
		return h.contracts.StartRental(r.Context(), id)
	})
}

func (h *ContractHandler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	var input domain.ReturnInput
	if !decodeBody(w, r, &input) {
		return
	}
	c, err := h.contracts.ProcessReturn(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type setFeesRequest struct {
	DamageFeeCents     int64 `json:"damage_fee_cents"`
	AdditionalFeeCents int64 `json:"additional_fee_cents"`
}

func (h *ContractHandler) SetFees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	var req setFeesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.contracts.SetFees(r.Context(), id, req.DamageFeeCents, req.AdditionalFeeCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id int32) (*domain.Contract, error) {
		return h.contracts.CloseContract(r.Context(), id)
	})
}

type cancelContractRequest struct {
	Reason string `json:"reason"`
}

func (h *ContractHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	var req cancelContractRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.contracts.CancelContract(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) ReturnDeposit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, id int32) (*domain.Contract, error) {
		return h.contracts.ReturnDeposit(r.Context(), id)
	})
}

func (h *ContractHandler) DepositHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid contract id"})
		return
	}
	entries, err := h.contracts.DepositHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ContractHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id"})
		return
	}
	inv, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
