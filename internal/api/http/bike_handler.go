package http

import (
	"net/http"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/service"
)

type BikeHandler struct {
	bikes service.BikeService
}

func NewBikeHandler(bikes service.BikeService) *BikeHandler {
	return &BikeHandler{bikes: bikes}
}

// Catalog lists bikes offered for rental, optionally filtered by category.
// This is the public storefront listing.
func (h *BikeHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	category := domain.BikeCategory(r.URL.Query().Get("category"))
	bikes, err := h.bikes.ListRentalCatalog(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bikes)
}

func (h *BikeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	bike, err := h.bikes.GetBike(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

type priceResponse struct {
	BikeID         int32  `json:"bike_id"`
	Tier           string `json:"tier"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (h *BikeHandler) Price(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	tier := domain.RentalTier(r.URL.Query().Get("tier"))
	price, err := h.bikes.PriceQuote(r.Context(), id, tier)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{BikeID: id, Tier: string(tier), UnitPriceCents: price})
}

func (h *BikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var bike domain.Bike
	if !decodeBody(w, r, &bike) {
		return
	}
	if err := h.bikes.AddBike(r.Context(), &bike); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bike)
}

func (h *BikeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	var bike domain.Bike
	if !decodeBody(w, r, &bike) {
		return
	}
	bike.ID = id
	if err := h.bikes.UpdateBike(r.Context(), &bike); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

type maintenanceRequest struct {
	Notes string `json:"notes"`
}

func (h *BikeHandler) StartMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	var req maintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.bikes.StartMaintenance(r.Context(), id, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BikeHandler) EndMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bike id"})
		return
	}
	if err := h.bikes.EndMaintenance(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
