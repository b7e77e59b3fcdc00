package handler

import (
	"net/http"
	"store_ratings/internal/api/middleware"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common"

	"github.com/go-chi/chi/v5"
)

type OwnerHandler struct {
	storeService *service.StoreService
}

func NewOwnerHandler(storeService *service.StoreService) *OwnerHandler {
	return &OwnerHandler{storeService: storeService}
}

func (h *OwnerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ratings", h.ownedStoreRatings) // GET /api/v1/owner/ratings
}

func (h *OwnerHandler) ownedStoreRatings(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	stores, err := h.storeService.OwnerDashboard(r.Context(), caller)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type OwnerDashboardResponse struct {
		Items []service.StoreSummary `json:"items"`
	}
	common.RespondWithJSON(w, http.StatusOK, OwnerDashboardResponse{Items: stores})
}
