package handler

import (
	"net/http"
	"store_ratings/internal/api/middleware"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common"
	"store_ratings/internal/domain/repository"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type StoreHandler struct {
	storeService *service.StoreService
}

func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listStores)       // GET /api/v1/stores
	r.Get("/{storeID}", h.getStore) // GET /api/v1/stores/42
}

func (h *StoreHandler) listStores(w http.ResponseWriter, r *http.Request) {
	filter := repository.StoreListFilter{
		Query:   r.URL.Query().Get("q"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("order"),
	}

	caller := middleware.CallerFromContext(r.Context())
	stores, err := h.storeService.ListStores(r.Context(), caller, filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type StoreListResponse struct {
		Items []service.StoreSummary `json:"items"`
	}
	common.RespondWithJSON(w, http.StatusOK, StoreListResponse{Items: stores})
}

func (h *StoreHandler) getStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid store id")
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	detail, err := h.storeService.GetStoreDetail(r.Context(), caller, storeID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}
