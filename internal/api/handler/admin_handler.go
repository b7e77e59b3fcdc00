package handler

import (
	"encoding/json"
	"net/http"
	"store_ratings/internal/api/middleware"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/repository"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService *service.AdminService
	storeService *service.StoreService
}

func NewAdminHandler(adminService *service.AdminService, storeService *service.StoreService) *AdminHandler {
	return &AdminHandler{adminService: adminService, storeService: storeService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/users", h.listUsers)
	r.Get("/users/{userID}", h.getUser)
	r.Post("/users", h.createUser)
	r.Post("/stores", h.createStore)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	stats, err := h.adminService.Stats(r.Context(), caller)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	filter := repository.UserListFilter{
		Query:   r.URL.Query().Get("q"),
		Role:    r.URL.Query().Get("role"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("order"),
	}

	caller := middleware.CallerFromContext(r.Context())
	users, err := h.adminService.ListUsers(r.Context(), caller, filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type UserListResponse struct {
		Items []model.User `json:"items"`
	}
	common.RespondWithJSON(w, http.StatusOK, UserListResponse{Items: users})
}

func (h *AdminHandler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	detail, err := h.adminService.GetUserDetail(r.Context(), caller, userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	user, err := h.adminService.CreateUser(r.Context(), caller, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) createStore(w http.ResponseWriter, r *http.Request) {
	var req service.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	store, err := h.storeService.CreateStore(r.Context(), caller, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, store)
}
