package handler

import (
	"encoding/json"
	"net/http"
	"store_ratings/internal/api/middleware"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common"

	"github.com/go-chi/chi/v5"
)

type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.submitRating) // POST /api/v1/ratings
}

func (h *RatingHandler) submitRating(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	rating, err := h.ratingService.Submit(r.Context(), caller, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, rating)
}
