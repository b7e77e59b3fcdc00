package service

import (
	"context"
	"fmt"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"
	"store_ratings/internal/domain/rating"
	"store_ratings/internal/domain/repository"
)

type RatingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, storeRepo: storeRepo}
}

type SubmitRatingRequest struct {
	StoreID int64   `json:"store_id"`
	Score   int     `json:"score"`
	Comment *string `json:"comment,omitempty"`
}

// Submit records or overwrites the caller's rating for a store. The write
// is a single storage-level upsert keyed on (user_id, store_id), so
// concurrent submissions for the same pair collapse to one row with the
// last write winning.
func (s *RatingService) Submit(ctx context.Context, caller policy.Caller, req SubmitRatingRequest) (*model.Rating, error) {
	if err := policy.Authorize(caller, policy.ActionSubmitRating); err != nil {
		return nil, err
	}
	if err := rating.ValidateScore(req.Score); err != nil {
		return nil, err
	}
	if err := validateComment(req.Comment); err != nil {
		return nil, err
	}

	// Store must exist; surfaces common.ErrNotFound otherwise.
	store, err := s.storeRepo.FindByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	submitted, err := s.ratingRepo.Upsert(ctx, caller.UserID, store.ID, req.Score, req.Comment)
	if err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}
	return submitted, nil
}
