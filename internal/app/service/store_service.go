package service

import (
	"context"
	"errors"
	"fmt"
	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"
	"store_ratings/internal/domain/rating"
	"store_ratings/internal/domain/repository"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type StoreService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
}

func NewStoreService(
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
	}
}

type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	OwnerID *int64 `json:"owner_id,omitempty"`
}

type StoreSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int     `json:"ratings_count"`
}

type StoreDetail struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Address       string         `json:"address"`
	AverageRating float64        `json:"average_rating"`
	RatingsCount  int            `json:"ratings_count"`
	Ratings       []model.Rating `json:"ratings"`
}

// ListStores is the public store listing with per-store aggregates.
func (s *StoreService) ListStores(ctx context.Context, caller policy.Caller, filter repository.StoreListFilter) ([]StoreSummary, error) {
	if err := policy.Authorize(caller, policy.ActionViewPublicStores); err != nil {
		return nil, err
	}

	stores, err := s.storeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	byStore, err := s.ratingsByStore(ctx, stores)
	if err != nil {
		return nil, err
	}

	summaries := make([]StoreSummary, 0, len(stores))
	for _, st := range stores {
		avg, count := rating.Average(byStore[st.ID])
		summaries = append(summaries, StoreSummary{
			ID:            st.ID,
			Name:          st.Name,
			Slug:          st.Slug,
			Address:       st.Address,
			AverageRating: avg,
			RatingsCount:  count,
		})
	}
	return summaries, nil
}

// GetStoreDetail returns one store with its ratings, newest first, each
// carrying the rater's public identity.
func (s *StoreService) GetStoreDetail(ctx context.Context, caller policy.Caller, storeID int64) (*StoreDetail, error) {
	if err := policy.Authorize(caller, policy.ActionViewStoreDetail); err != nil {
		return nil, err
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	avg, count := rating.Average(ratings)
	return &StoreDetail{
		ID:            store.ID,
		Name:          store.Name,
		Slug:          store.Slug,
		Address:       store.Address,
		AverageRating: avg,
		RatingsCount:  count,
		Ratings:       ratings,
	}, nil
}

// CreateStore is admin-only. An owner reference, when given, must point
// at a user whose role is OWNER at this moment; the reference is not
// re-validated if that role changes later.
func (s *StoreService) CreateStore(ctx context.Context, caller policy.Caller, req CreateStoreRequest) (*model.Store, error) {
	if err := policy.Authorize(caller, policy.ActionManageStores); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, common.Errorf("name and address are required: %w", common.ErrBadRequest)
	}

	if req.OwnerID != nil {
		owner, err := s.userRepo.FindByID(ctx, *req.OwnerID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.Errorf("owner_id must reference an existing OWNER: %w", common.ErrBadRequest)
			}
			return nil, fmt.Errorf("failed to look up owner: %w", err)
		}
		if owner.Role != model.RoleOwner {
			return nil, common.Errorf("owner_id must reference an OWNER: %w", common.ErrBadRequest)
		}
	}

	store := &model.Store{
		Name:    req.Name,
		Slug:    slug.Make(req.Name),
		Address: req.Address,
		OwnerID: req.OwnerID,
	}
	err := s.storeRepo.Create(ctx, store)
	if errors.Is(err, common.ErrConflict) {
		// Same-name store exists; disambiguate the slug and retry once.
		store.Slug = slug.Make(req.Name) + "-" + uuid.NewString()[:8]
		err = s.storeRepo.Create(ctx, store)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}

// OwnerDashboard lists the caller's stores with their aggregates. The
// owner_id filter in the query is the only narrowing needed: other
// owners' stores are never fetched, whatever the request asks for.
func (s *StoreService) OwnerDashboard(ctx context.Context, caller policy.Caller) ([]StoreSummary, error) {
	if err := policy.Authorize(caller, policy.ActionViewOwnedStoreRatings); err != nil {
		return nil, err
	}

	stores, err := s.storeRepo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned stores: %w", err)
	}
	byStore, err := s.ratingsByStore(ctx, stores)
	if err != nil {
		return nil, err
	}

	summaries := make([]StoreSummary, 0, len(stores))
	for _, agg := range rating.OwnerAggregates(stores, byStore) {
		for _, st := range stores {
			if st.ID != agg.StoreID {
				continue
			}
			summaries = append(summaries, StoreSummary{
				ID:            st.ID,
				Name:          st.Name,
				Slug:          st.Slug,
				Address:       st.Address,
				AverageRating: agg.Average,
				RatingsCount:  agg.Count,
			})
		}
	}
	return summaries, nil
}

func (s *StoreService) ratingsByStore(ctx context.Context, stores []model.Store) (map[int64][]model.Rating, error) {
	ids := make([]int64, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	byStore, err := s.ratingRepo.ListForStores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return byStore, nil
}
