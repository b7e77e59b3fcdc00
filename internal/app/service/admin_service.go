package service

import (
	"context"
	"fmt"
	"store_ratings/internal/common"
	"store_ratings/internal/common/security"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"
	"store_ratings/internal/domain/rating"
	"store_ratings/internal/domain/repository"
	"store_ratings/internal/platform/cache"
)

const statsCacheKey = "admin:stats"

type AdminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	statsCache *cache.StatsCache
}

func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	statsCache *cache.StatsCache,
) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		statsCache: statsCache,
	}
}

type GlobalStats struct {
	Users   int `json:"users"`
	Stores  int `json:"stores"`
	Ratings int `json:"ratings"`
}

type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Address  *string `json:"address,omitempty"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

type UserDetail struct {
	User *model.User `json:"user"`
	// Average across all ratings of the user's stores; set only when the
	// user is an OWNER, null otherwise.
	OwnerAverage *float64 `json:"owner_average"`
}

// Stats returns the global counts, served from the cache when fresh.
func (s *AdminService) Stats(ctx context.Context, caller policy.Caller) (*GlobalStats, error) {
	if err := policy.Authorize(caller, policy.ActionViewGlobalStats); err != nil {
		return nil, err
	}

	stats := &GlobalStats{}
	if s.statsCache.Get(ctx, statsCacheKey, stats) {
		return stats, nil
	}

	var err error
	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Stores, err = s.storeRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count stores: %w", err)
	}
	if stats.Ratings, err = s.ratingRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}

	s.statsCache.Set(ctx, statsCacheKey, stats)
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, caller policy.Caller, filter repository.UserListFilter) ([]model.User, error) {
	if err := policy.Authorize(caller, policy.ActionManageUsers); err != nil {
		return nil, err
	}
	if filter.Role != "" && !model.ValidRole(filter.Role) {
		return nil, common.Errorf("role filter must be ADMIN, OWNER or USER: %w", common.ErrBadRequest)
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserDetail returns one user; for OWNER users it adds the average
// over every rating of every store they own.
func (s *AdminService) GetUserDetail(ctx context.Context, caller policy.Caller, userID int64) (*UserDetail, error) {
	if err := policy.Authorize(caller, policy.ActionManageUsers); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""

	detail := &UserDetail{User: user}
	if user.Role != model.RoleOwner {
		return detail, nil
	}

	stores, err := s.storeRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned stores: %w", err)
	}
	ids := make([]int64, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	byStore, err := s.ratingRepo.ListForStores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	all := []model.Rating{}
	for _, rs := range byStore {
		all = append(all, rs...)
	}
	avg, _ := rating.Average(all)
	detail.OwnerAverage = &avg
	return detail, nil
}

// CreateUser is the admin path for creating accounts with an explicit
// role, including other admins and store owners.
func (s *AdminService) CreateUser(ctx context.Context, caller policy.Caller, req CreateUserRequest) (*model.User, error) {
	if err := policy.Authorize(caller, policy.ActionManageUsers); err != nil {
		return nil, err
	}
	if !model.ValidRole(req.Role) {
		return nil, common.Errorf("role must be ADMIN, OWNER or USER: %w", common.ErrBadRequest)
	}
	if err := validateSignupFields(SignupRequest{Name: req.Name, Email: req.Email, Address: req.Address, Password: req.Password}); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		Address:        normalizeAddress(req.Address),
		HashedPassword: hashedPassword,
		Role:           req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}
