package service

import (
	"context"
	"errors"
	"fmt"
	"store_ratings/internal/common"
	"store_ratings/internal/common/security"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"
	"store_ratings/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Address  *string `json:"address,omitempty"`
	Password string  `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Signup registers a self-service account. Role is always USER; owner and
// admin accounts are created through the admin surface.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validateSignupFields(req); err != nil {
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
		Role:           model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// ChangePassword updates the caller's own password. The target record is
// implicitly the caller; no other user can be addressed here.
func (s *AuthService) ChangePassword(ctx context.Context, caller policy.Caller, req ChangePasswordRequest) error {
	if err := policy.Authorize(caller, policy.ActionChangeOwnPassword); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, caller.UserID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func validateSignupFields(req SignupRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validateAddress(req.Address); err != nil {
		return err
	}
	return validatePassword(req.Password)
}
