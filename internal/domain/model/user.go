package model

import (
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
	RoleUser  = "USER"
)

// ValidRole reports whether role is one of the three fixed roles.
// Roles are immutable after user creation.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOwner || role == RoleUser
}

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        *string   `json:"address"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
