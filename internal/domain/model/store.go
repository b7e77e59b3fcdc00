package model

import (
	"time"
)

// Store is a rateable venue. OwnerID, when set, references a user whose
// role was OWNER at creation time; it is not re-validated afterwards.
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Address   string    `json:"address"`
	OwnerID   *int64    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
