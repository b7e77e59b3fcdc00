package model

import (
	"time"
)

// Rating holds one user's score for one store. The (UserID, StoreID) pair
// is unique; resubmitting overwrites score, comment and updated_at.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	StoreID   int64     `json:"store_id"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined rater identity, populated by store-detail listings only.
	UserName *string `json:"user_name,omitempty"`
}
