// Package policy holds the single access-control decision for the API.
// Role checks live here and nowhere else; handlers and services call
// Authorize once before touching storage.
package policy

import (
	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"
)

// Action is one of the fixed operations the platform exposes.
type Action string

const (
	ActionViewPublicStores      Action = "view_public_stores"
	ActionViewStoreDetail       Action = "view_store_detail"
	ActionSubmitRating          Action = "submit_rating"
	ActionChangeOwnPassword     Action = "change_own_password"
	ActionViewOwnedStoreRatings Action = "view_owned_store_ratings"
	ActionViewGlobalStats       Action = "view_global_stats"
	ActionManageUsers           Action = "manage_users"
	ActionManageStores          Action = "manage_stores"
)

// Caller is the verified identity behind a request, or its explicit
// absence. The zero value is anonymous.
type Caller struct {
	UserID        int64
	Role          string
	Authenticated bool
}

func Anonymous() Caller {
	return Caller{}
}

func Authenticated(userID int64, role string) Caller {
	return Caller{UserID: userID, Role: role, Authenticated: true}
}

// Authorize decides whether caller may perform action. It is a pure
// function of its inputs: nil on allow, common.ErrUnauthorized when an
// identity is required but absent, common.ErrForbidden when the identity
// is present but the role is insufficient. Ownership narrowing for
// ActionViewOwnedStoreRatings happens at the query layer (owner_id =
// caller id), so no resource argument is needed here.
func Authorize(caller Caller, action Action) error {
	switch action {
	case ActionViewPublicStores, ActionViewStoreDetail:
		return nil

	case ActionSubmitRating, ActionChangeOwnPassword:
		if !caller.Authenticated {
			return common.ErrUnauthorized
		}
		return nil

	case ActionViewOwnedStoreRatings:
		if !caller.Authenticated {
			return common.ErrUnauthorized
		}
		if caller.Role != model.RoleOwner {
			return common.ErrForbidden
		}
		return nil

	case ActionViewGlobalStats, ActionManageUsers, ActionManageStores:
		if !caller.Authenticated {
			return common.ErrUnauthorized
		}
		if caller.Role != model.RoleAdmin {
			return common.ErrForbidden
		}
		return nil
	}

	// Unknown actions are never allowed.
	if !caller.Authenticated {
		return common.ErrUnauthorized
	}
	return common.ErrForbidden
}
