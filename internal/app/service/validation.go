package service

import (
	"regexp"
	"store_ratings/internal/common"
	"strings"
	"unicode"
)

// Validation bounds for user-supplied fields.
const (
	nameMinLen     = 20
	nameMaxLen     = 60
	addressMaxLen  = 400
	commentMaxLen  = 400
	passwordMinLen = 8
	passwordMaxLen = 16
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateName(name string) error {
	if n := len(strings.TrimSpace(name)); n < nameMinLen || n > nameMaxLen {
		return common.Errorf("name must be %d-%d characters: %w", nameMinLen, nameMaxLen, common.ErrValidation)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return common.Errorf("invalid email address: %w", common.ErrValidation)
	}
	return nil
}

func validateAddress(address *string) error {
	if address != nil && len(*address) > addressMaxLen {
		return common.Errorf("address must be at most %d characters: %w", addressMaxLen, common.ErrValidation)
	}
	return nil
}

// validatePassword enforces 8-16 characters with at least one uppercase
// letter and one special character.
func validatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return common.Errorf("password must be %d-%d characters: %w", passwordMinLen, passwordMaxLen, common.ErrValidation)
	}
	hasUpper := false
	hasSpecial := false
	for _, c := range password {
		if unicode.IsUpper(c) {
			hasUpper = true
		}
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			hasSpecial = true
		}
	}
	if !hasUpper {
		return common.Errorf("password must include at least one uppercase letter: %w", common.ErrValidation)
	}
	if !hasSpecial {
		return common.Errorf("password must include at least one special character: %w", common.ErrValidation)
	}
	return nil
}

func validateComment(comment *string) error {
	if comment != nil && len(*comment) > commentMaxLen {
		return common.Errorf("comment must be at most %d characters: %w", commentMaxLen, common.ErrValidation)
	}
	return nil
}

// normalizeAddress turns an empty address into an absent one.
func normalizeAddress(address *string) *string {
	if address != nil && strings.TrimSpace(*address) == "" {
		return nil
	}
	return address
}
