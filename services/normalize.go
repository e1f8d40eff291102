package services

import (
	"regexp"
	"strings"

	"blog-api/models"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}0-9_.-]{3,50}$`)

// Usernames and emails are unique case-insensitively: both are stored
// trimmed and lowercased, and every lookup is normalised the same way.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateUsername(username string) error {
	if username == "" {
		return models.ErrorValidation{Message: "username is required"}
	}
	if !usernamePattern.MatchString(username) {
		return models.ErrorValidation{Message: "username must be 3-50 characters: letters, digits, '.', '_' or '-'"}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return models.ErrorValidation{Message: "email is required"}
	}
	return nil
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return models.ErrorValidation{Message: "password is required"}
	}
	return nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

// PageAndLimit applies the listing defaults: page 1 and DefaultPageLimit.
func PageAndLimit(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

const (
	DefaultPageLimit = 9
	MaxPageLimit     = 100
)
