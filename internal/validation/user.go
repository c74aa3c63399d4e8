// Package validation provides input validation utilities
package validation

import (
	"regexp"
	"unicode"

	"chirp/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateName checks if a display name meets requirements
func ValidateName(name string) error {
	if len(name) == 0 {
		return models.NewValidationError("Name is required")
	}

	if len(name) > 50 {
		return models.NewValidationError("Name must not exceed 50 characters")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("Invalid email format")
	}

	if len(email) > 254 {
		return models.NewValidationError("Email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	// Check minimum length
	if len(password) < 8 {
		return models.NewValidationError("Password must be at least 8 characters long")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return models.NewValidationError("Password must not exceed 128 characters")
	}

	// Check for letter
	hasLetter := false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return models.NewValidationError("Password must contain at least one letter")
	}

	// Check for digit
	hasDigit := false
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return models.NewValidationError("Password must contain at least one digit")
	}

	return nil
}
