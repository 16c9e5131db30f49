// Package validation contains input validation rules shared by the
// handlers and services.
package validation

import (
	"errors"
	"strings"

	"nushoplah/internal/models"
)

const MinPasswordLength = 8

// ValidateRegistration checks the registration input before any user row is
// created.
func ValidateRegistration(input *models.CreateUserInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(input.Email, "@") {
		return errors.New("email is invalid")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return errors.New("first name is required")
	}
	if err := ValidatePassword(input.Password); err != nil {
		return err
	}
	switch input.Role {
	case models.RoleCustomer, models.RoleSeller:
		return nil
	default:
		return errors.New("role must be customer or seller")
	}
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
