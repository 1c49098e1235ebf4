package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// ValidateEmail checks the address has a local part, a domain and a TLD.
func ValidateEmail(email string) (bool, string) {
	if !emailPattern.MatchString(email) {
		return false, "Please provide a valid email address"
	}
	return true, ""
}

// ValidatePassword checks the password against the registration policy.
func ValidatePassword(password string) (bool, string) {
	if len(password) < minPasswordLength {
		return false, "Password must be at least 6 characters long"
	}
	return true, ""
}

// NormalizeEmail lowercases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
