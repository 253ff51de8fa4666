package services

import (
	"regexp"
	"strings"
)

var (
	// local@domain.tld shape; intentionally loose beyond that.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indian mobile pattern: starts with 6-9, exactly 10 digits.
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func isValidMobile(phone string) bool {
	return mobilePattern.MatchString(phone)
}

// normalizeEmail lower-cases and trims an email address so uniqueness checks
// are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeMobile prefixes a validated 10-digit mobile number with the
// country code used for stored contact records.
func normalizeMobile(phone string) string {
	return "+91-" + phone
}
