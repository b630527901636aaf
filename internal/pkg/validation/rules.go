package validation

import (
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Student identifier pattern - 6 digits
	StudentIDPattern = `^\d{6}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	StudentID *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// ValidEmail reports whether the given email matches the email pattern.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// PasswordPolicy checks the account-creation password policy: minimum 8
// characters, at least one digit, at least one upper-case letter. Returns the
// first violated rule as a human-readable reason, or "" when the password
// passes.
func PasswordPolicy(password string) string {
	if len(password) < PasswordMinLength {
		return "password must be at least 8 characters long"
	}

	hasDigit := false
	hasUpper := false
	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
		}
		if unicode.IsUpper(char) {
			hasUpper = true
		}
	}

	if !hasDigit {
		return "password must contain at least one digit"
	}
	if !hasUpper {
		return "password must contain at least one upper-case letter"
	}
	return ""
}

// ValidName reports whether a first or last name falls within length bounds.
func ValidName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
