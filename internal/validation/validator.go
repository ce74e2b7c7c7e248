package validation

import (
	"strings"
	"unicode"
)

// MaxProjectNameLength bounds project names so they fit a report line.
const MaxProjectNameLength = 64

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string has at most max characters
func (v *Validator) IsValidStringLength(s string, max int) bool {
	return len([]rune(s)) <= max
}

// IsSingleToken checks that s contains no whitespace or control characters.
// Log lines are split on whitespace, so a project name must be one token.
func (v *Validator) IsSingleToken(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// StripSpaces removes every space character from s
func (v *Validator) StripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
