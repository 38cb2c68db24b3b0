package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,4}$`

	// Phone pattern - digits, spaces and common separators
	PhonePattern = `^[0-9+\-() ]{7,20}$`

	// Name validation min/max length
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// StringValidation validates a single string field
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	trimmed := strings.TrimSpace(v.Value)

	if v.Required && trimmed == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && trimmed == "" {
		return true
	}

	if v.MinLen > 0 && len(trimmed) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(trimmed) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(trimmed) {
		return false
	}

	return true
}

// RequiredString reports whether a required string field is present.
func RequiredString(value string) bool {
	return NewStringValidation(value).Validate()
}

// ParseNonNegativeInt parses a caller-supplied numeric field. The second
// return value is false when the input is not a number or is negative.
func ParseNonNegativeInt(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
