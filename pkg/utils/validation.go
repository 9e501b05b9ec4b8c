package utils

import (
	"strconv"
	"strings"
)

// IsNumericValue checks if a string represents a valid numeric value.
// This uses strconv.ParseFloat to properly validate numeric formats,
// including integers, floats, and scientific notation.
//
// Examples:
//   - "70" -> true
//   - "-1.5" -> true
//   - "1e3" -> true
//   - "abc" -> false
//   - "" -> false
func IsNumericValue(value string) bool {
	if value == "" {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// IsBooleanValue checks if a string is one of the boolean spellings storage
// parameters accept. This is case-insensitive.
//
// Examples:
//   - "true" -> true
//   - "OFF" -> true
//   - "1" -> false (use IsNumericValue for numeric booleans)
//   - "" -> false
func IsBooleanValue(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false", "on", "off":
		return true
	}
	return false
}

// FormatOptionValue renders a storage parameter value read from configuration.
// Numbers and booleans are emitted bare while anything else becomes a single
// quoted string literal.
//
// Examples:
//   - "70" -> 70
//   - "off" -> off
//   - "pg_default" -> 'pg_default'
//   - "it's" -> 'it''s'
func FormatOptionValue(value string) string {
	if IsNumericValue(value) || IsBooleanValue(value) {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
