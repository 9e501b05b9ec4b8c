package utils_test

import (
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestIsNumericValue(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"70", true},
		{"-1.5", true},
		{"1e3", true},
		{"abc", false},
		{"1.2.3", false},
		{"", false},
		{"-", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsNumericValue(tt.input))
		})
	}
}

func TestIsBooleanValue(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"FALSE", true},
		{"On", true},
		{"off", true},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsBooleanValue(tt.input))
		})
	}
}

func TestFormatOptionValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "integer", input: "70", expected: "70"},
		{name: "float", input: "0.2", expected: "0.2"},
		{name: "boolean", input: "off", expected: "off"},
		{name: "string", input: "pg_default", expected: "'pg_default'"},
		{name: "embedded quote", input: "it's", expected: "'it''s'"},
		{name: "empty", input: "", expected: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.FormatOptionValue(tt.input))
		})
	}
}
