package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColorValidator(t *testing.T) {
	validator := NewColorValidator()
	assert.NotNil(t, validator)
}

func TestValidateColor_ValidColors(t *testing.T) {
	validator := NewColorValidator()

	validColors := []struct {
		input    string
		expected string
		name     string
	}{
		{"#8b5cf6", "#8b5cf6", "Lowercase 6-digit"},
		{"#8B5CF6", "#8b5cf6", "Uppercase normalized"},
		{"#fff", "#fff", "3-digit shorthand"},
		{"#ABC", "#abc", "3-digit uppercase"},
		{"  #3b82f6  ", "#3b82f6", "Surrounding whitespace"},
		{"#000000", "#000000", "Black"},
	}

	for _, tc := range validColors {
		t.Run(tc.name, func(t *testing.T) {
			normalized, err := validator.Validate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, normalized)
		})
	}
}

func TestValidateColor_InvalidColors(t *testing.T) {
	validator := NewColorValidator()

	invalidColors := []struct {
		input       string
		expectedErr error
		name        string
	}{
		{"", ErrEmptyColor, "Empty string"},
		{"   ", ErrEmptyColor, "Whitespace only"},
		{"8b5cf6", ErrInvalidColorFormat, "Missing hash"},
		{"#8b5cf", ErrInvalidColorFormat, "Five digits"},
		{"#8b5cf6a", ErrInvalidColorFormat, "Seven digits"},
		{"#gggggg", ErrInvalidColorFormat, "Non-hex characters"},
		{"blue", ErrInvalidColorFormat, "Named color"},
		{"rgb(1,2,3)", ErrInvalidColorFormat, "RGB function"},
	}

	for _, tc := range invalidColors {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.input)
			assert.Error(t, err)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}
