package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyColor indicates the color string is empty
	ErrEmptyColor = errors.New("color cannot be empty")

	// ErrInvalidColorFormat indicates the color is not a hex color
	ErrInvalidColorFormat = errors.New("color must be a hex color like #8b5cf6 or #fff")
)

// colorRegex matches 3- or 6-digit hex colors with a leading '#'
var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ColorValidator validates catalog display colors
type ColorValidator struct{}

// NewColorValidator creates a new color validator instance
func NewColorValidator() *ColorValidator {
	return &ColorValidator{}
}

// Validate validates a hex color string.
// Accepts "#abc" or "#aabbcc" (case-insensitive) and returns the
// normalized lowercase form.
func (v *ColorValidator) Validate(color string) (string, error) {
	trimmed := strings.TrimSpace(color)
	if trimmed == "" {
		return "", ErrEmptyColor
	}

	if !colorRegex.MatchString(trimmed) {
		return "", ErrInvalidColorFormat
	}

	return strings.ToLower(trimmed), nil
}
