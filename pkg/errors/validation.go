package errors

import (
	"regexp"
	"strings"
)

// maxDimension bounds any screen or glyph measurement accepted from
// configuration. Coordinates are carried as int but the display hardware
// addresses at most 16-bit signed pixels.
const maxDimension = 1<<15 - 1

// ValidateDimension checks that a named pixel measurement is positive and
// fits the device coordinate range.
func ValidateDimension(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %d", name, v)
	}
	if v > maxDimension {
		return New(ErrCodeInvalidConfig, "%s too large (max %d), got %d", name, maxDimension, v)
	}
	return nil
}

// ValidateTrust checks that a requested trust level does not exceed the
// ceiling set by the status region.
func ValidateTrust(requested, ceiling int) error {
	if requested < 0 || requested > 255 {
		return New(ErrCodeInvalidInput, "trust must be in [0, 255], got %d", requested)
	}
	if requested > ceiling {
		return New(ErrCodeTrustViolation, "trust %d exceeds status trust %d", requested, ceiling)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb color literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color literal used for the render palette.
func ValidateColor(name, value string) error {
	if value == "" {
		return New(ErrCodeInvalidConfig, "%s cannot be empty", name)
	}
	if !hexColorRegex.MatchString(strings.TrimSpace(value)) {
		return New(ErrCodeInvalidConfig, "%s must be a hex color like #rrggbb, got %q", name, value)
	}
	return nil
}
