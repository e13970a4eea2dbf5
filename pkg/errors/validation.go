package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputBase validates the base name used for generated files
// (e.g. "atlas" becomes atlas.png and atlas.csv).
//
// The base may contain directories but must name a file:
//   - No empty names
//   - No control characters or null bytes
//   - No trailing path separator
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	for _, r := range base {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, "\\") {
		return New(ErrCodeInvalidPath, "output name must not end with a path separator: %q", base)
	}

	return nil
}

// ValidatePositive checks that a grid dimension is at least one.
func ValidatePositive(field string, v int) error {
	if v < 1 {
		return New(ErrCodeInvalidGrid, "%s must be positive, got %d", field, v)
	}
	return nil
}
