package errors

import (
	"math"
	"slices"
	"strings"
)

// MaxCanvas bounds either canvas dimension.
const MaxCanvas = 20000

// ValidateSize checks canvas dimensions. Zero means "use the default" and is
// accepted.
func ValidateSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidSize, "canvas size must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidSize, "canvas size cannot be negative")
		}
		if v > MaxCanvas {
			return New(ErrCodeInvalidSize, "canvas size too large (max %d)", MaxCanvas)
		}
	}
	return nil
}

// ValidateScale checks a raster scale factor. Zero means "use the default".
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale < 0 || scale > 8 {
		return New(ErrCodeInvalidSize, "scale must be between 0 and 8")
	}
	return nil
}

// ValidateInputSize rejects payloads longer than limit bytes.
func ValidateInputSize(n, limit int) error {
	if limit > 0 && n > limit {
		return New(ErrCodeInputTooLarge, "input too large (%d bytes, max %d)", n, limit)
	}
	return nil
}

// ValidateChoice checks that value is one of allowed, reporting with code.
func ValidateChoice(code Code, field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
