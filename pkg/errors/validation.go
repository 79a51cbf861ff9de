package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxNodeIDLength is the longest node identifier accepted from graph files
// and API requests.
const MaxNodeIDLength = 256

// ValidateNodeID validates a node identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidInput, "node ID too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "node ID %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateWeight validates a node weight.
// Weights may be zero or negative but must be finite numbers.
func ValidateWeight(id string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidInput, "weight of node %q must be a finite number", id)
	}
	return nil
}

// ValidateDepthLimit validates a traversal depth limit.
// Zero means "use the default" and is accepted.
func ValidateDepthLimit(limit int) error {
	if limit < 0 {
		return New(ErrCodeInvalidInput, "depth limit must not be negative, got %d", limit)
	}
	return nil
}
