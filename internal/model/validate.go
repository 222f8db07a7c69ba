package model

import (
	"fmt"
	"math"
)

// ValidationKind classifies a rejected estimation input.
type ValidationKind string

const (
	InvalidRunLength ValidationKind = "INVALID_RUN_LENGTH"
	InvalidHeight    ValidationKind = "INVALID_HEIGHT"
	InvalidPostCount ValidationKind = "INVALID_POST_COUNT"
)

// ValidationError reports the first problem found in an EstimationInput.
type ValidationError struct {
	Kind    ValidationKind `json:"kind"`
	Field   string         `json:"field"`
	Message string         `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(kind ValidationKind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that run lengths are finite and non-negative, the height
// starts with a non-negative integer and the post counts are non-negative.
// An empty run list is valid.
func Validate(in EstimationInput) error {
	for i, r := range in.Runs {
		if math.IsNaN(r.Length) || math.IsInf(r.Length, 0) {
			return newValidationError(InvalidRunLength, fmt.Sprintf("runs[%d].length", i), "length must be a finite number")
		}
		if r.Length < 0 {
			return newValidationError(InvalidRunLength, fmt.Sprintf("runs[%d].length", i), "length must not be negative, got %g", r.Length)
		}
	}

	height, ok := parseHeight(in.FenceHeight)
	if !ok {
		return newValidationError(InvalidHeight, "fence_height", "%q is not a number of feet", in.FenceHeight)
	}
	if height < 0 {
		return newValidationError(InvalidHeight, "fence_height", "height must not be negative, got %d", height)
	}

	if in.Ends < 0 {
		return newValidationError(InvalidPostCount, "ends", "end post count must not be negative, got %d", in.Ends)
	}
	if in.Corners < 0 {
		return newValidationError(InvalidPostCount, "corners", "corner post count must not be negative, got %d", in.Corners)
	}
	return nil
}

// ComputeValidated validates the input before computing the takeoff.
func ComputeValidated(in EstimationInput) (EstimationResult, error) {
	if err := Validate(in); err != nil {
		return EstimationResult{}, err
	}
	return Compute(in), nil
}
