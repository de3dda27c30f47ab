package morph

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a configuration or resource error raised by the morph
// engine or its scheduler.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes morph errors.
type ErrorCode string

const (
	// ErrCodeEmptyVariantList indicates a rotation was configured with no variants.
	ErrCodeEmptyVariantList ErrorCode = "EMPTY_VARIANT_LIST"

	// ErrCodeAllocatorExhausted indicates the ID counter reached its maximum.
	ErrCodeAllocatorExhausted ErrorCode = "ALLOCATOR_EXHAUSTED"

	// ErrCodeInvalidInterval indicates a non-positive tick interval.
	ErrCodeInvalidInterval ErrorCode = "INVALID_INTERVAL"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewEmptyVariantListError creates an Error for a rotation with no variants.
func NewEmptyVariantListError() *Error {
	return &Error{
		Code:    ErrCodeEmptyVariantList,
		Message: "at least one variant is required",
	}
}

// NewInvalidIntervalError creates an Error for a non-positive interval.
func NewInvalidIntervalError(interval time.Duration) *Error {
	return &Error{
		Code:    ErrCodeInvalidInterval,
		Message: fmt.Sprintf("tick interval must be positive, got %s", interval),
	}
}

// IsEmptyVariantList returns true if err is an empty variant list error.
// Uses errors.As to handle wrapped errors.
func IsEmptyVariantList(err error) bool {
	return hasCode(err, ErrCodeEmptyVariantList)
}

// IsAllocatorExhausted returns true if err is an allocator exhaustion error.
func IsAllocatorExhausted(err error) bool {
	return hasCode(err, ErrCodeAllocatorExhausted)
}

// IsInvalidInterval returns true if err is an invalid interval error.
func IsInvalidInterval(err error) bool {
	return hasCode(err, ErrCodeInvalidInterval)
}

func hasCode(err error, code ErrorCode) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
