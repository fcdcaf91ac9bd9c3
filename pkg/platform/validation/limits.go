package validation

import (
	"fmt"
	"strings"

	dErrors "healthsphere/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize bounds JSON bodies. Documents travel inline as base64 data
	// URIs, so this covers MaxDocumentSize plus encoding overhead.
	MaxBodySize = 14 * 1024 * 1024

	// MaxDocumentSize is the largest decoded license image or lab report accepted.
	MaxDocumentSize = 10 * 1024 * 1024
)

// Slice element count limits
const (
	// MaxChatMessages bounds the history sent to the chat assistants.
	MaxChatMessages = 50
)

// String element length limits
const (
	MaxInstructionsLength = 2000
	MaxDescriptionLength  = 2000
	MaxChatMessageLength  = 4000
	MaxNameLength         = 200
	MaxEmailLength        = 255
	MaxPhoneLength        = 32
	MaxReasonLength       = 500
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckRequired rejects empty or whitespace-only values.
func CheckRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return dErrors.New(dErrors.CodeValidation, fieldName+" is required")
	}
	return nil
}

// CheckRequiredWithin combines CheckRequired and CheckStringLength.
func CheckRequiredWithin(fieldName, value string, max int) error {
	if err := CheckRequired(fieldName, value); err != nil {
		return err
	}
	return CheckStringLength(fieldName, value, max)
}
