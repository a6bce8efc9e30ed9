// Package errors provides standardized error handling for the HR ticket pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassificationUnknown ErrorCode = "CLASSIFICATION_UNKNOWN"
	ErrCodeEntityExtractionEmpty ErrorCode = "ENTITY_EXTRACTION_EMPTY"

	ErrCodeInsufficientLeaveBalance ErrorCode = "INSUFFICIENT_LEAVE_BALANCE"
	ErrCodeUnknownLeaveType         ErrorCode = "UNKNOWN_LEAVE_TYPE"

	ErrCodeDocumentRenderFailed ErrorCode = "DOCUMENT_RENDER_FAILED"
	ErrCodeTicketUpdateFailed   ErrorCode = "TICKET_UPDATE_FAILED"
	ErrCodeNotificationFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeAuditWriteFailed     ErrorCode = "AUDIT_WRITE_FAILED"

	ErrCodePayloadInvalid    ErrorCode = "PAYLOAD_INVALID"
	ErrCodeDuplicateDelivery ErrorCode = "DUPLICATE_DELIVERY"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDocumentRenderError wraps a renderer failure. Retryable: a second attempt
// may succeed once the output directory is writable again.
func NewDocumentRenderError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentRenderFailed,
		Message:   "Failed to render document artifact",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTicketUpdateError wraps a failed note post to the service desk.
func NewTicketUpdateError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTicketUpdateFailed,
		Message:   "Failed to update service-desk ticket",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadInvalidError marks a webhook body that failed schema validation.
func NewPayloadInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadInvalid,
		Message:   "Webhook payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error into the standard shape.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// CodeOf extracts the ErrorCode from any error, defaulting to INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether the error is marked retryable.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}
