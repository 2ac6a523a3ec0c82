// Package errors provides the structured error type shared by the bot
// handlers, the collaborator adapters and the recommendation worker.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode is a stable, machine readable failure class.
type ErrorCode string

const (
	ErrCodeUnsupportedIntent     ErrorCode = "UNSUPPORTED_INTENT"
	ErrCodeUnknownInvocation     ErrorCode = "UNKNOWN_INVOCATION_SOURCE"
	ErrCodeInvalidRequest        ErrorCode = "INVALID_REQUEST"
	ErrCodeDialogEngineFailed    ErrorCode = "DIALOG_ENGINE_FAILED"
	ErrCodeQueueSendFailed       ErrorCode = "QUEUE_SEND_FAILED"
	ErrCodeQueueReceiveFailed    ErrorCode = "QUEUE_RECEIVE_FAILED"
	ErrCodeQueueDeleteFailed     ErrorCode = "QUEUE_DELETE_FAILED"
	ErrCodeInvalidMessage        ErrorCode = "INVALID_MESSAGE"
	ErrCodeSearchQueryFailed     ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeInsufficientMatches   ErrorCode = "INSUFFICIENT_MATCHES"
	ErrCodeStoreLookupFailed     ErrorCode = "STORE_LOOKUP_FAILED"
	ErrCodeRestaurantNotFound    ErrorCode = "RESTAURANT_NOT_FOUND"
	ErrCodeEmailSendFailed       ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
	ErrCodeConfigurationInvalid  ErrorCode = "CONFIGURATION_INVALID"
	ErrCodeCollaboratorTimeout   ErrorCode = "COLLABORATOR_TIMEOUT"
	ErrCodeCollaboratorUnhealthy ErrorCode = "COLLABORATOR_UNHEALTHY"
)

// StandardError is a structured application error. Cause is kept for
// errors.Is / errors.As but never serialized.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Is matches another *StandardError by code so sentinel values work with
// errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnsupportedIntent   = &StandardError{Code: ErrCodeUnsupportedIntent}
	ErrInsufficientMatches = &StandardError{Code: ErrCodeInsufficientMatches}
	ErrRestaurantNotFound  = &StandardError{Code: ErrCodeRestaurantNotFound}
	ErrInvalidMessage      = &StandardError{Code: ErrCodeInvalidMessage}
)

func NewUnsupportedIntentError(intentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedIntent,
		Message:   fmt.Sprintf("Intent with name %s not supported", intentName),
		Details:   fmt.Sprintf("intentName: %s", intentName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownInvocationSourceError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownInvocation,
		Message:   "Unknown invocation source",
		Details:   fmt.Sprintf("invocationSource: %s", source),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDialogEngineError(err error) *StandardError {
	return newError(ErrCodeDialogEngineFailed, "Dialog engine request failed", err, true)
}

func NewQueueSendError(err error) *StandardError {
	return newError(ErrCodeQueueSendFailed, "Failed to enqueue reservation request", err, true)
}

func NewQueueReceiveError(err error) *StandardError {
	return newError(ErrCodeQueueReceiveFailed, "Failed to receive from queue", err, true)
}

func NewQueueDeleteError(receiptHandle string, err error) *StandardError {
	e := newError(ErrCodeQueueDeleteFailed, "Failed to delete queue message", err, true)
	e.Metadata = map[string]interface{}{"receiptHandle": receiptHandle}
	return e
}

func NewInvalidMessageError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMessage,
		Message:   "Queued reservation request is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(cuisine string, err error) *StandardError {
	e := newError(ErrCodeSearchQueryFailed, "Restaurant search failed", err, true)
	e.Metadata = map[string]interface{}{"cuisine": cuisine}
	return e
}

func NewInsufficientMatchesError(cuisine string, found, wanted int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientMatches,
		Message:   "Not enough distinct restaurants to recommend",
		Details:   fmt.Sprintf("cuisine: %s, found: %d, wanted: %d", cuisine, found, wanted),
		Retryable: false,
		Metadata:  map[string]interface{}{"cuisine": cuisine, "found": found, "wanted": wanted},
		Timestamp: time.Now().UTC(),
	}
}

func NewStoreLookupError(businessID string, err error) *StandardError {
	e := newError(ErrCodeStoreLookupFailed, "Restaurant lookup failed", err, true)
	e.Metadata = map[string]interface{}{"businessId": businessID}
	return e
}

func NewRestaurantNotFoundError(businessID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRestaurantNotFound,
		Message:   "Restaurant not found",
		Details:   fmt.Sprintf("businessId: %s", businessID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewEmailSendError(recipient string, err error) *StandardError {
	e := newError(ErrCodeEmailSendFailed, "Email delivery failed", err, true)
	e.Metadata = map[string]interface{}{"recipient": recipient}
	return e
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeCollaboratorTimeout, fmt.Sprintf("Service '%s' timeout", service), err, true)
}

func NewUnhealthyError(service string, err error) *StandardError {
	return newError(ErrCodeCollaboratorUnhealthy, fmt.Sprintf("Service '%s' is unhealthy", service), err, true)
}

func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the code of the first StandardError in err's chain, or
// INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether the failure is worth another attempt by the
// invoking runtime.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// HTTPStatus maps an error to the status code used at the API edge.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeUnsupportedIntent, ErrCodeUnknownInvocation:
		return http.StatusUnprocessableEntity
	case ErrCodeDialogEngineFailed, ErrCodeQueueSendFailed:
		return http.StatusBadGateway
	case ErrCodeCollaboratorTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCollaboratorUnhealthy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "INVOCATION"):
		return "DIALOG"
	case strings.Contains(codeStr, "QUEUE") || strings.Contains(codeStr, "MESSAGE"):
		return "QUEUE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "MATCHES"):
		return "SEARCH"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "RESTAURANT"):
		return "STORE"
	case strings.Contains(codeStr, "EMAIL"):
		return "EMAIL"
	case strings.Contains(codeStr, "ENGINE"):
		return "DIALOG_ENGINE"
	default:
		return "OTHER"
	}
}
