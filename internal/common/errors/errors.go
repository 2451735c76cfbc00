// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeQueryParseFailed  ErrorCode = "QUERY_PARSE_FAILED"
	ErrCodeInvalidPagination ErrorCode = "INVALID_PAGINATION"

	ErrCodeGenAIUnavailable     ErrorCode = "GENAI_UNAVAILABLE"
	ErrCodeGenAITimeout         ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIResponseInvalid ErrorCode = "GENAI_RESPONSE_INVALID"
	ErrCodeGenAINotConfigured   ErrorCode = "GENAI_NOT_CONFIGURED"

	ErrCodeStoreConnectionFailed ErrorCode = "STORE_CONNECTION_FAILED"
	ErrCodeStoreQueryFailed      ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreTimeout          ErrorCode = "STORE_TIMEOUT"
	ErrCodeIndexNotFound         ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeIntentClassificationFailed ErrorCode = "INTENT_CLASSIFICATION_FAILED"
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
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewQueryParseFailedError marks an unparseable raw query. Non-retryable:
// parsing of the same input will fail the same way.
func NewQueryParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryParseFailed,
		Message:   "Query could not be parsed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPaginationError marks an unusable offset/limit pair.
func NewInvalidPaginationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPagination,
		Message:   "Invalid pagination parameters",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIUnavailableError creates a retryable completion-service error.
// The search path never surfaces it; it exists for logging and metrics.
func NewGenAIUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIUnavailable,
		Message:   "Completion service unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAITimeoutError creates a retryable completion-service timeout error.
func NewGenAITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Completion service timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIResponseInvalidError marks a completion that failed shape or
// vocabulary validation.
func NewGenAIResponseInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIResponseInvalid,
		Message:   "Completion response failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAINotConfiguredError marks a missing completion-service configuration.
func NewGenAINotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAINotConfigured,
		Message:   "Completion service not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreConnectionFailedError creates a retryable store connection error.
func NewStoreConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreConnectionFailed,
		Message:   "Record store connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryFailedError creates a retryable store query error. The engine
// itself does not retry; retry policy belongs to the storage-access layer.
func NewStoreQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   "Record store query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreTimeoutError creates a retryable store timeout error.
func NewStoreTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreTimeout,
		Message:   "Record store query timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError marks a missing search index.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index not found",
		Details:   fmt.Sprintf("index: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentClassificationFailedError marks a chat message the classifier
// could not process.
func NewIntentClassificationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentClassificationFailed,
		Message:   "Intent classification failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a generic retryable external-service error.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrorCode(strings.ToUpper(service) + "_ERROR"),
		Message:   fmt.Sprintf("External service %s failed", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError creates a generic retryable timeout error.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrorCode(strings.ToUpper(service) + "_TIMEOUT"),
		Message:   fmt.Sprintf("External service %s timed out", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable not-found error.
func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      ErrorCode(strings.ToUpper(service) + "_NOT_FOUND"),
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBusinessRuleError creates a non-retryable business rule violation.
func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (identical
// by convention).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeQueryParseFailed:           "QUERY_PARSE_FAILED",
	ErrCodeInvalidPagination:          "INVALID_PAGINATION",
	ErrCodeGenAIUnavailable:           "GENAI_UNAVAILABLE",
	ErrCodeGenAITimeout:               "GENAI_TIMEOUT",
	ErrCodeGenAIResponseInvalid:       "GENAI_RESPONSE_INVALID",
	ErrCodeGenAINotConfigured:         "GENAI_NOT_CONFIGURED",
	ErrCodeStoreConnectionFailed:      "STORE_CONNECTION_FAILED",
	ErrCodeStoreQueryFailed:           "STORE_QUERY_FAILED",
	ErrCodeStoreTimeout:               "STORE_TIMEOUT",
	ErrCodeIndexNotFound:              "INDEX_NOT_FOUND",
	ErrCodeIntentClassificationFailed: "INTENT_CLASSIFICATION_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreConnectionFailed,
		ErrCodeStoreQueryFailed:
		return 3 // Retryable technical errors

	case ErrCodeStoreTimeout,
		ErrCodeGenAIUnavailable:
		return 2 // Partial retry for timeouts

	case ErrCodeGenAITimeout:
		return 1

	default:
		return 0 // Business/validation errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "GENAI"):
		return "AI"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "INDEX"):
		return "STORE"
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "INTENT"):
		return "QUERY"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
