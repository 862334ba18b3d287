// Package errors provides standardized error handling for the triage workers
// and their BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Input / request errors. Non-retryable: the caller must fix the input.
	ErrCodeTriageValidationFailed ErrorCode = "TRIAGE_VALIDATION_FAILED"

	// Catalog errors. Load-time only; evaluation never raises these.
	ErrCodeCatalogLoadFailed       ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogSchemaInvalid    ErrorCode = "CATALOG_SCHEMA_INVALID"
	ErrCodeCatalogReferenceUnknown ErrorCode = "CATALOG_REFERENCE_UNKNOWN"

	// Evaluation wrapper errors surfaced by the worker layer.
	ErrCodeTriageEvaluationFailed ErrorCode = "TRIAGE_EVALUATION_FAILED"

	// Infra errors.
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeAlertSendFailed          ErrorCode = "ALERT_SEND_FAILED"
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

// BPMNError represents an error that can be thrown to the workflow engine.
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

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ConvertToBPMNError maps a StandardError onto the workflow error contract.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// GetRetryCount returns how many workflow-level retries a code deserves.
// Validation and catalog-content errors never retry: re-running the same
// input against the same catalog cannot succeed.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed:
		return 3
	case ErrCodeAlertSendFailed:
		return 3
	case ErrCodeCatalogLoadFailed:
		return 1
	}
	return 0
}

// GetErrorCategory buckets codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeTriageValidationFailed:
		return "validation"
	case ErrCodeCatalogLoadFailed, ErrCodeCatalogSchemaInvalid, ErrCodeCatalogReferenceUnknown:
		return "catalog"
	case ErrCodeDatabaseConnectionFailed, ErrCodeAlertSendFailed:
		return "infrastructure"
	}
	return "internal"
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTriageValidationFailed,
		Message:   "Triage input failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadError creates a retryable catalog load error.
func NewCatalogLoadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Failed to load symptom catalog",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogSchemaError creates a non-retryable catalog schema error.
func NewCatalogSchemaError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogSchemaInvalid,
		Message:   "Catalog document does not match schema",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEvaluationError wraps an unexpected failure inside the worker layer.
// The engine itself always returns a decision once inputs validate; this
// code only covers worker plumbing around it.
func NewEvaluationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTriageEvaluationFailed,
		Message:   "Triage evaluation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlertSendError creates a retryable alert dispatch error.
func NewAlertSendError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertSendFailed,
		Message:   "Failed to dispatch emergency alert",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
