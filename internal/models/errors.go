package models

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents invalid caller input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeProvider represents a non-2xx or malformed response from an adapter
	ErrorTypeProvider ErrorType = "provider"
	// ErrorTypeTimeout represents a provider call that exceeded its deadline
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeBudgetExhausted represents a fully consumed daily budget plus reserve
	ErrorTypeBudgetExhausted ErrorType = "budget_exhausted"
	// ErrorTypeQuality is an internal signal for output below the quality gate
	ErrorTypeQuality ErrorType = "quality_below_threshold"
	// ErrorTypeUnsupportedEndpoint represents an endpoint provider kind with no adapter
	ErrorTypeUnsupportedEndpoint ErrorType = "unsupported_endpoint"
	// ErrorTypeKeyDecryption represents a stored credential that could not be decrypted
	ErrorTypeKeyDecryption ErrorType = "key_decryption"
	// ErrorTypeEmbeddingEmpty represents a zero-length vector from the embedding provider
	ErrorTypeEmbeddingEmpty ErrorType = "embedding_empty"
	// ErrorTypeInternal represents unexpected internal failures
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      string    `json:"code,omitzero"`
	Retryable bool      `json:"retryable"`
	Cause     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// IsErrorType reports whether err is an AppError of the given type
func IsErrorType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeValidation,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// NewProviderError creates a provider error
func NewProviderError(provider, message string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeProvider,
		Message:   fmt.Sprintf("provider %s error: %s", provider, message),
		Code:      fmt.Sprintf("PROVIDER_%s_ERROR", provider),
		Retryable: true,
		Cause:     cause,
	}
}

// NewTimeoutError creates a timeout error, distinct from a generic provider error
func NewTimeoutError(provider string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeTimeout,
		Message:   fmt.Sprintf("provider %s request timed out", provider),
		Code:      "PROVIDER_TIMEOUT",
		Retryable: true,
		Cause:     cause,
	}
}

// NewBudgetExhaustedError creates an error for a spent daily budget and reserve
func NewBudgetExhaustedError(spend, ceiling float64) *AppError {
	return &AppError{
		Type:      ErrorTypeBudgetExhausted,
		Message:   fmt.Sprintf("daily budget exhausted: $%.4f of $%.4f ceiling", spend, ceiling),
		Code:      "BUDGET_EXHAUSTED",
		Retryable: false,
	}
}

// NewQualityError creates the internal below-threshold signal
func NewQualityError(score, threshold float64) *AppError {
	return &AppError{
		Type:      ErrorTypeQuality,
		Message:   fmt.Sprintf("quality score %.2f below threshold %.2f", score, threshold),
		Retryable: false,
	}
}

// NewUnsupportedEndpointError creates an error for endpoint kinds with no adapter
func NewUnsupportedEndpointError(kind string) *AppError {
	return &AppError{
		Type:      ErrorTypeUnsupportedEndpoint,
		Message:   fmt.Sprintf("endpoint provider %q is not implemented", kind),
		Code:      "UNSUPPORTED_ENDPOINT_PROVIDER",
		Retryable: false,
	}
}

// NewKeyDecryptionError creates an error for undecryptable stored credentials
func NewKeyDecryptionError(cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeKeyDecryption,
		Message:   "failed to decrypt stored provider credential",
		Code:      "KEY_DECRYPTION_FAILURE",
		Retryable: false,
		Cause:     cause,
	}
}

// NewEmbeddingEmptyError creates an error for empty embedding vectors
func NewEmbeddingEmptyError(model string) *AppError {
	return &AppError{
		Type:      ErrorTypeEmbeddingEmpty,
		Message:   fmt.Sprintf("embedding model %s returned an empty vector", model),
		Code:      "EMBEDDING_EMPTY",
		Retryable: true,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeInternal,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}
