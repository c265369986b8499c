package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeAuth represents bad or missing provider credentials
	ErrTypeAuth ErrorType = "authentication"
	// ErrTypeRateLimit represents provider throttling
	ErrTypeRateLimit ErrorType = "rate_limit"
	// ErrTypeTransport represents network or timeout failures talking to a provider
	ErrTypeTransport ErrorType = "transport"
	// ErrTypeUnknownAdapter represents a request for an unregistered platform
	ErrTypeUnknownAdapter ErrorType = "unknown_adapter"
	// ErrTypeBackpressure represents a full job queue
	ErrTypeBackpressure ErrorType = "backpressure"
	// ErrTypeAnalysis represents a batch that could not be analyzed
	ErrTypeAnalysis ErrorType = "analysis"
	// ErrTypeConfig represents configuration errors
	ErrTypeConfig ErrorType = "config"
	// ErrTypeInternal represents internal system errors
	ErrTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	parts := []string{string(e.Type), e.Message}

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}

	if len(e.Context) > 0 {
		contextParts := make([]string, 0, len(e.Context))
		for k, v := range e.Context {
			contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context={%s}", strings.Join(contextParts, ", ")))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// AuthError creates a new authentication error. Adapter-level auth failures
// are recoverable through the synthetic fallback, never fatal.
func AuthError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeAuth,
		Message: msg,
	}
}

// RateLimitError creates a new rate limit error for a throttling provider
func RateLimitError(platform string) *AppError {
	return &AppError{
		Type:    ErrTypeRateLimit,
		Message: fmt.Sprintf("rate limit exceeded for %s", platform),
	}
}

// TransportError creates a new transport error
func TransportError(msg string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeTransport,
		Message: msg,
		Cause:   cause,
	}
}

// UnknownAdapterError creates an error for an unregistered platform name.
// This is a configuration error surfaced at startup, not retried.
func UnknownAdapterError(platform string) *AppError {
	return &AppError{
		Type:    ErrTypeUnknownAdapter,
		Message: fmt.Sprintf("no adapter registered for platform %q", platform),
	}
}

// BackpressureError creates an error for a full job queue. Retryable by the
// caller on a later request.
func BackpressureError(capacity int) *AppError {
	return &AppError{
		Type:    ErrTypeBackpressure,
		Message: "job queue is full",
		Context: map[string]interface{}{"capacity": capacity},
	}
}

// AnalysisError creates an error for a batch that failed analysis
func AnalysisError(msg string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeAnalysis,
		Message: msg,
		Cause:   cause,
	}
}

// ConfigError creates a new configuration error
func ConfigError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeConfig,
		Message: msg,
	}
}

// InternalError creates a new internal error
func InternalError(msg string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeInternal,
		Message: msg,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}

	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}

	return appErr.Type == errType
}

// GetType returns the error type if it's an AppError, otherwise returns ErrTypeInternal
func GetType(err error) ErrorType {
	if err == nil {
		return ""
	}

	appErr, ok := err.(*AppError)
	if !ok {
		return ErrTypeInternal
	}

	return appErr.Type
}

// Retryable reports whether a caller may usefully retry after this error.
// Backpressure, throttling and transport failures are transient;
// configuration and unknown-adapter errors are not.
func Retryable(err error) bool {
	switch GetType(err) {
	case ErrTypeBackpressure, ErrTypeTransport, ErrTypeRateLimit:
		return true
	default:
		return false
	}
}
