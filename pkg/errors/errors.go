package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Store errors
	ErrIO          ErrorCode = "IO"
	ErrSerialize   ErrorCode = "SERIALIZE"
	ErrDeserialize ErrorCode = "DESERIALIZE"
	ErrDataDir     ErrorCode = "DATA_DIR"

	// ErrPoisoned is returned by a registry whose lock holder panicked.
	ErrPoisoned ErrorCode = "POISONED"
)

// KeeperError represents a structured error with code and details
type KeeperError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KeeperError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KeeperError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a KeeperError with the same code
func (e *KeeperError) Is(target error) bool {
	var targetErr *KeeperError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KeeperError with the given code and message
func New(code ErrorCode, message string) *KeeperError {
	return &KeeperError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KeeperError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KeeperError {
	return &KeeperError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KeeperError
func Wrap(err error, code ErrorCode, message string) *KeeperError {
	if err == nil {
		return nil
	}
	return &KeeperError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KeeperError {
	if err == nil {
		return nil
	}
	return &KeeperError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KeeperError) WithDetail(key string, value interface{}) *KeeperError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var keeperErr *KeeperError
	if errors.As(err, &keeperErr) {
		return keeperErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KeeperError
func GetErrorCode(err error) ErrorCode {
	var keeperErr *KeeperError
	if errors.As(err, &keeperErr) {
		return keeperErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a KeeperError
func GetErrorDetails(err error) map[string]interface{} {
	var keeperErr *KeeperError
	if errors.As(err, &keeperErr) {
		return keeperErr.Details
	}
	return nil
}

// WrapPath wraps err with code and records the operation and the file
// it was acting on. The underlying error (usually a *fs.PathError) stays
// reachable through errors.As.
func WrapPath(err error, code ErrorCode, op, path string) *KeeperError {
	if err == nil {
		return nil
	}
	return Wrapf(err, code, "%s %s", op, path).
		WithDetail("op", op).
		WithDetail("path", path)
}
