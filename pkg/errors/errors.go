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

	// Site configuration errors
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrUndefinedVariable ErrorCode = "UNDEFINED_VARIABLE"

	// Tool settings errors
	ErrSettingsLoad ErrorCode = "SETTINGS_LOAD"

	// Rendering errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateSyntax   ErrorCode = "TEMPLATE_SYNTAX"
	ErrRender           ErrorCode = "RENDER"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// PubtreeError represents a structured error with code and details
type PubtreeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PubtreeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PubtreeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface. Two PubtreeErrors match on their code.
func (e *PubtreeError) Is(target error) bool {
	var targetErr *PubtreeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PubtreeError with the given code and message
func New(code ErrorCode, message string) *PubtreeError {
	return &PubtreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PubtreeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PubtreeError {
	return &PubtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PubtreeError
func Wrap(err error, code ErrorCode, message string) *PubtreeError {
	if err == nil {
		return nil
	}
	return &PubtreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PubtreeError {
	if err == nil {
		return nil
	}
	return &PubtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PubtreeError) WithDetail(key string, value interface{}) *PubtreeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pubErr *PubtreeError
	if errors.As(err, &pubErr) {
		return pubErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PubtreeError
func GetErrorCode(err error) ErrorCode {
	var pubErr *PubtreeError
	if errors.As(err, &pubErr) {
		return pubErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PubtreeError
func GetErrorDetails(err error) map[string]interface{} {
	var pubErr *PubtreeError
	if errors.As(err, &pubErr) {
		return pubErr.Details
	}
	return nil
}
