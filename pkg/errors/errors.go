// Package errors defines the coded errors used across deps. Every failure
// that reaches the command line carries an ErrorCode, which decides the
// exit status and lets tests match failures without comparing messages.
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// ErrorCode identifies a class of failure
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// global config and manifest text
	ErrConfig        ErrorCode = "CONFIG"
	ErrManifest      ErrorCode = "MANIFEST"
	ErrManifestFound ErrorCode = "MANIFEST_EXISTS"

	// URL derivation, ref selection and manifest validation
	ErrResolution ErrorCode = "RESOLUTION"

	// credentials
	ErrAuth        ErrorCode = "AUTH"
	ErrEnvironment ErrorCode = "ENVIRONMENT"

	// version control
	ErrBackend ErrorCode = "BACKEND"

	// vendor directory and links
	ErrFileSystem    ErrorCode = "FILESYSTEM"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// command line
	ErrUnknownCommand ErrorCode = "UNKNOWN_COMMAND"
)

// DepsError is an error with a code, a message, optional details and an
// optional cause.
type DepsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *DepsError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *DepsError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DepsError with the same code
func (e *DepsError) Is(target error) bool {
	var t *DepsError
	return errors.As(target, &t) && t.Code == e.Code
}

// WithDetail sets a detail and returns e
func (e *DepsError) WithDetail(key string, value interface{}) *DepsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// DetailKeys returns the detail keys in sorted order
func (e *DepsError) DetailKeys() []string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func build(cause error, code ErrorCode, message string) *DepsError {
	return &DepsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: cause,
	}
}

func New(code ErrorCode, message string) *DepsError {
	return build(nil, code, message)
}

func Newf(code ErrorCode, format string, args ...interface{}) *DepsError {
	return build(nil, code, fmt.Sprintf(format, args...))
}

// Wrap returns nil when err is nil
func Wrap(err error, code ErrorCode, message string) *DepsError {
	if err == nil {
		return nil
	}
	return build(err, code, message)
}

// Wrapf returns nil when err is nil
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DepsError {
	if err == nil {
		return nil
	}
	return build(err, code, fmt.Sprintf(format, args...))
}

// Is and As forward to the standard library so callers need one import.
var (
	Is = errors.Is
	As = errors.As
)

// AsDepsError returns the outermost DepsError in err's chain
func AsDepsError(err error) (*DepsError, bool) {
	var e *DepsError
	ok := errors.As(err, &e)
	return e, ok
}

// IsErrorCode reports whether the outermost DepsError carries code
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := AsDepsError(err)
	return ok && e.Code == code
}

// HasErrorCode reports whether any DepsError in the chain carries code
func HasErrorCode(err error, code ErrorCode) bool {
	for {
		e, ok := AsDepsError(err)
		if !ok {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Wrapped
	}
}

// GetErrorCode returns the outermost code, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	if e, ok := AsDepsError(err); ok {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost details, or nil
func GetErrorDetails(err error) map[string]interface{} {
	if e, ok := AsDepsError(err); ok {
		return e.Details
	}
	return nil
}

// Annotate sets a detail on the outermost DepsError of err. Other errors
// are wrapped with fallback first.
func Annotate(err error, fallback ErrorCode, key string, value interface{}) error {
	if err == nil {
		return nil
	}
	e, ok := AsDepsError(err)
	if !ok {
		e = Wrap(err, fallback, fmt.Sprintf("%s %v", key, value))
	}
	return e.WithDetail(key, value)
}
