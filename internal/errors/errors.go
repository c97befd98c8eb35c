package errors

import (
	"errors"
	"fmt"
)

// Code categorizes engine errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller passed a bad value
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a lookup missed (ability kind, archetype, entity)
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates a duplicate registration
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates a broken engine invariant
	CodeInternal Code = "internal"

	// CodeValidation indicates bad game data or config
	CodeValidation Code = "validation"

	// CodeInvalidStatKind indicates the sentinel stat kind was used as a key
	CodeInvalidStatKind Code = "invalid_stat_kind"

	// CodeUnresolvedDependency indicates a required collaborator was never set up
	CodeUnresolvedDependency Code = "unresolved_dependency"
)

// Error is an engine error with a code and optional metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a metadata key (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap adds context to err, keeping the code if err is already an *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var gameErr *Error
	if errors.As(err, &gameErr) {
		return &Error{
			Code:    gameErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(gameErr.Meta),
		}
	}

	return &Error{Code: CodeUnknown, Message: message, Cause: err}
}

// Wrapf wraps with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps and overrides the code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// InvalidStatKind reports use of the sentinel stat kind. kind is anything
// printable so this package stays free of the stats package.
func InvalidStatKind(kind any) *Error {
	return Newf(CodeInvalidStatKind, "invalid stat kind %v", kind).WithMeta("stat_kind", kind)
}

// UnresolvedDependency reports a collaborator that was nil or never registered
func UnresolvedDependency(name string) *Error {
	return Newf(CodeUnresolvedDependency, "unresolved dependency: %s", name).WithMeta("dependency", name)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Is reports whether any error in err's chain carries code
func Is(err error, code Code) bool {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool             { return Is(err, CodeNotFound) }
func IsInvalidArgument(err error) bool      { return Is(err, CodeInvalidArgument) }
func IsAlreadyExists(err error) bool        { return Is(err, CodeAlreadyExists) }
func IsInternal(err error) bool             { return Is(err, CodeInternal) }
func IsValidation(err error) bool           { return Is(err, CodeValidation) }
func IsInvalidStatKind(err error) bool      { return Is(err, CodeInvalidStatKind) }
func IsUnresolvedDependency(err error) bool { return Is(err, CodeUnresolvedDependency) }

// GetCode returns the outermost code, or CodeUnknown
func GetCode(err error) Code {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the outermost metadata map
func GetMeta(err error) map[string]any {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
