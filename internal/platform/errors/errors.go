package errors

import stderrors "errors"

// Error is the domain error type carried from the move processor to the
// transport layer.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Caller-facing message for non-internal kinds
	Cause   error  // Wrapped underlying error, never shown to callers
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the code from err, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// UserMessage returns the message safe to show a caller. Internal and
// unclassified errors collapse to fallback.
func UserMessage(err error, fallback string) string {
	var e *Error
	if !stderrors.As(err, &e) || e.Code.Kind() == KindInternal || e.Message == "" {
		return fallback
	}
	return e.Message
}
