// Package dberror defines the error taxonomy returned by every fallible
// operation in this module. Errors are values, never panics or exceptions;
// callers switch on Kind rather than string-matching messages.
package dberror

import (
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
)

// Kind classifies an Error for programmatic handling.
type Kind int

const (
	Unknown Kind = iota
	FileNotFound
	InvalidFileFormat
	CorruptedData
	IoError
	TableNotFound
	RowNotFound
	InvalidParameter
	OutOfMemory
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "FileNotFound"
	case InvalidFileFormat:
		return "InvalidFileFormat"
	case CorruptedData:
		return "CorruptedData"
	case IoError:
		return "IoError"
	case TableNotFound:
		return "TableNotFound"
	case RowNotFound:
		return "RowNotFound"
	case InvalidParameter:
		return "InvalidParameter"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Error is the value-returned error type carried out of this module's
// fallible operations. It always names a Kind and the file:line where it
// was raised, so a caller debugging a corrupt export can locate the exact
// decoder that gave up.
type Error struct {
	Kind    Kind
	Message string
	Source  string

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Source)
}

// Unwrap exposes the underlying cockroachdb/errors-wrapped cause, if any,
// so errors.Is/errors.As keep working across this boundary.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error of the given kind, capturing the caller's source
// location the way the reference implementation's SourceLocation does.
func New(kind Kind, format string, args ...interface{}) *Error {
	return wrap(nil, kind, format, args...)
}

// Wrap builds an Error of the given kind around an existing error, keeping
// it reachable via errors.Unwrap for callers that want the full chain.
func Wrap(cause error, kind Kind, format string, args ...interface{}) *Error {
	return wrap(cause, kind, format, args...)
}

func wrap(cause error, kind Kind, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	_, file, line, ok := runtime.Caller(2)
	src := "unknown"
	if ok {
		src = fmt.Sprintf("%s:%d", file, line)
	}
	var wrapped error
	if cause != nil {
		wrapped = errors.Wrap(cause, msg)
	} else {
		wrapped = errors.Newf("%s", msg)
	}
	return &Error{Kind: kind, Message: msg, Source: src, cause: wrapped}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
