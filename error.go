package apitrail

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// EEXTRACT means a document was retrieved but no symbols could be
	// extracted from it by any strategy.
	EEXTRACT = "extract"

	// EPROBE means a release required by a search could not be probed.
	EPROBE = "probe"

	// ERANGE means a requested release range holds fewer than two releases.
	ERANGE = "range"

	ENETWORK = "network"
	ETIMEOUT = "timeout"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("apitrail error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProbeError
	if errors.As(err, &pe) {
		return EPROBE
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.message()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// ProbeError reports a release that could not be probed during a search,
// either because its document could not be fetched or because no symbols
// could be extracted from it.
type ProbeError struct {
	Release Release
	Family  Family
	Err     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s %s: %v", e.Family, e.Release, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Cause returns the error code of the underlying failure.
func (e *ProbeError) Cause() string {
	var inner *Error
	if errors.As(e.Err, &inner) {
		return inner.Code
	}
	return EINTERNAL
}

func (e *ProbeError) message() string {
	var inner *Error
	if errors.As(e.Err, &inner) {
		return fmt.Sprintf("could not probe %s %s: %s", e.Family, e.Release, inner.Message)
	}
	return fmt.Sprintf("could not probe %s %s: %v", e.Family, e.Release, e.Err)
}
