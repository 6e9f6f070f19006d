// Package apperr carries an HTTP status alongside service errors so handlers
// can answer without knowing which layer failed.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithField attaches a per-field validation message.
func (e *Error) WithField(name, msg string) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[name] = msg
	return e
}

func newErr(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

func BadRequest(msg string) *Error   { return newErr(http.StatusBadRequest, msg) }
func Unauthorized(msg string) *Error { return newErr(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *Error    { return newErr(http.StatusForbidden, msg) }
func NotFound(msg string) *Error     { return newErr(http.StatusNotFound, msg) }
func Conflict(msg string) *Error     { return newErr(http.StatusConflict, msg) }
func Unavailable(msg string) *Error  { return newErr(http.StatusServiceUnavailable, msg) }

// Internal hides err from the client but keeps it for logging.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// From returns the *Error in err's chain, wrapping anything else as Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// StatusOf is the HTTP status for err.
func StatusOf(err error) int {
	return From(err).Status
}
