// Package apperr holds the typed errors services return. The HTTP layer reads
// the Kind to pick a status code, so services never import net/http types.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindForbidden
	KindUnauthorized
	KindBadRequest
	KindInternal
	// KindGone marks a record that existed but was removed or superseded.
	KindGone
	// KindUnavailable marks an outage of a collaborator such as the PDF
	// renderer, object storage or the mail relay.
	KindUnavailable
)

var statusByKind = map[Kind]int{
	KindNotFound:     http.StatusNotFound,
	KindValidation:   http.StatusBadRequest,
	KindBadRequest:   http.StatusBadRequest,
	KindConflict:     http.StatusConflict,
	KindForbidden:    http.StatusForbidden,
	KindUnauthorized: http.StatusUnauthorized,
	KindInternal:     http.StatusInternalServerError,
	KindGone:         http.StatusGone,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// Error is a failure a client can be told about. Message is safe to show;
// Err is the cause and stays in the logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Details any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to a response status. Unknown kinds are treated
// as bad requests.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusBadRequest
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error     { return newError(KindNotFound, message) }
func Validation(message string) *Error   { return newError(KindValidation, message) }
func Conflict(message string) *Error     { return newError(KindConflict, message) }
func Forbidden(message string) *Error    { return newError(KindForbidden, message) }
func Unauthorized(message string) *Error { return newError(KindUnauthorized, message) }
func BadRequest(message string) *Error   { return newError(KindBadRequest, message) }
func Internal(message string) *Error     { return newError(KindInternal, message) }
func Gone(message string) *Error         { return newError(KindGone, message) }

// Unavailable reports that a collaborator could not serve the request.
func Unavailable(message string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: cause}
}

// FieldErrors is a validation error listing each rejected field with the
// reason.
func FieldErrors(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: fields}
}

// GetKind returns the kind of the first *Error in the chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
