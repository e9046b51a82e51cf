package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindBadRequest
)

// MsgInternal is the only message a client sees for an internal failure.
const MsgInternal = "Hubo un error"

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// Error is the error type services return to HTTP handlers.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields ...FieldError) *Error {
	msg := "invalid request"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Field is shorthand for a single-field validation error.
func Field(field, msg string) *Error {
	return Validation(FieldError{Field: field, Message: msg})
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// BadRequest is a request rejected for a reason not tied to a single field.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}

// KindOf reports the kind of err, treating unknown errors as internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to its response status. Conflicts answer 400.
func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation, KindConflict, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
