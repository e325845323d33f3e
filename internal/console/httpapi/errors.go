package httpapi

import (
	"net/http"

	consoleerrors "github.com/vidwall/vidwall-console/internal/console/errors"
)

type HTTPError interface {
	error
	StatusCode() int
}

type httpError struct {
	msg  string
	code int
}

func (e *httpError) Error() string {
	return e.msg
}

func (e *httpError) StatusCode() int {
	return e.code
}

func ErrInvalidRequest(msg string) error {
	return &httpError{msg: msg, code: http.StatusBadRequest}
}

func ErrNotFound(msg string) error {
	return &httpError{msg: msg, code: http.StatusNotFound}
}

func ErrConflict(msg string) error {
	return &httpError{msg: msg, code: http.StatusConflict}
}

// statusForError maps engine errors onto HTTP status codes. Validation
// failures are the caller's fault, domain rejections come back from the
// streaming backend, and transport or protocol trouble means the backend
// is unreachable or misbehaving.
func statusForError(err error) (int, string) {
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode(), he.Error()
	}

	switch {
	case consoleerrors.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case consoleerrors.IsDomain(err):
		return http.StatusConflict, err.Error()
	case consoleerrors.IsTransport(err):
		return http.StatusBadGateway, err.Error()
	case consoleerrors.IsProtocol(err):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
