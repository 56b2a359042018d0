package service

import "net/http"

// StatusError is a business failure carrying the HTTP status the handler
// layer should answer with. Store-level failures are passed through as-is
// and end up as 500s.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func badRequest(message string) *StatusError {
	return &StatusError{Code: http.StatusBadRequest, Message: message}
}

func notFound(message string) *StatusError {
	return &StatusError{Code: http.StatusNotFound, Message: message}
}

func dataConflict(message string) *StatusError {
	return &StatusError{Code: http.StatusConflict, Message: message}
}

func forbidden(message string) *StatusError {
	return &StatusError{Code: http.StatusForbidden, Message: message}
}
