package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body: the HTTP code repeated, the payload
// and a success flag clients can branch on without inspecting the status.
type Envelope struct {
	Code    int  `json:"code"`
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

// ErrorBody is the Data payload of a failed response.
type ErrorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Code: code, Data: data, Success: code < http.StatusBadRequest})
}

func respondError(c echo.Context, code int, body ErrorBody) error {
	return c.JSON(code, Envelope{Code: code, Data: body, Success: false})
}
