package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"reportd/internal/report/auth"
	"reportd/internal/report/service"
)

const callerContextKey = "reportd.caller"

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Request().Header.Get(echo.HeaderXRequestID)
		if reqID == "" {
			b := make([]byte, 16)
			_, _ = rand.Read(b)
			reqID = hex.EncodeToString(b)
		}
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)
		return next(c)
	}
}

// JWTMiddleware parses the bearer token and stores the caller identity in
// the request context. Requests without a valid token never reach the
// handler.
func JWTMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return respondError(c, http.StatusUnauthorized, ErrorBody{Message: "Authorization required!"})
			}

			userID, companyID, err := tokens.Parse(raw)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, ErrorBody{Message: "Authorization required!"})
			}

			c.Set(callerContextKey, service.Caller{UserID: userID, CompanyID: companyID})
			return next(c)
		}
	}
}

func callerFrom(c echo.Context) (service.Caller, bool) {
	caller, ok := c.Get(callerContextKey).(service.Caller)
	return caller, ok
}
