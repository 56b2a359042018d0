package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"reportd/internal/report/auth"
	"reportd/internal/report/handler"
)

func RegisterRoutes(e *echo.Echo, h *handler.ReportHandler, tokens *auth.TokenManager) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	api := e.Group("/api")
	api.Use(handler.RequestIDMiddleware)

	api.GET("/ping", h.Ping)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/verify/email/:token", h.VerifyEmail)

	// Company-scoped routes require a valid access token.
	company := api.Group("/company")
	company.Use(handler.JWTMiddleware(tokens))
	company.POST("/user", h.AddUser)
	company.POST("/ability", h.AddAbility)
	company.POST("/project", h.AddProject)
	company.POST("/activity", h.AddActivity)
}
