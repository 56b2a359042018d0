package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reportd/internal/report/model"
	"reportd/internal/report/service"
)

type ReportHandler struct {
	Service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// Ping handles GET /api/ping
func (h *ReportHandler) Ping(c echo.Context) error {
	return respond(c, http.StatusOK, "pong")
}

// Register handles POST /api/auth/register
func (h *ReportHandler) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}

	me, err := h.Service.Register(c.Request().Context(), &req)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	return respond(c, http.StatusOK, me)
}

// Login handles POST /api/auth/login
func (h *ReportHandler) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}

	me, err := h.Service.Login(c.Request().Context(), &req)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	return respond(c, http.StatusOK, me)
}

// VerifyEmail handles GET /api/verify/email/:token
func (h *ReportHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Token required!"})
	}

	me, err := h.Service.VerifyEmail(c.Request().Context(), token)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	return respond(c, http.StatusOK, me)
}

// AddUser handles POST /api/company/user
func (h *ReportHandler) AddUser(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, ErrorBody{Message: "Authorization required!"})
	}

	var req model.AddUserReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}

	user, err := h.Service.AddUser(c.Request().Context(), caller, &req)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	user.Password = ""
	return respond(c, http.StatusOK, user)
}

// AddAbility handles POST /api/company/ability
func (h *ReportHandler) AddAbility(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, ErrorBody{Message: "Authorization required!"})
	}

	var req model.AddAbilityReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}

	ability, err := h.Service.AddAbility(c.Request().Context(), caller, &req)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	return respond(c, http.StatusOK, ability)
}

// AddProject handles POST /api/company/project
func (h *ReportHandler) AddProject(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, ErrorBody{Message: "Authorization required!"})
	}

	var req model.AddProjectReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}

	project, err := h.Service.AddProject(c.Request().Context(), caller, &req)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	return respond(c, http.StatusOK, project)
}

// AddActivity handles POST /api/company/activity
func (h *ReportHandler) AddActivity(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, ErrorBody{Message: "Authorization required!"})
	}

	var req model.AddActivityReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, ErrorBody{Message: "Invalid body"})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}

	activity, err := h.Service.AddActivity(c.Request().Context(), caller, &req)
	if err != nil {
		code, body := httpError(err)
		return respondError(c, code, body)
	}
	return respond(c, http.StatusOK, activity)
}
