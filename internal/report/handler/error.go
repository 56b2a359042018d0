package handler

import (
	"errors"
	"net/http"

	"reportd/internal/report/model"
	"reportd/internal/report/repository"
	"reportd/internal/report/schema"
	"reportd/internal/report/service"
	"reportd/internal/report/util"
)

// Helper to map errors to HTTP status and body
func httpError(err error) (int, ErrorBody) {
	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, ErrorBody{Message: reqErr.Message, Fields: reqErr.Fields}
	}

	var schemaErr *schema.ValidationError
	if errors.As(err, &schemaErr) {
		return http.StatusBadRequest, ErrorBody{Message: schemaErr.Error(), Fields: schemaErr.Fields}
	}

	var statusErr *service.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code, ErrorBody{Message: statusErr.Message}
	}

	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound, ErrorBody{Message: "Not found!"}
	}

	util.GetLogger().Error("unhandled error", "error", err)
	return http.StatusInternalServerError, ErrorBody{Message: "Internal server error"}
}
