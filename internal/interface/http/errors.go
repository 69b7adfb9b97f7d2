package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/application"
	"github.com/oksasatya/go-hrms/pkg/helpers"
	"github.com/oksasatya/go-hrms/pkg/response"
	"github.com/oksasatya/go-hrms/pkg/validation"
)

var badRequest = []error{
	application.ErrPasswordMismatch,
	application.ErrCodeNotFound,
	application.ErrCodeAlreadyUsed,
	application.ErrCodeExpired,
	application.ErrAlreadyVerified,
	application.ErrInvalidDateRange,
	application.ErrStartDateRequired,
	application.ErrUnsupportedAvatar,
}

// statusFor maps application errors to an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, application.ErrInvalidCredentials.Error()
	case errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, application.ErrUserNotFound.Error()
	case errors.Is(err, application.ErrJobExperienceNotFound):
		return http.StatusNotFound, application.ErrJobExperienceNotFound.Error()
	case errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict, application.ErrEmailTaken.Error()
	case errors.Is(err, application.ErrNationalIDTaken):
		return http.StatusConflict, application.ErrNationalIDTaken.Error()
	case errors.Is(err, application.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, application.ErrStorageUnavailable.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// fail writes the error envelope for err. Unexpected errors are logged, never echoed.
func fail(c *gin.Context, logger logrus.FieldLogger, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString(response.RequestIDKey),
		})
	}
	response.Error[any](c, status, msg, nil)
}

func invalidPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID reads a positive integer id from the query string, writing a 400 when absent or malformed.
func queryID(c *gin.Context, name string) (int64, bool) {
	id, ok := parseID(c.Query(name))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return id, ok
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, ok := parseID(c.Param(name))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return id, ok
}
