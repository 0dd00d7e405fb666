package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
)

// statusFor maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is a server-side fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrDuplicateEmail),
		errors.Is(err, application.ErrDuplicateCPF),
		errors.Is(err, application.ErrDuplicateRG):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrCEPNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidTwoFactorCode),
		errors.Is(err, application.ErrTwoFactorNotEnabled),
		errors.Is(err, application.ErrIncorrectPassword),
		errors.Is(err, application.ErrInvalidCEP):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrCEPUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	resp := response.Error[any](c, status, msg, nil)
	c.JSON(resp.Status, resp)
}
