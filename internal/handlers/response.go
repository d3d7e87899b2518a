package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpaccess/backend/internal/pkg/apierr"
	errs "github.com/gpaccess/backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError translates the service-layer error taxonomy into the
// HTTP surface: not-found conditions become 404, constraint breaches and
// bad input become 400, everything else (consistency errors included) is a
// 500.
func RespondServiceError(c *gin.Context, err error) {
	ae := classify(err)
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

func classify(err error) *apierr.Error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return apierr.New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrConflict):
		return apierr.New(http.StatusBadRequest, "conflict", err)
	case errors.Is(err, errs.ErrInvalidArgument):
		return apierr.New(http.StatusBadRequest, "invalid_argument", err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal", err)
	}
}
