package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fifo/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps a use case error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrBatchPersistence):
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectAlreadyExists), errors.Is(err, errs.ErrObjectAlreadyRemoved):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("path", ctx.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(status)
	}
	return ctx.JSON(status, Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
