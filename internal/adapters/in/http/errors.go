package http

import (
	"errors"
	"net/http"

	"standingorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps use case errors onto HTTP status codes.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageOf hides the text of unexpected errors.
func messageOf(err error, code int) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			return m
		}
		return http.StatusText(code)
	}
	if code == http.StatusInternalServerError {
		return http.StatusText(code)
	}
	return err.Error()
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.log.Error(ctx.Request().Context(), "request failed", err)
	}
	return ctx.JSON(code, Error{Code: code, Message: messageOf(err, code)})
}

// HTTPErrorHandler renders framework errors (unknown routes, binding
// failures) in the API's error shape.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := statusOf(err)
	_ = ctx.JSON(code, Error{Code: code, Message: messageOf(err, code)})
}
