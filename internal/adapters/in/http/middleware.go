package http

import (
	"time"

	"standingorders/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestContext copies the request id (set by echo's RequestID middleware)
// and the acting user into the request's log context.
func RequestContext(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				ctx = log.WithRequestID(ctx, id)
			}
			if user := req.Header.Get(ActorHeader); user != "" {
				ctx = log.WithUserID(ctx, user)
			}

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// Logging writes one line per finished request.
func Logging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ctx := log.WithFields(c.Request().Context(), map[string]any{
				"method":     c.Request().Method,
				"path":       c.Path(),
				"status":     c.Response().Status,
				"latency_ms": time.Since(start).Milliseconds(),
			})
			log.Info(ctx, "request.complete")

			return nil
		}
	}
}
