package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StructuredLogger tags each request with an id and logs its outcome.
// A well-formed X-Request-ID sent by the client is reused.
func StructuredLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		c.Locals("requestID", requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		latency := time.Since(start)

		logAttrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.String("ip", c.IP()),
		}

		if userID := GetUserID(c); userID != "" {
			logAttrs = append(logAttrs, slog.String("user_id", userID))
		}

		if err != nil {
			logAttrs = append(logAttrs, slog.String("error", err.Error()))
			logger.LogAttrs(c.UserContext(), slog.LevelError, "request error", logAttrs...)
		} else if status >= 500 {
			logger.LogAttrs(c.UserContext(), slog.LevelError, "server error", logAttrs...)
		} else if status >= 400 {
			logger.LogAttrs(c.UserContext(), slog.LevelWarn, "client error", logAttrs...)
		} else {
			logger.LogAttrs(c.UserContext(), slog.LevelInfo, "request completed", logAttrs...)
		}

		return err
	}
}

// GetRequestID returns the id assigned by StructuredLogger
func GetRequestID(c *fiber.Ctx) string {
	requestID, ok := c.Locals("requestID").(string)
	if !ok {
		return ""
	}
	return requestID
}
