package middleware

import (
	"time"

	"go-crossroads/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware tags every request with an X-Request-Id, reusing the
// caller's when present.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: string(models.RequestIDKey),
	})
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	log := logger.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if id, ok := c.Locals(string(models.RequestIDKey)).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		if session := SessionFrom(c); session.UserID != "" {
			fields = append(fields, zap.String("user_id", session.UserID))
		}

		switch {
		case status >= 500:
			log.Error("request failed", append(fields, zap.Error(err))...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request handled", fields...)
		}
		return err
	}
}
