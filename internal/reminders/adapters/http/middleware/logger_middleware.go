package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Сообщения логгера.
const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, LogRequestStarted)

		err := ctx.Next()

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, LogRequestFailed, append(logFields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, LogRequestCompleted, logFields...)
		return nil
	}
}
