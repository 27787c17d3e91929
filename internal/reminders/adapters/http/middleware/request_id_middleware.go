package middleware

import (
	"github.com/gofiber/fiber/v3"

	"goremind/pkg/logger"
)

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// кладет его в контекст запроса и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.AcceptRequestID(ctx.Get(logger.HeaderRequestID))

		reqCtx := logger.NewRequestIDContext(RequestContext(ctx), requestID)
		ctx.Locals(UserContextKey, reqCtx)
		ctx.Set(logger.HeaderRequestID, requestID)

		return ctx.Next()
	}
}
