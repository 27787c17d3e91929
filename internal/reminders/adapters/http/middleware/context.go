// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// UserContextKey - ключ Locals, под которым хранится контекст запроса с логгером и request id.
const UserContextKey = "userContext"

// RequestContext возвращает контекст запроса, подготовленный middleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}
