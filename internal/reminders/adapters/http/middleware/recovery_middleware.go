package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Сообщения для паники.
const (
	LogServerPanic       = "server panic"
	LogPanicResponseFail = "failed to send error response after panic"

	CodeInternalError   = "internal_error"
	DetailInternalError = "internal server error"
)

// NewRecoveryMiddleware создает промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				log := logger.Log(requestCtx)
				log.Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if sendErr := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"detail": DetailInternalError,
					"code":   CodeInternalError,
				}); sendErr != nil {
					log.Error(requestCtx, LogPanicResponseFail, zap.Error(sendErr))
				}
				err = nil
			}
		}()

		return ctx.Next()
	}
}
