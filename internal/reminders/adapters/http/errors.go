package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/ports/api"
)

// statusByCode сопоставляет машинный код ошибки и HTTP-статус.
var statusByCode = map[string]int{
	api.CodeValidation:         fiber.StatusUnprocessableEntity,
	api.CodeNotFound:           fiber.StatusNotFound,
	api.CodeStorageUnavailable: fiber.StatusServiceUnavailable,
	api.CodeInternal:           fiber.StatusInternalServerError,
	api.CodeRouteNotFound:      fiber.StatusNotFound,
}

// writeError отправляет ответ об ошибке сервиса.
func writeError(ctx fiber.Ctx, err error, reminderID string) error {
	code := api.ErrorCode(err)
	return sendError(ctx, statusByCode[code], code, api.ErrorDetail(err, reminderID))
}

func sendError(ctx fiber.Ctx, status int, code, detail string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Detail: detail, Code: code}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}

// ErrorHandler обрабатывает ошибки, которые обработчики вернули в fiber.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			return sendError(ctx, fe.Code, api.CodeRouteNotFound, api.DetailRouteNotFound)
		case fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity, fiber.StatusBadRequest:
			return sendError(ctx, fe.Code, api.CodeValidation, fe.Message)
		}
	}
	return sendError(ctx, fiber.StatusInternalServerError, api.CodeInternal, api.DetailInternal)
}
