package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"goremind/internal/reminders/adapters/http/middleware"
	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/api"
	"goremind/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerCreateReminder = "handling create reminder request"
	LogHandlerListReminders  = "handling list reminders request"
	LogHandlerGetReminder    = "handling get reminder request"
	LogHandlerUpdateReminder = "handling update reminder request"
	LogHandlerDeleteReminder = "handling delete reminder request"
	LogInvalidRequestBody    = "invalid request body"
	LogOperationFailed       = "reminder operation failed"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// ReminderHandler обработчик HTTP-запросов для работы с напоминаниями.
type ReminderHandler struct {
	service api.ReminderService
}

// NewReminderHandler создает новый экземпляр обработчика напоминаний.
func NewReminderHandler(service api.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// Handler возвращает обработчик операции по ее имени.
func (h *ReminderHandler) Handler(name string) (fiber.Handler, bool) {
	switch name {
	case api.OpCreateReminder:
		return h.CreateReminder, true
	case api.OpGetAllReminders:
		return h.ListReminders, true
	case api.OpGetReminder:
		return h.GetReminder, true
	case api.OpUpdateReminder:
		return h.UpdateReminder, true
	case api.OpDeleteReminder:
		return h.DeleteReminder, true
	default:
		return nil, false
	}
}

// CreateReminder обрабатывает POST /reminders/.
func (h *ReminderHandler) CreateReminder(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "ReminderHandler.CreateReminder"))
	log.Debug(reqCtx, LogHandlerCreateReminder)

	var req dto.CreateReminderRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, LogInvalidRequestBody, zap.Error(err))
		return writeError(ctx, invalidBody(err), "")
	}

	reminder, err := h.service.CreateReminder(reqCtx, &req)
	if err != nil {
		log.Debug(reqCtx, LogOperationFailed, zap.Error(err))
		return writeError(ctx, err, "")
	}

	ctx.Set(fiber.HeaderLocation, "/reminders/"+reminder.ID)
	if err := ctx.Status(fiber.StatusCreated).JSON(reminder); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListReminders обрабатывает GET /reminders/.
func (h *ReminderHandler) ListReminders(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "ReminderHandler.ListReminders"))
	log.Debug(reqCtx, LogHandlerListReminders)

	reminders, err := h.service.ListReminders(reqCtx)
	if err != nil {
		log.Debug(reqCtx, LogOperationFailed, zap.Error(err))
		return writeError(ctx, err, "")
	}

	if err := ctx.JSON(reminders); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetReminder обрабатывает GET /reminders/{reminder_id}.
func (h *ReminderHandler) GetReminder(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	id := ctx.Params(api.PathParamReminderID)
	log := logger.Log(reqCtx).With(zap.String("handler", "ReminderHandler.GetReminder"), zap.String("reminderID", id))
	log.Debug(reqCtx, LogHandlerGetReminder)

	reminder, err := h.service.GetReminder(reqCtx, id)
	if err != nil {
		log.Debug(reqCtx, LogOperationFailed, zap.Error(err))
		return writeError(ctx, err, id)
	}

	if err := ctx.JSON(reminder); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateReminder обрабатывает PUT /reminders/{reminder_id}.
func (h *ReminderHandler) UpdateReminder(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	id := ctx.Params(api.PathParamReminderID)
	log := logger.Log(reqCtx).With(zap.String("handler", "ReminderHandler.UpdateReminder"), zap.String("reminderID", id))
	log.Debug(reqCtx, LogHandlerUpdateReminder)

	var req dto.UpdateReminderRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, LogInvalidRequestBody, zap.Error(err))
		return writeError(ctx, invalidBody(err), id)
	}

	reminder, err := h.service.UpdateReminder(reqCtx, id, &req)
	if err != nil {
		log.Debug(reqCtx, LogOperationFailed, zap.Error(err))
		return writeError(ctx, err, id)
	}

	if err := ctx.JSON(reminder); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteReminder обрабатывает DELETE /reminders/{reminder_id}.
func (h *ReminderHandler) DeleteReminder(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	id := ctx.Params(api.PathParamReminderID)
	log := logger.Log(reqCtx).With(zap.String("handler", "ReminderHandler.DeleteReminder"), zap.String("reminderID", id))
	log.Debug(reqCtx, LogHandlerDeleteReminder)

	if err := h.service.DeleteReminder(reqCtx, id); err != nil {
		log.Debug(reqCtx, LogOperationFailed, zap.Error(err))
		return writeError(ctx, err, id)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Health обрабатывает GET /healthz.
func (h *ReminderHandler) Health(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)

	if err := h.service.Health(reqCtx); err != nil {
		logger.Log(reqCtx).Warn(reqCtx, "health check failed", zap.Error(err))
		return writeError(ctx, err, "")
	}
	if err := ctx.JSON(fiber.Map{"status": "ok"}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func invalidBody(err error) error {
	return entities.NewValidationError(fmt.Sprintf("%s: %v", ErrMsgInvalidRequestBody, err))
}
