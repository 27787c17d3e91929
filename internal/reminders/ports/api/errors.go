package api

import (
	"errors"
	"strings"

	"goremind/internal/reminders/domain/entities"
)

// Машинные коды ошибок, общие для HTTP и MCP.
const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeStorageUnavailable = "storage_unavailable"
	CodeInternal           = "internal_error"
	CodeRouteNotFound      = "route_not_found"
)

// Сообщения для клиентов.
const (
	DetailStorageUnavailable = "storage is unavailable, try again later"
	DetailInternal           = "internal server error"
	DetailRouteNotFound      = "route not found"
)

// ErrorCode возвращает машинный код для ошибки сервиса.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return CodeValidation
	case errors.Is(err, entities.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, entities.ErrStorageUnavailable):
		return CodeStorageUnavailable
	default:
		return CodeInternal
	}
}

// ErrorDetail возвращает сообщение об ошибке, безопасное для клиента.
// Подробности сбоев хранилища и внутренних ошибок не раскрываются.
func ErrorDetail(err error, reminderID string) string {
	var verr *entities.ValidationError
	switch {
	case errors.As(err, &verr):
		if len(verr.Fields) == 0 {
			return entities.ErrValidation.Error()
		}
		return strings.Join(verr.Fields, "; ")
	case errors.Is(err, entities.ErrValidation):
		return err.Error()
	case errors.Is(err, entities.ErrNotFound):
		if reminderID == "" {
			return "Reminder not found"
		}
		return "Reminder with ID " + reminderID + " not found"
	case errors.Is(err, entities.ErrStorageUnavailable):
		return DetailStorageUnavailable
	default:
		return DetailInternal
	}
}
