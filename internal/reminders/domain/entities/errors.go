package entities

import (
	"errors"
	"strings"
)

// Доменные ошибки.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("reminder not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError содержит сообщения о нарушенных ограничениях полей.
type ValidationError struct {
	Fields []string
}

// NewValidationError создает ошибку проверки с сообщениями по полям.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, "; ")
}

// Is позволяет сопоставлять ошибку с ErrValidation через errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
