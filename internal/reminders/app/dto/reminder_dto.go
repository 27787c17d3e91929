// Package dto содержит формы запросов к сервису напоминаний.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"goremind/internal/reminders/domain/entities"
)

// Ограничения полей напоминания. Правила валидации строятся из них,
// значения maxLength в тегах jsonschema должны совпадать.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// CreateReminderRequest - тело запроса на создание напоминания.
type CreateReminderRequest struct {
	Title       string     `json:"title" jsonschema:"required,minLength=1,maxLength=200,description=The title of the reminder,example=Buy groceries"`
	Description *string    `json:"description,omitempty" jsonschema:"maxLength=2000,description=Detailed description of the reminder"`
	DueDate     *Timestamp `json:"due_date,omitempty" jsonschema:"description=Due date for the reminder,example=2023-12-31T12:00:00"`
}

// UpdateReminderRequest - тело запроса на частичное обновление.
// Отсутствующее поле не меняется, явный null сбрасывает необязательное поле.
type UpdateReminderRequest struct {
	Title       Optional[string]    `json:"title" jsonschema:"description=New title of the reminder"`
	Description Optional[string]    `json:"description" jsonschema:"description=New description or null to clear it"`
	DueDate     Optional[Timestamp] `json:"due_date" jsonschema:"description=New due date or null to clear it"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Detail string `json:"detail" jsonschema:"required,description=Human readable message"`
	Code   string `json:"code" jsonschema:"required,enum=validation_error,enum=not_found,enum=storage_unavailable,enum=internal_error,enum=route_not_found"`
}

// Optional различает отсутствующее поле, явный null и значение.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some возвращает заданное значение.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null возвращает явный null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON вызывается только для присутствующих в документе полей.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON кодирует отсутствующее значение и null как null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Timestamp - метка времени ISO-8601, допускающая запись без часового пояса.
type Timestamp struct {
	time.Time
}

// NewTimestamp оборачивает time.Time.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// UnmarshalJSON разбирает строку ISO-8601.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("due_date must be a string: %w", err)
	}
	parsed, err := entities.ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON кодирует метку времени в RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// TimePtr возвращает указатель на время или nil.
func (t *Timestamp) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
