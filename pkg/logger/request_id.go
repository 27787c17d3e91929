package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID - заголовок, в котором клиенты передают идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

// MaxRequestIDLength ограничивает длину идентификатора, принятого от клиента.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext сохраняет идентификатор запроса в контексте.
// Пустой идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// AcceptRequestID возвращает копию идентификатора из заголовка клиента
// или новый идентификатор, если значение пустое, длиннее MaxRequestIDLength
// или содержит непечатаемые символы.
func AcceptRequestID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x21 || value[i] > 0x7e {
			return GenerateRequestID()
		}
	}
	return strings.Clone(value)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID возвращает случайный UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID закрепляет request_id из ctx в полях логгера.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}
