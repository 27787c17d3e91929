package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp возвращается, если строка не является меткой времени ISO-8601.
var ErrInvalidTimestamp = errors.New("invalid ISO-8601 timestamp")

// TimestampPrecision - точность хранения меток времени.
// Совпадает с точностью BSON datetime.
const TimestampPrecision = time.Millisecond

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Now возвращает текущее время в UTC с точностью хранения.
func Now() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}

// ParseTimestamp разбирает метку времени ISO-8601.
// Значения без часового пояса считаются UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NormalizeTime(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// NormalizeTime приводит время к UTC и точности хранения.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

func normalizeOptionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := NormalizeTime(*t)
	return &n
}
