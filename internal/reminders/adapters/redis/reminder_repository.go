// Package redis хранит напоминания в Redis: JSON-документ на ключ и
// отсортированное множество для порядка вставки.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/repositories"
	"goremind/pkg/logger"
)

// Ключи Redis.
const (
	DocKeyPrefix = "reminders:doc:"
	IndexKey     = "reminders:index"
	SeqKey       = "reminders:seq"
)

// Контексты ошибок.
const (
	errCtxEncode = "failed to encode reminder document"
	errCtxDecode = "failed to decode reminder document"
	errCtxSeq    = "failed to allocate reminder sequence"
	errCtxCreate = "failed to store reminder"
	errCtxList   = "failed to list reminders"
	errCtxGet    = "failed to get reminder"
	errCtxUpdate = "failed to update reminder"
	errCtxDelete = "failed to delete reminder"
	errCtxPing   = "failed to ping redis"
)

// ReminderRepository реализует repositories.ReminderRepository.
type ReminderRepository struct {
	client redis.Cmdable
}

// NewReminderRepository создает репозиторий поверх клиента Redis.
func NewReminderRepository(client redis.Cmdable) repositories.ReminderRepository {
	return &ReminderRepository{client: client}
}

// DocKey возвращает ключ документа напоминания.
func DocKey(id string) string {
	return DocKeyPrefix + id
}

// Create сохраняет документ и добавляет его в индекс.
func (r *ReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	log := logger.Log(ctx).With(zap.String("method", "ReminderRepository.Create"))

	doc, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncode, err)
	}

	seq, err := r.client.Incr(ctx, SeqKey).Result()
	if err != nil {
		return unavailable(errCtxSeq, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, DocKey(reminder.ID), doc, 0)
		pipe.ZAdd(ctx, IndexKey, redis.Z{Score: float64(seq), Member: reminder.ID})
		return nil
	})
	if err != nil {
		return unavailable(errCtxCreate, err)
	}

	log.Debug(ctx, "reminder stored", zap.String("reminderID", reminder.ID), zap.Int64("seq", seq))
	return nil
}

// List читает первые limit идентификаторов индекса и их документы.
func (r *ReminderRepository) List(ctx context.Context, limit int) ([]*entities.Reminder, error) {
	if limit <= 0 {
		return []*entities.Reminder{}, nil
	}

	ids, err := r.client.ZRange(ctx, IndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, unavailable(errCtxList, err)
	}
	if len(ids) == 0 {
		return []*entities.Reminder{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = DocKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable(errCtxList, err)
	}

	reminders := make([]*entities.Reminder, 0, len(values))
	for _, v := range values {
		// Документ мог быть удален между ZRANGE и MGET.
		raw, ok := v.(string)
		if !ok {
			continue
		}
		reminder, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

// GetByID возвращает напоминание или entities.ErrNotFound.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*entities.Reminder, error) {
	raw, err := r.client.Get(ctx, DocKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrNotFound
		}
		return nil, unavailable(errCtxGet, err)
	}
	return decode(raw)
}

// Update перезаписывает существующий документ.
func (r *ReminderRepository) Update(ctx context.Context, reminder *entities.Reminder) error {
	doc, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncode, err)
	}

	ok, err := r.client.SetXX(ctx, DocKey(reminder.ID), doc, 0).Result()
	if err != nil {
		return unavailable(errCtxUpdate, err)
	}
	if !ok {
		return entities.ErrNotFound
	}
	return nil
}

// Delete удаляет документ и его запись в индексе.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, DocKey(id))
		pipe.ZRem(ctx, IndexKey, id)
		return nil
	})
	if err != nil {
		return unavailable(errCtxDelete, err)
	}
	if deleted.Val() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Ping проверяет соединение с Redis.
func (r *ReminderRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable(errCtxPing, err)
	}
	return nil
}

func decode(doc []byte) (*entities.Reminder, error) {
	var reminder entities.Reminder
	if err := json.Unmarshal(doc, &reminder); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDecode, err)
	}
	return &reminder, nil
}

func unavailable(errCtx string, err error) error {
	return fmt.Errorf("%s: %w: %w", errCtx, entities.ErrStorageUnavailable, err)
}
