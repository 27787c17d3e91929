// Package mongo хранит напоминания в коллекции MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/repositories"
	"goremind/pkg/logger"
)

// Имена по умолчанию, совпадающие с исходной раскладкой данных.
const (
	DefaultDatabase   = "reminders_db"
	DefaultCollection = "reminders"

	idField = "id"
)

// Контексты ошибок.
const (
	errCtxIndex  = "failed to ensure reminder indexes"
	errCtxInsert = "failed to insert reminder"
	errCtxFind   = "failed to find reminders"
	errCtxDecode = "failed to decode reminder"
	errCtxGet    = "failed to get reminder"
	errCtxUpdate = "failed to replace reminder"
	errCtxDelete = "failed to delete reminder"
	errCtxPing   = "failed to ping mongodb"
)

// ReminderRepository реализует repositories.ReminderRepository.
type ReminderRepository struct {
	coll *mongo.Collection
}

// NewReminderRepository создает репозиторий поверх коллекции.
func NewReminderRepository(coll *mongo.Collection) *ReminderRepository {
	return &ReminderRepository{coll: coll}
}

var _ repositories.ReminderRepository = (*ReminderRepository)(nil)

// EnsureIndexes создает уникальный индекс по полю id.
func (r *ReminderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: idField, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("reminders_id_unique"),
	})
	if err != nil {
		return unavailable(errCtxIndex, err)
	}
	return nil
}

// Create вставляет документ напоминания.
func (r *ReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	log := logger.Log(ctx).With(zap.String("method", "ReminderRepository.Create"))

	if _, err := r.coll.InsertOne(ctx, reminder); err != nil {
		return unavailable(errCtxInsert, err)
	}

	log.Debug(ctx, "reminder inserted", zap.String("reminderID", reminder.ID))
	return nil
}

// List возвращает не более limit документов в естественном порядке коллекции.
func (r *ReminderRepository) List(ctx context.Context, limit int) ([]*entities.Reminder, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, unavailable(errCtxFind, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	reminders := make([]*entities.Reminder, 0)
	for cursor.Next(ctx) {
		var reminder entities.Reminder
		if err := cursor.Decode(&reminder); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxDecode, err)
		}
		reminders = append(reminders, &reminder)
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable(errCtxFind, err)
	}
	return reminders, nil
}

// GetByID возвращает напоминание или entities.ErrNotFound.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*entities.Reminder, error) {
	var reminder entities.Reminder
	err := r.coll.FindOne(ctx, bson.D{{Key: idField, Value: id}}).Decode(&reminder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrNotFound
		}
		return nil, unavailable(errCtxGet, err)
	}
	return &reminder, nil
}

// Update заменяет документ напоминания.
func (r *ReminderRepository) Update(ctx context.Context, reminder *entities.Reminder) error {
	result, err := r.coll.ReplaceOne(ctx, bson.D{{Key: idField, Value: reminder.ID}}, reminder)
	if err != nil {
		return unavailable(errCtxUpdate, err)
	}
	if result.MatchedCount == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Delete удаляет документ напоминания.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: idField, Value: id}})
	if err != nil {
		return unavailable(errCtxDelete, err)
	}
	if result.DeletedCount == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Ping проверяет доступность сервера.
func (r *ReminderRepository) Ping(ctx context.Context) error {
	err := r.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return unavailable(errCtxPing, err)
	}
	return nil
}

func unavailable(errCtx string, err error) error {
	return fmt.Errorf("%s: %w: %w", errCtx, entities.ErrStorageUnavailable, err)
}
