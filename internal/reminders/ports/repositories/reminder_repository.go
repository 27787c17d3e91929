// Package repositories определяет интерфейсы хранилищ сервиса напоминаний.
package repositories

import (
	"context"

	"goremind/internal/reminders/domain/entities"
)

// ReminderRepository определяет интерфейс коллекции документов-напоминаний.
// Отсутствие документа сообщается как entities.ErrNotFound,
// сбои хранилища как entities.ErrStorageUnavailable.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.Reminder) error
	List(ctx context.Context, limit int) ([]*entities.Reminder, error)
	GetByID(ctx context.Context, id string) (*entities.Reminder, error)
	Update(ctx context.Context, reminder *entities.Reminder) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
