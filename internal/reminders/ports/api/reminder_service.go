// Package api определяет интерфейс сервиса напоминаний для транспортных адаптеров.
package api

import (
	"context"

	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/domain/entities"
)

// ReminderService определяет операции над напоминаниями.
type ReminderService interface {
	CreateReminder(ctx context.Context, req *dto.CreateReminderRequest) (*entities.Reminder, error)
	ListReminders(ctx context.Context) ([]*entities.Reminder, error)
	GetReminder(ctx context.Context, id string) (*entities.Reminder, error)
	UpdateReminder(ctx context.Context, id string, req *dto.UpdateReminderRequest) (*entities.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
	Health(ctx context.Context) error
}
