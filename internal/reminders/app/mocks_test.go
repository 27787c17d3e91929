package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"goremind/internal/reminders/domain/entities"
)

type mockReminderRepository struct {
	mock.Mock
}

func (m *mockReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *mockReminderRepository) List(ctx context.Context, limit int) ([]*entities.Reminder, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reminder), args.Error(1)
}

func (m *mockReminderRepository) GetByID(ctx context.Context, id string) (*entities.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *mockReminderRepository) Update(ctx context.Context, reminder *entities.Reminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *mockReminderRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReminderRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
