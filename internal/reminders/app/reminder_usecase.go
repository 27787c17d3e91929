// Package app реализует бизнес-логику сервиса напоминаний.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/api"
	"goremind/internal/reminders/ports/repositories"
	"goremind/pkg/logger"
)

// ListLimit - максимальное число документов, возвращаемых list.
const ListLimit = 1000

// Константы для логирования.
const (
	methodCreate = "ReminderUseCase.CreateReminder"
	methodList   = "ReminderUseCase.ListReminders"
	methodGet    = "ReminderUseCase.GetReminder"
	methodUpdate = "ReminderUseCase.UpdateReminder"
	methodDelete = "ReminderUseCase.DeleteReminder"

	msgInvalidRequest   = "reminder request rejected by validation"
	msgInvalidID        = "malformed reminder id"
	msgReminderCreated  = "reminder created"
	msgReminderUpdated  = "reminder updated"
	msgReminderDeleted  = "reminder deleted"
	msgNothingToUpdate  = "update request carries no fields"
	msgRepositoryFailed = "reminder repository operation failed"
)

// Контексты ошибок.
const (
	errCtxValidating = "validating reminder"
	errCtxCreating   = "creating reminder"
	errCtxListing    = "listing reminders"
	errCtxGetting    = "getting reminder"
	errCtxUpdating   = "updating reminder"
	errCtxDeleting   = "deleting reminder"
	errCtxHealth     = "checking storage"
)

// ReminderUseCase реализует api.ReminderService поверх репозитория.
type ReminderUseCase struct {
	repo      repositories.ReminderRepository
	validator *Validator
	timeout   time.Duration
}

// Option настраивает ReminderUseCase.
type Option func(*ReminderUseCase)

// WithOperationTimeout ограничивает длительность каждого обращения к хранилищу.
func WithOperationTimeout(d time.Duration) Option {
	return func(uc *ReminderUseCase) {
		uc.timeout = d
	}
}

// NewReminderUseCase создает новый экземпляр ReminderUseCase.
func NewReminderUseCase(repo repositories.ReminderRepository, opts ...Option) api.ReminderService {
	uc := &ReminderUseCase{
		repo:      repo,
		validator: NewValidator(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *ReminderUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.timeout)
}

// CreateReminder проверяет запрос и сохраняет новое напоминание.
func (uc *ReminderUseCase) CreateReminder(ctx context.Context, req *dto.CreateReminderRequest) (*entities.Reminder, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate))

	if req == nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.NewValidationError("request body is required"))
	}

	if err := uc.validator.ValidateCreate(req); err != nil {
		log.Debug(ctx, msgInvalidRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	reminder := entities.NewReminder(req.Title, req.Description, req.DueDate.TimePtr())

	opCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.repo.Create(opCtx, reminder); err != nil {
		log.Error(ctx, msgRepositoryFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	log.Info(ctx, msgReminderCreated, zap.String("reminderID", reminder.ID))
	return reminder, nil
}

// ListReminders возвращает все напоминания в порядке хранилища.
func (uc *ReminderUseCase) ListReminders(ctx context.Context) ([]*entities.Reminder, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList))

	opCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	reminders, err := uc.repo.List(opCtx, ListLimit)
	if err != nil {
		log.Error(ctx, msgRepositoryFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}
	if reminders == nil {
		reminders = make([]*entities.Reminder, 0)
	}
	return reminders, nil
}

// GetReminder возвращает напоминание по идентификатору.
func (uc *ReminderUseCase) GetReminder(ctx context.Context, id string) (*entities.Reminder, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGet), zap.String("reminderID", id))

	if !entities.IsValidID(id) {
		log.Debug(ctx, msgInvalidID)
		return nil, fmt.Errorf("%s %q: %w", errCtxGetting, id, entities.ErrNotFound)
	}

	opCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	reminder, err := uc.repo.GetByID(opCtx, id)
	if err != nil {
		logRepositoryError(ctx, log, err)
		return nil, fmt.Errorf("%s %q: %w", errCtxGetting, id, err)
	}
	return reminder, nil
}

// UpdateReminder применяет частичное обновление к напоминанию.
func (uc *ReminderUseCase) UpdateReminder(ctx context.Context, id string, req *dto.UpdateReminderRequest) (*entities.Reminder, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.String("reminderID", id))

	if !entities.IsValidID(id) {
		log.Debug(ctx, msgInvalidID)
		return nil, fmt.Errorf("%s %q: %w", errCtxUpdating, id, entities.ErrNotFound)
	}
	if req == nil {
		req = &dto.UpdateReminderRequest{}
	}
	if err := uc.validator.ValidatePatch(req); err != nil {
		log.Debug(ctx, msgInvalidRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	opCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	current, err := uc.repo.GetByID(opCtx, id)
	if err != nil {
		logRepositoryError(ctx, log, err)
		return nil, fmt.Errorf("%s %q: %w", errCtxUpdating, id, err)
	}

	patch := toPatch(req)
	if patch.IsEmpty() {
		log.Debug(ctx, msgNothingToUpdate)
		return current, nil
	}

	updated := patch.Apply(current)
	if err := uc.repo.Update(opCtx, updated); err != nil {
		logRepositoryError(ctx, log, err)
		return nil, fmt.Errorf("%s %q: %w", errCtxUpdating, id, err)
	}

	log.Info(ctx, msgReminderUpdated)
	return updated, nil
}

// DeleteReminder удаляет напоминание.
func (uc *ReminderUseCase) DeleteReminder(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("reminderID", id))

	if !entities.IsValidID(id) {
		log.Debug(ctx, msgInvalidID)
		return fmt.Errorf("%s %q: %w", errCtxDeleting, id, entities.ErrNotFound)
	}

	opCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.repo.Delete(opCtx, id); err != nil {
		logRepositoryError(ctx, log, err)
		return fmt.Errorf("%s %q: %w", errCtxDeleting, id, err)
	}

	log.Info(ctx, msgReminderDeleted)
	return nil
}

// Health проверяет доступность хранилища.
func (uc *ReminderUseCase) Health(ctx context.Context) error {
	opCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.repo.Ping(opCtx); err != nil {
		return fmt.Errorf("%s: %w", errCtxHealth, err)
	}
	return nil
}

func toPatch(req *dto.UpdateReminderRequest) entities.Patch {
	var p entities.Patch
	if req.Title.Set && !req.Title.Null {
		title := req.Title.Value
		p.Title = &title
	}
	if req.Description.Set {
		if req.Description.Null {
			p.ClearDescription = true
		} else {
			d := req.Description.Value
			p.Description = &d
		}
	}
	if req.DueDate.Set {
		if req.DueDate.Null {
			p.ClearDueDate = true
		} else {
			due := req.DueDate.Value.Time
			p.DueDate = &due
		}
	}
	return p
}

func logRepositoryError(ctx context.Context, log *logger.Logger, err error) {
	if errors.Is(err, entities.ErrNotFound) {
		log.Debug(ctx, entities.ErrNotFound.Error())
		return
	}
	log.Error(ctx, msgRepositoryFailed, zap.Error(err))
}
