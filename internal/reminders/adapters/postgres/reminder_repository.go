// Package postgres хранит напоминания в PostgreSQL в виде JSONB-документов.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/repositories"
	"goremind/pkg/logger"
)

// SQL-запросы репозитория.
const (
	queryInsert = `INSERT INTO reminders (id, document) VALUES ($1, $2)`
	queryList   = `SELECT document FROM reminders ORDER BY seq LIMIT $1`
	queryGet    = `SELECT document FROM reminders WHERE id = $1`
	queryUpdate = `UPDATE reminders SET document = $2 WHERE id = $1`
	queryDelete = `DELETE FROM reminders WHERE id = $1`
)

// Контексты ошибок.
const (
	errCtxEncode = "failed to encode reminder document"
	errCtxDecode = "failed to decode reminder document"
	errCtxInsert = "failed to insert reminder"
	errCtxList   = "failed to list reminders"
	errCtxScan   = "failed to scan reminder"
	errCtxGet    = "failed to get reminder"
	errCtxUpdate = "failed to update reminder"
	errCtxDelete = "failed to delete reminder"
	errCtxPing   = "failed to ping database"
)

// PgxPool - подмножество методов пула, используемое репозиторием.
// Ему удовлетворяют *pgxpool.Pool и pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// ReminderRepository реализует repositories.ReminderRepository.
type ReminderRepository struct {
	pool PgxPool
}

// NewReminderRepository создает репозиторий напоминаний.
func NewReminderRepository(pool PgxPool) repositories.ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create сохраняет новое напоминание.
func (r *ReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	log := logger.Log(ctx).With(zap.String("method", "ReminderRepository.Create"))
	log.Debug(ctx, "inserting reminder", zap.String("reminderID", reminder.ID))

	doc, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncode, err)
	}

	if _, err := r.pool.Exec(ctx, queryInsert, reminder.ID, doc); err != nil {
		return unavailable(errCtxInsert, err)
	}
	return nil
}

// List возвращает не более limit напоминаний в порядке вставки.
func (r *ReminderRepository) List(ctx context.Context, limit int) ([]*entities.Reminder, error) {
	log := logger.Log(ctx).With(zap.String("method", "ReminderRepository.List"))
	log.Debug(ctx, "listing reminders", zap.Int("limit", limit))

	rows, err := r.pool.Query(ctx, queryList, limit)
	if err != nil {
		return nil, unavailable(errCtxList, err)
	}
	defer rows.Close()

	reminders := make([]*entities.Reminder, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, unavailable(errCtxScan, err)
		}
		reminder, err := decode(doc)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable(errCtxList, err)
	}
	return reminders, nil
}

// GetByID возвращает напоминание или entities.ErrNotFound.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*entities.Reminder, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, queryGet, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		return nil, unavailable(errCtxGet, err)
	}
	return decode(doc)
}

// Update заменяет документ напоминания целиком.
func (r *ReminderRepository) Update(ctx context.Context, reminder *entities.Reminder) error {
	doc, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncode, err)
	}

	result, err := r.pool.Exec(ctx, queryUpdate, reminder.ID, doc)
	if err != nil {
		return unavailable(errCtxUpdate, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Delete удаляет напоминание.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, queryDelete, id)
	if err != nil {
		return unavailable(errCtxDelete, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Ping проверяет соединение с базой.
func (r *ReminderRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
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
