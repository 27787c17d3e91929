package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goremind/internal/reminders/adapters/postgres"
	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/repositories"
	"goremind/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func sampleReminder() *entities.Reminder {
	desc := "Milk, eggs, bread"
	due := time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)
	return &entities.Reminder{
		ID:          uuid.NewString(),
		Title:       "Buy groceries",
		Description: &desc,
		DueDate:     &due,
		CreatedAt:   time.Date(2023, 12, 1, 9, 30, 0, 123000000, time.UTC),
	}
}

func document(t *testing.T, r *entities.Reminder) []byte {
	t.Helper()
	doc, err := json.Marshal(r)
	require.NoError(t, err)
	return doc
}

func TestNewReminderRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := postgres.NewReminderRepository(mock)
	assert.Implements(t, (*repositories.ReminderRepository)(nil), repo)
}

func TestReminderRepository_Create(t *testing.T) {
	ctx := testContext(t)
	reminder := sampleReminder()

	t.Run("inserts json document", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reminders (id, document) VALUES ($1, $2)")).
			WithArgs(reminder.ID, document(t, reminder)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = postgres.NewReminderRepository(mock).Create(ctx, reminder)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure is storage unavailable", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO reminders").WillReturnError(errDatabaseConnection)

		err = postgres.NewReminderRepository(mock).Create(ctx, reminder)
		assert.ErrorIs(t, err, entities.ErrStorageUnavailable)
		assert.ErrorIs(t, err, errDatabaseConnection)
	})
}

func TestReminderRepository_List(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns documents in sequence order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		first, second := sampleReminder(), sampleReminder()
		second.Description = nil
		second.DueDate = nil

		mock.ExpectQuery(regexp.QuoteMeta("SELECT document FROM reminders ORDER BY seq LIMIT $1")).
			WithArgs(1000).
			WillReturnRows(pgxmock.NewRows([]string{"document"}).
				AddRow(document(t, first)).
				AddRow(document(t, second)))

		list, err := postgres.NewReminderRepository(mock).List(ctx, 1000)

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first, list[0])
		assert.Equal(t, second, list[1])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT document FROM reminders").
			WithArgs(10).
			WillReturnRows(pgxmock.NewRows([]string{"document"}))

		list, err := postgres.NewReminderRepository(mock).List(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("query failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT document FROM reminders").WillReturnError(errDatabaseConnection)

		_, err = postgres.NewReminderRepository(mock).List(ctx, 10)
		assert.ErrorIs(t, err, entities.ErrStorageUnavailable)
	})

	t.Run("corrupt document", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT document FROM reminders").
			WithArgs(10).
			WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow([]byte(`{"title": 5}`)))

		_, err = postgres.NewReminderRepository(mock).List(ctx, 10)
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrStorageUnavailable)
	})
}

func TestReminderRepository_GetByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		reminder := sampleReminder()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT document FROM reminders WHERE id = $1")).
			WithArgs(reminder.ID).
			WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(document(t, reminder)))

		got, err := postgres.NewReminderRepository(mock).GetByID(ctx, reminder.ID)
		require.NoError(t, err)
		assert.Equal(t, reminder, got)
	})

	t.Run("no rows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT document FROM reminders WHERE id").WillReturnError(pgx.ErrNoRows)

		_, err = postgres.NewReminderRepository(mock).GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT document FROM reminders WHERE id").WillReturnError(errDatabaseConnection)

		_, err = postgres.NewReminderRepository(mock).GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, entities.ErrStorageUnavailable)
	})
}

func TestReminderRepository_Update(t *testing.T) {
	ctx := testContext(t)
	reminder := sampleReminder()

	cases := []struct {
		name    string
		result  pgconn.CommandTag
		dbErr   error
		wantErr error
	}{
		{"updated", pgxmock.NewResult("UPDATE", 1), nil, nil},
		{"missing row", pgxmock.NewResult("UPDATE", 0), nil, entities.ErrNotFound},
		{"driver failure", pgconn.CommandTag{}, errDatabaseConnection, entities.ErrStorageUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta("UPDATE reminders SET document = $2 WHERE id = $1")).
				WithArgs(reminder.ID, document(t, reminder))
			if tc.dbErr != nil {
				exp.WillReturnError(tc.dbErr)
			} else {
				exp.WillReturnResult(tc.result)
			}

			err = postgres.NewReminderRepository(mock).Update(ctx, reminder)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReminderRepository_Delete(t *testing.T) {
	ctx := testContext(t)
	id := uuid.NewString()

	t.Run("deleted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reminders WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewReminderRepository(mock).Delete(ctx, id))
	})

	t.Run("missing row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM reminders").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = postgres.NewReminderRepository(mock).Delete(ctx, id)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM reminders").WillReturnError(errDatabaseConnection)

		err = postgres.NewReminderRepository(mock).Delete(ctx, id)
		assert.ErrorIs(t, err, entities.ErrStorageUnavailable)
	})
}

func TestReminderRepository_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(errDatabaseConnection)
	mock.ExpectPing()

	repo := postgres.NewReminderRepository(mock)
	assert.ErrorIs(t, repo.Ping(context.Background()), entities.ErrStorageUnavailable)
	assert.NoError(t, repo.Ping(context.Background()))
}
