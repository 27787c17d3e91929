package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер migrate для postgres://
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file://
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrResolveMigrationsPath   = "failed to resolve migrations path"
)

// MigrationsSource превращает путь к каталогу миграций в URL источника file://.
func MigrationsSource(dir string) (string, error) {
	if strings.HasPrefix(dir, "file://") {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrResolveMigrationsPath, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// MigrateDSN применяет миграции из sourceURL к базе, заданной URL dsn.
func MigrateDSN(ctx context.Context, dsn, sourceURL string) error {
	log := logger.Log(ctx)

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", sourceURL))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied, zap.String("path", sourceURL))
	return nil
}
