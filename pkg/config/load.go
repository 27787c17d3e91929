// Package config предоставляет загрузку конфигурации из YAML-файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgConfigFileMissing       = "configuration file not found, using environment only"
	msgFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// ErrLoadConfiguration возвращается при ошибке чтения или разбора конфигурации.
var ErrLoadConfiguration = errors.New("failed to load configuration")

// Load читает конфигурацию типа T. Если path не пуст и файл существует,
// сначала читается файл, затем значения перекрываются переменными окружения.
// Без файла используются только переменные окружения и env-default.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, path))

	var cfg T
	var err error

	if path != "" && fileExists(path) {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		if path != "" {
			log.Warn(ctx, msgConfigFileMissing, zap.String(attrPath, path))
		}
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
