// Package config содержит конфигурацию сервиса напоминаний.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	pkgconfig "goremind/pkg/config"
	"goremind/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "reminders"

// PathEnv - переменная окружения с путем к необязательному YAML-файлу.
const PathEnv = "REMINDERS_CONFIG_PATH"

// Сообщения логгера.
const (
	LogConfigSummary = "reminders configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	MCP      MCPConfig      `yaml:"mcp"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// Load читает конфигурацию из файла REMINDERS_CONFIG_PATH (если задан) и окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(PathEnv))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Duration("storage_timeout", cfg.Storage.OperationTimeout),
		zap.Bool("mcp_http_enabled", cfg.MCP.HTTPEnabled),
		zap.String("mcp_sse_address", cfg.MCP.SSEAddress),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить через env-default.
func (c *Config) Validate() error {
	return c.Storage.Validate()
}
