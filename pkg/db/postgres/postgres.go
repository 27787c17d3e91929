// Package postgres предоставляет пул соединений с PostgreSQL и применение миграций.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// Options содержит параметры пула соединений.
type Options struct {
	DSN     string
	MinConn int32
	MaxConn int32
}

// Database представляет соединение с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул соединений и проверяет доступность базы.
func New(ctx context.Context, opts Options) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting,
		zap.Int32("min_conn", opts.MinConn),
		zap.Int32("max_conn", opts.MaxConn))

	poolCfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	if opts.MinConn > 0 {
		poolCfg.MinConns = opts.MinConn
	}
	if opts.MaxConn > 0 {
		poolCfg.MaxConns = opts.MaxConn
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул соединений.
func (db *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
	return nil
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
