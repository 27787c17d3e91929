// Package storage открывает выбранное в конфигурации хранилище и
// собирает для него репозиторий напоминаний.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	mongoadapter "goremind/internal/reminders/adapters/mongo"
	pgadapter "goremind/internal/reminders/adapters/postgres"
	redisadapter "goremind/internal/reminders/adapters/redis"
	"goremind/internal/reminders/config"
	"goremind/internal/reminders/ports/repositories"
	"goremind/pkg/db/mongo"
	"goremind/pkg/db/postgres"
	"goremind/pkg/db/redis"
	"goremind/pkg/logger"
)

// Сообщения логгера.
const (
	LogOpening = "opening reminder storage"
	LogOpened  = "reminder storage ready"

	ErrOpenStorage = "failed to open reminder storage"
)

// Storage объединяет репозиторий и функцию освобождения клиента базы.
type Storage struct {
	Driver     string
	Repository repositories.ReminderRepository
	closer     func(context.Context) error
}

// Close освобождает клиент базы данных.
func (s *Storage) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}

// Open подключается к хранилищу, указанному в cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogOpening)

	var (
		st  *Storage
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		st, err = openMongo(ctx, cfg.Mongo)
	case config.DriverPostgres:
		st, err = openPostgres(ctx, cfg.Postgres)
	case config.DriverRedis:
		st, err = openRedis(ctx, cfg.Redis)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
	if err != nil {
		log.Error(ctx, ErrOpenStorage, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpenStorage, err)
	}

	st.Driver = cfg.Storage.Driver
	log.Info(ctx, LogOpened)
	return st, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig) (*Storage, error) {
	db, err := mongo.Connect(ctx, mongo.Options{
		URI:                    cfg.URI,
		Database:               cfg.Database,
		ConnectTimeout:         cfg.ConnectTimeout,
		ServerSelectionTimeout: cfg.ServerSelectionTimeout,
		MaxPoolSize:            cfg.MaxPoolSize,
	})
	if err != nil {
		return nil, err
	}

	repo := mongoadapter.NewReminderRepository(db.Collection(cfg.Collection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	return &Storage{Repository: repo, closer: db.Close}, nil
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (*Storage, error) {
	source, err := postgres.MigrationsSource(cfg.MigrationsPath)
	if err != nil {
		return nil, err
	}
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source); err != nil {
		return nil, err
	}

	db, err := postgres.New(ctx, postgres.Options{
		DSN:     cfg.GetDSN(),
		MinConn: cfg.MinConn,
		MaxConn: cfg.MaxConn,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{Repository: pgadapter.NewReminderRepository(db.Pool()), closer: db.Close}, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (*Storage, error) {
	client, err := redis.NewClient(ctx, redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdle:         cfg.MinIdle,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{Repository: redisadapter.NewReminderRepository(client.RawClient()), closer: client.Close}, nil
}
