// Package mongo предоставляет подключение к MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to MongoDB"
	LogConnected  = "successfully connected to MongoDB"
	LogClosing    = "closing MongoDB connection"

	ErrConnect    = "failed to connect to MongoDB"
	ErrPing       = "failed to ping MongoDB"
	ErrDisconnect = "failed to disconnect from MongoDB"
)

// Options содержит параметры подключения.
type Options struct {
	URI                    string
	Database               string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
}

// Database хранит клиент MongoDB и выбранную базу.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect создает клиент, проверяет доступность primary и выбирает базу.
func Connect(ctx context.Context, opts Options) (*Database, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogConnecting, zap.String("database", opts.Database))

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{client: client, db: client.Database(opts.Database)}, nil
}

// Collection возвращает коллекцию выбранной базы.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping проверяет доступность primary.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close отключает клиент.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDisconnect, err)
	}
	return nil
}
