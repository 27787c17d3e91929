// Package redis предоставляет создание клиента Redis с проверкой соединения.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
	LogClosing    = "closing Redis connection"

	ErrConnect = "failed to connect to Redis"
	ErrClose   = "failed to close Redis connection"
)

// Options содержит настройки подключения к Redis.
type Options struct {
	Addr            string
	Password        string
	DB              int
	PoolSize        int
	MinIdle         int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Client обертывает клиент Redis.
type Client struct {
	client *redis.Client
}

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogConnecting, zap.String("addr", opts.Addr), zap.Int("db", opts.DB))

	rdb := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdle,
		DialTimeout:     opts.DialTimeout,
		ReadTimeout:     opts.ReadTimeout,
		WriteTimeout:    opts.WriteTimeout,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: rdb}, nil
}

// Ping проверяет доступность Redis.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединение с Redis.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrClose, err)
	}
	return nil
}

// RawClient возвращает базовый клиент Redis.
func (c *Client) RawClient() *redis.Client {
	return c.client
}
