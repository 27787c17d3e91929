package config

import (
	"errors"
	"fmt"
	"time"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ErrUnknownDriver возвращается для неподдерживаемого драйвера.
var ErrUnknownDriver = errors.New("unknown storage driver")

// StorageConfig выбирает хранилище документов.
type StorageConfig struct {
	Driver           string        `yaml:"driver" env:"REMINDERS_STORAGE_DRIVER" env-default:"mongo"`
	OperationTimeout time.Duration `yaml:"operation_timeout" env:"REMINDERS_STORAGE_OPERATION_TIMEOUT" env-default:"5s"`
}

// Validate проверяет имя драйвера.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverMongo, DriverPostgres, DriverRedis:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}

// MongoConfig содержит настройки подключения к MongoDB.
type MongoConfig struct {
	URI                    string        `yaml:"uri" env:"REMINDERS_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database               string        `yaml:"database" env:"REMINDERS_MONGO_DATABASE" env-default:"reminders_db"`
	Collection             string        `yaml:"collection" env:"REMINDERS_MONGO_COLLECTION" env-default:"reminders"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout" env:"REMINDERS_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" env:"REMINDERS_MONGO_SERVER_SELECTION_TIMEOUT" env-default:"5s"`
	MaxPoolSize            uint64        `yaml:"max_pool_size" env:"REMINDERS_MONGO_MAX_POOL_SIZE" env-default:"100"`
}

// PostgresConfig содержит настройки подключения к Postgres.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"REMINDERS_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"REMINDERS_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"REMINDERS_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"REMINDERS_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"REMINDERS_POSTGRES_DB" env-default:"reminders"`
	MinConn        int32  `yaml:"min_conn" env:"REMINDERS_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int32  `yaml:"max_conn" env:"REMINDERS_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"REMINDERS_POSTGRES_MIGRATIONS_PATH" env-default:"migrations/reminders"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"REMINDERS_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"REMINDERS_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"REMINDERS_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"REMINDERS_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"REMINDERS_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"REMINDERS_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"REMINDERS_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"REMINDERS_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"REMINDERS_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"REMINDERS_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"REMINDERS_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
