package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"REMINDERS_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"REMINDERS_HTTP_PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"REMINDERS_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"REMINDERS_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"REMINDERS_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	BodyLimit    int           `yaml:"body_limit" env:"REMINDERS_HTTP_BODY_LIMIT" env-default:"1048576"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig управляет эндпоинтом /metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"REMINDERS_METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"REMINDERS_METRICS_PATH" env-default:"/metrics"`
}

// MCPConfig управляет транспортами MCP.
type MCPConfig struct {
	HTTPEnabled bool   `yaml:"http_enabled" env:"REMINDERS_MCP_HTTP_ENABLED" env-default:"true"`
	Path        string `yaml:"path" env:"REMINDERS_MCP_PATH" env-default:"/mcp"`
	// SSEAddress включает отдельный SSE-сервер, если не пуст.
	SSEAddress string `yaml:"sse_address" env:"REMINDERS_MCP_SSE_ADDRESS" env-default:""`
	SSEBaseURL string `yaml:"sse_base_url" env:"REMINDERS_MCP_SSE_BASE_URL" env-default:""`
}
