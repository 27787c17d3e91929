// Package metrics собирает метрики Prometheus сервиса в собственном реестре.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты операций для меток.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector хранит метрики приложения.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	ToolCalls *prometheus.CounterVec
}

// NewCollector создает коллектор с пространством имен namespace.
// Каждый вызов получает новый реестр, поэтому коллекторы в тестах не конфликтуют.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests being served",
			},
		),
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mcp_tool_calls_total",
				Help:      "Total number of MCP tool calls",
			},
			[]string{"tool", "result"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.HTTPInFlight,
		c.ToolCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry возвращает реестр коллектора.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler отдает метрики в формате экспозиции Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP записывает завершенный HTTP-запрос.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveToolCall записывает вызов MCP-инструмента.
func (c *Collector) ObserveToolCall(tool string, failed bool) {
	if c == nil {
		return
	}
	result := ResultOK
	if failed {
		result = ResultError
	}
	c.ToolCalls.WithLabelValues(tool, result).Inc()
}
