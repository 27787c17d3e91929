package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"

	"goremind/pkg/metrics"
)

// unmatchedRoute - метка для запросов, не попавших ни в один маршрут.
const unmatchedRoute = "unmatched"

const unmatchedKey = "routeUnmatched"

// MarkUnmatched помечает запрос, обработанный catch-all обработчиком.
func MarkUnmatched(ctx fiber.Ctx) {
	ctx.Locals(unmatchedKey, true)
}

// NewMetricsMiddleware считает запросы и их длительность по шаблону маршрута.
func NewMetricsMiddleware(collector *metrics.Collector) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()
		collector.HTTPInFlight.Inc()
		defer collector.HTTPInFlight.Dec()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		route := unmatchedRoute
		if unmatched, _ := ctx.Locals(unmatchedKey).(bool); !unmatched {
			route = ctx.Route().Path
		}
		// Метки живут в реестре дольше запроса, строки fiber указывают в буфер fasthttp.
		collector.ObserveHTTP(utils.CopyString(ctx.Method()), utils.CopyString(route), status, time.Since(start))
		return err
	}
}
