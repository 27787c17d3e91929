// Package http содержит HTTP-транспорт сервиса напоминаний на fiber.
package http

import (
	"fmt"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"goremind/internal/reminders/adapters/http/middleware"
	"goremind/internal/reminders/ports/api"
	"goremind/pkg/metrics"
)

// Служебные пути.
const (
	RootPath    = "/"
	OpenAPIPath = "/openapi.json"
	DocsPath    = "/docs"
	RedocPath   = "/redoc"
	HealthPath  = "/healthz"
)

// Options настраивает HTTP-приложение.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int

	// Metrics включает middleware и эндпоинт MetricsPath, если не nil.
	Metrics     *metrics.Collector
	MetricsPath string

	// MCPHandler монтируется на MCPPath для всех методов, если не nil.
	MCPHandler nethttp.Handler
	MCPPath    string
}

// NewApp создает fiber-приложение со всеми маршрутами сервиса.
func NewApp(service api.ReminderService, opts Options) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      APITitle,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	if err := SetupRouter(app, service, opts); err != nil {
		return nil, err
	}
	return app, nil
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, service api.ReminderService, opts Options) error {
	handler := NewReminderHandler(service)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	if opts.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(opts.Metrics))
	}

	ops := api.Operations()
	for _, op := range ops {
		h, ok := handler.Handler(op.Name)
		if !ok {
			return fmt.Errorf("no handler for operation %q", op.Name)
		}
		app.Add([]string{op.Method}, FiberPath(op.Path), h)
	}

	doc, err := BuildOpenAPI(ops)
	if err != nil {
		return err
	}

	mcpPath := ""
	if opts.MCPHandler != nil && opts.MCPPath != "" {
		mcpPath = opts.MCPPath
		app.All(mcpPath, adaptor.HTTPHandler(opts.MCPHandler))
	}

	app.Get(RootPath, rootHandler(ops, mcpPath))
	app.Get(OpenAPIPath, openAPIHandler(doc))
	app.Get(DocsPath, htmlHandler(swaggerUIPage))
	app.Get(RedocPath, htmlHandler(redocPage))
	app.Get(HealthPath, handler.Health)

	if opts.Metrics != nil && opts.MetricsPath != "" {
		app.Get(opts.MetricsPath, adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		middleware.MarkUnmatched(ctx)
		return sendError(ctx, fiber.StatusNotFound, api.CodeRouteNotFound, api.DetailRouteNotFound)
	})
	return nil
}

// FiberPath переводит шаблон OpenAPI /a/{id} в синтаксис fiber /a/:id.
func FiberPath(path string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			b.WriteString(path)
			return b.String()
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			b.WriteString(path)
			return b.String()
		}
		b.WriteString(path[:start])
		b.WriteByte(':')
		b.WriteString(path[start+1 : start+end])
		path = path[start+end+1:]
	}
}

func rootHandler(ops []api.Operation, mcpPath string) fiber.Handler {
	endpoints := make(map[string]string, len(ops))
	tools := make([]string, 0, len(ops))
	for _, op := range ops {
		endpoints[op.Name] = op.Endpoint()
		tools = append(tools, op.Name)
	}

	body := fiber.Map{
		"app":           APITitle,
		"version":       APIVersion,
		"documentation": DocsPath,
		"endpoints":     endpoints,
	}
	if mcpPath != "" {
		body["mcp"] = fiber.Map{"path": mcpPath, "tools": tools}
	}

	return func(ctx fiber.Ctx) error {
		return ctx.JSON(body)
	}
}
