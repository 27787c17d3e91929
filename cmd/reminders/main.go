package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	httpadapter "goremind/internal/reminders/adapters/http"
	mcpadapter "goremind/internal/reminders/adapters/mcp"
	"goremind/internal/reminders/adapters/storage"
	"goremind/internal/reminders/app"
	"goremind/internal/reminders/config"
	"goremind/pkg/logger"
	"goremind/pkg/metrics"
	"goremind/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "REMINDERS_LOGGER_MODE"
	EnvLoggerLevel = "REMINDERS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStorage          = "failed to open storage"
	ErrCreateHTTPApp        = "failed to create HTTP application"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrStartSSEServer       = "failed to start MCP SSE server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "reminders service started"
	LogServiceShutdownDone = "reminders service shutdown complete"
	LogOpeningStorage      = "opening storage"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingSSE         = "starting MCP SSE server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStoppingSSE         = "stopping MCP SSE server"
	LogClosingStorage      = "closing storage"
)

// MetricsNamespace - префикс метрик сервиса.
const MetricsNamespace = "reminders"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger
		ctx = logger.NewContext(ctx, log)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogOpeningStorage, zap.String("driver", cfg.Storage.Driver))
		st, err := storage.Open(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStorage, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		service := app.NewReminderUseCase(st.Repository, app.WithOperationTimeout(cfg.Storage.OperationTimeout))

		var collector *metrics.Collector
		if cfg.Metrics.Enabled {
			collector = metrics.NewCollector(MetricsNamespace)
		}

		mcpServer := mcpadapter.NewServer(service, mcpadapter.WithMetrics(collector))

		opts := httpadapter.Options{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
			Metrics:      collector,
			MetricsPath:  cfg.Metrics.Path,
		}
		if cfg.MCP.HTTPEnabled {
			opts.MCPHandler = mcpServer.StreamableHTTPHandler()
			opts.MCPPath = cfg.MCP.Path
		}

		log.Info(ctx, LogInitHTTPServer)
		httpApp, err := httpadapter.NewApp(service, opts)
		if err != nil {
			log.Error(ctx, ErrCreateHTTPApp, zap.Error(err))
			if closeErr := st.Close(ctx); closeErr != nil {
				log.Error(ctx, shutdown.LogHookFailed, zap.Error(closeErr))
			}
			exitCode = 1
			return
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		var sse *server.SSEServer
		if cfg.MCP.SSEAddress != "" {
			sse = mcpServer.NewSSEServer(cfg.MCP.SSEBaseURL)
			log.Info(ctx, LogStartingSSE, zap.String("address", cfg.MCP.SSEAddress))
			go func() {
				if err := sse.Start(cfg.MCP.SSEAddress); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
					log.Error(ctx, ErrStartSSEServer, zap.Error(err))
				}
			}()
		}

		// Хранилище закрывается после остановки серверов.
		shutdown.WaitPhases(ctx, cfg.Shutdown.GetTimeout(),
			shutdown.Phase{
				// Остановка HTTP сервера.
				func(ctx context.Context) error {
					log.Info(ctx, LogStoppingHTTP)
					return httpApp.ShutdownWithContext(ctx)
				},
				// Остановка SSE сервера.
				func(ctx context.Context) error {
					if sse == nil {
						return nil
					}
					log.Info(ctx, LogStoppingSSE)
					return sse.Shutdown(ctx)
				},
			},
			shutdown.Phase{
				// Закрытие хранилища.
				func(ctx context.Context) error {
					log.Info(ctx, LogClosingStorage, zap.String("driver", st.Driver))
					return st.Close(ctx)
				},
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
