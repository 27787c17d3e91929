// Команда reminders-mcp обслуживает инструменты напоминаний по MCP через stdio.
// Логи пишутся в stderr, stdout занят протоколом.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "goremind/internal/reminders/adapters/mcp"
	"goremind/internal/reminders/adapters/storage"
	"goremind/internal/reminders/app"
	"goremind/internal/reminders/config"
	"goremind/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger   = "failed to initialize logger"
	ErrLoadConfig   = "failed to load configuration"
	ErrOpenStorage  = "failed to open storage"
	ErrServeStdio   = "MCP stdio server stopped with error"
	ErrCloseStorage = "failed to close storage"
)

// Константы для сообщений сервиса.
const (
	LogServingStdio = "serving MCP over stdio"
	LogStopped      = "MCP stdio server stopped"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := logger.InitGlobalLogger(logger.Production, os.Getenv("REMINDERS_LOGGER_LEVEL")); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ErrInitLogger, err)
		return 1
	}

	ctx := logger.NewRequestIDContext(context.Background(), "")
	log := logger.Log(ctx)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	st, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrOpenStorage, zap.Error(err))
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Shutdown.GetTimeout())
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error(ctx, ErrCloseStorage, zap.Error(err))
		}
	}()

	service := app.NewReminderUseCase(st.Repository, app.WithOperationTimeout(cfg.Storage.OperationTimeout))
	mcpServer := mcpadapter.NewServer(service)

	log.Info(ctx, LogServingStdio, zap.String("driver", st.Driver))
	if err := server.ServeStdio(mcpServer.MCPServer()); err != nil && !strings.Contains(err.Error(), context.Canceled.Error()) {
		log.Error(ctx, ErrServeStdio, zap.Error(err))
		return 1
	}

	log.Info(ctx, LogStopped)
	return 0
}
