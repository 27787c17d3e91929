// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"goremind/pkg/logger"
)

// Hook - функция освобождения ресурса.
type Hook func(context.Context) error

// Phase - группа хуков, выполняемых параллельно.
// Фазы выполняются по очереди: следующая начинается после завершения всех хуков предыдущей.
type Phase []Hook

// Константы для сообщений logger.
const (
	LogSignalReceived  = "shutdown signal received"
	LogContextDone     = "parent context done, shutting down"
	LogHookFailed      = "shutdown hook failed"
	LogShutdownTimeout = "shutdown timeout exceeded"
	LogPhasesSkipped   = "remaining shutdown phases skipped"
)

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем параллельно выполняет все хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	WaitPhases(ctx, timeout, hooks)
}

// WaitPhases блокирует выполнение до сигнала или отмены ctx и выполняет фазы по порядку.
func WaitPhases(ctx context.Context, timeout time.Duration, phases ...Phase) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)

	select {
	case sig := <-sigCh:
		log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogContextDone)
	}

	RunPhases(context.WithoutCancel(ctx), timeout, phases...)
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	RunPhases(ctx, timeout, hooks)
}

// RunPhases выполняет фазы по очереди с общим timeout.
// Если фаза не успела завершиться, оставшиеся фазы не запускаются.
func RunPhases(ctx context.Context, timeout time.Duration, phases ...Phase) {
	log := logger.Log(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for i, phase := range phases {
		if runPhase(ctx, phase) {
			continue
		}
		log.Warn(ctx, LogShutdownTimeout, zap.Duration("timeout", timeout), zap.Int("phase", i))
		if rest := len(phases) - i - 1; rest > 0 {
			log.Warn(ctx, LogPhasesSkipped, zap.Int("count", rest))
		}
		return
	}
}

// runPhase возвращает false, если ctx истек раньше, чем завершились хуки.
func runPhase(ctx context.Context, phase Phase) bool {
	log := logger.Log(ctx)

	var wg sync.WaitGroup
	for _, hook := range phase {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
