package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"goremind/pkg/logger"
)

func observedLogger(level zapcore.Level) (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logger.NewFromZap(zap.New(core)), logs
}

func TestNewLogger(t *testing.T) {
	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range []string{"debug", "info", "warn", "warning", "error", "invalid", ""} {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestLoggerAddsRequestID(t *testing.T) {
	log, logs := observedLogger(zapcore.DebugLevel)

	ctx := logger.NewRequestIDContext(context.Background(), "req-123")
	log.Info(ctx, "with id")
	log.Info(context.Background(), "without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-123", entries[0].ContextMap()[logger.RequestID])
	assert.NotContains(t, entries[1].ContextMap(), logger.RequestID)
}

func TestLoggerLevels(t *testing.T) {
	log, logs := observedLogger(zapcore.WarnLevel)
	ctx := context.Background()

	log.Debug(ctx, "debug")
	log.Info(ctx, "info")
	log.Warn(ctx, "warn")
	log.Error(ctx, "error")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "warn", logs.All()[0].Message)
	assert.Equal(t, "error", logs.All()[1].Message)
}

func TestWith(t *testing.T) {
	log, logs := observedLogger(zapcore.DebugLevel)

	child := log.With(zap.String("component", "test"))
	assert.NotSame(t, log, child)

	child.Info(context.Background(), "message")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test", logs.All()[0].ContextMap()["component"])
}

func TestWithRequestID(t *testing.T) {
	log, _ := observedLogger(zapcore.DebugLevel)

	t.Run("returns new logger when request id present", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")
		assert.NotSame(t, log, log.WithRequestID(ctx))
	})

	t.Run("returns same logger without request id", func(t *testing.T) {
		assert.Same(t, log, log.WithRequestID(context.Background()))
	})
}

func TestRequestIDContext(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "custom")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "custom", id)
	})

	t.Run("generates id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Len(t, id, 36)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}

func TestAcceptRequestID(t *testing.T) {
	t.Run("keeps valid id", func(t *testing.T) {
		assert.Equal(t, "req-123", logger.AcceptRequestID("req-123"))
	})

	t.Run("trims surrounding spaces", func(t *testing.T) {
		assert.Equal(t, "req-123", logger.AcceptRequestID("  req-123 "))
	})

	t.Run("accepts id of max length", func(t *testing.T) {
		id := strings.Repeat("a", logger.MaxRequestIDLength)
		assert.Equal(t, id, logger.AcceptRequestID(id))
	})

	rejected := map[string]string{
		"empty":        "",
		"too long":     strings.Repeat("a", logger.MaxRequestIDLength+1),
		"inner space":  "req 123",
		"control char": "req\n123",
		"non ascii":    "запрос",
	}
	for name, value := range rejected {
		t.Run("replaces "+name, func(t *testing.T) {
			id := logger.AcceptRequestID(value)
			assert.NotEqual(t, value, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		log, _ := observedLogger(zapcore.DebugLevel)
		ctx := logger.NewContext(context.Background(), log)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, got)
	})

	t.Run("logger missing", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("non-logger value under another key", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "not a logger")

		_, err := logger.FromContext(ctx)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("fallback when nothing configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("init keeps first logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		require.NoError(t, logger.InitGlobalLogger(logger.Production, "info"))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLogger(logger.Development, "debug"))
		assert.Same(t, first, logger.Log(context.Background()))
	})

	t.Run("context logger wins over global", func(t *testing.T) {
		global, _ := observedLogger(zapcore.DebugLevel)
		logger.SetGlobalLogger(global)

		local, _ := observedLogger(zapcore.DebugLevel)
		ctx := logger.NewContext(context.Background(), local)

		assert.Same(t, local, logger.Log(ctx))
		assert.Same(t, global, logger.Log(context.Background()))
	})
}
