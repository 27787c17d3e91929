package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goremind/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects to running server", func(t *testing.T) {
		srv := miniredis.RunT(t)

		client, err := redis.NewClient(ctx, redis.Options{Addr: srv.Addr()})
		require.NoError(t, err)
		require.NotNil(t, client.RawClient())

		assert.NoError(t, client.Ping(ctx))
		assert.NoError(t, client.Close(ctx))
	})

	t.Run("fails when server unavailable", func(t *testing.T) {
		srv := miniredis.RunT(t)
		addr := srv.Addr()
		srv.Close()

		client, err := redis.NewClient(ctx, redis.Options{
			Addr:        addr,
			DialTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})

	t.Run("uses selected database", func(t *testing.T) {
		srv := miniredis.RunT(t)

		client, err := redis.NewClient(ctx, redis.Options{Addr: srv.Addr(), DB: 2})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close(ctx) })

		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())

		srv.Select(2)
		value, err := srv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", value)
	})
}
