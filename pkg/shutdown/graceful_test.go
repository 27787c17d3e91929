package shutdown_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goremind/pkg/shutdown"
)

func TestWaitRunsHooksOnContextCancel(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, hook, hook)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancel")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
		}
		return ctx.Err()
	}

	start := time.Now()
	shutdown.Run(context.Background(), 100*time.Millisecond, slow)

	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunContinuesAfterHookError(t *testing.T) {
	var ok atomic.Bool
	failing := func(context.Context) error { return errors.New("boom") }
	succeeding := func(context.Context) error {
		ok.Store(true)
		return nil
	}

	shutdown.Run(context.Background(), time.Second, failing, succeeding)

	assert.True(t, ok.Load())
}

func TestRunHooksReceiveDeadline(t *testing.T) {
	var hasDeadline atomic.Bool
	hook := func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hasDeadline.Store(ok)
		return nil
	}

	shutdown.Run(context.Background(), time.Second, hook)

	assert.True(t, hasDeadline.Load())
}

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) hook(name string, delay time.Duration) shutdown.Hook {
	return func(ctx context.Context) error {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		r.order = append(r.order, name)
		return nil
	}
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func TestRunPhasesOrder(t *testing.T) {
	rec := &recorder{}

	shutdown.RunPhases(context.Background(), time.Second,
		shutdown.Phase{rec.hook("http", 50*time.Millisecond), rec.hook("sse", 10*time.Millisecond)},
		shutdown.Phase{rec.hook("storage", 0)},
	)

	assert.Equal(t, []string{"sse", "http", "storage"}, rec.events())
}

func TestRunPhasesHooksWithinPhaseRunConcurrently(t *testing.T) {
	var started sync.WaitGroup
	started.Add(2)
	both := make(chan struct{})
	go func() {
		started.Wait()
		close(both)
	}()

	hook := func(ctx context.Context) error {
		started.Done()
		select {
		case <-both:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	shutdown.RunPhases(context.Background(), time.Second, shutdown.Phase{hook, hook})

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRunPhasesSkipsRemainingAfterTimeout(t *testing.T) {
	rec := &recorder{}

	shutdown.RunPhases(context.Background(), 50*time.Millisecond,
		shutdown.Phase{rec.hook("http", 5*time.Second)},
		shutdown.Phase{rec.hook("storage", 0)},
	)

	assert.Empty(t, rec.events())
}

func TestWaitPhasesOnContextCancel(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		shutdown.WaitPhases(ctx, time.Second,
			shutdown.Phase{rec.hook("http", 20*time.Millisecond)},
			shutdown.Phase{rec.hook("storage", 0)},
		)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitPhases did not return after context cancel")
	}
	assert.Equal(t, []string{"http", "storage"}, rec.events())
}
