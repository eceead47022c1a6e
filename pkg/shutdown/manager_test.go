package shutdown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_ShutdownOrder(t *testing.T) {
	reg := prometheus.NewRegistry()
	sm := NewManager(zap.NewNop(), time.Second, reg)

	var mu sync.Mutex
	var order []string
	record := func(name string, err error) ShutdownFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return err
		}
	}

	sm.Register("metrics-server", record("metrics-server", nil))
	sm.Register("event-watcher", record("event-watcher", errors.New("stuck")))

	errs := sm.Shutdown()

	assert.Equal(t, []string{"event-watcher", "metrics-server"}, order)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs["event-watcher"], "stuck")

	count, err := testutil.GatherAndCount(reg, "unitctl_shutdown_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestManager_WaitForShutdownOnContext(t *testing.T) {
	sm := NewManager(zap.NewNop(), time.Second, nil)

	called := false
	sm.Register("component", func(ctx context.Context) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := sm.WaitForShutdown(ctx)
	assert.Empty(t, errs)
	assert.True(t, called)
}

func TestBackgroundWorker_Shutdown(t *testing.T) {
	worker := NewBackgroundWorker(context.Background(), "poller", zap.NewNop())

	started := make(chan struct{})
	worker.Start(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})
	<-started

	require.NoError(t, worker.Shutdown(context.Background()))
	// second call is a no-op
	require.NoError(t, worker.Shutdown(context.Background()))

	select {
	case <-worker.Done():
	default:
		t.Fatal("worker context should be cancelled")
	}
}

func TestBackgroundWorker_ShutdownTimeout(t *testing.T) {
	worker := NewBackgroundWorker(context.Background(), "stubborn", zap.NewNop())

	release := make(chan struct{})
	worker.Start(func(ctx context.Context) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := worker.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
