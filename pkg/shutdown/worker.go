package shutdown

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// BackgroundWorker runs one long-lived function and stops it on shutdown
type BackgroundWorker struct {
	name   string
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewBackgroundWorker creates a worker whose context derives from parent
func NewBackgroundWorker(parent context.Context, name string, logger *zap.Logger) *BackgroundWorker {
	ctx, cancel := context.WithCancel(parent)

	return &BackgroundWorker{
		name:   name,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the background worker.
// The work function should respect ctx.Done() for cancellation.
func (bw *BackgroundWorker) Start(work func(ctx context.Context)) {
	bw.wg.Add(1)

	go func() {
		defer bw.wg.Done()

		bw.logger.Info("Background worker started",
			zap.String("worker", bw.name),
		)

		work(bw.ctx)

		bw.logger.Info("Background worker stopped",
			zap.String("worker", bw.name),
		)
	}()
}

// Done is closed once the worker's context is cancelled
func (bw *BackgroundWorker) Done() <-chan struct{} {
	return bw.ctx.Done()
}

// Shutdown cancels the worker and waits for it to return, giving up when ctx expires
func (bw *BackgroundWorker) Shutdown(ctx context.Context) error {
	bw.once.Do(func() {
		bw.logger.Info("Stopping background worker",
			zap.String("worker", bw.name),
		)
		bw.cancel()
	})

	done := make(chan struct{})
	go func() {
		bw.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		bw.logger.Warn("Background worker shutdown timeout",
			zap.String("worker", bw.name),
		)
		return ctx.Err()
	}
}
