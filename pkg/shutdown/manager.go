package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// ShutdownFunc represents a function that shuts down a component
type ShutdownFunc func(context.Context) error

// Component represents a registered shutdown component
type Component struct {
	Name         string
	ShutdownFunc ShutdownFunc
}

// Manager coordinates graceful shutdown of the long-running parts of a command.
// Components shut down in REVERSE registration order (LIFO), one at a time.
type Manager struct {
	logger     *zap.Logger
	components []Component
	mu         sync.Mutex
	timeout    time.Duration

	shutdownDuration          prometheus.Histogram
	componentShutdownDuration *prometheus.HistogramVec
	shutdownErrors            *prometheus.CounterVec
}

// NewManager creates a new shutdown manager. Metrics are registered with reg when it is non-nil.
func NewManager(logger *zap.Logger, timeout time.Duration, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)
	return &Manager{
		logger:     logger,
		components: make([]Component, 0),
		timeout:    timeout,

		shutdownDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "unitctl_shutdown_duration_seconds",
			Help:    "Total time taken to shutdown gracefully",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		}),
		componentShutdownDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unitctl_component_shutdown_duration_seconds",
			Help:    "Time taken to shutdown individual components",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
		}, []string{"component"}),
		shutdownErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unitctl_shutdown_errors_total",
			Help: "Total number of shutdown errors by component",
		}, []string{"component"}),
	}
}

// Register adds a shutdown function to be called during graceful shutdown
func (sm *Manager) Register(name string, fn ShutdownFunc) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.components = append(sm.components, Component{
		Name:         name,
		ShutdownFunc: fn,
	})

	sm.logger.Debug("Registered shutdown component",
		zap.String("component", name),
		zap.Int("registration_order", len(sm.components)),
	)
}

// RegisterHTTPServer is a convenience method for registering HTTP servers
func (sm *Manager) RegisterHTTPServer(name string, server interface{ Shutdown(context.Context) error }) {
	sm.Register(name, server.Shutdown)
}

// WaitForShutdown blocks until SIGINT or SIGTERM arrives or ctx is done,
// then shuts down every registered component
func (sm *Manager) WaitForShutdown(ctx context.Context) map[string]error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		sm.logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
			zap.Duration("timeout", sm.timeout),
		)
	case <-ctx.Done():
	}

	return sm.Shutdown()
}

// Shutdown stops all registered components and returns the failures keyed by component
func (sm *Manager) Shutdown() map[string]error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	sm.mu.Lock()
	components := make([]Component, len(sm.components))
	copy(components, sm.components)
	sm.mu.Unlock()

	sm.logger.Info("Starting graceful shutdown",
		zap.Int("component_count", len(components)),
		zap.Duration("timeout", sm.timeout),
	)

	errs := make(map[string]error)
	for i := len(components) - 1; i >= 0; i-- {
		comp := components[i]
		compStart := time.Now()

		if err := comp.ShutdownFunc(ctx); err != nil {
			errs[comp.Name] = err
			sm.shutdownErrors.WithLabelValues(comp.Name).Inc()
			sm.logger.Error("Component shutdown failed",
				zap.String("component", comp.Name),
				zap.Error(err),
			)
		} else {
			sm.logger.Debug("Component shut down",
				zap.String("component", comp.Name),
				zap.Duration("elapsed", time.Since(compStart)),
			)
		}
		sm.componentShutdownDuration.WithLabelValues(comp.Name).Observe(time.Since(compStart).Seconds())
	}

	elapsed := time.Since(start)
	sm.shutdownDuration.Observe(elapsed.Seconds())
	sm.logger.Info("Graceful shutdown completed",
		zap.Int("error_count", len(errs)),
		zap.Duration("elapsed", elapsed),
	)
	return errs
}
