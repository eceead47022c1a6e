package watcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/pkg/observability"
	"github.com/kevin07696/unit-client/pkg/resilience"
	"go.uber.org/zap"
)

// oldestFirst orders event pages by ascending creation time
const oldestFirst = "createdAt"

// EventLister is the part of the events facade the watcher polls
type EventLister interface {
	List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Event], error)
}

// Handler receives each new event, oldest first. An error stops the poll and the
// event is offered again on the next one.
type Handler func(ctx context.Context, event models.Event) error

// Config controls polling
type Config struct {
	Interval time.Duration
	PageSize int
	MaxPages int
	Types    []string
	Since    time.Time
}

// DefaultConfig polls every 15 seconds for events created from now on
func DefaultConfig() Config {
	return Config{
		Interval: 15 * time.Second,
		PageSize: 100,
		MaxPages: 10,
		Since:    time.Now().UTC(),
	}
}

// EventWatcher polls the events endpoint and hands unseen events to a Handler
type EventWatcher struct {
	events  EventLister
	handler Handler
	cfg     Config
	backoff resilience.BackoffStrategy
	metrics *observability.EventMetrics
	logger  *zap.Logger

	since time.Time
	// ids already delivered whose createdAt equals since; the since filter is inclusive
	seenAtSince map[string]struct{}
}

// NewEventWatcher creates a watcher. metrics may be nil.
func NewEventWatcher(events EventLister, handler Handler, cfg Config, metrics *observability.EventMetrics, logger *zap.Logger) *EventWatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 10
	}
	return &EventWatcher{
		events:      events,
		handler:     handler,
		cfg:         cfg,
		backoff:     resilience.EventPollBackoff(),
		metrics:     metrics,
		logger:      logger,
		since:       cfg.Since,
		seenAtSince: make(map[string]struct{}),
	}
}

// Since returns the creation time of the newest delivered event
func (w *EventWatcher) Since() time.Time {
	return w.since
}

// Poll fetches events created since the last delivered one and hands them to the handler.
// It returns the number delivered.
func (w *EventWatcher) Poll(ctx context.Context) (int, error) {
	var batch []models.Event
	truncated := false
	for page := 0; page < w.cfg.MaxPages; page++ {
		resp, err := w.events.List(ctx, models.ListParams{
			Limit:  w.cfg.PageSize,
			Offset: page * w.cfg.PageSize,
			Since:  w.since,
			Types:  w.cfg.Types,
			Sort:   oldestFirst,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to list events: %w", err)
		}
		batch = append(batch, resp.Data...)
		if len(resp.Data) < w.cfg.PageSize {
			break
		}
		truncated = page == w.cfg.MaxPages-1
	}
	if truncated {
		// pages are oldest first, so the rest are picked up from the new since on the next poll
		w.logger.Warn("Event batch truncated",
			zap.Int("max_pages", w.cfg.MaxPages),
			zap.Int("page_size", w.cfg.PageSize),
			zap.Time("since", w.since),
		)
	}

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Attributes.CreatedAt.Before(batch[j].Attributes.CreatedAt)
	})

	delivered := 0
	for _, event := range batch {
		createdAt := event.Attributes.CreatedAt
		if createdAt.Before(w.since) {
			continue
		}
		if createdAt.Equal(w.since) {
			if _, ok := w.seenAtSince[event.ID]; ok {
				continue
			}
		}

		if err := w.handler(ctx, event); err != nil {
			return delivered, fmt.Errorf("handler failed for event %s: %w", event.ID, err)
		}
		delivered++
		w.metrics.RecordEvent(event.Type, createdAt)

		if createdAt.After(w.since) {
			w.since = createdAt
			w.seenAtSince = make(map[string]struct{})
		}
		w.seenAtSince[event.ID] = struct{}{}
	}

	return delivered, nil
}

// Run polls until ctx is cancelled, backing off after failures
func (w *EventWatcher) Run(ctx context.Context) {
	failures := 0
	for {
		delivered, err := w.Poll(ctx)
		if ctx.Err() != nil {
			return
		}

		var wait error
		if err != nil {
			w.metrics.RecordPollError()
			w.logger.Warn("Event poll failed",
				zap.Int("consecutive_failures", failures+1),
				zap.Error(err),
			)
			wait = resilience.Wait(ctx, w.backoff, failures)
			failures++
		} else {
			failures = 0
			if delivered > 0 {
				w.logger.Debug("Events delivered",
					zap.Int("count", delivered),
					zap.Time("since", w.since),
				)
			}
			wait = resilience.Wait(ctx, &resilience.FixedBackoff{Delay: w.cfg.Interval}, 0)
		}
		if wait != nil {
			return
		}
	}
}
