package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tasklens/triage/internal/events"
	"github.com/tasklens/triage/internal/store"
)

// Reporter periodically snapshots the stored task set and publishes the
// aggregate as an event. Consumers (dashboards, alerting) subscribe to the
// stats subject instead of polling the API.
type Reporter struct {
	store    store.Store
	events   events.Client
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, ev events.Client, interval time.Duration, logger *slog.Logger) *Reporter {
	return &Reporter{
		store:    s,
		events:   ev,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (r *Reporter) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *Reporter) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

func (r *Reporter) report(ctx context.Context) {
	stats, err := r.store.Stats(ctx)
	if err != nil {
		r.logger.Warn("stats snapshot failed", "error", err)
		return
	}

	evt := events.StatsEvent{
		TotalTasks:    stats.TotalTasks,
		Overdue:       stats.Overdue,
		DueWithinWeek: stats.DueWithinWeek,
		Timestamp:     time.Now().UTC(),
	}
	if err := r.events.Publish(events.SubjectStats, evt); err != nil {
		r.logger.Warn("stats publish failed", "error", err)
		return
	}
	r.logger.Debug("stats published",
		"total_tasks", evt.TotalTasks,
		"overdue", evt.Overdue,
	)
}
