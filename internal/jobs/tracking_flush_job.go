package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Flusher drains buffered location updates; satisfied by tracking.Coalescer.
type Flusher interface {
	Flush(ctx context.Context)
	PendingCount() int
}

// TrackingFlushJob periodically drains the location update coalescer so
// buffered rider positions reach the order store and the live channels.
type TrackingFlushJob struct {
	flusher  Flusher
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTrackingFlushJob creates the flush job with the given interval.
func NewTrackingFlushJob(flusher Flusher, interval time.Duration, logger *slog.Logger) *TrackingFlushJob {
	return &TrackingFlushJob{
		flusher:  flusher,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "tracking_flush_job"),
	}
}

// Start begins the flush job on the configured interval.
func (j *TrackingFlushJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()

		pending := j.flusher.PendingCount()
		j.flusher.Flush(ctx)

		if pending > 0 {
			j.logger.DebugContext(ctx, "Flushed buffered location updates", "count", pending)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking flush job started", "interval", j.interval.String())
	return nil
}

// Stop stops the flush job.
func (j *TrackingFlushJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking flush job stopped")
}
