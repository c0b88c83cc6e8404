package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/internal/infrastructure/counter"
	"github.com/jobdeck/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// FlusherConfig controls how frequently view deltas are flushed.
type FlusherConfig struct {
	Interval time.Duration
}

// ViewFlusher drains the local view-count spool into the jobs table. View
// increments are best-effort and eventually consistent: a response may be
// written before its increment lands, and clients may briefly observe a
// count one less than reality. That contract is deliberate.
type ViewFlusher struct {
	store  *counter.Store
	health ConnectionHealth
	jobs   repository.JobRepository
	logger *zap.Logger
	cron   *cron.Cron
	cfg    FlusherConfig
}

func NewViewFlusher(
	store *counter.Store,
	health ConnectionHealth,
	jobs repository.JobRepository,
	logger *zap.Logger,
	cfg FlusherConfig,
) *ViewFlusher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	vf := &ViewFlusher{
		store:  store,
		health: health,
		jobs:   jobs,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = vf.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := vf.Flush(ctx); err != nil {
			vf.logger.Error("view flush failed", zap.Error(err))
		}
	})

	return vf
}

// Record registers a single view for the job. Called on the request path;
// the caller never waits on the database write.
func (vf *ViewFlusher) Record(jobID string) {
	if vf == nil || vf.store == nil {
		return
	}
	if err := vf.store.Add(jobID, 1); err != nil {
		vf.logger.Warn("failed to spool view increment", zap.String("job_id", jobID), zap.Error(err))
	}
}

// Start launches the cron scheduler.
func (vf *ViewFlusher) Start() {
	if vf == nil || vf.cron == nil {
		return
	}
	vf.cron.Start()
	vf.logger.Info("view flusher started")
}

// Stop gracefully stops the scheduler and performs a final flush.
func (vf *ViewFlusher) Stop(ctx context.Context) {
	if vf == nil || vf.cron == nil {
		return
	}
	stopCtx := vf.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	if err := vf.Flush(ctx); err != nil {
		vf.logger.Warn("final view flush failed", zap.Error(err))
	}
	vf.logger.Info("view flusher stopped")
}

// Flush moves all spooled deltas into the primary store. Deltas that fail
// to apply are restored to the spool for the next run.
func (vf *ViewFlusher) Flush(ctx context.Context) error {
	if vf == nil || vf.store == nil {
		return nil
	}
	if vf.health != nil && !vf.health.IsOnline() {
		vf.logger.Debug("skipping view flush (offline)")
		return nil
	}

	deltas, err := vf.store.Drain()
	if err != nil {
		return err
	}
	if len(deltas) == 0 {
		return nil
	}

	failed := make(map[string]uint64)
	for jobID, delta := range deltas {
		if err := vf.jobs.IncrementViews(ctx, jobID, int64(delta)); err != nil {
			vf.logger.Warn("failed to apply view delta",
				zap.String("job_id", jobID),
				zap.Uint64("delta", delta),
				zap.Error(err))
			failed[jobID] = delta
		}
	}

	if len(failed) > 0 {
		if err := vf.store.Restore(failed); err != nil {
			vf.logger.Error("failed to restore view deltas", zap.Error(err))
		}
	}
	return nil
}

// Pending returns the number of jobs with spooled deltas.
func (vf *ViewFlusher) Pending() int {
	if vf == nil || vf.store == nil {
		return 0
	}
	size, err := vf.store.Size()
	if err != nil {
		return 0
	}
	return size
}
