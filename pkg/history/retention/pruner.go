package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ovid/cyclonedx-parser/pkg/history"
)

// Config sets how long validation records are kept and when the
// pruner runs.
type Config struct {
	// MaxAgeDays is the number of days to retain records.
	// 0 means keep records forever (no pruning).
	MaxAgeDays int

	// Schedule is a cron expression for automatic pruning, such as
	// "0 3 * * *" for daily at 03:00. Empty disables scheduling.
	Schedule string
}

// DefaultConfig keeps ninety days of history, pruned nightly.
func DefaultConfig() *Config {
	return &Config{
		MaxAgeDays: 90,
		Schedule:   "0 3 * * *",
	}
}

// Pruner enforces the retention policy on validation records.
type Pruner struct {
	storage   history.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner builds a pruner over the given storage backend. A nil
// config falls back to DefaultConfig.
func NewPruner(storage history.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	pruner := &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "history.retention"),
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes validation records older than the retention period
// and reports how many were removed. With retention disabled it is a
// no-op.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.MaxAgeDays <= 0 {
		p.logger.Debug("retention disabled, nothing to prune")
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.config.MaxAgeDays)

	deleted, err := p.storage.Delete(ctx, &history.Query{Until: &cutoff})
	if err != nil {
		return 0, history.NewRetentionError(p.config.MaxAgeDays, err)
	}

	if deleted > 0 {
		p.logger.Info("pruned validation records",
			"deleted_count", deleted,
			"max_age_days", p.config.MaxAgeDays,
		)
	} else {
		p.logger.Debug("no records past retention age",
			"max_age_days", p.config.MaxAgeDays,
		)
	}

	return deleted, nil
}

// Start begins running Prune on the configured cron schedule. The
// scheduler shuts down when ctx is cancelled or Stop is called.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop halts scheduled pruning, waiting for an in-flight run to end.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning reports when the next scheduled prune will fire, or nil
// when the scheduler is not running.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
