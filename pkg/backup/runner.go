// Package backup implements the snapshot lifecycle: discover volumes,
// snapshot and tag them, then expire old managed snapshots.
package backup

import (
	"context"
	"time"

	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/pkg/config"
	"go.uber.org/zap"
)

// CloudAPI is the remote inventory and snapshot service
type CloudAPI interface {
	LocalInstanceID(ctx context.Context) (string, error)
	ListVolumes(ctx context.Context, filter models.VolumeFilter) ([]models.Volume, error)
	ListTags(ctx context.Context, filter models.TagFilter) ([]models.Tag, error)
	CreateSnapshot(ctx context.Context, volumeID, description string) (string, error)
	CreateTag(ctx context.Context, resourceID, key, value string) error
	ListSnapshots(ctx context.Context, filter models.SnapshotFilter) ([]models.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}

// Runner executes one backup run. Calls to CloudAPI are strictly sequential.
type Runner struct {
	cfg   config.Config
	cloud CloudAPI
	log   *zap.Logger
	now   func() time.Time
}

// Option customizes a Runner
type Option func(*Runner)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner
func NewRunner(cfg config.Config, cloud CloudAPI, log *zap.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:   cfg,
		cloud: cloud,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Run performs discovery, creation and retention once, in that order
func (r *Runner) Run(ctx context.Context, scope models.Scope) models.RunSummary {
	started := r.now()
	summary := models.RunSummary{
		Scope:     scope,
		Region:    r.cfg.Region,
		StartedAt: started,
		Cutoff:    Cutoff(started, r.cfg.RetentionDays),
	}

	r.log.Info("backup run started",
		zap.String("scope", string(scope)),
		zap.String("region", r.cfg.Region),
		zap.Int("retentionDays", r.cfg.RetentionDays),
		zap.Bool("dryRun", r.cfg.DryRun),
		zap.Time("cutoff", summary.Cutoff),
	)

	summary.Volumes = r.Discover(ctx, scope)
	summary.Created = r.CreateSnapshots(ctx, summary.Volumes)
	summary.Retention = r.enforceRetention(ctx, summary.Volumes, summary.Cutoff)

	r.log.Info("backup run finished",
		zap.Int("volumes", len(summary.Volumes)),
		zap.Int("created", summary.CreatedCount()),
		zap.Int("createFailures", summary.CreateFailures()),
		zap.Int("tagFailures", summary.TagFailures()),
		zap.Int("deleted", summary.DeletedCount()),
		zap.Int("kept", summary.KeptCount()),
		zap.Int("deleteFailures", summary.DeleteFailures()),
		zap.Duration("elapsed", r.now().Sub(started)),
	)

	return summary
}
