package backup

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/pkg/utils"
	"go.uber.org/zap"
)

// Cutoff returns the instant retentionDays calendar days before now
func Cutoff(now time.Time, retentionDays int) time.Time {
	return now.AddDate(0, 0, -retentionDays)
}

// CreationDay truncates t to midnight UTC of its calendar date
func CreationDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Expired reports whether a snapshot created at created is due for deletion.
// Only the creation date counts and the cutoff itself is inclusive.
func Expired(created, cutoff time.Time) bool {
	return !CreationDay(created).After(cutoff)
}

// EnforceRetention deletes managed snapshots of each volume created on or
// before the cutoff. Every managed snapshot yields exactly one result and
// one log line.
func (r *Runner) EnforceRetention(ctx context.Context, volumes []models.Volume) []models.RetentionResult {
	return r.enforceRetention(ctx, volumes, Cutoff(r.now(), r.cfg.RetentionDays))
}

// enforceRetention applies a cutoff computed by the caller, so one run uses a
// single cutoff for both deletions and reporting.
func (r *Runner) enforceRetention(ctx context.Context, volumes []models.Volume, cutoff time.Time) []models.RetentionResult {
	if len(volumes) == 0 {
		return nil
	}

	now := r.now()

	var results []models.RetentionResult
	for _, volume := range volumes {
		snapshots, err := r.cloud.ListSnapshots(ctx, models.SnapshotFilter{
			VolumeID: volume.VolumeID,
			TagKey:   models.MarkerTagKey,
			TagValue: models.MarkerTagValue,
		})
		if err != nil {
			r.log.Error("unable to list managed snapshots", zap.String("volume", volume.VolumeID), zap.Error(err))
			continue
		}

		for _, snapshot := range snapshots {
			if !snapshot.Managed() {
				r.log.Warn("listed snapshot has no marker tag, ignoring",
					zap.String("volume", volume.VolumeID),
					zap.String("snapshot", snapshot.SnapshotID),
				)
				continue
			}
			results = append(results, r.applyRetention(ctx, volume.VolumeID, snapshot, now, cutoff))
		}
	}
	return results
}

func (r *Runner) applyRetention(ctx context.Context, volumeID string, snapshot models.Snapshot, now, cutoff time.Time) models.RetentionResult {
	result := models.RetentionResult{
		VolumeID:    volumeID,
		SnapshotID:  snapshot.SnapshotID,
		Description: snapshot.Description,
		CreatedAt:   snapshot.StartTime,
		Action:      models.ActionKept,
	}

	fields := []zap.Field{
		zap.String("volume", volumeID),
		zap.String("snapshot", snapshot.SnapshotID),
		zap.String("description", snapshot.Description),
		zap.String("created", utils.FormatDate(snapshot.StartTime)),
		zap.String("age", humanize.RelTime(snapshot.StartTime, now, "ago", "from now")),
		zap.String("cutoff", utils.FormatDate(cutoff)),
	}

	if !Expired(snapshot.StartTime, cutoff) {
		r.log.Info("snapshot kept", fields...)
		return result
	}

	if r.cfg.DryRun {
		result.DryRun = true
		r.log.Info("snapshot kept, would be deleted without dry run", fields...)
		return result
	}

	if err := r.cloud.DeleteSnapshot(ctx, snapshot.SnapshotID); err != nil {
		result.Action = models.ActionFailed
		result.Err = err
		r.log.Error("snapshot deletion failed", append(fields, zap.Error(err))...)
		return result
	}

	result.Action = models.ActionDeleted
	r.log.Info("snapshot deleted", fields...)
	return result
}
