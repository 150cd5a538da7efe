package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/pkg/utils"
	"go.uber.org/zap"
)

// Description builds the human-readable snapshot description
func Description(now time.Time, instanceName, device string) string {
	return fmt.Sprintf("%s_%s_%s", utils.FormatDate(now), instanceName, device)
}

// CreateSnapshots snapshots each volume and tags the result with the marker.
// Failures are recorded per volume and never stop the loop.
func (r *Runner) CreateSnapshots(ctx context.Context, volumes []models.Volume) []models.CreateResult {
	results := make([]models.CreateResult, 0, len(volumes))
	for _, volume := range volumes {
		results = append(results, r.createSnapshot(ctx, volume))
	}
	return results
}

func (r *Runner) createSnapshot(ctx context.Context, volume models.Volume) models.CreateResult {
	log := r.log.With(
		zap.String("volume", volume.VolumeID),
		zap.String("instance", volume.InstanceID),
		zap.String("device", volume.Device),
	)

	name := ""
	if volume.Attached() {
		name = r.instanceName(ctx, volume.InstanceID)
	}
	result := models.CreateResult{
		VolumeID:    volume.VolumeID,
		Description: Description(r.now(), name, volume.Device),
	}

	snapshotID, err := r.cloud.CreateSnapshot(ctx, volume.VolumeID, result.Description)
	if err != nil {
		log.Error("snapshot creation failed", zap.Error(err))
		result.Err = err
		return result
	}
	result.SnapshotID = snapshotID

	// Not atomic with creation. An untagged snapshot is never expired.
	if err := r.cloud.CreateTag(ctx, snapshotID, models.MarkerTagKey, models.MarkerTagValue); err != nil {
		log.Error("snapshot tagging failed, snapshot is left unmanaged and will never be expired",
			zap.String("snapshot", snapshotID),
			zap.String("tag", models.MarkerTagKey+"="+models.MarkerTagValue),
			zap.Error(err),
		)
		result.TagErr = err
		return result
	}

	log.Info("snapshot created",
		zap.String("snapshot", snapshotID),
		zap.String("description", result.Description),
	)
	return result
}

// instanceName returns the Name tag of an instance, or "" if it has none
func (r *Runner) instanceName(ctx context.Context, instanceID string) string {
	tags, err := r.cloud.ListTags(ctx, models.TagFilter{ResourceID: instanceID, Key: models.NameTagKey})
	if err != nil {
		r.log.Warn("unable to read instance name", zap.String("instance", instanceID), zap.Error(err))
		return ""
	}
	for _, tag := range tags {
		if tag.Key == models.NameTagKey {
			return tag.Value
		}
	}
	return ""
}
