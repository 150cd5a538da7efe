package backup

import (
	"context"

	"github.com/younsl/ebs-autosnap/internal/models"
	"go.uber.org/zap"
)

// Discover resolves the volumes for scope. Any failure is logged and yields
// an empty set so the remaining stages become no-ops.
func (r *Runner) Discover(ctx context.Context, scope models.Scope) []models.Volume {
	filter := models.VolumeFilter{}

	if scope != models.ScopeAll {
		instanceID, err := r.cloud.LocalInstanceID(ctx)
		if err != nil {
			r.log.Error("unable to resolve local instance id, no volumes selected", zap.Error(err))
			return nil
		}
		filter.InstanceID = instanceID
	}

	volumes, err := r.cloud.ListVolumes(ctx, filter)
	if err != nil {
		r.log.Error("unable to list volumes, no volumes selected",
			zap.String("instance", filter.InstanceID),
			zap.Error(err),
		)
		return nil
	}

	if len(volumes) == 0 {
		r.log.Warn("no volumes found",
			zap.String("scope", string(scope)),
			zap.String("instance", filter.InstanceID),
		)
		return nil
	}

	ids := make([]string, 0, len(volumes))
	for _, v := range volumes {
		ids = append(ids, v.VolumeID)
	}
	r.log.Info("volumes discovered",
		zap.String("scope", string(scope)),
		zap.String("instance", filter.InstanceID),
		zap.Strings("volumes", ids),
	)

	return volumes
}
