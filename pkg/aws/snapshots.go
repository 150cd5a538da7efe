package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/pkg/utils"
)

// CreateSnapshot requests a snapshot of a volume and returns its ID
func (c *EC2Client) CreateSnapshot(ctx context.Context, volumeID, description string) (string, error) {
	out, err := c.client.CreateSnapshot(ctx, &ec2.CreateSnapshotInput{
		VolumeId:    aws.String(volumeID),
		Description: aws.String(description),
	})
	if err != nil {
		return "", fmt.Errorf("error creating snapshot of %s: %w", volumeID, err)
	}

	id := aws.ToString(out.SnapshotId)
	if id == "" {
		return "", fmt.Errorf("create snapshot of %s returned no snapshot id", volumeID)
	}
	return id, nil
}

// ListSnapshots returns the snapshots owned by this account matching filter
func (c *EC2Client) ListSnapshots(ctx context.Context, filter models.SnapshotFilter) ([]models.Snapshot, error) {
	var filters []types.Filter
	if filter.VolumeID != "" {
		filters = append(filters, utils.NewFilter("volume-id", filter.VolumeID))
	}
	if filter.TagKey != "" {
		if filter.TagValue != "" {
			filters = append(filters, utils.NewFilter(utils.TagFilterName(filter.TagKey), filter.TagValue))
		} else {
			filters = append(filters, utils.NewFilter("tag-key", filter.TagKey))
		}
	}

	input := &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
		Filters:  filters,
	}

	snapshots := []models.Snapshot{}

	paginator := ec2.NewDescribeSnapshotsPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying snapshots: %w", err)
		}

		for _, s := range page.Snapshots {
			snapshots = append(snapshots, models.Snapshot{
				SnapshotID:  aws.ToString(s.SnapshotId),
				VolumeID:    aws.ToString(s.VolumeId),
				StartTime:   aws.ToTime(s.StartTime),
				Description: aws.ToString(s.Description),
				Tags:        utils.GetTagsMap(s.Tags),
			})
		}
	}

	return snapshots, nil
}

// DeleteSnapshot deletes a snapshot. A snapshot that no longer exists is
// treated as deleted.
func (c *EC2Client) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	_, err := c.client.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(snapshotID),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("error deleting snapshot %s: %w", snapshotID, err)
	}
	return nil
}
