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

// ListVolumes returns the volumes matching filter in provider order
func (c *EC2Client) ListVolumes(ctx context.Context, filter models.VolumeFilter) ([]models.Volume, error) {
	input := &ec2.DescribeVolumesInput{}
	if filter.InstanceID != "" {
		input.Filters = append(input.Filters, utils.NewFilter("attachment.instance-id", filter.InstanceID))
	}

	volumes := []models.Volume{}

	paginator := ec2.NewDescribeVolumesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EBS volumes: %w", err)
		}

		for _, v := range page.Volumes {
			volume, ok := toVolume(v, filter.InstanceID)
			if !ok {
				continue
			}
			volumes = append(volumes, volume)
		}
	}

	return volumes, nil
}

// toVolume converts an SDK volume. When instanceID is set, volumes with no
// attachment to that instance are rejected.
func toVolume(v types.Volume, instanceID string) (models.Volume, bool) {
	volume := models.Volume{
		VolumeID:         aws.ToString(v.VolumeId),
		AvailabilityZone: aws.ToString(v.AvailabilityZone),
		Size:             int(aws.ToInt32(v.Size)),
	}

	for _, attachment := range v.Attachments {
		id := aws.ToString(attachment.InstanceId)
		if instanceID != "" && id != instanceID {
			continue
		}
		volume.InstanceID = id
		volume.Device = aws.ToString(attachment.Device)
		break
	}

	if instanceID != "" && volume.InstanceID != instanceID {
		return models.Volume{}, false
	}
	return volume, true
}
