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

// ListTags returns the tags matching filter
func (c *EC2Client) ListTags(ctx context.Context, filter models.TagFilter) ([]models.Tag, error) {
	var filters []types.Filter
	if filter.ResourceID != "" {
		filters = append(filters, utils.NewFilter("resource-id", filter.ResourceID))
	}
	if filter.Key != "" {
		filters = append(filters, utils.NewFilter("key", filter.Key))
	}
	if filter.Value != "" {
		filters = append(filters, utils.NewFilter("value", filter.Value))
	}

	tags := []models.Tag{}

	paginator := ec2.NewDescribeTagsPaginator(c.client, &ec2.DescribeTagsInput{Filters: filters})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying tags: %w", err)
		}

		for _, t := range page.Tags {
			tags = append(tags, models.Tag{
				ResourceID: aws.ToString(t.ResourceId),
				Key:        aws.ToString(t.Key),
				Value:      aws.ToString(t.Value),
			})
		}
	}

	return tags, nil
}

// CreateTag attaches a single key/value tag to a resource
func (c *EC2Client) CreateTag(ctx context.Context, resourceID, key, value string) error {
	_, err := c.client.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{resourceID},
		Tags:      []types.Tag{utils.NewTag(key, value)},
	})
	if err != nil {
		return fmt.Errorf("error tagging %s with %s=%s: %w", resourceID, key, value, err)
	}
	return nil
}
