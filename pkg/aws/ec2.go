package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/younsl/ebs-autosnap/internal/models"
)

// EC2API is the subset of the EC2 service used for volume backups
type EC2API interface {
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeTags(ctx context.Context, params *ec2.DescribeTagsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeTagsOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	CreateSnapshot(ctx context.Context, params *ec2.CreateSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
}

// EC2Client wraps EC2 and the instance metadata service for one region
type EC2Client struct {
	client   EC2API
	metadata MetadataAPI
	region   string
}

// LoadConfig loads the default AWS configuration for a region
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}
	return cfg, nil
}

// NewEC2Client creates a new EC2Client from a loaded configuration
func NewEC2Client(cfg aws.Config) *EC2Client {
	return &EC2Client{
		client:   ec2.NewFromConfig(cfg),
		metadata: imds.NewFromConfig(cfg),
		region:   cfg.Region,
	}
}

// CheckCredentials verifies that credentials can be retrieved. A failure
// wraps models.ErrPrerequisite.
func CheckCredentials(ctx context.Context, cfg aws.Config) error {
	if cfg.Credentials == nil {
		return fmt.Errorf("%w: no AWS credentials provider configured", models.ErrPrerequisite)
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("%w: unable to retrieve AWS credentials: %w", models.ErrPrerequisite, err)
	}
	return nil
}
