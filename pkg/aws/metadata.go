package aws

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/younsl/ebs-autosnap/pkg/utils"
)

const metadataTimeout = 5 * time.Second

// MetadataAPI is the subset of the instance metadata client we use
type MetadataAPI interface {
	GetMetadata(ctx context.Context, params *imds.GetMetadataInput, optFns ...func(*imds.Options)) (*imds.GetMetadataOutput, error)
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// LocalInstanceID returns the ID of the instance this process runs on
func (c *EC2Client) LocalInstanceID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	out, err := c.metadata.GetMetadata(ctx, &imds.GetMetadataInput{Path: "instance-id"})
	if err != nil {
		return "", fmt.Errorf("error querying instance metadata: %w", err)
	}
	defer out.Content.Close()

	body, err := io.ReadAll(out.Content)
	if err != nil {
		return "", fmt.Errorf("error reading instance metadata: %w", err)
	}

	id := strings.TrimSpace(string(body))
	if id == "" {
		return "", fmt.Errorf("instance metadata returned an empty instance-id")
	}
	return id, nil
}

// ResolveRegion picks the region to operate in: the configured one, then
// AWS_REGION, then the region reported by instance metadata, then the default
// region. The second return value names the source.
func ResolveRegion(ctx context.Context, configured string, md MetadataAPI) (string, string) {
	if configured != "" {
		return configured, "config"
	}
	if env := os.Getenv("AWS_REGION"); env != "" {
		return env, "env"
	}

	if md != nil {
		ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
		defer cancel()

		if out, err := md.GetRegion(ctx, &imds.GetRegionInput{}); err == nil && out.Region != "" {
			return out.Region, "imds"
		}
	}

	return utils.GetDefaultRegion(), "default"
}

// NewMetadataClient creates an instance metadata client that needs no region
func NewMetadataClient() *imds.Client {
	return imds.New(imds.Options{})
}
