package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/ebs-autosnap/internal/models"
)

// CloudWatchAPI is the subset of CloudWatch used to publish run metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsPublisher publishes run counters to a CloudWatch namespace
type MetricsPublisher struct {
	client    CloudWatchAPI
	namespace string
}

// NewMetricsPublisher creates a MetricsPublisher
func NewMetricsPublisher(cfg aws.Config, namespace string) *MetricsPublisher {
	return &MetricsPublisher{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
	}
}

// Publish sends one datum per run counter, all stamped with the run start time
func (p *MetricsPublisher) Publish(ctx context.Context, summary models.RunSummary) error {
	counters := []struct {
		name  string
		value int
	}{
		{"VolumesDiscovered", len(summary.Volumes)},
		{"SnapshotsCreated", summary.CreatedCount()},
		{"SnapshotCreateFailures", summary.CreateFailures()},
		{"SnapshotTagFailures", summary.TagFailures()},
		{"SnapshotsDeleted", summary.DeletedCount()},
		{"SnapshotDeleteFailures", summary.DeleteFailures()},
	}

	timestamp := summary.StartedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Scope"), Value: aws.String(string(summary.Scope))},
		{Name: aws.String("Region"), Value: aws.String(summary.Region)},
	}

	data := make([]types.MetricDatum, 0, len(counters))
	for _, c := range counters {
		data = append(data, types.MetricDatum{
			MetricName: aws.String(c.name),
			Value:      aws.Float64(float64(c.value)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(timestamp),
			Dimensions: dimensions,
		})
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("error publishing metrics to %s: %w", p.namespace, err)
	}
	return nil
}
