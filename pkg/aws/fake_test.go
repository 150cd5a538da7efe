package aws

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// fakeEC2 records inputs and returns canned outputs
type fakeEC2 struct {
	volumes   []types.Volume
	tags      []types.TagDescription
	snapshots []types.Snapshot

	createErr error
	tagErr    error
	deleteErr error

	volumesInput   *ec2.DescribeVolumesInput
	tagsInput      *ec2.DescribeTagsInput
	snapshotsInput *ec2.DescribeSnapshotsInput
	createInput    *ec2.CreateSnapshotInput
	createTagInput *ec2.CreateTagsInput
	deleteInput    *ec2.DeleteSnapshotInput
}

func (f *fakeEC2) DescribeVolumes(_ context.Context, in *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	f.volumesInput = in
	return &ec2.DescribeVolumesOutput{Volumes: f.volumes}, nil
}

func (f *fakeEC2) DescribeTags(_ context.Context, in *ec2.DescribeTagsInput, _ ...func(*ec2.Options)) (*ec2.DescribeTagsOutput, error) {
	f.tagsInput = in
	return &ec2.DescribeTagsOutput{Tags: f.tags}, nil
}

func (f *fakeEC2) DescribeSnapshots(_ context.Context, in *ec2.DescribeSnapshotsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	f.snapshotsInput = in
	return &ec2.DescribeSnapshotsOutput{Snapshots: f.snapshots}, nil
}

func (f *fakeEC2) CreateSnapshot(_ context.Context, in *ec2.CreateSnapshotInput, _ ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error) {
	f.createInput = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &ec2.CreateSnapshotOutput{SnapshotId: aws.String("snap-new"), VolumeId: in.VolumeId}, nil
}

func (f *fakeEC2) CreateTags(_ context.Context, in *ec2.CreateTagsInput, _ ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	f.createTagInput = in
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	return &ec2.CreateTagsOutput{}, nil
}

func (f *fakeEC2) DeleteSnapshot(_ context.Context, in *ec2.DeleteSnapshotInput, _ ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error) {
	f.deleteInput = in
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &ec2.DeleteSnapshotOutput{}, nil
}

// fakeMetadata serves a fixed instance identity
type fakeMetadata struct {
	instanceID string
	region     string
	err        error
}

func (f *fakeMetadata) GetMetadata(_ context.Context, in *imds.GetMetadataInput, _ ...func(*imds.Options)) (*imds.GetMetadataOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if in.Path != "instance-id" {
		return &imds.GetMetadataOutput{Content: io.NopCloser(strings.NewReader(""))}, nil
	}
	return &imds.GetMetadataOutput{Content: io.NopCloser(strings.NewReader(f.instanceID + "\n"))}, nil
}

func (f *fakeMetadata) GetRegion(_ context.Context, _ *imds.GetRegionInput, _ ...func(*imds.Options)) (*imds.GetRegionOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &imds.GetRegionOutput{Region: f.region}, nil
}

// fakeCloudWatch records the last PutMetricData call
type fakeCloudWatch struct {
	input *cloudwatch.PutMetricDataInput
	err   error
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func newTestClient(fake *fakeEC2, md *fakeMetadata) *EC2Client {
	return &EC2Client{client: fake, metadata: md, region: "us-east-1"}
}

func filterValues(filters []types.Filter) map[string][]string {
	out := make(map[string][]string)
	for _, f := range filters {
		out[aws.ToString(f.Name)] = f.Values
	}
	return out
}
