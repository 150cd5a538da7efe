package backup

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeCloud is an in-memory CloudAPI that records every call in order
type fakeCloud struct {
	instanceID  string
	instanceErr error
	volumes     []models.Volume
	volumesErr  error
	tags        []models.Tag
	snapshots   []models.Snapshot

	createErr map[string]error // by volume id
	tagErr    map[string]error // by snapshot id
	deleteErr map[string]error // by snapshot id
	listErr   map[string]error // by volume id

	calls  []string
	nextID int
}

func (f *fakeCloud) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeCloud) LocalInstanceID(context.Context) (string, error) {
	f.record("LocalInstanceID")
	return f.instanceID, f.instanceErr
}

func (f *fakeCloud) ListVolumes(_ context.Context, filter models.VolumeFilter) ([]models.Volume, error) {
	f.record("ListVolumes %s", filter.InstanceID)
	if f.volumesErr != nil {
		return nil, f.volumesErr
	}
	var out []models.Volume
	for _, v := range f.volumes {
		if filter.InstanceID != "" && v.InstanceID != filter.InstanceID {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeCloud) ListTags(_ context.Context, filter models.TagFilter) ([]models.Tag, error) {
	f.record("ListTags %s %s", filter.ResourceID, filter.Key)
	var out []models.Tag
	for _, t := range f.tags {
		if t.ResourceID == filter.ResourceID && (filter.Key == "" || t.Key == filter.Key) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeCloud) CreateSnapshot(_ context.Context, volumeID, description string) (string, error) {
	f.record("CreateSnapshot %s", volumeID)
	if err := f.createErr[volumeID]; err != nil {
		return "", err
	}
	f.nextID++
	id := fmt.Sprintf("snap-new-%d", f.nextID)
	f.snapshots = append(f.snapshots, models.Snapshot{
		SnapshotID:  id,
		VolumeID:    volumeID,
		StartTime:   time.Now(),
		Description: description,
		Tags:        map[string]string{},
	})
	return id, nil
}

func (f *fakeCloud) CreateTag(_ context.Context, resourceID, key, value string) error {
	f.record("CreateTag %s %s=%s", resourceID, key, value)
	if err := f.tagErr[resourceID]; err != nil {
		return err
	}
	for i := range f.snapshots {
		if f.snapshots[i].SnapshotID == resourceID {
			f.snapshots[i].Tags[key] = value
		}
	}
	return nil
}

func (f *fakeCloud) ListSnapshots(_ context.Context, filter models.SnapshotFilter) ([]models.Snapshot, error) {
	f.record("ListSnapshots %s", filter.VolumeID)
	if err := f.listErr[filter.VolumeID]; err != nil {
		return nil, err
	}
	var out []models.Snapshot
	for _, s := range f.snapshots {
		if filter.VolumeID != "" && s.VolumeID != filter.VolumeID {
			continue
		}
		if filter.TagKey != "" && s.Tags[filter.TagKey] != filter.TagValue {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCloud) DeleteSnapshot(_ context.Context, snapshotID string) error {
	f.record("DeleteSnapshot %s", snapshotID)
	if err := f.deleteErr[snapshotID]; err != nil {
		return err
	}
	for i, s := range f.snapshots {
		if s.SnapshotID == snapshotID {
			f.snapshots = append(f.snapshots[:i], f.snapshots[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCloud) snapshotIDs() []string {
	ids := make([]string, 0, len(f.snapshots))
	for _, s := range f.snapshots {
		ids = append(ids, s.SnapshotID)
	}
	return ids
}

var errBoom = errors.New("boom")

func testConfig() config.Config {
	return config.Config{
		Region:        "us-east-1",
		LogFile:       "unused.log",
		LogMaxLines:   config.DefaultLogMaxLines,
		RetentionDays: 7,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRunner(t *testing.T, cfg config.Config, cloud *fakeCloud, now time.Time) (*Runner, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewRunner(cfg, cloud, zap.New(core), WithClock(fixedClock(now))), logs
}

func managed(id, volumeID string, created time.Time) models.Snapshot {
	return models.Snapshot{
		SnapshotID:  id,
		VolumeID:    volumeID,
		StartTime:   created,
		Description: created.Format("2006-01-02") + "_web-01_/dev/xvda",
		Tags:        map[string]string{models.MarkerTagKey: models.MarkerTagValue},
	}
}

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
