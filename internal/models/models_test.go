package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Scope
	}{
		{name: "no argument", args: nil, want: ScopeSelf},
		{name: "all", args: []string{"all"}, want: ScopeAll},
		{name: "unknown value", args: []string{"everything"}, want: ScopeSelf},
		{name: "case sensitive", args: []string{"ALL"}, want: ScopeSelf},
		{name: "self", args: []string{"self"}, want: ScopeSelf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScope(tt.args))
		})
	}
}

func TestSnapshotManaged(t *testing.T) {
	assert.True(t, Snapshot{Tags: map[string]string{MarkerTagKey: MarkerTagValue}}.Managed())
	assert.False(t, Snapshot{Tags: map[string]string{MarkerTagKey: "someone"}}.Managed())
	assert.False(t, Snapshot{}.Managed())
}

func TestRunSummaryCounts(t *testing.T) {
	boom := errors.New("boom")
	s := RunSummary{
		Created: []CreateResult{
			{VolumeID: "vol-1", SnapshotID: "snap-1"},
			{VolumeID: "vol-2", SnapshotID: "snap-2", TagErr: boom},
			{VolumeID: "vol-3", Err: boom},
		},
		Retention: []RetentionResult{
			{SnapshotID: "snap-a", Action: ActionDeleted},
			{SnapshotID: "snap-b", Action: ActionKept},
			{SnapshotID: "snap-c", Action: ActionKept},
			{SnapshotID: "snap-d", Action: ActionFailed, Err: boom},
		},
	}

	assert.Equal(t, 2, s.CreatedCount())
	assert.Equal(t, 1, s.CreateFailures())
	assert.Equal(t, 1, s.TagFailures())
	assert.Equal(t, 1, s.DeletedCount())
	assert.Equal(t, 2, s.KeptCount())
	assert.Equal(t, 1, s.DeleteFailures())
	assert.True(t, s.Created[0].OK())
	assert.False(t, s.Created[1].OK())
}
