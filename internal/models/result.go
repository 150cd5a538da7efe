package models

import "time"

// Retention decisions
const (
	ActionKept    = "kept"
	ActionDeleted = "deleted"
	ActionFailed  = "failed"
)

// CreateResult is the outcome of snapshotting one volume
type CreateResult struct {
	VolumeID    string
	SnapshotID  string // empty if creation failed
	Description string
	Err         error // snapshot creation error
	TagErr      error // marker tagging error, snapshot exists but is unmanaged
}

// OK reports whether the snapshot was created and tagged
func (r CreateResult) OK() bool {
	return r.Err == nil && r.TagErr == nil
}

// RetentionResult is the decision taken for one marker-tagged snapshot
type RetentionResult struct {
	VolumeID    string
	SnapshotID  string
	Description string
	CreatedAt   time.Time
	Action      string
	DryRun      bool
	Err         error
}

// RunSummary collects everything a run did
type RunSummary struct {
	Scope     Scope
	Region    string
	StartedAt time.Time
	Cutoff    time.Time
	Volumes   []Volume
	Created   []CreateResult
	Retention []RetentionResult
}

// CreatedCount returns the number of snapshots created, tagged or not
func (s RunSummary) CreatedCount() int {
	n := 0
	for _, r := range s.Created {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// CreateFailures returns the number of volumes whose snapshot request failed
func (s RunSummary) CreateFailures() int {
	n := 0
	for _, r := range s.Created {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// TagFailures returns the number of snapshots left without the marker tag
func (s RunSummary) TagFailures() int {
	n := 0
	for _, r := range s.Created {
		if r.Err == nil && r.TagErr != nil {
			n++
		}
	}
	return n
}

// DeletedCount returns the number of snapshots removed
func (s RunSummary) DeletedCount() int {
	return s.countAction(ActionDeleted)
}

// KeptCount returns the number of snapshots kept
func (s RunSummary) KeptCount() int {
	return s.countAction(ActionKept)
}

// DeleteFailures returns the number of snapshots whose deletion failed
func (s RunSummary) DeleteFailures() int {
	return s.countAction(ActionFailed)
}

func (s RunSummary) countAction(action string) int {
	n := 0
	for _, r := range s.Retention {
		if r.Action == action {
			n++
		}
	}
	return n
}
