package models

import "time"

// Marker tag attached to every snapshot this tool creates. Retention only ever
// considers snapshots carrying it.
const (
	MarkerTagKey   = "CreatedBy"
	MarkerTagValue = "AutomatedBackup"
)

// NameTagKey is the tag holding an instance's display name
const NameTagKey = "Name"

// Volume represents an EBS volume selected for backup
type Volume struct {
	VolumeID         string
	InstanceID       string // empty if unattached
	Device           string // e.g. /dev/xvda, empty if unattached
	AvailabilityZone string
	Size             int
}

// Attached reports whether the volume is attached to an instance
func (v Volume) Attached() bool {
	return v.InstanceID != ""
}

// Snapshot represents an EBS snapshot
type Snapshot struct {
	SnapshotID  string
	VolumeID    string
	StartTime   time.Time
	Description string
	Tags        map[string]string
}

// Managed reports whether the snapshot carries the marker tag
func (s Snapshot) Managed() bool {
	return s.Tags[MarkerTagKey] == MarkerTagValue
}

// Tag is a single key/value pair attached to a resource
type Tag struct {
	ResourceID string
	Key        string
	Value      string
}
