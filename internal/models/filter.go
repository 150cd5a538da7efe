package models

// VolumeFilter narrows a volume listing. Zero value lists every volume.
type VolumeFilter struct {
	InstanceID string
}

// TagFilter narrows a tag listing. Empty fields are not filtered on.
type TagFilter struct {
	ResourceID string
	Key        string
	Value      string
}

// SnapshotFilter narrows a snapshot listing. TagValue is only used with TagKey.
type SnapshotFilter struct {
	VolumeID string
	TagKey   string
	TagValue string
}
