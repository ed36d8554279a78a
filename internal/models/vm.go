package models

// AccountContext is an isolated access scope (an Azure subscription) the
// session can operate in. Enumerated once per run, immutable afterwards.
type AccountContext struct {
	ID   string
	Name string
}

type DiskRole string

const (
	DiskRoleOS   DiskRole = "OS"
	DiskRoleData DiskRole = "Data"
)

// DiskDescriptor describes one managed disk attached to a resolved VM.
// SourceID is the full ARM resource id of the disk, used as the snapshot
// copy source.
type DiskDescriptor struct {
	Name     string
	SourceID string
	Role     DiskRole
}

// ResolvedVM binds a VM identifier to the account context that owns it,
// together with everything needed to snapshot its disks. Scoped to the
// processing of a single VM; never persisted.
type ResolvedVM struct {
	Identifier    string
	Context       AccountContext
	ResourceGroup string
	Location      string
	Disks         []DiskDescriptor
}

// SnapshotRequest is the per-disk creation order handed to the executor.
type SnapshotRequest struct {
	Name          string
	SourceDiskID  string
	Location      string
	ResourceGroup string
}
