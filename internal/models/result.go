package models

// LookupState tags the outcome of probing one account context for a VM.
type LookupState string

const (
	// LookupFound binds the VM to the probed context.
	LookupFound LookupState = "found"
	// LookupNotFoundHere means the context activated but does not own the
	// VM. Silent; the search moves on.
	LookupNotFoundHere LookupState = "not_found_here"
	// LookupContextUnavailable means the context could not be activated.
	// Logged; the search moves on.
	LookupContextUnavailable LookupState = "context_unavailable"
)

// Lookup is the tagged result of one per-context probe. The locator
// switches on State instead of suppressing errors.
type Lookup struct {
	State LookupState
	VM    *ResolvedVM
	Err   error
}

// SnapshotState tags the outcome of one snapshot-creation call.
type SnapshotState string

const (
	SnapshotCreated SnapshotState = "created"
	SnapshotFailed  SnapshotState = "failed"
)

// SnapshotOutcome is the tagged result of one executor call. Err carries
// the provider's message verbatim when State is SnapshotFailed.
type SnapshotOutcome struct {
	State SnapshotState
	Err   error
}
