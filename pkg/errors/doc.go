// Package errors provides custom error types for the azure-vm-snapshot-tool.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌──────────────────────────┬─────────────┬─────────────────────────────────────┐
//	│ Error Type               │ Severity    │ Description                         │
//	├──────────────────────────┼─────────────┼─────────────────────────────────────┤
//	│ VMListError              │ fatal       │ VM list input missing/unreadable    │
//	│ AuthenticationError      │ fatal       │ Azure session/token acquisition     │
//	│ NoValidContextsError     │ fatal       │ No subscription with a UUID id      │
//	│ VMNotFoundError          │ recoverable │ VM absent in one context (silent)   │
//	│ ContextUnavailableError  │ recoverable │ Context activation failed (logged)  │
//	│ ProviderError            │ recoverable │ Verbatim provider failure message   │
//	└──────────────────────────┴─────────────┴─────────────────────────────────────┘
//
// Fatal errors stop the run before any report entry exists and map to a
// distinguished exit code in cmd. Recoverable errors are captured into
// report entries and never halt processing of the remaining VMs or disks.
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	if errors.IsVMNotFoundError(err) {
//	    // continue searching the next context
//	}
package errors
