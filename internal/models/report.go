package models

import "time"

type Status string

const (
	StatusSuccess  Status = "Success"
	StatusFailed   Status = "Failed"
	StatusNotFound Status = "NotFound"
	StatusSkipped  Status = "Skipped"
)

// FieldNotApplicable fills report columns that have no value for a given
// outcome, e.g. the disk name of an unresolved VM.
const FieldNotApplicable = "N/A"

// ReportEntry is one row of the run report: one per disk attempt, or
// exactly one per VM that resolved nowhere.
type ReportEntry struct {
	Timestamp       time.Time
	ContextID       string
	VMIdentifier    string
	DiskName        string
	SnapshotName    string
	Status          Status
	ErrorMessage    string
	TicketReference string
}

// RunSummary holds per-status entry counts.
type RunSummary struct {
	Succeeded int
	Failed    int
	NotFound  int
	Skipped   int
}

func (s RunSummary) Total() int {
	return s.Succeeded + s.Failed + s.NotFound + s.Skipped
}

// Report is the append-only accumulator owned by the runner. Access is
// never concurrent; execution is strictly sequential.
type Report struct {
	Ticket  string
	entries []ReportEntry
}

func NewReport(ticket string) *Report {
	return &Report{Ticket: ticket}
}

func (r *Report) append(e ReportEntry) {
	e.Timestamp = time.Now()
	e.TicketReference = r.Ticket
	r.entries = append(r.entries, e)
}

func (r *Report) AppendSuccess(contextID, vm, disk, snapshotName string) {
	r.append(ReportEntry{
		ContextID:    contextID,
		VMIdentifier: vm,
		DiskName:     disk,
		SnapshotName: snapshotName,
		Status:       StatusSuccess,
	})
}

func (r *Report) AppendFailure(contextID, vm, disk, snapshotName, errMsg string) {
	r.append(ReportEntry{
		ContextID:    contextID,
		VMIdentifier: vm,
		DiskName:     disk,
		SnapshotName: snapshotName,
		Status:       StatusFailed,
		ErrorMessage: errMsg,
	})
}

func (r *Report) AppendNotFound(vm string) {
	r.append(ReportEntry{
		ContextID:    FieldNotApplicable,
		VMIdentifier: vm,
		DiskName:     FieldNotApplicable,
		SnapshotName: FieldNotApplicable,
		Status:       StatusNotFound,
		ErrorMessage: "vm not found in any account context",
	})
}

func (r *Report) AppendSkipped(contextID, vm, reason string) {
	r.append(ReportEntry{
		ContextID:    contextID,
		VMIdentifier: vm,
		DiskName:     FieldNotApplicable,
		SnapshotName: FieldNotApplicable,
		Status:       StatusSkipped,
		ErrorMessage: reason,
	})
}

// Entries returns the accumulated rows in processing order
// (VM-major, then context, then disk).
func (r *Report) Entries() []ReportEntry {
	return r.entries
}

func (r *Report) Summary() RunSummary {
	var s RunSummary
	for _, e := range r.entries {
		switch e.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusNotFound:
			s.NotFound++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
