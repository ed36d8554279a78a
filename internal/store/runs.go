package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/internal/models"
)

// RunStore persists completed runs and their report entries.
type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

// SaveRun writes the run header and its entries. Entries keep their
// processing order through the seq column.
func (s *RunStore) SaveRun(ctx context.Context, run models.RunRecord, entries []models.ReportEntry) error {
	query, args, err := sq.Insert("runs").
		Columns("id", "ticket", "search_policy", "naming_scheme", "started_at", "finished_at",
			"success_count", "failed_count", "notfound_count", "skipped_count").
		Values(run.ID.String(), run.Ticket, run.SearchPolicy, run.NamingScheme, run.StartedAt, run.FinishedAt,
			run.Summary.Succeeded, run.Summary.Failed, run.Summary.NotFound, run.Summary.Skipped).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	for i, e := range entries {
		query, args, err := sq.Insert("report_entries").
			Columns("run_id", "seq", "created_at", "context_id", "vm", "disk",
				"snapshot_name", "status", "error", "ticket").
			Values(run.ID.String(), i, e.Timestamp, e.ContextID, e.VMIdentifier, e.DiskName,
				e.SnapshotName, string(e.Status), e.ErrorMessage, e.TicketReference).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}

// List returns run headers, most recent first.
func (s *RunStore) List(ctx context.Context) ([]models.RunRecord, error) {
	query, args, err := sq.Select("id", "ticket", "search_policy", "naming_scheme", "started_at", "finished_at",
		"success_count", "failed_count", "notfound_count", "skipped_count").
		From("runs").
		OrderBy("started_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		var run models.RunRecord
		var id string
		if err := rows.Scan(&id, &run.Ticket, &run.SearchPolicy, &run.NamingScheme,
			&run.StartedAt, &run.FinishedAt,
			&run.Summary.Succeeded, &run.Summary.Failed,
			&run.Summary.NotFound, &run.Summary.Skipped); err != nil {
			return nil, err
		}
		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Entries returns the report rows of one run in processing order.
func (s *RunStore) Entries(ctx context.Context, runID uuid.UUID) ([]models.ReportEntry, error) {
	query, args, err := sq.Select("created_at", "context_id", "vm", "disk",
		"snapshot_name", "status", "error", "ticket").
		From("report_entries").
		Where(sq.Eq{"run_id": runID.String()}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReportEntry
	for rows.Next() {
		var e models.ReportEntry
		var status string
		if err := rows.Scan(&e.Timestamp, &e.ContextID, &e.VMIdentifier, &e.DiskName,
			&e.SnapshotName, &status, &e.ErrorMessage, &e.TicketReference); err != nil {
			return nil, err
		}
		e.Status = models.Status(status)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
