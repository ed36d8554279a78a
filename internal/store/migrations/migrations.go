// Package migrations creates the run-history schema. Statements are
// idempotent; Run is safe to call on every start.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR PRIMARY KEY,
		ticket VARCHAR NOT NULL,
		search_policy VARCHAR NOT NULL,
		naming_scheme VARCHAR NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		success_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		notfound_count INTEGER NOT NULL,
		skipped_count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS report_entries (
		run_id VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		context_id VARCHAR NOT NULL,
		vm VARCHAR NOT NULL,
		disk VARCHAR NOT NULL,
		snapshot_name VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		error VARCHAR NOT NULL,
		ticket VARCHAR NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}

func Run(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
