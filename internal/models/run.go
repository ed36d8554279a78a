package models

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord is the persisted header of one completed run. The entries are
// stored alongside it; together they form the durable audit trail of what
// the tool did and when.
type RunRecord struct {
	ID           uuid.UUID
	Ticket       string
	SearchPolicy string
	NamingScheme string
	StartedAt    time.Time
	FinishedAt   time.Time
	Summary      RunSummary
}
