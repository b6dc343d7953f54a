// Package history records completed ranking runs so past decisions stay
// queryable.
package history

import (
	"context"
	"time"

	"github.com/reposcout/reposcout/pkg/scout"
)

// Run is one completed ranking run.
type Run struct {
	ID          string            `json:"id" bson:"_id"`
	Requirement string            `json:"requirement" bson:"requirement"`
	Candidates  []scout.Candidate `json:"candidates" bson:"candidates"`
	StartedAt   time.Time         `json:"started_at" bson:"started_at"`
	FinishedAt  time.Time         `json:"finished_at" bson:"finished_at"`
}

// Store persists completed runs. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save records a finished run.
	Save(ctx context.Context, run Run) error

	// List returns up to limit runs, most recent first.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
