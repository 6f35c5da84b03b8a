package retention

import (
	"context"
	"time"
)

const (
	OutcomeDryRun   = "dryrun"
	OutcomeDeleted  = "deleted"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Deletion is one audit record: what happened to one eligible index
// during one sweep run.
type Deletion struct {
	Id int64 // identifier for DB

	RunId string
	Rule  string

	IndexName string
	AgeMonths int

	DryRun  bool
	Outcome string

	CreatedAt time.Time
}

type SweepRecorder interface {
	Record(context.Context, Deletion) (Deletion, error)
}

// NopRecorder is used when no audit database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(_ context.Context, d Deletion) (Deletion, error) {
	return d, nil
}
