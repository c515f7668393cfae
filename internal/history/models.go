// Package history records release runs and their step outcomes.
package history

import "database/sql"

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Step statuses.
const (
	StepOK      = "ok"
	StepFailed  = "failed"
	StepSkipped = "skipped"
)

// Run is one recorded invocation of the publish pipeline.
type Run struct {
	ID             int64
	Project        string
	Version        sql.NullString
	PublisherName  sql.NullString
	PublisherEmail sql.NullString
	StartedAt      string
	FinishedAt     sql.NullString
	Status         string
	FailedStep     sql.NullString
	ExitCode       sql.NullInt64
	Artifact       sql.NullString
	Steps          []StepRecord
}

// StepRecord is one executed step within a run.
type StepRecord struct {
	ID         int64
	RunID      int64
	Position   int
	Name       string
	Status     string
	DurationMS sql.NullInt64
	Detail     sql.NullString
}
