package history

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/milliele/pypub/internal/nameutil"
)

// Repository provides CRUD operations for release runs and their steps.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateRun inserts a new run in the 'running' state and returns its ID.
func (r *Repository) CreateRun(project string, version, publisherName, publisherEmail *string) (int64, error) {
	project = strings.TrimSpace(project)
	if err := nameutil.ValidateName(project); err != nil {
		return 0, err
	}
	res, err := r.db.Exec(`INSERT INTO runs (project, version, publisher_name, publisher_email, started_at, status)
		VALUES (?, ?, ?, ?, datetime('now'), ?)`, project, version, publisherName, publisherEmail, StatusRunning)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// AddStep appends a step record to a run.
func (r *Repository) AddStep(runID int64, position int, name, status string, durationMS int64, detail *string) error {
	if _, err := r.db.Exec(`INSERT INTO run_steps (run_id, position, name, status, duration_ms, detail)
		VALUES (?, ?, ?, ?, ?, ?)`, runID, position, name, status, durationMS, detail); err != nil {
		return fmt.Errorf("insert run step: %w", err)
	}
	return nil
}

// FinishRun marks a run terminal. failedStep and exitCode are nil for
// successful runs; artifact records the built archive when known.
func (r *Repository) FinishRun(runID int64, status string, failedStep *string, exitCode *int, artifact *string) error {
	if status != StatusOK && status != StatusFailed {
		return fmt.Errorf("invalid terminal status: %q", status)
	}
	if _, err := r.db.Exec(`UPDATE runs SET finished_at = datetime('now'), status = ?, failed_step = ?, exit_code = ?, artifact = ?
		WHERE id = ?`, status, failedStep, exitCode, artifact, runID); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun retrieves a run and its steps by ID. Returns (nil, nil) when no
// such run exists.
func (r *Repository) GetRun(id int64) (*Run, error) {
	row := r.db.QueryRow(`SELECT id, project, version, publisher_name, publisher_email, started_at, finished_at, status, failed_step, exit_code, artifact
		FROM runs WHERE id = ?`, id)
	var run Run
	if err := scanRun(row, &run); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachSteps(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (r *Repository) ListRuns(limit int) ([]Run, error) {
	q := `SELECT id, project, version, publisher_name, publisher_email, started_at, finished_at, status, failed_step, exit_code, artifact
		FROM runs ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = r.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var run Run
		if err := scanRun(rows, &run); err != nil {
			return nil, err
		}
		if err := r.attachSteps(&run); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// LastRun returns the most recent run, or nil when none is recorded.
func (r *Repository) LastRun() (*Run, error) {
	runs, err := r.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// FilterRuns fuzzy-matches runs by project, version, status, and failed
// step. An empty query matches everything.
func (r *Repository) FilterRuns(query string, limit int) ([]Run, error) {
	runs, err := r.ListRuns(0)
	if err != nil {
		return nil, err
	}
	var out []Run
	for _, run := range runs {
		if fuzzyMatchesRun(&run, query) {
			out = append(out, run)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner, run *Run) error {
	return s.Scan(&run.ID, &run.Project, &run.Version, &run.PublisherName, &run.PublisherEmail,
		&run.StartedAt, &run.FinishedAt, &run.Status, &run.FailedStep, &run.ExitCode, &run.Artifact)
}

func (r *Repository) attachSteps(run *Run) error {
	rows, err := r.db.Query(`SELECT id, run_id, position, name, status, duration_ms, detail
		FROM run_steps WHERE run_id = ? ORDER BY position ASC`, run.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var st StepRecord
		if err := rows.Scan(&st.ID, &st.RunID, &st.Position, &st.Name, &st.Status, &st.DurationMS, &st.Detail); err != nil {
			return err
		}
		run.Steps = append(run.Steps, st)
	}
	return rows.Err()
}
