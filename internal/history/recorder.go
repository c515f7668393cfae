package history

import (
	"time"

	"github.com/milliele/pypub/internal/pipeline"
)

// Recorder persists pipeline step events onto a run record. Recording
// failures are collected rather than interrupting the release; callers check
// Err after the run.
type Recorder struct {
	repo  *Repository
	runID int64
	err   error
}

// NewRecorder returns a Recorder appending steps to the given run.
func NewRecorder(repo *Repository, runID int64) *Recorder {
	return &Recorder{repo: repo, runID: runID}
}

// StepStarted implements pipeline.Observer.
func (r *Recorder) StepStarted(pipeline.State, int) {}

// StepFinished implements pipeline.Observer.
func (r *Recorder) StepFinished(name pipeline.State, position int, d time.Duration, stepErr error) {
	status := StepOK
	var detail *string
	if stepErr != nil {
		status = StepFailed
		msg := stepErr.Error()
		detail = &msg
	}
	if err := r.repo.AddStep(r.runID, position, string(name), status, d.Milliseconds(), detail); err != nil && r.err == nil {
		r.err = err
	}
}

// Err reports the first recording failure, if any.
func (r *Recorder) Err() error { return r.err }
