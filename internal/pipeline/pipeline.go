// Package pipeline runs an ordered sequence of release steps with fail-fast
// semantics: the first failing step halts the run and its exit code becomes
// the process exit code.
package pipeline

import (
	"context"
	"fmt"
	"time"
)

// State names a pipeline step or terminal state.
type State string

const (
	StateClean  State = "clean"
	StatePrune  State = "prune"
	StateBuild  State = "build"
	StateUpload State = "upload"
	StateDone   State = "done"
	StateFailed State = "failed"
)

// Step is a single named unit of work.
type Step struct {
	Name State
	Run  func(ctx context.Context) error
}

// StepError reports the step that halted the run and the exit code to
// propagate to the caller.
type StepError struct {
	Step     State
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed (exit %d): %v", e.Step, e.ExitCode, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Observer receives step lifecycle events, e.g. for run-history recording.
type Observer interface {
	StepStarted(name State, position int)
	StepFinished(name State, position int, d time.Duration, err error)
}

// Pipeline executes Steps strictly in order. There is no retry and no
// rollback: a failed run is terminal and the operator re-invokes from the
// top, which is safe because the leading steps reconstruct a clean tree.
type Pipeline struct {
	Steps []Step
	// ExitCode maps a step error to a process exit code. Defaults to 1.
	ExitCode func(error) int
	Observer Observer
}

// Run executes every step in order, stopping at the first failure. The
// returned error is a *StepError identifying the failed step.
func (p *Pipeline) Run(ctx context.Context) error {
	for i, s := range p.Steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: s.Name, ExitCode: 1, Err: err}
		}
		if p.Observer != nil {
			p.Observer.StepStarted(s.Name, i+1)
		}
		start := time.Now()
		err := s.Run(ctx)
		if p.Observer != nil {
			p.Observer.StepFinished(s.Name, i+1, time.Since(start), err)
		}
		if err != nil {
			code := 1
			if p.ExitCode != nil {
				code = p.ExitCode(err)
			}
			return &StepError{Step: s.Name, ExitCode: code, Err: err}
		}
	}
	return nil
}
