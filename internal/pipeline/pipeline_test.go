package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type event struct {
	name   State
	failed bool
}

type recordingObserver struct {
	started  []State
	finished []event
}

func (o *recordingObserver) StepStarted(name State, _ int) {
	o.started = append(o.started, name)
}

func (o *recordingObserver) StepFinished(name State, _ int, _ time.Duration, err error) {
	o.finished = append(o.finished, event{name: name, failed: err != nil})
}

func step(name State, ran *[]State, err error) Step {
	return Step{Name: name, Run: func(context.Context) error {
		*ran = append(*ran, name)
		return err
	}}
}

func TestRunExecutesAllStepsInOrder(t *testing.T) {
	var ran []State
	p := &Pipeline{Steps: []Step{
		step(StateClean, &ran, nil),
		step(StatePrune, &ran, nil),
		step(StateBuild, &ran, nil),
		step(StateUpload, &ran, nil),
	}}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []State{StateClean, StatePrune, StateBuild, StateUpload}
	if len(ran) != len(want) {
		t.Fatalf("expected %d steps, ran %v", len(want), ran)
	}
	for i, name := range want {
		if ran[i] != name {
			t.Fatalf("step %d: expected %s, got %s", i, name, ran[i])
		}
	}
}

func TestRunHaltsAtFirstFailure(t *testing.T) {
	var ran []State
	boom := fmt.Errorf("sdist build exploded")
	p := &Pipeline{Steps: []Step{
		step(StateClean, &ran, nil),
		step(StatePrune, &ran, nil),
		step(StateBuild, &ran, boom),
		step(StateUpload, &ran, nil),
	}}
	err := p.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error from failing build step")
	}
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StepError, got %T", err)
	}
	if se.Step != StateBuild {
		t.Fatalf("expected failure at build, got %s", se.Step)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("StepError must wrap the step's error")
	}
	for _, name := range ran {
		if name == StateUpload {
			t.Fatalf("upload must not run after a build failure")
		}
	}
}

func TestRunUsesExitCodeMapper(t *testing.T) {
	var ran []State
	p := &Pipeline{
		Steps:    []Step{step(StateUpload, &ran, fmt.Errorf("denied"))},
		ExitCode: func(error) int { return 23 },
	}
	err := p.Run(context.Background())
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if se.ExitCode != 23 {
		t.Fatalf("expected exit code 23, got %d", se.ExitCode)
	}
}

func TestRunDefaultExitCodeIsOne(t *testing.T) {
	var ran []State
	p := &Pipeline{Steps: []Step{step(StateClean, &ran, fmt.Errorf("nope"))}}
	err := p.Run(context.Background())
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if se.ExitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", se.ExitCode)
	}
}

func TestRunNotifiesObserver(t *testing.T) {
	var ran []State
	obs := &recordingObserver{}
	p := &Pipeline{
		Steps: []Step{
			step(StateClean, &ran, nil),
			step(StateBuild, &ran, fmt.Errorf("boom")),
		},
		Observer: obs,
	}
	_ = p.Run(context.Background())

	if len(obs.started) != 2 || len(obs.finished) != 2 {
		t.Fatalf("expected 2 started and 2 finished events, got %d/%d", len(obs.started), len(obs.finished))
	}
	if obs.finished[0].failed {
		t.Fatalf("clean step should be reported as ok")
	}
	if !obs.finished[1].failed {
		t.Fatalf("build step should be reported as failed")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	var ran []State
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Pipeline{Steps: []Step{step(StateClean, &ran, nil)}}
	if err := p.Run(ctx); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
	if len(ran) != 0 {
		t.Fatalf("no step should run after cancellation")
	}
}
