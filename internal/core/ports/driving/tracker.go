package driving

import (
	"context"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// Tracker runs the opinion ingestion pipeline.
type Tracker interface {
	// Run executes one pipeline run over the trailing window of windowDays
	// days. The returned report is non-nil even when err is not: on a fatal
	// abort it carries the counts reached before the run stopped.
	Run(ctx context.Context, windowDays int) (*domain.RunReport, error)

	// Status returns a snapshot of the active run, or an idle status when
	// no run is in progress.
	Status(ctx context.Context) (*RunStatus, error)
}

// RunPhase names the orchestrator's position in the run state machine.
type RunPhase string

const (
	PhaseIdle       RunPhase = "idle"
	PhaseFetching   RunPhase = "fetching"
	PhaseFiltering  RunPhase = "filtering"
	PhaseProcessing RunPhase = "processing"
	PhaseDone       RunPhase = "done"
	PhaseAborted    RunPhase = "aborted"
)

// RunStatus represents the current state of a pipeline run.
type RunStatus struct {
	// Phase is the orchestrator's current state.
	Phase RunPhase

	// Running indicates a run is in progress.
	Running bool

	// Counts so far, mirroring the eventual run report.
	Fetched  int
	New      int
	Analyzed int
	Skipped  int

	// CurrentCase names the candidate being processed, for progress output.
	CurrentCase string
}
