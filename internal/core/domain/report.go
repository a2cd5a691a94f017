package domain

import "time"

// RunReport summarizes one pipeline run. A report is always produced on
// non-fatal completion; on abort it carries the counts reached so far.
type RunReport struct {
	// WindowDays is the lookback window the listing was queried with.
	WindowDays int

	// Fetched counts candidates returned by the listing call.
	Fetched int

	// Duplicates counts candidates dropped because their id was already in
	// the dataset, or repeated within the listing itself.
	Duplicates int

	// Analyzed counts opinions classified and appended this run.
	Analyzed int

	// Skipped counts candidates dropped by per-candidate failures.
	Skipped int

	// ByLeaning breaks down Analyzed by classification label.
	ByLeaning map[Leaning]int

	// Aborted is set when the run ended on a fatal error. Rows appended
	// before the abort remain in the dataset.
	Aborted bool

	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunReport starts a report for a run over the given window.
func NewRunReport(windowDays int) *RunReport {
	return &RunReport{
		WindowDays: windowDays,
		ByLeaning:  make(map[Leaning]int),
		StartedAt:  time.Now(),
	}
}

// RecordAnalyzed counts one appended row under its leaning.
func (r *RunReport) RecordAnalyzed(l Leaning) {
	r.Analyzed++
	r.ByLeaning[l]++
}

// Duration returns the wall-clock duration of the run.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
