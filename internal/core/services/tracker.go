package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

// Ensure TrackerService implements the Tracker interface.
var _ driving.Tracker = (*TrackerService)(nil)

// TrackerService orchestrates one ingestion run: list recent opinions,
// drop the ones already in the dataset, then resolve, classify and append
// the rest one candidate at a time. Processing is strictly sequential so
// an abort mid-run leaves a prefix of complete rows behind.
type TrackerService struct {
	source     driven.OpinionSource
	classifier driven.Classifier
	dataset    driven.DatasetStore
	resolver   *TextResolver

	mu     sync.RWMutex
	status *driving.RunStatus
}

// NewTrackerService creates a tracker over the given ports.
func NewTrackerService(
	source driven.OpinionSource,
	classifier driven.Classifier,
	dataset driven.DatasetStore,
	resolver *TextResolver,
) *TrackerService {
	return &TrackerService{
		source:     source,
		classifier: classifier,
		dataset:    dataset,
		resolver:   resolver,
	}
}

// Run executes one pipeline run over the trailing window of windowDays days.
// A second Run while one is active returns domain.ErrRunInProgress.
//
// Per-candidate failures are logged, counted as skipped and never stop the
// run. Failures wrapping domain.ErrAuthInvalid, domain.ErrQuotaExhausted or
// domain.ErrDatasetWrite abort it; the returned report then carries the
// counts reached before the abort.
func (t *TrackerService) Run(ctx context.Context, windowDays int) (*domain.RunReport, error) {
	if !t.beginRun() {
		return nil, domain.ErrRunInProgress
	}
	defer t.endRun()

	report := domain.NewRunReport(windowDays)

	// Fetch the candidate listing. Nothing has been written yet, so any
	// failure here aborts the run with the dataset untouched.
	t.setPhase(driving.PhaseFetching)
	logger.Info("Fetching opinions filed in the last %d days", windowDays)
	candidates, err := t.source.ListRecent(ctx, windowDays)
	if err != nil {
		return t.abort(report, fmt.Errorf("list recent opinions: %w", err))
	}
	report.Fetched = len(candidates)
	t.updateStatus(func(s *driving.RunStatus) { s.Fetched = len(candidates) })
	logger.Info("Fetched %d candidate opinions", len(candidates))

	// Drop ids the dataset already holds, preserving listing order.
	t.setPhase(driving.PhaseFiltering)
	known, err := t.dataset.KnownIDs(ctx)
	if err != nil {
		return t.abort(report, fmt.Errorf("load known ids: %w", err))
	}
	ledger := NewLedger(known)
	logger.Debug("Dataset holds %d opinions", ledger.Size())

	fresh := make([]domain.Opinion, 0, len(candidates))
	for _, cand := range candidates {
		if ledger.Contains(cand.ID) {
			report.Duplicates++
			continue
		}
		fresh = append(fresh, cand)
	}
	t.updateStatus(func(s *driving.RunStatus) { s.New = len(fresh) })

	if len(fresh) == 0 {
		logger.Info("No new opinions to process")
		return t.finish(report)
	}
	logger.Info("Processing %d new opinions (%d duplicates dropped)", len(fresh), report.Duplicates)

	// Process candidates in listing order, one at a time. The ledger check
	// repeats here because a listing can carry the same id twice.
	t.setPhase(driving.PhaseProcessing)
	for i := range fresh {
		cand := &fresh[i]

		select {
		case <-ctx.Done():
			return t.abort(report, ctx.Err())
		default:
		}

		if ledger.Contains(cand.ID) {
			report.Duplicates++
			continue
		}

		t.updateStatus(func(s *driving.RunStatus) { s.CurrentCase = cand.CaseName })
		logger.Debug("Processing opinion %d: %s", cand.ID, cand.CaseName)

		if err := t.processOne(ctx, cand, ledger, report); err != nil {
			if domain.IsFatal(err) {
				return t.abort(report, err)
			}
			report.Skipped++
			t.updateStatus(func(s *driving.RunStatus) { s.Skipped = report.Skipped })
			logger.Warn("Skipping opinion %d: %v", cand.ID, err)
			continue
		}
		t.updateStatus(func(s *driving.RunStatus) { s.Analyzed = report.Analyzed })
	}

	logger.Info("Run complete: %d analyzed, %d skipped, %d duplicates",
		report.Analyzed, report.Skipped, report.Duplicates)
	return t.finish(report)
}

// processOne takes one candidate through resolve, classify, append and mark.
// The ledger is only marked once the row is durably written.
func (t *TrackerService) processOne(ctx context.Context, op *domain.Opinion, ledger *Ledger, report *domain.RunReport) error {
	resolved, err := t.resolver.Resolve(ctx, op)
	if err != nil {
		return fmt.Errorf("resolve text: %w", err)
	}
	logger.Debug("Resolved %d characters from %s text", resolved.Length, resolved.Source)

	cls, err := t.classifier.Classify(ctx, op.CaseName, resolved.Text)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	row := domain.NewRow(op, cls, resolved.Length, time.Now())
	if err := t.dataset.Append(ctx, row); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDatasetWrite, err)
	}

	ledger.Mark(op.ID)
	report.RecordAnalyzed(cls.Leaning)
	return nil
}

// Status returns a snapshot of the current run, or an idle status when no
// run has started.
func (t *TrackerService) Status(_ context.Context) (*driving.RunStatus, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.status == nil {
		return &driving.RunStatus{Phase: driving.PhaseIdle}, nil
	}
	snapshot := *t.status
	return &snapshot, nil
}

// finish closes out a successful run.
func (t *TrackerService) finish(report *domain.RunReport) (*domain.RunReport, error) {
	report.FinishedAt = time.Now()
	t.setPhase(driving.PhaseDone)
	return report, nil
}

// abort closes out a run on a fatal error. Rows already appended stay in
// the dataset; the report records how far the run got.
func (t *TrackerService) abort(report *domain.RunReport, err error) (*domain.RunReport, error) {
	report.Aborted = true
	report.FinishedAt = time.Now()
	t.setPhase(driving.PhaseAborted)
	logger.Warn("Run aborted: %v", err)
	return report, err
}

// beginRun claims the single run slot. It returns false when a run is
// already active.
func (t *TrackerService) beginRun() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != nil && t.status.Running {
		return false
	}
	t.status = &driving.RunStatus{Phase: driving.PhaseFetching, Running: true}
	return true
}

// endRun releases the run slot, keeping the final status visible.
func (t *TrackerService) endRun() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Running = false
}

func (t *TrackerService) setPhase(phase driving.RunPhase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Phase = phase
}

func (t *TrackerService) updateStatus(apply func(*driving.RunStatus)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	apply(t.status)
}
