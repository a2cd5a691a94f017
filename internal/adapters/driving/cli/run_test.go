package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driving"
)

// mockTracker implements driving.Tracker for testing.
type mockTracker struct {
	report     *domain.RunReport
	err        error
	windowDays int
}

func (m *mockTracker) Run(_ context.Context, windowDays int) (*domain.RunReport, error) {
	m.windowDays = windowDays
	return m.report, m.err
}

func (m *mockTracker) Status(_ context.Context) (*driving.RunStatus, error) {
	return &driving.RunStatus{Phase: driving.PhaseIdle}, nil
}

func setupRunTest(mock driving.Tracker) func() {
	oldTracker := tracker
	tracker = mock
	return func() {
		tracker = oldTracker
		runDays = 0
		runDataset = ""
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
}

func TestRunCmd_Short(t *testing.T) {
	assert.Equal(t, "Fetch, classify and record new opinions", runCmd.Short)
}

func TestRunCmd_Flags(t *testing.T) {
	assert.NotNil(t, runCmd.Flags().Lookup("days"))
	assert.NotNil(t, runCmd.Flags().Lookup("dataset"))
}

func TestRunCmd_PrintsSummary(t *testing.T) {
	report := domain.NewRunReport(14)
	report.Fetched = 5
	report.Duplicates = 2
	report.Skipped = 1
	report.RecordAnalyzed(domain.Conservative)
	report.RecordAnalyzed(domain.Center)

	mock := &mockTracker{report: report}
	cleanup := setupRunTest(mock)
	defer cleanup()

	out, err := executeCommand(t, "run", "--days", "14")
	require.NoError(t, err)

	assert.Equal(t, 14, mock.windowDays)
	assert.Contains(t, out, "Fetching opinions filed in the last 14 days...")
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Fetched:    5")
	assert.Contains(t, out, "Duplicates: 2")
	assert.Contains(t, out, "Analyzed:   2")
	assert.Contains(t, out, "Skipped:    1")
	assert.Contains(t, out, "Very Conservative decisions: 0")
	assert.Contains(t, out, "Conservative decisions: 1")
	assert.Contains(t, out, "Center decisions: 1")
	assert.Contains(t, out, "Very Liberal decisions: 0")
}

func TestRunCmd_NothingNew(t *testing.T) {
	report := domain.NewRunReport(14)
	report.Fetched = 3
	report.Duplicates = 3

	cleanup := setupRunTest(&mockTracker{report: report})
	defer cleanup()

	out, err := executeCommand(t, "run", "--days", "14")
	require.NoError(t, err)

	assert.Contains(t, out, "All recent opinions are already in the dataset.")
	assert.NotContains(t, out, "SUMMARY")
}

func TestRunCmd_EmptyWindow(t *testing.T) {
	cleanup := setupRunTest(&mockTracker{report: domain.NewRunReport(14)})
	defer cleanup()

	out, err := executeCommand(t, "run", "--days", "14")
	require.NoError(t, err)

	assert.Contains(t, out, "No opinions filed in the last 14 days.")
}

func TestRunCmd_Aborted(t *testing.T) {
	report := domain.NewRunReport(14)
	report.Fetched = 4
	report.RecordAnalyzed(domain.Liberal)
	report.Aborted = true

	mock := &mockTracker{
		report: report,
		err:    fmt.Errorf("classify: %w", domain.ErrQuotaExhausted),
	}
	cleanup := setupRunTest(mock)
	defer cleanup()

	out, err := executeCommand(t, "run", "--days", "14")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "run failed")
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
	assert.Contains(t, out, "Run aborted; rows already appended remain in the dataset.")
	assert.Contains(t, out, "Analyzed:   1")
}
