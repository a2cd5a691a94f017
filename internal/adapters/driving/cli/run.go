package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/docket-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

// Run command flag values.
var (
	runDays    int
	runDataset string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, classify and record new opinions",
	Long: `Runs one ingestion pass: lists opinions filed within the lookback
window, skips those already recorded in the dataset, classifies the rest
with Gemini and appends one CSV row per opinion.

Credentials are read from the environment: COURTLISTENER_TOKEN for the
opinion listing and GOOGLE_API_KEY for classification.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runDays, "days", 0,
		"lookback window in days (default from config)")
	runCmd.Flags().StringVar(&runDataset, "dataset", "",
		"dataset CSV path (default from config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if tracker == nil {
		return errors.New("tracker service not configured")
	}

	days := runDays
	if days <= 0 && cfg != nil {
		days = cfg.Run.WindowDays
	}
	if days <= 0 {
		days = configfile.DefaultWindowDays
	}

	runID := uuid.NewString()[:8]
	logger.Section("Run " + runID)
	logger.Debug("Window: %d days", days)

	cmd.Printf("Fetching opinions filed in the last %d days...\n", days)

	report, err := trackWithProgress(cmd, days)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

// trackWithProgress runs the pipeline while polling its status for progress
// output.
func trackWithProgress(cmd *cobra.Command, days int) (*domain.RunReport, error) {
	ctx := context.Background()

	type runResult struct {
		report *domain.RunReport
		err    error
	}
	resultCh := make(chan runResult, 1)
	go func() {
		report, err := tracker.Run(ctx, days)
		resultCh <- runResult{report, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCase := ""
	for {
		select {
		case res := <-resultCh:
			return res.report, res.err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := tracker.Status(ctx)
			if statusErr != nil || status == nil {
				continue
			}
			if status.Phase == driving.PhaseProcessing &&
				status.CurrentCase != "" && status.CurrentCase != lastCase {
				cmd.Printf("[%d/%d] Analyzing: %s\n",
					status.Analyzed+status.Skipped+1, status.New, status.CurrentCase)
				lastCase = status.CurrentCase
			}
		}
	}
}

// printReport renders the run outcome.
func printReport(cmd *cobra.Command, report *domain.RunReport) {
	if report.Aborted {
		cmd.Println("\nRun aborted; rows already appended remain in the dataset.")
	}

	switch {
	case report.Fetched == 0 && !report.Aborted:
		cmd.Printf("No opinions filed in the last %d days.\n", report.WindowDays)
		return
	case report.Analyzed == 0 && report.Skipped == 0 && !report.Aborted:
		cmd.Println("All recent opinions are already in the dataset.")
		return
	}

	cmd.Println()
	cmd.Println("============================================================")
	cmd.Println("SUMMARY")
	cmd.Println("============================================================")
	cmd.Printf("Fetched:    %d\n", report.Fetched)
	cmd.Printf("Duplicates: %d\n", report.Duplicates)
	cmd.Printf("Analyzed:   %d\n", report.Analyzed)
	cmd.Printf("Skipped:    %d\n", report.Skipped)

	if report.Analyzed > 0 {
		cmd.Println()
		// Most conservative first, matching the dataset's reporting
		// convention.
		for i := len(domain.Leanings) - 1; i >= 0; i-- {
			leaning := domain.Leanings[i]
			cmd.Printf("%s decisions: %d\n", leaning, report.ByLeaning[leaning])
		}
	}

	if cfg != nil {
		cmd.Printf("\nAll data saved to %s\n", cfg.Run.Dataset)
	}
}
