package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"searchlab/internal/adapter/store"
	"searchlab/internal/domain"
)

var (
	runsJSON   bool
	runsDBPath string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted benchmark runs",
	RunE:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a persisted benchmark run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.PersistentFlags().BoolVar(&runsJSON, "json", false, "output as JSON")
	runsCmd.PersistentFlags().StringVar(&runsDBPath, "db", "", "run database path (default from config)")
}

func openRunStore() (*store.BoltReportStore, error) {
	dbPath := GetConfig().Benchmark.DBPath
	if runsDBPath != "" {
		dbPath = runsDBPath
	}
	return store.NewBoltReportStore(dbPath)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openRunStore()
	if err != nil {
		return fmt.Errorf("failed to open run database: %w", err)
	}
	defer st.Close()

	reports, err := st.ListReports()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if runsJSON {
		output, _ := json.MarshalIndent(reports, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(reports) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, r := range reports {
		fmt.Println(formatRunLine(r))
	}
	return nil
}

func formatRunLine(r domain.BenchmarkReport) string {
	return fmt.Sprintf("%s  %s  docs=%d queries=%d k=%d rows=%d",
		r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), len(r.Documents), r.Queries, r.TopK, len(r.Rows))
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := openRunStore()
	if err != nil {
		return fmt.Errorf("failed to open run database: %w", err)
	}
	defer st.Close()

	report, err := st.GetReport(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	output, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(output))
	return nil
}
