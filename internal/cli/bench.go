package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"searchlab/internal/adapter/chunker"
	"searchlab/internal/adapter/docs"
	"searchlab/internal/adapter/embedding"
	"searchlab/internal/adapter/queryset"
	"searchlab/internal/adapter/store"
	"searchlab/internal/domain"
	applog "searchlab/internal/platform/log"
	"searchlab/internal/usecase"
)

var (
	benchQueriesPath string
	benchChunkers    []string
	benchIndexers    []string
	benchTopK        int
	benchWorkers     int
	benchPerQuery    bool
	benchSaveJSON    string
	benchNoSave      bool
	benchDBPath      string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark every chunker and indexer combination",
	Long: `Load documents from the target directory and sweep the chunking and
indexing strategy matrix, reporting retrieval quality and latency per
combination.

When no query file is given, one query is synthesized from the opening of
each document.

Examples:
  searchlab bench -d ./corpus
  searchlab bench -d ./corpus --queries queries.yaml --top-k 10
  searchlab bench --chunkers fixed,semantic --indexers faiss`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVar(&benchQueriesPath, "queries", "", "query set file (JSON or YAML)")
	benchCmd.Flags().StringSliceVar(&benchChunkers, "chunkers", nil, "chunking strategies to sweep (default all)")
	benchCmd.Flags().StringSliceVar(&benchIndexers, "indexers", nil, "indexing strategies to sweep (default all)")
	benchCmd.Flags().IntVarP(&benchTopK, "top-k", "k", 0, "retrieval depth (default from config)")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "parallel combinations (default one per CPU)")
	benchCmd.Flags().BoolVar(&benchPerQuery, "per-query", false, "keep per-query rows in the report")
	benchCmd.Flags().StringVar(&benchSaveJSON, "save-json", "", "write the full report to a JSON file")
	benchCmd.Flags().BoolVar(&benchNoSave, "no-save", false, "skip persisting the run to the run database")
	benchCmd.Flags().StringVar(&benchDBPath, "db", "", "run database path (default from config)")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	loader := docs.NewDirLoader(rootDir, cfg.Benchmark.Includes, cfg.Benchmark.Excludes)
	documents, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("no documents found under %s", rootDir)
	}

	var queries []domain.Query
	if benchQueriesPath != "" {
		queries, err = queryset.NewFileLoader(benchQueriesPath).Load()
		if err != nil {
			return fmt.Errorf("failed to load queries: %w", err)
		}
	}
	if len(queries) == 0 {
		queries = usecase.SynthesizeQueries(documents)
		applog.Info("no query set given, synthesized queries from documents", "count", len(queries))
	}

	opts := usecase.BenchmarkOptions{
		Chunkers: benchChunkers,
		Indexers: benchIndexers,
		TopK:     cfg.Benchmark.TopK,
		Workers:  cfg.Benchmark.Workers,
		PerQuery: benchPerQuery,
		Geometry: chunker.Geometry{Window: cfg.Chunking.Window, Overlap: cfg.Chunking.Overlap},
	}
	if len(opts.Chunkers) == 0 {
		opts.Chunkers = cfg.Benchmark.Chunkers
	}
	if len(opts.Indexers) == 0 {
		opts.Indexers = cfg.Benchmark.Indexers
	}
	if benchTopK > 0 {
		opts.TopK = benchTopK
	}
	if benchWorkers > 0 {
		opts.Workers = benchWorkers
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Benchmarking[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}
		bar.Set(done)
	}

	embedder := embedding.NewHashEmbedder(cfg.Index.Dimension)
	report, err := usecase.RunBenchmark(ctx, documents, queries, embedder, opts, progress)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	printBenchmarkReport(os.Stdout, report)

	if benchSaveJSON != "" {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(benchSaveJSON, output, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", benchSaveJSON)
	}

	if !benchNoSave {
		dbPath := cfg.Benchmark.DBPath
		if benchDBPath != "" {
			dbPath = benchDBPath
		}
		st, err := store.NewBoltReportStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open run database: %w", err)
		}
		defer st.Close()
		if err := st.SaveReport(report); err != nil {
			return fmt.Errorf("failed to persist run: %w", err)
		}
		fmt.Printf("Run %s saved to %s\n", report.RunID, dbPath)
	}

	return nil
}

func printBenchmarkReport(w io.Writer, report domain.BenchmarkReport) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintfFunc()

	fmt.Fprintf(w, "\n%s  docs=%d queries=%d k=%d total=%.0fms\n\n",
		bold("Benchmark "+report.RunID), len(report.Documents), report.Queries, report.TopK, report.TotalMS)

	header := fmt.Sprintf("%-12s %-12s %7s %9s %7s %7s %7s %7s %9s %9s",
		"CHUNKER", "INDEXER", "CHUNKS", "BUILD_MS", "P@K", "R@K", "MRR", "NDCG", "MED_MS", "P95_MS")
	fmt.Fprintln(w, cyan(header))
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	var best *domain.BenchmarkRow
	for i := range report.Rows {
		if best == nil || report.Rows[i].Report.NDCGAtK > best.Report.NDCGAtK {
			best = &report.Rows[i]
		}
	}

	for _, row := range report.Rows {
		line := fmt.Sprintf("%-12s %-12s %7d %9.1f %7.3f %7.3f %7.3f %7.3f %9.2f %9.2f",
			row.Chunker, row.Indexer, row.Chunks, row.IndexBuildMS,
			row.Report.PrecisionAtK, row.Report.RecallAtK, row.Report.MRR, row.Report.NDCGAtK,
			row.Report.MedianLatencyMS, row.Report.P95LatencyMS)
		if best != nil && row.Chunker == best.Chunker && row.Indexer == best.Indexer {
			fmt.Fprintln(w, green("%s", line))
		} else {
			fmt.Fprintln(w, line)
		}
		if row.Report.Skipped > 0 {
			fmt.Fprintf(w, "  %d queries skipped\n", row.Report.Skipped)
		}
	}
	fmt.Fprintln(w)
	if best != nil {
		fmt.Fprintf(w, "Best NDCG@%d: %s/%s (%.3f)\n", report.TopK, best.Chunker, best.Indexer, best.Report.NDCGAtK)
	}
}
