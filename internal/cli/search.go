package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"searchlab/internal/adapter/chunker"
	"searchlab/internal/adapter/docs"
	"searchlab/internal/adapter/embedding"
	"searchlab/internal/domain"
	"searchlab/internal/usecase"
)

var (
	searchQuery   string
	searchChunker string
	searchIndexer string
	searchTopK    int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Build an index over a directory and search it",
	Long: `Load documents from the target directory, chunk and index them with
the selected strategies, and print the top ranked chunks for a query.

Examples:
  searchlab search -q "connection pooling"
  searchlab search -q "retry policy" --chunker semantic --indexer faiss -k 10`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().StringVar(&searchChunker, "chunker", "", "chunking strategy (default from config)")
	searchCmd.Flags().StringVar(&searchIndexer, "indexer", "", "indexing strategy (default from config)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

type searchResult struct {
	ChunkID string  `json:"chunk_id"`
	DocID   string  `json:"doc_id"`
	Heading string  `json:"heading,omitempty"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	chunkerName := cfg.Chunking.Default
	if searchChunker != "" {
		chunkerName = searchChunker
	}
	indexerName := cfg.Index.Default
	if searchIndexer != "" {
		indexerName = searchIndexer
	}
	topK := cfg.Search.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	loader := docs.NewDirLoader(rootDir, cfg.Benchmark.Includes, cfg.Benchmark.Excludes)
	documents, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("no documents found under %s", rootDir)
	}

	embedder := embedding.NewHashEmbedder(cfg.Index.Dimension)
	geo := chunker.Geometry{Window: cfg.Chunking.Window, Overlap: cfg.Chunking.Overlap}
	ix, chunks, err := usecase.BuildIndexWithGeometry(documents, chunkerName, indexerName, geo, embedder)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	ranked, latency, err := usecase.ExecuteSearch(ix, searchQuery, topK)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyIndex) {
			fmt.Println("Index is empty; no results.")
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	byID := make(map[string]domain.Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}

	results := make([]searchResult, 0, len(ranked))
	for _, hit := range ranked {
		c := byID[hit.ChunkID]
		results = append(results, searchResult{
			ChunkID: hit.ChunkID,
			DocID:   c.DocID,
			Heading: c.Heading,
			Score:   hit.Score,
			Text:    c.Text,
		})
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s (%.2fms, %s/%s, %d docs, %d chunks)\n\n",
		len(results), searchQuery, latency, chunkerName, indexerName, len(documents), len(chunks))
	for i, r := range results {
		header := r.ChunkID
		if r.Heading != "" {
			header = fmt.Sprintf("%s [%s]", r.ChunkID, r.Heading)
		}
		fmt.Printf("--- [%d] %s (score: %.3f) ---\n", i+1, header, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
