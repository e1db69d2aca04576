package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"searchlab/internal/adapter/chunker"
	"searchlab/internal/adapter/index"
	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// BenchmarkOptions narrows the strategy matrix and controls execution.
type BenchmarkOptions struct {
	Chunkers []string // default: all recognized chunkers
	Indexers []string // default: all recognized indexers
	Geometry chunker.Geometry
	TopK     int
	Workers  int  // default: GOMAXPROCS-bounded
	PerQuery bool // keep per-query rows in the report
}

type combination struct {
	chunker string
	indexer string
}

// RunBenchmark evaluates every (chunker, indexer) combination in the matrix
// over the documents and queries. Combinations run on parallel workers; each
// owns its own document slice, chunk set and index, so there is no shared
// mutable state between them. Report rows always follow the declared matrix
// order regardless of completion order. Cancelling the context discards
// in-flight results; no partial report is produced.
func RunBenchmark(ctx context.Context, docs []domain.Document, queries []domain.Query, embedder port.Embedder, opts BenchmarkOptions, progress func(done, total int)) (domain.BenchmarkReport, error) {
	chunkers := opts.Chunkers
	if len(chunkers) == 0 {
		chunkers = chunker.Names()
	}
	indexers := opts.Indexers
	if len(indexers) == 0 {
		indexers = index.Names()
	}
	for _, cn := range chunkers {
		for _, in := range indexers {
			if err := ValidateStrategies(cn, in); err != nil {
				return domain.BenchmarkReport{}, err
			}
		}
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}

	var combos []combination
	for _, cn := range chunkers {
		for _, in := range indexers {
			combos = append(combos, combination{chunker: cn, indexer: in})
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(combos) {
		workers = len(combos)
	}

	started := time.Now()
	rows := make([]domain.BenchmarkRow, len(combos))
	errs := make([]error, len(combos))
	jobs := make(chan int)

	var done int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					errs[i] = ctx.Err()
					continue
				}
				rows[i], errs[i] = runCombination(docs, queries, embedder, combos[i], opts.Geometry, topK, opts.PerQuery)
				if progress != nil {
					mu.Lock()
					done++
					progress(done, len(combos))
					mu.Unlock()
				}
			}
		}()
	}
	for i := range combos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return domain.BenchmarkReport{}, fmt.Errorf("combination %s/%s: %w", combos[i].chunker, combos[i].indexer, err)
		}
	}

	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Source
	}
	return domain.BenchmarkReport{
		RunID:     uuid.New().String(),
		StartedAt: started,
		Documents: names,
		Queries:   len(queries),
		TopK:      topK,
		Rows:      rows,
		TotalMS:   float64(time.Since(started)) / float64(time.Millisecond),
	}, nil
}

// runCombination owns its full pipeline: chunk, build, resolve ground truth,
// evaluate. Documents are copied so the combination shares nothing with its
// siblings.
func runCombination(docs []domain.Document, queries []domain.Query, embedder port.Embedder, combo combination, geo chunker.Geometry, topK int, perQuery bool) (domain.BenchmarkRow, error) {
	ownDocs := make([]domain.Document, len(docs))
	copy(ownDocs, docs)

	buildStart := time.Now()
	ix, chunks, err := BuildIndexWithGeometry(ownDocs, combo.chunker, combo.indexer, geo, embedder)
	if err != nil {
		return domain.BenchmarkRow{}, err
	}
	buildMS := float64(time.Since(buildStart)) / float64(time.Millisecond)

	resolved := ResolveGroundTruth(queries, chunks)
	report, err := Evaluate(ix, resolved, topK)
	if err != nil {
		return domain.BenchmarkRow{}, err
	}
	if !perQuery {
		report.PerQuery = nil
	}
	return domain.BenchmarkRow{
		Chunker:      combo.chunker,
		Indexer:      combo.indexer,
		Chunks:       len(chunks),
		IndexBuildMS: buildMS,
		Report:       report,
	}, nil
}

// SynthesizeQueries builds one query per document from its first meaningful
// snippet, used when a benchmark run has no query file. The snippet itself
// becomes the ground truth.
func SynthesizeQueries(docs []domain.Document) []domain.Query {
	var queries []domain.Query
	for _, doc := range docs {
		snippet := firstSnippet(doc.Text, 240)
		if snippet == "" {
			continue
		}
		queries = append(queries, domain.Query{
			Text:          queryFromSnippet(snippet, 8),
			RelevantTexts: []string{snippet},
		})
	}
	return queries
}
