package domain

import "time"

// Document is a unit of ingested plain text. Immutable once loaded; the
// session or benchmark run that loaded it owns it.
type Document struct {
	ID      string
	Source  string
	Text    string
	AddedAt time.Time
}

// Chunk is a contiguous span of one document's text, the atomic retrieval
// unit. StartOffset/EndOffset are rune offsets into Document.Text. Heading
// carries the nearest preceding heading for chunkers that detect them.
type Chunk struct {
	ID          string
	DocID       string
	Text        string
	StartOffset int
	EndOffset   int
	Heading     string
}

// Query pairs a query string with optional ground truth for evaluation.
// RelevantChunkIDs reference chunk ids of the index under evaluation;
// RelevantTexts are snippets resolved to chunk ids at evaluation time.
type Query struct {
	Text             string
	RelevantChunkIDs []string
	RelevantTexts    []string
}

// SearchHit is one ranked result entry.
type SearchHit struct {
	ChunkID string
	Score   float64
}

// RankedResult is the ordered output of one search, scores non-increasing,
// length at most the requested k.
type RankedResult []SearchHit

// ChunkIDs returns the hit ids in rank order.
func (r RankedResult) ChunkIDs() []string {
	ids := make([]string, len(r))
	for i, hit := range r {
		ids[i] = hit.ChunkID
	}
	return ids
}

// QueryMetrics holds ranking metrics for a single query.
type QueryMetrics struct {
	Query        string  `json:"query"`
	PrecisionAtK float64 `json:"precision_at_k"`
	RecallAtK    float64 `json:"recall_at_k"`
	MRR          float64 `json:"mrr"`
	NDCGAtK      float64 `json:"ndcg_at_k"`
	LatencyMS    float64 `json:"latency_ms"`
	Skipped      bool    `json:"skipped,omitempty"`
	SkipReason   string  `json:"skip_reason,omitempty"`
}

// MetricReport aggregates ranking metrics over a query batch. Means are
// arithmetic over queries with non-empty, resolvable ground truth; latency
// covers every executed query.
type MetricReport struct {
	PrecisionAtK    float64        `json:"precision_at_k"`
	RecallAtK       float64        `json:"recall_at_k"`
	MRR             float64        `json:"mrr"`
	NDCGAtK         float64        `json:"ndcg_at_k"`
	MeanLatencyMS   float64        `json:"mean_latency_ms"`
	MedianLatencyMS float64        `json:"median_latency_ms"`
	P95LatencyMS    float64        `json:"p95_latency_ms"`
	Evaluated       int            `json:"evaluated"`
	Skipped         int            `json:"skipped"`
	PerQuery        []QueryMetrics `json:"per_query,omitempty"`
}

// BenchmarkRow is one (chunker, indexer) cell of the benchmark matrix.
type BenchmarkRow struct {
	Chunker      string       `json:"chunker"`
	Indexer      string       `json:"indexer"`
	Chunks       int          `json:"chunks"`
	IndexBuildMS float64      `json:"index_build_ms"`
	Report       MetricReport `json:"report"`
}

// BenchmarkReport is the persisted result of one benchmark run.
type BenchmarkReport struct {
	RunID     string         `json:"run_id"`
	StartedAt time.Time      `json:"started_at"`
	Documents []string       `json:"documents"`
	Queries   int            `json:"queries"`
	TopK      int            `json:"top_k"`
	Rows      []BenchmarkRow `json:"rows"`
	TotalMS   float64        `json:"total_ms"`
}
