package usecase

import (
	"fmt"
	"time"

	"searchlab/internal/domain"
	"searchlab/internal/port"
)

// ExecuteSearch runs one query against a built index and measures the
// wall-clock latency of the call in milliseconds. k must be positive; an
// index with zero chunks yields ErrEmptyIndex, which callers usually treat
// as an empty result rather than a hard failure.
func ExecuteSearch(ix port.Index, query string, k int) (domain.RankedResult, float64, error) {
	if k <= 0 {
		return nil, 0, fmt.Errorf("search with k=%d: %w", k, domain.ErrInvalidK)
	}
	if ix == nil || ix.Len() == 0 {
		return nil, 0, domain.ErrEmptyIndex
	}

	start := time.Now()
	result := ix.Search(query, k)
	latency := float64(time.Since(start)) / float64(time.Millisecond)
	return result, latency, nil
}
