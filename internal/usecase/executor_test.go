package usecase

import (
	"errors"
	"testing"

	"searchlab/internal/adapter/index"
	"searchlab/internal/domain"
)

func docFixture() []domain.Document {
	return []domain.Document{
		{ID: "d1", Source: "networking.txt", Text: "Connection pooling reuses sockets across requests.\n\nRetry policies back off exponentially on failure."},
		{ID: "d2", Source: "storage.txt", Text: "Write-ahead logs make crash recovery possible.\n\nCompaction merges overlapping segments in the background."},
	}
}

func TestExecuteSearchInvalidK(t *testing.T) {
	ix, _, err := BuildIndex(docFixture(), "fixed", "none", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{0, -1} {
		_, _, err := ExecuteSearch(ix, "pooling", k)
		if !errors.Is(err, domain.ErrInvalidK) {
			t.Errorf("k=%d: expected ErrInvalidK, got %v", k, err)
		}
	}
}

func TestExecuteSearchEmptyIndex(t *testing.T) {
	empty := (&index.LinearIndexer{}).Build(nil)
	_, _, err := ExecuteSearch(empty, "pooling", 5)
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}

	_, _, err = ExecuteSearch(nil, "pooling", 5)
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("nil index: expected ErrEmptyIndex, got %v", err)
	}
}

func TestExecuteSearchReportsLatency(t *testing.T) {
	ix, _, err := BuildIndex(docFixture(), "fixed", "none", nil)
	if err != nil {
		t.Fatal(err)
	}
	result, latency, err := ExecuteSearch(ix, "connection pooling", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) == 0 {
		t.Error("expected hits for an indexed phrase")
	}
	if latency < 0 {
		t.Errorf("latency = %f, want >= 0", latency)
	}
}

func TestBuildIndexUnknownStrategies(t *testing.T) {
	if _, _, err := BuildIndex(docFixture(), "recursive", "none", nil); !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Errorf("unknown chunker: got %v", err)
	}
	if _, _, err := BuildIndex(docFixture(), "fixed", "annoy", nil); !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Errorf("unknown indexer: got %v", err)
	}
}

func TestValidateStrategies(t *testing.T) {
	if err := ValidateStrategies("semantic", "faiss"); err != nil {
		t.Errorf("valid pair rejected: %v", err)
	}
	if err := ValidateStrategies("semantic", "annoy"); !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Errorf("invalid indexer accepted: %v", err)
	}
}
