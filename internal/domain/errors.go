package domain

import "errors"

// Error taxonomy for the retrieval core. All failures here are deterministic
// for identical input; the core performs no I/O, so nothing is retried.
var (
	// ErrUnknownStrategy rejects an unrecognized chunker or indexer name at
	// the boundary. Fatal to the request, never silently defaulted.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidK rejects a non-positive result limit.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyIndex signals a search against an index with zero chunks.
	// Callers treat it as a no-op with an empty result and a warning, since
	// a session may legitimately have no attachments yet.
	ErrEmptyIndex = errors.New("index has no chunks")

	// ErrMalformedGroundTruth signals ground-truth chunk ids that do not
	// exist in the index under evaluation. The query is excluded from
	// aggregates and reported individually.
	ErrMalformedGroundTruth = errors.New("ground truth references unknown chunks")
)
