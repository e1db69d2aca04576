package port

import "searchlab/internal/domain"

// DocumentSource supplies documents whose Text is already decoded plain
// text. File parsing lives behind this boundary.
type DocumentSource interface {
	Load() ([]domain.Document, error)
}

// QuerySource supplies evaluation queries, interactively (single query, no
// ground truth) or from a batch file.
type QuerySource interface {
	Load() ([]domain.Query, error)
}

// ReportStore persists benchmark reports across runs.
type ReportStore interface {
	SaveReport(report domain.BenchmarkReport) error
	ListReports() ([]domain.BenchmarkReport, error)
	GetReport(runID string) (domain.BenchmarkReport, error)
	Close() error
}
