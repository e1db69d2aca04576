package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"searchlab/internal/domain"
)

var bucketRuns = []byte("runs")

// BoltReportStore persists benchmark reports in a BoltDB file so the result
// table of a run survives the process. Indexes themselves are never
// persisted; only their measured behavior is.
type BoltReportStore struct {
	db *bbolt.DB
}

// NewBoltReportStore opens (or creates) the report database at path.
func NewBoltReportStore(path string) (*BoltReportStore, error) {
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}
	return &BoltReportStore{db: db}, nil
}

// SaveReport stores one benchmark run keyed by its run id.
func (s *BoltReportStore) SaveReport(report domain.BenchmarkReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(report.RunID), data)
	})
}

// ListReports returns all stored runs, most recent first.
func (s *BoltReportStore) ListReports() ([]domain.BenchmarkReport, error) {
	var reports []domain.BenchmarkReport
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, v []byte) error {
			var report domain.BenchmarkReport
			if err := json.Unmarshal(v, &report); err != nil {
				return nil // skip entries written by other versions
			}
			reports = append(reports, report)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})
	return reports, nil
}

// GetReport fetches one run by id.
func (s *BoltReportStore) GetReport(runID string) (domain.BenchmarkReport, error) {
	var report domain.BenchmarkReport
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(runID))
		if data == nil {
			return fmt.Errorf("run not found: %s", runID)
		}
		return json.Unmarshal(data, &report)
	})
	return report, err
}

func (s *BoltReportStore) Close() error {
	return s.db.Close()
}
