package usecase

import (
	"errors"
	"fmt"

	"searchlab/internal/domain"
	applog "searchlab/internal/platform/log"
	"searchlab/internal/port"
)

// Evaluate runs every query through the retrieval executor and scores the
// ranked results against ground-truth chunk ids. Queries without ground
// truth contribute only to latency statistics; queries whose ground truth
// references chunk ids missing from the index are excluded from the
// aggregates and reported individually with a warning. Neither the ranked
// results nor the ground truth are mutated.
func Evaluate(ix port.Index, queries []domain.Query, k int) (domain.MetricReport, error) {
	if k <= 0 {
		return domain.MetricReport{}, fmt.Errorf("evaluate with k=%d: %w", k, domain.ErrInvalidK)
	}

	known := map[string]struct{}{}
	if ix != nil {
		known = ix.ChunkIDs()
	}

	report := domain.MetricReport{}
	var latencies []float64
	var sumP, sumR, sumMRR, sumNDCG float64

	for _, q := range queries {
		result, latency, err := ExecuteSearch(ix, q.Text, k)
		if err != nil {
			if !errors.Is(err, domain.ErrEmptyIndex) {
				return domain.MetricReport{}, err
			}
			applog.Warn("search on empty index, returning no results", "query", q.Text)
			result = nil
			latency = 0
		}
		latencies = append(latencies, latency)

		row := domain.QueryMetrics{Query: q.Text, LatencyMS: latency}

		if len(q.RelevantChunkIDs) == 0 {
			row.Skipped = true
			row.SkipReason = "no ground truth"
			report.PerQuery = append(report.PerQuery, row)
			continue
		}

		if missing := missingIDs(q.RelevantChunkIDs, known); len(missing) > 0 {
			applog.Warn("query excluded from aggregates",
				"query", q.Text, "missing_chunk_ids", missing, "reason", domain.ErrMalformedGroundTruth.Error())
			row.Skipped = true
			row.SkipReason = domain.ErrMalformedGroundTruth.Error()
			report.Skipped++
			report.PerQuery = append(report.PerQuery, row)
			continue
		}

		flags := relevanceFlags(result.ChunkIDs(), q.RelevantChunkIDs)
		row.PrecisionAtK = PrecisionAtK(flags, k)
		row.RecallAtK = RecallAtK(flags, len(q.RelevantChunkIDs), k)
		row.MRR = ReciprocalRank(flags)
		row.NDCGAtK = NDCGAtK(flags, len(q.RelevantChunkIDs), k)

		sumP += row.PrecisionAtK
		sumR += row.RecallAtK
		sumMRR += row.MRR
		sumNDCG += row.NDCGAtK
		report.Evaluated++
		report.PerQuery = append(report.PerQuery, row)
	}

	if report.Evaluated > 0 {
		n := float64(report.Evaluated)
		report.PrecisionAtK = sumP / n
		report.RecallAtK = sumR / n
		report.MRR = sumMRR / n
		report.NDCGAtK = sumNDCG / n
	}
	if len(latencies) > 0 {
		total := 0.0
		for _, l := range latencies {
			total += l
		}
		report.MeanLatencyMS = total / float64(len(latencies))
		report.MedianLatencyMS, report.P95LatencyMS = SummarizeLatency(latencies)
	}
	return report, nil
}

func relevanceFlags(retrieved, relevant []string) []int {
	relevantSet := make(map[string]struct{}, len(relevant))
	for _, id := range relevant {
		relevantSet[id] = struct{}{}
	}
	flags := make([]int, len(retrieved))
	for i, id := range retrieved {
		if _, ok := relevantSet[id]; ok {
			flags[i] = 1
		}
	}
	return flags
}

func missingIDs(ids []string, known map[string]struct{}) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
