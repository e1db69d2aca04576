package usecase

import (
	"math"
	"sort"
)

// Ranking metrics over binary relevance. flags[i] is 1 when the i-th
// retrieved chunk is relevant, 0 otherwise.

// PrecisionAtK is hits / min(k, retrieved).
func PrecisionAtK(flags []int, k int) float64 {
	denom := min(k, len(flags))
	if denom == 0 {
		return 0
	}
	return float64(sum(flags[:denom])) / float64(denom)
}

// RecallAtK is hits / totalRelevant, meaningless when totalRelevant is 0;
// callers exclude such queries from averaging.
func RecallAtK(flags []int, totalRelevant, k int) float64 {
	if totalRelevant == 0 {
		return 0
	}
	denom := min(k, len(flags))
	return float64(sum(flags[:denom])) / float64(totalRelevant)
}

// ReciprocalRank is 1/rank of the first relevant hit, 0 when none appears.
func ReciprocalRank(flags []int) float64 {
	for i, f := range flags {
		if f > 0 {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}

// NDCGAtK compares the discounted gain of the retrieved ordering to the
// ideal ordering of all relevant items placed first, up to k.
func NDCGAtK(flags []int, totalRelevant, k int) float64 {
	n := min(k, len(flags))
	dcg := 0.0
	for i := 0; i < n; i++ {
		dcg += float64(flags[i]) / math.Log2(float64(i+2))
	}
	ideal := 0.0
	for i := 0; i < min(k, totalRelevant); i++ {
		ideal += 1.0 / math.Log2(float64(i+2))
	}
	if ideal == 0 {
		return 0
	}
	return dcg / ideal
}

// SummarizeLatency returns the median and p95 of the samples using linear
// interpolation between ranks.
func SummarizeLatency(samplesMS []float64) (median, p95 float64) {
	if len(samplesMS) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(samplesMS))
	copy(sorted, samplesMS)
	sort.Float64s(sorted)
	return percentile(sorted, 0.5), percentile(sorted, 0.95)
}

func percentile(sorted []float64, p float64) float64 {
	idx := p * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

func sum(flags []int) int {
	total := 0
	for _, f := range flags {
		total += f
	}
	return total
}
