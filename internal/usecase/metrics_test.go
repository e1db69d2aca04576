package usecase

import (
	"testing"
)

func approx(t *testing.T, got, want float64, label string) {
	t.Helper()
	if diff := got - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("%s = %.4f, want %.4f", label, got, want)
	}
}

func TestPrecisionAtK(t *testing.T) {
	cases := []struct {
		name  string
		flags []int
		k     int
		want  float64
	}{
		{"perfect", []int{1, 1, 1}, 3, 1.0},
		{"partial", []int{1, 1, 0}, 3, 0.6667},
		{"none", []int{0, 0, 0}, 3, 0.0},
		{"fewer_retrieved_than_k", []int{1, 0}, 5, 0.5},
		{"k_truncates_flags", []int{1, 0, 0, 1, 1}, 2, 0.5},
		{"empty", nil, 5, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approx(t, PrecisionAtK(tc.flags, tc.k), tc.want, "precision")
		})
	}
}

func TestRecallAtK(t *testing.T) {
	cases := []struct {
		name     string
		flags    []int
		relevant int
		k        int
		want     float64
	}{
		{"perfect", []int{1, 1, 1}, 3, 3, 1.0},
		{"partial", []int{1, 1, 0}, 3, 3, 0.6667},
		{"none", []int{0, 0, 0}, 3, 3, 0.0},
		{"no_relevant", []int{1, 1}, 0, 2, 0.0},
		{"more_relevant_than_k", []int{1, 1}, 10, 2, 0.2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approx(t, RecallAtK(tc.flags, tc.relevant, tc.k), tc.want, "recall")
		})
	}
}

func TestReciprocalRank(t *testing.T) {
	cases := []struct {
		name  string
		flags []int
		want  float64
	}{
		{"first", []int{1, 0, 0}, 1.0},
		{"second", []int{0, 1, 0}, 0.5},
		{"third", []int{0, 0, 1}, 0.3333},
		{"missing", []int{0, 0, 0}, 0.0},
		{"empty", nil, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approx(t, ReciprocalRank(tc.flags), tc.want, "MRR")
		})
	}
}

func TestNDCGAtK(t *testing.T) {
	cases := []struct {
		name     string
		flags    []int
		relevant int
		k        int
		want     float64
	}{
		{"ideal_ordering", []int{1, 1, 0}, 2, 3, 1.0},
		{"single_hit_first", []int{1, 0, 0}, 1, 3, 1.0},
		// hit at rank 2: DCG = 1/log2(3), IDCG = 1/log2(2)
		{"single_hit_second", []int{0, 1, 0}, 1, 3, 0.6309},
		{"no_hits", []int{0, 0, 0}, 2, 3, 0.0},
		{"no_relevant", []int{0, 0}, 0, 2, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approx(t, NDCGAtK(tc.flags, tc.relevant, tc.k), tc.want, "NDCG")
		})
	}
}

func TestSummarizeLatency(t *testing.T) {
	median, p95 := SummarizeLatency([]float64{1, 2, 3, 4, 5})
	approx(t, median, 3.0, "median")
	approx(t, p95, 4.8, "p95")

	median, p95 = SummarizeLatency([]float64{10})
	approx(t, median, 10.0, "median single")
	approx(t, p95, 10.0, "p95 single")

	median, p95 = SummarizeLatency(nil)
	approx(t, median, 0.0, "median empty")
	approx(t, p95, 0.0, "p95 empty")

	// even count interpolates between the middle pair
	median, _ = SummarizeLatency([]float64{1, 2, 3, 4})
	approx(t, median, 2.5, "median even")
}
