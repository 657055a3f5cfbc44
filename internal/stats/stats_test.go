// internal/stats/stats_test.go
package stats

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Fatalf("Mean=%v, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil)=%v, want 0", got)
	}
}

func TestStdDev_Population(t *testing.T) {
	// numpy-style population sigma: std([1,3]) = 1, not sqrt(2).
	if got := StdDev([]float64{1, 3}); got != 1 {
		t.Fatalf("StdDev=%v, want 1", got)
	}
	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Fatalf("StdDev of constant=%v, want 0", got)
	}
	if got := StdDev(nil); got != 0 {
		t.Fatalf("StdDev(nil)=%v, want 0", got)
	}
}

func TestSentinelSkewsStatistics(t *testing.T) {
	// A failed sample (-999) stays inside the statistic; this is the
	// documented behavior of the logging loop.
	vals := []float64{12.0, -999}
	if got := Mean(vals); got != -493.5 {
		t.Fatalf("Mean=%v, want -493.5", got)
	}
	want := 505.5
	if got := StdDev(vals); math.Abs(got-want) > 1e-9 {
		t.Fatalf("StdDev=%v, want %v", got, want)
	}
}
