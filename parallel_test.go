package i4tb

import (
	"testing"
)

func TestPairwiseDistancesParallel_BitwiseIdentical(t *testing.T) {
	data := [][]float64{
		{0, 0},
		{3, 0},
		{0, 4},
		{1, 1},
		{5, 5},
	}

	sequential, err := PairwiseDistances(data, MetricEuclidean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, workers := range []int{1, 2, 4, 16} {
		parallel, err := PairwiseDistancesParallel(data, MetricEuclidean, workers)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if parallel.N != sequential.N {
			t.Fatalf("workers=%d: N mismatch %d != %d", workers, parallel.N, sequential.N)
		}
		for i := range sequential.D {
			if parallel.D[i] != sequential.D[i] {
				t.Errorf("workers=%d: D[%d] = %v, expected %v (bitwise)",
					workers, i, parallel.D[i], sequential.D[i])
			}
		}
	}
}

func TestPairwiseDistancesParallel_Manhattan(t *testing.T) {
	data := [][]float64{
		{0, 0},
		{3, 4},
		{6, 0},
		{1, 1},
	}

	sequential, err := PairwiseDistances(data, MetricManhattan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parallel, err := PairwiseDistancesParallel(data, MetricManhattan, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range sequential.D {
		if parallel.D[i] != sequential.D[i] {
			t.Errorf("Manhattan parallel D[%d] = %v, expected %v", i, parallel.D[i], sequential.D[i])
		}
	}
}

func TestPairwiseDistancesParallel_SingleRow(t *testing.T) {
	dm, err := PairwiseDistancesParallel([][]float64{{1, 2}}, MetricEuclidean, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dm.N != 1 || len(dm.D) != 1 {
		t.Fatalf("expected 1×1 matrix, got N=%d len=%d", dm.N, len(dm.D))
	}
	if dm.D[0] != 0 {
		t.Errorf("expected 0, got %v", dm.D[0])
	}
}

func TestPairwiseDistancesParallel_MoreWorkersThanRows(t *testing.T) {
	data := [][]float64{{0}, {1}, {2}}
	dm, err := PairwiseDistancesParallel(data, MetricEuclidean, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(dm.At(0, 2), 2, floatTol) {
		t.Errorf("At(0,2) = %v, expected 2", dm.At(0, 2))
	}
}
