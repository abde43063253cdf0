package i4tb

import (
	"sync"
)

// PairwiseDistancesParallel computes the same distance matrix as
// PairwiseDistances using multiple goroutines. workers controls the degree
// of parallelism; if <= 1, the computation is single-threaded.
//
// The result is bitwise identical to the single-threaded path: each pairwise
// distance is computed exactly once, in the same way, regardless of worker
// count.
func PairwiseDistancesParallel(data [][]float64, metric Metric, workers int) (*DistanceMatrix, error) {
	m, err := metricFor(metric)
	if err != nil {
		return nil, err
	}
	n, p, err := validateMatrix(data, 1)
	if err != nil {
		return nil, err
	}
	flat := flatten(data, n, p)

	if workers <= 1 || n <= 1 {
		return &DistanceMatrix{N: n, D: computePairwise(flat, n, p, m)}, nil
	}

	result := make([]float64, n*n)

	// Split rows across workers. Each worker handles a contiguous range of
	// "source" rows and computes dist(i,j) for all j > i in that range.
	// Since row ranges don't overlap, no synchronization is needed for writes.
	var wg sync.WaitGroup

	rowsPerWorker := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := i + 1; j < n; j++ {
					d := m.Distance(flat[i*p:(i+1)*p], flat[j*p:(j+1)*p])
					result[i*n+j] = d
					result[j*n+i] = d
				}
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return &DistanceMatrix{N: n, D: result}, nil
}
