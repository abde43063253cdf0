package i4tb

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// KMeansConfig controls k-means clustering behavior.
// Start with [DefaultKMeansConfig] and set the fields you need; K is
// required.
type KMeansConfig struct {
	// K is the number of clusters. Must be >= 1 and <= the number of rows.
	K int

	// NInit is the number of independent random restarts. The restart with
	// the lowest inertia wins. Must be >= 1. Default: 10.
	NInit int

	// MaxIter is the iteration cap per restart. Lloyd's algorithm usually
	// converges long before a reasonable cap. Must be >= 1. Default: 300.
	MaxIter int

	// Seed makes the run reproducible: restart r draws from a generator
	// seeded with Seed+r, so results are identical across reruns and
	// independent of restart scheduling. Any value is valid.
	Seed int64

	// Workers caps the number of concurrent restarts. 0 means
	// runtime.NumCPU(). Restarts are independent, and the min-inertia
	// reduction is deterministic, so concurrency never changes the result.
	Workers int
}

// DefaultKMeansConfig returns a KMeansConfig with reasonable defaults.
// K is left zero and must be set by the caller.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		NInit:   10,
		MaxIter: 300,
		Seed:    1,
	}
}

// KMeansResult contains the best clustering found across all restarts.
type KMeansResult struct {
	// Labels assigns each row to a cluster index in [0, K). Cluster
	// numbering is arbitrary and not comparable across different seeds.
	Labels []int

	// Centroids holds the K cluster centers, each a p-length vector equal
	// to the mean of its assigned rows.
	Centroids [][]float64

	// Inertia is the sum of squared Euclidean distances from each row to
	// its assigned centroid -- the objective Lloyd's algorithm minimizes.
	Inertia float64
}

// applyKMeansDefaults fills in zero-valued config fields with their defaults.
func applyKMeansDefaults(cfg *KMeansConfig) {
	if cfg.NInit == 0 {
		cfg.NInit = 10
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 300
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateKMeansConfig checks cfg against the row count n.
func validateKMeansConfig(cfg *KMeansConfig, n int) error {
	if cfg.K < 1 {
		return fmt.Errorf("i4tb: K must be >= 1, got %d: %w", cfg.K, ErrInvalidParameter)
	}
	if cfg.K > n {
		return fmt.Errorf("i4tb: K must be <= number of rows (%d), got %d: %w", n, cfg.K, ErrInvalidParameter)
	}
	if cfg.NInit < 1 {
		return fmt.Errorf("i4tb: NInit must be >= 1, got %d: %w", cfg.NInit, ErrInvalidParameter)
	}
	if cfg.MaxIter < 1 {
		return fmt.Errorf("i4tb: MaxIter must be >= 1, got %d: %w", cfg.MaxIter, ErrInvalidParameter)
	}
	return nil
}

// KMeans partitions the rows of data into cfg.K clusters using Lloyd's
// algorithm with cfg.NInit restarts, returning the restart with the lowest
// inertia. Within one restart, inertia is monotonically non-increasing
// across iterations; the returned solution is a local optimum, not
// guaranteed global.
func KMeans(data [][]float64, cfg KMeansConfig) (*KMeansResult, error) {
	applyKMeansDefaults(&cfg)

	n, p, err := validateMatrix(data, 1)
	if err != nil {
		return nil, err
	}
	if err := validateKMeansConfig(&cfg, n); err != nil {
		return nil, err
	}

	flat := flatten(data, n, p)

	runs := make([]kmeansRun, cfg.NInit)
	g := new(errgroup.Group)
	g.SetLimit(cfg.Workers)
	for r := 0; r < cfg.NInit; r++ {
		r := r
		g.Go(func() error {
			runs[r] = kmeansSingle(flat, n, p, cfg.K, cfg.MaxIter, cfg.Seed+int64(r))
			return nil
		})
	}
	_ = g.Wait() // restarts cannot fail

	// Deterministic reduction: lowest inertia wins, earliest restart on ties.
	best := 0
	for r := 1; r < cfg.NInit; r++ {
		if runs[r].inertia < runs[best].inertia {
			best = r
		}
	}

	centroids := make([][]float64, cfg.K)
	for c := 0; c < cfg.K; c++ {
		centroids[c] = append([]float64(nil), runs[best].centroids[c*p:(c+1)*p]...)
	}
	return &KMeansResult{
		Labels:    runs[best].labels,
		Centroids: centroids,
		Inertia:   runs[best].inertia,
	}, nil
}

type kmeansRun struct {
	labels    []int
	centroids []float64 // flat k×p
	inertia   float64
}

// kmeansSingle runs one seeded restart of Lloyd's algorithm.
// flat is row-major with n rows and p columns.
func kmeansSingle(flat []float64, n, p, k, maxIter int, seed int64) kmeansRun {
	rng := rand.New(rand.NewSource(seed))

	// Initialize centroids from k distinct rows.
	centroids := make([]float64, k*p)
	perm := rng.Perm(n)
	for c := 0; c < k; c++ {
		copy(centroids[c*p:(c+1)*p], flat[perm[c]*p:(perm[c]+1)*p])
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	counts := make([]int, k)
	sums := make([]float64, k*p)

	for iter := 0; iter < maxIter; iter++ {
		// Assignment step: nearest centroid by squared Euclidean distance.
		// Strict < with ascending c keeps the lowest index on ties.
		changed := false
		for i := 0; i < n; i++ {
			row := flat[i*p : (i+1)*p]
			best := 0
			bestDist := math.Inf(1)
			for c := 0; c < k; c++ {
				d := euclideanSumOfSquares(row, centroids[c*p:(c+1)*p])
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// Update step: each centroid becomes the mean of its rows.
		for i := range sums {
			sums[i] = 0
		}
		for c := range counts {
			counts[c] = 0
		}
		for i := 0; i < n; i++ {
			c := labels[i]
			counts[c]++
			for j := 0; j < p; j++ {
				sums[c*p+j] += flat[i*p+j]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// An empty cluster is recovered deterministically by moving
				// its centroid onto the row farthest from its current
				// nearest centroid, instead of failing the restart.
				reseedEmptyCluster(flat, n, p, k, centroids, c)
				continue
			}
			scale := 1.0 / float64(counts[c])
			for j := 0; j < p; j++ {
				centroids[c*p+j] = sums[c*p+j] * scale
			}
		}
	}

	var inertia float64
	for i := 0; i < n; i++ {
		inertia += euclideanSumOfSquares(flat[i*p:(i+1)*p], centroids[labels[i]*p:(labels[i]+1)*p])
	}
	return kmeansRun{labels: labels, centroids: centroids, inertia: inertia}
}

// reseedEmptyCluster moves centroid c onto the row farthest from its nearest
// current centroid. The first such row wins on ties, so recovery is
// deterministic. A row already sitting on a centroid has distance 0 and is
// never chosen while a farther row exists, which keeps successive reseeds of
// multiple empty clusters from picking the same row.
func reseedEmptyCluster(flat []float64, n, p, k int, centroids []float64, c int) {
	farthest := 0
	maxDist := -1.0
	for i := 0; i < n; i++ {
		row := flat[i*p : (i+1)*p]
		nearest := math.Inf(1)
		for cc := 0; cc < k; cc++ {
			if d := euclideanSumOfSquares(row, centroids[cc*p:(cc+1)*p]); d < nearest {
				nearest = d
			}
		}
		if nearest > maxDist {
			maxDist = nearest
			farthest = i
		}
	}
	copy(centroids[c*p:(c+1)*p], flat[farthest*p:(farthest+1)*p])
}
