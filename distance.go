package i4tb

import (
	"fmt"
	"math"
)

// Metric names a built-in distance metric for the configuration surface.
type Metric string

const (
	MetricEuclidean Metric = "euclidean"
	MetricManhattan Metric = "manhattan"
)

// DistanceMetric provides distance computation with optional reduced distance
// for comparisons that don't need the true value (e.g., squared Euclidean
// skips sqrt).
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
// ReducedDistance delegates to the same function.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64        { return f(a, b) }
func (f DistanceFunc) ReducedDistance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
// ReducedDistance returns squared Euclidean distance (skips sqrt).
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(euclideanSumOfSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	return euclideanSumOfSquares(a, b)
}

func euclideanSumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func (m ManhattanMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

// metricFor resolves a metric name to its implementation.
func metricFor(metric Metric) (DistanceMetric, error) {
	switch metric {
	case MetricEuclidean:
		return EuclideanMetric{}, nil
	case MetricManhattan:
		return ManhattanMetric{}, nil
	default:
		return nil, fmt.Errorf("i4tb: metric %q: %w", metric, ErrUnsupportedMetric)
	}
}

// DistanceMatrix is a symmetric n×n matrix of pairwise sample distances with
// an exactly-zero diagonal, stored flat in row-major order.
type DistanceMatrix struct {
	N int
	D []float64 // length N*N
}

// At returns the distance between samples i and j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.D[i*m.N+j]
}

// PairwiseDistances computes the full pairwise distance matrix between the
// rows of data under the named metric. Only the upper triangle is computed;
// the lower triangle is mirrored and the diagonal is exactly 0 regardless of
// floating-point roundoff in the metric.
func PairwiseDistances(data [][]float64, metric Metric) (*DistanceMatrix, error) {
	return PairwiseDistancesParallel(data, metric, 1)
}

// computePairwise fills an n×n flat distance matrix single-threaded.
// flat is row-major with n rows and p columns.
func computePairwise(flat []float64, n, p int, metric DistanceMetric) []float64 {
	result := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric.Distance(flat[i*p:(i+1)*p], flat[j*p:(j+1)*p])
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}
	return result
}
