package i4tb

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PCAResult holds a fitted principal component analysis.
//
// Components are ordered by variance descending. The ordering is stable
// across runs on identical input, so downstream consumers can rely on
// component indices for reproducibility.
type PCAResult struct {
	// Scores is the n×k matrix of transformed samples: the centered input
	// projected onto the principal axes.
	Scores *mat.Dense

	// Rotation is the p×k loading matrix. Its columns are orthonormal
	// eigenvectors of the input's covariance matrix.
	Rotation *mat.Dense

	// Variances holds the k per-component variances in descending order.
	// Their sum equals the total variance of the centered input.
	Variances []float64

	// ExplainedVarianceRatio is Variances normalized to sum to 1.
	ExplainedVarianceRatio []float64

	// Means is the p-length vector of column means subtracted during
	// centering. Kept so new samples can be projected with Transform.
	Means []float64
}

// PCAFit fits a principal component analysis to the rows of data.
//
// Columns are centered to zero mean, then a thin singular value
// decomposition of the centered matrix yields the rotation (right singular
// vectors) and per-component variances (squared singular values divided by
// n−1); this is the eigendecomposition of the covariance matrix without
// forming it. All k = min(n, p) components are retained.
//
// Requires n >= 2 rows; a matrix with zero total variance (all rows
// identical) fails with ErrDegenerateInput.
func PCAFit(data [][]float64) (*PCAResult, error) {
	n, p, err := validateMatrix(data, 2)
	if err != nil {
		return nil, err
	}

	means := make([]float64, p)
	for _, row := range data {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	centered := mat.NewDense(n, p, nil)
	for i, row := range data {
		for j, v := range row {
			centered.Set(i, j, v-means[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, fmt.Errorf("i4tb: SVD of centered matrix did not converge: %w", ErrDegenerateInput)
	}

	// Singular values come back in descending order, so components are
	// already ranked by explained variance.
	singular := svd.Values(nil)
	k := len(singular)
	variances := make([]float64, k)
	var total float64
	for i, s := range singular {
		variances[i] = s * s / float64(n-1)
		total += variances[i]
	}
	if total == 0 {
		return nil, fmt.Errorf("i4tb: matrix has zero total variance: %w", ErrDegenerateInput)
	}

	ratios := make([]float64, k)
	for i, v := range variances {
		ratios[i] = v / total
	}

	rotation := &mat.Dense{}
	svd.VTo(rotation)

	scores := &mat.Dense{}
	scores.Mul(centered, rotation)

	return &PCAResult{
		Scores:                 scores,
		Rotation:               rotation,
		Variances:              variances,
		ExplainedVarianceRatio: ratios,
		Means:                  means,
	}, nil
}

// NumComponents returns k, the number of retained components.
func (r *PCAResult) NumComponents() int {
	_, k := r.Rotation.Dims()
	return k
}

// Transform projects new samples into the fitted component space using the
// stored column means and rotation. rows must have the same number of
// columns as the fitted data.
func (r *PCAResult) Transform(rows [][]float64) (*mat.Dense, error) {
	n, p, err := validateMatrix(rows, 1)
	if err != nil {
		return nil, err
	}
	if p != len(r.Means) {
		return nil, fmt.Errorf("i4tb: fitted on %d columns, got %d: %w", len(r.Means), p, ErrInvalidInput)
	}

	centered := mat.NewDense(n, p, nil)
	for i, row := range rows {
		for j, v := range row {
			centered.Set(i, j, v-r.Means[j])
		}
	}

	out := &mat.Dense{}
	out.Mul(centered, r.Rotation)
	return out, nil
}

// ScoreRows returns the fitted scores as a samples × components [][]float64,
// the form the rest of this package consumes (e.g. clustering on a reduced
// matrix).
func (r *PCAResult) ScoreRows() [][]float64 {
	n, k := r.Scores.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		mat.Row(row, i, r.Scores)
		rows[i] = row
	}
	return rows
}
