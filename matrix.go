package i4tb

import (
	"fmt"
	"math"
	"sort"
)

// validateMatrix checks that data is a well-formed samples × features matrix
// with at least minRows rows, at least one column, consistent row lengths,
// and only finite entries. Returns the dimensions (n rows, p columns).
func validateMatrix(data [][]float64, minRows int) (n, p int, err error) {
	n = len(data)
	if n < minRows {
		return 0, 0, fmt.Errorf("i4tb: matrix must have at least %d rows, got %d: %w", minRows, n, ErrInvalidInput)
	}
	if n == 0 {
		return 0, 0, nil
	}
	p = len(data[0])
	if p < 1 {
		return 0, 0, fmt.Errorf("i4tb: matrix must have at least 1 column: %w", ErrInvalidInput)
	}
	for i, row := range data {
		if len(row) != p {
			return 0, 0, fmt.Errorf("i4tb: row %d has %d columns, expected %d: %w", i, len(row), p, ErrInvalidInput)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("i4tb: non-finite entry at row %d, column %d: %w", i, j, ErrInvalidInput)
			}
		}
	}
	return n, p, nil
}

// flatten copies data into flat row-major form. Rows are copied, never
// aliased, so later mutation of data cannot reach the result.
func flatten(data [][]float64, n, p int) []float64 {
	flat := make([]float64, n*p)
	for i, row := range data {
		copy(flat[i*p:], row)
	}
	return flat
}

// Dataset carries an expression matrix together with optional parallel
// sample identifiers and categorical phenotype labels. The identifiers and
// labels exist only so results can be re-attached to samples afterwards;
// no numeric routine in this package reads them.
type Dataset struct {
	// Data is the samples × features expression matrix.
	Data [][]float64

	// SampleIDs holds one opaque identifier per row, in row order.
	// May be nil.
	SampleIDs []string

	// Labels holds one categorical label per row (e.g. disease state),
	// in row order. May be nil.
	Labels []string
}

// NewDataset validates that ids and labels, when present, are parallel to
// the rows of data. Either slice may be nil. The matrix itself is validated
// by the algorithm entry points, not here.
func NewDataset(data [][]float64, ids, labels []string) (*Dataset, error) {
	if ids != nil && len(ids) != len(data) {
		return nil, fmt.Errorf("i4tb: %d sample IDs for %d rows: %w", len(ids), len(data), ErrInvalidInput)
	}
	if labels != nil && len(labels) != len(data) {
		return nil, fmt.Errorf("i4tb: %d labels for %d rows: %w", len(labels), len(data), ErrInvalidInput)
	}
	return &Dataset{Data: data, SampleIDs: ids, Labels: labels}, nil
}

// ClustersByID groups the dataset's sample identifiers by cluster label.
// clusterLabels is a flat assignment as returned by KMeans or CutByCount,
// one entry per row. Group member lists preserve row order.
func (d *Dataset) ClustersByID(clusterLabels []int) (map[int][]string, error) {
	if len(clusterLabels) != len(d.Data) {
		return nil, fmt.Errorf("i4tb: %d cluster labels for %d rows: %w", len(clusterLabels), len(d.Data), ErrInvalidInput)
	}
	groups := make(map[int][]string, len(clusterLabels))
	for i, c := range clusterLabels {
		id := fmt.Sprintf("%d", i)
		if d.SampleIDs != nil {
			id = d.SampleIDs[i]
		}
		groups[c] = append(groups[c], id)
	}
	return groups, nil
}

// ClusterIDs returns the distinct cluster labels present in clusterLabels,
// ascending.
func ClusterIDs(clusterLabels []int) []int {
	seen := make(map[int]bool, len(clusterLabels))
	for _, c := range clusterLabels {
		seen[c] = true
	}
	ids := make([]int, 0, len(seen))
	for c := range seen {
		ids = append(ids, c)
	}
	sort.Ints(ids)
	return ids
}
