package i4tb

import "errors"

var (
	// ErrInvalidInput indicates a malformed input matrix: no rows, ragged
	// rows, zero columns, or non-finite (NaN/Inf) entries.
	ErrInvalidInput = errors.New("invalid input matrix")

	// ErrDegenerateInput indicates an input that is structurally valid but
	// carries no usable signal: a matrix with zero total variance (PCA) or
	// a distance matrix whose off-diagonal entries are all zero
	// (agglomerative clustering).
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInvalidParameter indicates an out-of-range algorithm parameter,
	// such as k < 1, k > n, or a non-positive iteration count.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedMetric indicates an unrecognized distance metric name.
	ErrUnsupportedMetric = errors.New("unsupported metric")

	// ErrUnsupportedLinkage indicates an unrecognized linkage name.
	ErrUnsupportedLinkage = errors.New("unsupported linkage")
)
