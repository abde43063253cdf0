// Package i4tb implements the numeric core of an exploratory analysis
// pipeline for gene-expression matrices: principal component analysis,
// k-means clustering, and agglomerative hierarchical clustering with
// pluggable linkage and distance metrics.
//
// Input is always a samples × features matrix ([][]float64, one row per
// sample). Rows must all have the same length and contain only finite
// values; every entry point validates this before computing anything.
// Sample identifiers and phenotype labels are carried in a Dataset
// side-table and re-attached to results afterwards -- the algorithms
// themselves never see them.
//
// Basic usage:
//
//	pca, err := i4tb.PCAFit(data)
//	// pca.Scores is the n×k score matrix, pca.Variances the per-component
//	// variances in descending order
//
//	km, err := i4tb.KMeans(data, i4tb.KMeansConfig{K: 3, Seed: 42})
//	// km.Labels[i] is the cluster index for sample i, km.Inertia the
//	// within-cluster sum of squares
//
//	dist, err := i4tb.PairwiseDistances(data, i4tb.MetricEuclidean)
//	agg, err := i4tb.Agglomerative(dist, i4tb.LinkageComplete)
//	labels, err := agg.CutByCount(3)
//
// All functions are pure: inputs are never mutated and every result is a
// freshly allocated value object with no reference back to the input, so
// results stay valid if the caller reuses or overwrites the input matrix.
package i4tb
