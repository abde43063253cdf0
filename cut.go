package i4tb

import (
	"fmt"
)

// CutByCount derives a flat partition of the samples into exactly m clusters
// by undoing the m−1 merges performed last, i.e. keeping only the first n−m
// rows of the merge table. m = 1 returns all samples in one cluster; m = n
// returns every sample in its own.
//
// Cluster labels are 0-based and numbered by each cluster's smallest sample
// index, so the labeling is deterministic for a given tree.
func (r *AgglomerativeResult) CutByCount(m int) ([]int, error) {
	n := r.NumLeaves()
	if m < 1 || m > n {
		return nil, fmt.Errorf("i4tb: cluster count must be in [1, %d], got %d: %w", n, m, ErrInvalidParameter)
	}
	return r.labelsFromMerges(func(row int, height float64) bool {
		return row < n-m
	}), nil
}

// CutByHeight derives a flat partition by keeping every merge with height
// <= h; the clusters are the connected components of samples under that
// threshold. Labels are numbered as in CutByCount. A negative h yields all
// singletons, an h at or above the root height yields one cluster (absent
// inversions above h).
func (r *AgglomerativeResult) CutByHeight(h float64) []int {
	return r.labelsFromMerges(func(row int, height float64) bool {
		return height <= h
	})
}

// labelsFromMerges unions the leaves of every merge row accepted by keep
// and returns the resulting component labels. Rows are treated as edges
// between representative leaves of their two child clusters, so acceptance
// of a row never depends on earlier rows having been accepted -- this is
// what makes height cuts well defined even when the tree has inversions.
func (r *AgglomerativeResult) labelsFromMerges(keep func(row int, height float64) bool) []int {
	n := r.NumLeaves()

	// rep[id] is the smallest sample index under cluster id, for all IDs in
	// the merge table (leaves 0..n-1, merged clusters n..2n-2).
	rep := make([]int, 2*n-1)
	for i := 0; i < n; i++ {
		rep[i] = i
	}
	for s, row := range r.Merges {
		left, right := int(row[0]), int(row[1])
		rep[n+s] = min(rep[left], rep[right])
	}

	uf := NewUnionFind(n)
	for s, row := range r.Merges {
		if keep(s, row[2]) {
			uf.Union(rep[int(row[0])], rep[int(row[1])])
		}
	}

	// Number components by first occurrence, so the cluster containing
	// sample 0 is labeled 0.
	labels := make([]int, n)
	next := 0
	byRoot := make(map[int]int, n)
	for i := 0; i < n; i++ {
		root := uf.Find(i)
		label, ok := byRoot[root]
		if !ok {
			label = next
			byRoot[root] = label
			next++
		}
		labels[i] = label
	}
	return labels
}
