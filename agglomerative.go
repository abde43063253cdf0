package i4tb

import (
	"fmt"
	"log"
	"math"
)

// Linkage names the rule for computing the distance between two
// already-formed clusters during agglomerative merging.
type Linkage string

const (
	// LinkageSingle merges at the minimum pairwise member distance.
	LinkageSingle Linkage = "single"

	// LinkageComplete merges at the maximum pairwise member distance.
	LinkageComplete Linkage = "complete"

	// LinkageAverage merges at the mean pairwise member distance.
	LinkageAverage Linkage = "average"

	// LinkageWard merges the pair whose union least increases the
	// within-cluster sum of squares. Heights follow the scipy convention
	// and are only meaningful on Euclidean distance matrices.
	LinkageWard Linkage = "ward"
)

// AgglomerativeResult contains the merge tree built by Agglomerative.
type AgglomerativeResult struct {
	// Root is the root of the binary merge tree.
	Root *DendrogramNode

	// Merges is the dendrogram in scipy linkage format, one row per merge
	// in merge order: [left, right, height, mergedSize]. Left and right are
	// cluster IDs (leaves 0..n-1, merged clusters n..2n-2).
	Merges [][4]float64

	// HasInversion reports whether any merge height was lower than the one
	// before it. Inversions are a property of the linkage rule (average and
	// ward can produce them on non-Euclidean input), not an error; heights
	// are recorded as computed, never clamped.
	HasInversion bool
}

// NumLeaves returns the number of original samples in the tree.
func (r *AgglomerativeResult) NumLeaves() int {
	return r.Root.Size
}

// Agglomerative builds a hierarchical clustering of the samples described by
// the distance matrix, bottom-up: starting from n singleton clusters, the
// pair of clusters at minimum inter-cluster distance is merged until one
// root remains, with inter-cluster distances maintained incrementally via
// the Lance–Williams recurrence for the chosen linkage (O(n²) per run
// instead of recomputing pairwise cluster distances from scratch).
//
// Equal-distance pairs are merged lowest-combined-leaf-index first, so the
// tree is deterministic for any input.
//
// A distance matrix whose off-diagonal entries are all zero fails with
// ErrDegenerateInput: every merge order would be equally valid and the tree
// would carry no structure.
func Agglomerative(dm *DistanceMatrix, linkage Linkage) (*AgglomerativeResult, error) {
	switch linkage {
	case LinkageSingle, LinkageComplete, LinkageAverage, LinkageWard:
	default:
		return nil, fmt.Errorf("i4tb: linkage %q: %w", linkage, ErrUnsupportedLinkage)
	}
	if dm == nil || dm.N < 2 {
		return nil, fmt.Errorf("i4tb: agglomerative clustering needs a distance matrix over at least 2 samples: %w", ErrInvalidInput)
	}
	n := dm.N
	if len(dm.D) != n*n {
		return nil, fmt.Errorf("i4tb: distance matrix length %d does not match n*n = %d: %w", len(dm.D), n*n, ErrInvalidInput)
	}
	degenerate := true
	for i := 0; i < n && degenerate; i++ {
		for j := i + 1; j < n; j++ {
			if dm.D[i*n+j] != 0 {
				degenerate = false
				break
			}
		}
	}
	if degenerate {
		return nil, fmt.Errorf("i4tb: all pairwise distances are zero: %w", ErrDegenerateInput)
	}

	// Working state is slot-based: cluster slots are 0..n-1, a merge lands
	// in the lower slot and deactivates the higher one. Because merges land
	// low, slot index equals the smallest leaf index in the cluster, which
	// makes the ascending pair scan below realize the
	// lowest-combined-leaf-index tie-break for free.
	d := append([]float64(nil), dm.D...)
	active := make([]bool, n)
	size := make([]int, n)
	id := make([]int, n)
	node := make([]*DendrogramNode, n)
	for i := 0; i < n; i++ {
		active[i] = true
		size[i] = 1
		id[i] = i
		node[i] = &DendrogramNode{Height: 0, Leaf: i, Size: 1, ID: i}
	}

	merges := make([][4]float64, 0, n-1)
	hasInversion := false
	prevHeight := math.Inf(-1)

	for step := 0; step < n-1; step++ {
		// Find the active pair at minimum distance. Strict < keeps the
		// lexicographically first (i, j) on ties.
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if d[i*n+j] < best {
					best = d[i*n+j]
					bi, bj = i, j
				}
			}
		}

		height := best
		if height < prevHeight {
			hasInversion = true
		}
		prevHeight = height

		newID := n + step
		merged := &DendrogramNode{
			Left:   node[bi],
			Right:  node[bj],
			Height: height,
			Leaf:   -1,
			Size:   size[bi] + size[bj],
			ID:     newID,
		}
		merges = append(merges, [4]float64{
			float64(id[bi]), float64(id[bj]), height, float64(merged.Size),
		})

		// Lance–Williams update of distances from every other active
		// cluster to the merged cluster.
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			dki := d[k*n+bi]
			dkj := d[k*n+bj]
			var dkm float64
			switch linkage {
			case LinkageSingle:
				dkm = math.Min(dki, dkj)
			case LinkageComplete:
				dkm = math.Max(dki, dkj)
			case LinkageAverage:
				si, sj := float64(size[bi]), float64(size[bj])
				dkm = (si*dki + sj*dkj) / (si + sj)
			case LinkageWard:
				si, sj, sk := float64(size[bi]), float64(size[bj]), float64(size[k])
				dkm = math.Sqrt(((si+sk)*dki*dki + (sj+sk)*dkj*dkj - sk*height*height) / (si + sj + sk))
			}
			d[k*n+bi] = dkm
			d[bi*n+k] = dkm
		}

		node[bi] = merged
		size[bi] = merged.Size
		id[bi] = newID
		active[bj] = false
	}

	if hasInversion {
		log.Printf("i4tb: dendrogram contains non-monotonic merge heights (%s linkage inversion)", linkage)
	}

	return &AgglomerativeResult{
		Root:         node[0],
		Merges:       merges,
		HasInversion: hasInversion,
	}, nil
}
