package i4tb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipeline_ReducedMatrixClustering runs the full exploratory flow the
// package is built for: fit PCA on an expression matrix, compute pairwise
// distances on the reduced scores, build a dendrogram, cut it, and re-attach
// sample identifiers. The three sample groups in the fixture must survive
// every stage.
func TestPipeline_ReducedMatrixClustering(t *testing.T) {
	data := expressionFixture()
	ids := []string{"GSM1", "GSM2", "GSM3", "GSM4", "GSM5", "GSM6", "GSM7", "GSM8"}
	wantGroups := [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7}}

	ds, err := NewDataset(data, ids, nil)
	require.NoError(t, err)

	pca, err := PCAFit(data)
	require.NoError(t, err)
	reduced := pca.ScoreRows()

	dm, err := PairwiseDistances(reduced, MetricEuclidean)
	require.NoError(t, err)

	agg, err := Agglomerative(dm, LinkageWard)
	require.NoError(t, err)
	require.False(t, agg.HasInversion)

	cut, err := agg.CutByCount(3)
	require.NoError(t, err)

	for _, group := range wantGroups {
		for _, i := range group[1:] {
			assert.Equal(t, cut[group[0]], cut[i],
				"samples %d and %d must share a hierarchical cluster", group[0], i)
		}
	}

	// K-means on the reduced matrix finds the same partition.
	cfg := DefaultKMeansConfig()
	cfg.K = 3
	cfg.Seed = 3
	cfg.NInit = 20
	km, err := KMeans(reduced, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0, km.Inertia, 2.0, "three tight groups leave little within-cluster scatter")
	for _, group := range wantGroups {
		for _, i := range group[1:] {
			assert.Equal(t, km.Labels[group[0]], km.Labels[i],
				"samples %d and %d must share a k-means cluster", group[0], i)
		}
	}

	// Re-attach identifiers at the presentation boundary.
	groups, err := ds.ClustersByID(cut)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"GSM1", "GSM2", "GSM3"}, groups[cut[0]])
	assert.Equal(t, []string{"GSM4", "GSM5", "GSM6"}, groups[cut[3]])
	assert.Equal(t, []string{"GSM7", "GSM8"}, groups[cut[6]])
}

// TestPipeline_FullVersusReducedDistances verifies that clustering on all
// PCA components is equivalent to clustering on the original matrix: a full
// orthonormal rotation preserves Euclidean distances.
func TestPipeline_FullVersusReducedDistances(t *testing.T) {
	data := expressionFixture()

	pca, err := PCAFit(data)
	require.NoError(t, err)

	orig, err := PairwiseDistances(data, MetricEuclidean)
	require.NoError(t, err)
	reduced, err := PairwiseDistances(pca.ScoreRows(), MetricEuclidean)
	require.NoError(t, err)

	require.Equal(t, orig.N, reduced.N)
	for i := range orig.D {
		assert.InDelta(t, orig.D[i], reduced.D[i], 1e-9)
	}
}
