package i4tb

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

// --- Pairwise distances ---

func benchPairwiseDistances(b *testing.B, n, workers int) {
	b.Helper()
	data := generateBenchData(n, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := PairwiseDistancesParallel(data, MetricEuclidean, workers); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPairwiseDistances_100(b *testing.B)           { benchPairwiseDistances(b, 100, 1) }
func BenchmarkPairwiseDistances_500(b *testing.B)           { benchPairwiseDistances(b, 500, 1) }
func BenchmarkPairwiseDistances_500_4Workers(b *testing.B)  { benchPairwiseDistances(b, 500, 4) }
func BenchmarkPairwiseDistances_1000_4Workers(b *testing.B) { benchPairwiseDistances(b, 1000, 4) }

// --- PCA ---

func benchPCA(b *testing.B, n, dims int) {
	b.Helper()
	data := generateBenchData(n, dims)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := PCAFit(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPCA_100x8(b *testing.B)   { benchPCA(b, 100, 8) }
func BenchmarkPCA_500x50(b *testing.B)  { benchPCA(b, 500, 50) }
func BenchmarkPCA_100x200(b *testing.B) { benchPCA(b, 100, 200) }

// --- K-means ---

func benchKMeans(b *testing.B, n, k int) {
	b.Helper()
	data := generateBenchData(n, 8)
	cfg := DefaultKMeansConfig()
	cfg.K = k
	cfg.Seed = 42
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := KMeans(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKMeans_100_K5(b *testing.B)  { benchKMeans(b, 100, 5) }
func BenchmarkKMeans_500_K10(b *testing.B) { benchKMeans(b, 500, 10) }

// --- Agglomerative ---

func benchAgglomerative(b *testing.B, n int, linkage Linkage) {
	b.Helper()
	data := generateBenchData(n, 8)
	dm, err := PairwiseDistances(data, MetricEuclidean)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Agglomerative(dm, linkage); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAgglomerative_100_Complete(b *testing.B) { benchAgglomerative(b, 100, LinkageComplete) }
func BenchmarkAgglomerative_200_Ward(b *testing.B)     { benchAgglomerative(b, 200, LinkageWard) }
