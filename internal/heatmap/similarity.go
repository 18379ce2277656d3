package heatmap

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SimilarityOrder computes the permutation that sorts rows ascending by
// aggregate dissimilarity: the full pairwise Euclidean distance matrix is
// formed, each row of it is summed, and rows are ordered by that sum. Ties
// keep their original insertion order. The input is not modified.
func SimilarityOrder(rows [][]float64) []int {
	n := len(rows)
	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(rows[i], rows[j], 2)
			scores[i] += d
			scores[j] += d
		}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return scores[perm[a]] < scores[perm[b]]
	})
	return perm
}
