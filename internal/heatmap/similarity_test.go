package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityOrderRanksByAggregateDistance(t *testing.T) {
	rows := [][]float64{
		{0, 0, 0},   // aggregate distance 11*sqrt(3)
		{10, 10, 10}, // aggregate distance 19*sqrt(3)
		{1, 1, 1},   // aggregate distance 10*sqrt(3)
	}

	assert.Equal(t, []int{2, 0, 1}, SimilarityOrder(rows))
}

func TestSimilarityOrderIdempotentOnSortedInput(t *testing.T) {
	rows := [][]float64{
		{1, 1},
		{0, 0},
		{10, 10},
	}

	perm := SimilarityOrder(rows)
	sorted := make([][]float64, len(perm))
	for dst, src := range perm {
		sorted[dst] = rows[src]
	}

	// A second pass over already-sorted rows must return the identity.
	assert.Equal(t, []int{0, 1, 2}, SimilarityOrder(sorted))
}

func TestSimilarityOrderStableOnTies(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3},
		{1, 2, 3},
		{1, 2, 3},
	}

	assert.Equal(t, []int{0, 1, 2}, SimilarityOrder(rows))
}

func TestSimilarityOrderEmpty(t *testing.T) {
	assert.Empty(t, SimilarityOrder(nil))
}
