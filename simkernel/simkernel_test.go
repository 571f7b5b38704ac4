package simkernel_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/lvlath-senses/simkernel"
	"github.com/katalvlaran/lvlath-senses/vecmatrix"
	"github.com/stretchr/testify/require"
)

func normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	norm := float32(math.Sqrt(sumSq))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func buildMatrix(t *testing.T, rows [][]float32) *vecmatrix.Matrix {
	t.Helper()
	m, err := vecmatrix.New(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		nr := normalize(row)
		for j, x := range nr {
			require.NoError(t, m.Set(i, j, x))
		}
	}
	return m
}

// TestRunFindsNearestNeighbor checks that two near-identical vectors pick
// each other as their top neighbor, and an orthogonal vector does not.
func TestRunFindsNearestNeighbor(t *testing.T) {
	m := buildMatrix(t, [][]float32{
		{1, 0.01, 0},
		{1, -0.01, 0},
		{0, 0, 1},
	})

	edges, err := simkernel.Run(context.Background(), m, simkernel.Options{N: 1, BatchSize: 2})
	require.NoError(t, err)
	require.Len(t, edges, 3)

	byFrom := map[int32]simkernel.Edge{}
	for _, e := range edges {
		byFrom[e.From] = e
	}
	require.Equal(t, int32(1), byFrom[0].To)
	require.Equal(t, int32(0), byFrom[1].To)
}

// TestRunEdgeCaseSmallN checks the N < n+1 edge case from spec.md §4.4:
// only N-1 edges are emitted per token.
func TestRunEdgeCaseSmallN(t *testing.T) {
	m := buildMatrix(t, [][]float32{
		{1, 0},
		{0, 1},
	})

	edges, err := simkernel.Run(context.Background(), m, simkernel.Options{N: 10, BatchSize: 10})
	require.NoError(t, err)
	require.Len(t, edges, 2) // each of 2 tokens emits 2-1=1 edge
}
