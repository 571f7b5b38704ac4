// Package simkernel computes, for every token row in an N×D vector
// matrix, its top-n nearest neighbors under cosine similarity (assumed to
// be dot product over L2-normalized input rows), using a blocked dense
// GEMM and an in-place top-k partition per row.
//
// Grounded on spec.md §4.4. The GEMM itself is delegated to
// gonum.org/v1/gonum/blas/blas32 rather than hand-rolled, per spec.md's
// "call a vendor BLAS GEMM" requirement and SPEC_FULL.md §6.
package simkernel

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlath-senses/topk"
	"github.com/katalvlaran/lvlath-senses/vecmatrix"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Edge is one emitted (from, to, weight) neighbor relation, the in-memory
// shape the on-disk edge record mirrors.
type Edge struct {
	From   int32
	To     int32
	Weight float32
}

// Options configures one kernel run.
type Options struct {
	N         int // neighbors to emit per token
	BatchSize int // rows per GEMM block
	Workers   int // max concurrent batches; <=0 means unbounded (one goroutine per batch)
}

// DefaultN and DefaultBatchSize mirror the similarity driver's CLI
// defaults from spec.md §6.
const (
	DefaultN         = 200
	DefaultBatchSize = 500
)

// Run computes top-n neighbor edges for every row of v. Batches run
// concurrently (spec.md §4.4 "Concurrency"); edges are returned ordered
// by batch, and within a batch by increasing row index, matching the
// edge-file ordering guarantee in spec.md §5 ("Ordering guarantees").
//
// Edge case: when v.N() < opts.N+1, each row emits only N-1 edges (spec.md
// §4.4 "Edge cases").
func Run(ctx context.Context, v *vecmatrix.Matrix, opts Options) ([]Edge, error) {
	n := opts.N
	if n <= 0 {
		n = DefaultN
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	numTokens := v.N()
	if numTokens == 0 {
		return nil, nil
	}

	numBatches := (numTokens + batchSize - 1) / batchSize
	results := make([][]Edge, numBatches)

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for b := 0; b < numBatches; b++ {
		b := b
		start := b * batchSize
		end := start + batchSize
		if end > numTokens {
			end = numTokens
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			edges, err := computeBatch(v, start, end, n)
			if err != nil {
				return fmt.Errorf("simkernel: batch [%d,%d): %w", start, end, err)
			}
			results[b] = edges
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]Edge, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// computeBatch computes similarities for rows [start,end) against the
// full matrix and emits each row's top-n neighbors. It owns its own
// score/index/result buffers — no state is shared with other batches
// beyond the read-only Matrix v.
func computeBatch(v *vecmatrix.Matrix, start, end, n int) ([]Edge, error) {
	numTokens, dim := v.N(), v.D()
	rows := end - start
	if rows <= 0 {
		return nil, nil
	}

	a := blas32.General{Rows: rows, Cols: dim, Stride: dim, Data: v.Data()[start*dim : end*dim]}
	full := blas32.General{Rows: numTokens, Cols: dim, Stride: dim, Data: v.Data()}
	sim := blas32.General{Rows: rows, Cols: numTokens, Stride: numTokens, Data: make([]float32, rows*numTokens)}

	// sim = a * full^T, i.e. cosine similarity of every row in the batch
	// against every token in the matrix.
	blas32.Gemm(blas.NoTrans, blas.Trans, 1, a, full, 0, sim)

	k := n + 1
	if k > numTokens {
		k = numTokens
	}

	negScore := make([]float32, numTokens)
	idx := make([]int32, numTokens)
	edges := make([]Edge, 0, rows*n)

	for r := 0; r < rows; r++ {
		tokenID := int32(start + r)
		row := sim.Data[r*sim.Stride : r*sim.Stride+numTokens]
		for j := range row {
			negScore[j] = -row[j] // "smaller score = worse": negate so largest similarity sorts first
			idx[j] = int32(j)
		}

		topk.Partition(idx, negScore, k)

		emitted := 0
		for _, j := range idx[:k] {
			if j == tokenID {
				continue
			}
			if emitted >= n {
				break
			}
			edges = append(edges, Edge{From: tokenID, To: j, Weight: row[j]})
			emitted++
		}
	}
	return edges, nil
}
