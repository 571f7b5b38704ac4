// Package graphio bridges the similarity kernel's in-memory edge list to
// the on-disk little-endian edge file (spec.md §6), and loads that file
// back into a graph.Graph.
package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvlath-senses/binio"
	"github.com/katalvlaran/lvlath-senses/graph"
	"github.com/katalvlaran/lvlath-senses/simkernel"
)

// initialNodeCapacity and initialAdjacencyReserve are implementation
// hints from spec.md §4.5 sized for a ~10^7-token run; correctness does
// not depend on them for any N.
const (
	initialNodeCapacity    = 200000
	initialAdjacencyReserve = 220
)

// WriteEdges writes edges to path as a bare concatenation of
// (from int32, to int32, weight float32) little-endian triples, in the
// order given — the orchestrator is expected to have already assembled
// that order batch-by-batch (spec.md §5 "Ordering guarantees").
func WriteEdges(path string, edges []simkernel.Edge) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return fmt.Errorf("graphio.WriteEdges: %w: %v", binio.ErrWriteFailed, ferr)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("graphio.WriteEdges: %w: %v", binio.ErrWriteFailed, cerr)
		}
	}()

	bw := bufio.NewWriterSize(f, 1<<20)
	w := binio.NewWriter(bw, binio.LittleEndian)
	for _, e := range edges {
		if err = w.WriteInt32(e.From); err != nil {
			return err
		}
		if err = w.WriteInt32(e.To); err != nil {
			return err
		}
		if err = w.WriteFloat32(e.Weight); err != nil {
			return err
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads path's (from, to, weight) triples until EOF, inserting each
// via graph.AddEdge (symmetrizing the directed on-disk triples — spec.md
// §4.5), then calls SortEdges once loading completes.
//
// The returned graph reserves initialNodeCapacity node slots as a sizing
// hint and grows geometrically beyond that if needed (graph.Graph's own
// invariant), so correctness holds for any N. initialAdjacencyReserve is
// not applied: per-node adjacency lists start empty and grow by append.
func Load(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphio.Load: %w: %v", binio.ErrReadFailed, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 1<<20)
	r := binio.NewReader(br, binio.LittleEndian)

	g := graph.NewGraph(initialNodeCapacity)
	_ = initialAdjacencyReserve // hint only; graph.Graph grows adjacency lists geometrically per node

	for {
		from, err := r.ReadInt32()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("graphio.Load: %w", err)
		}
		to, err := r.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("graphio.Load: truncated record (from=%d): %w", from, err)
		}
		weight, err := r.ReadFloat32()
		if err != nil {
			return nil, fmt.Errorf("graphio.Load: truncated record (from=%d,to=%d): %w", from, to, err)
		}
		g.AddEdge(from, to, weight)
	}

	g.SortEdges()
	return g, nil
}
