// Package vecmatrix provides the flat, row-major float32 token-vector
// matrix consumed by the similarity kernel, plus a loader for its on-disk
// form. Token-vector production (Word2Vec/Sense2Vec training) is out of
// scope (spec.md §1); this package defines only the interface a trained
// model must be exported to.
//
// Adapted from the teacher's matrix.Dense (flat backing slice, O(1)
// indexing), narrowed to float32 and row-major to match the similarity
// kernel's GEMM layout instead of carrying the teacher's full linear
// algebra surface (LU/QR/eigen/incidence), none of which this spec needs.
package vecmatrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvlath-senses/binio"
)

// ErrInvalidDimensions indicates a non-positive row or column count.
var ErrInvalidDimensions = errors.New("vecmatrix: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a row or column index outside [0, bound).
var ErrIndexOutOfBounds = errors.New("vecmatrix: index out of bounds")

// Matrix is a dense, row-major matrix of float32 token vectors: row i is
// the D-dimensional embedding of token i.
type Matrix struct {
	n, d int
	data []float32 // length n*d, row-major
}

// New allocates an n×d Matrix of zeros.
func New(n, d int) (*Matrix, error) {
	if n <= 0 || d <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Matrix{n: n, d: d, data: make([]float32, n*d)}, nil
}

// N returns the number of token rows.
func (m *Matrix) N() int { return m.n }

// D returns the embedding dimension.
func (m *Matrix) D() int { return m.d }

// Row returns the backing slice for row i (no copy); callers must not
// retain it beyond the Matrix's lifetime if the Matrix is later mutated.
func (m *Matrix) Row(i int) ([]float32, error) {
	if i < 0 || i >= m.n {
		return nil, fmt.Errorf("Row(%d): %w", i, ErrIndexOutOfBounds)
	}
	return m.data[i*m.d : (i+1)*m.d], nil
}

// Data returns the full flat row-major backing slice, for direct use as
// a BLAS operand.
func (m *Matrix) Data() []float32 { return m.data }

// Set stores v at (row, col).
func (m *Matrix) Set(row, col int, v float32) error {
	if row < 0 || row >= m.n || col < 0 || col >= m.d {
		return fmt.Errorf("Set(%d,%d): %w", row, col, ErrIndexOutOfBounds)
	}
	m.data[row*m.d+col] = v
	return nil
}

// Load reads a Matrix from path in the format: int32 N, int32 D (little
// endian header), followed by N*D float32 little-endian values in
// row-major order. This on-disk layout is an interface this package
// defines for the (out-of-scope) training pipeline to produce.
func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vecmatrix.Load: %w: %v", binio.ErrReadFailed, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 1<<20)
	r := binio.NewReader(br, binio.LittleEndian)

	n, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("vecmatrix.Load: reading N: %w", err)
	}
	d, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("vecmatrix.Load: reading D: %w", err)
	}

	m, err := New(int(n), int(d))
	if err != nil {
		return nil, fmt.Errorf("vecmatrix.Load: %w", err)
	}

	for i := range m.data {
		v, err := r.ReadFloat32()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("vecmatrix.Load: truncated matrix at element %d: %w", i, binio.ErrReadFailed)
			}
			return nil, fmt.Errorf("vecmatrix.Load: %w", err)
		}
		m.data[i] = v
	}
	return m, nil
}
