// Package binio provides buffered, explicitly-ordered binary readers and
// writers for the fixed-width int32/float32 records used by the edge file
// (little-endian) and the cluster file (big-endian).
//
// Byte order is never left to the platform's native order: every stream
// picks LittleEndian or BigEndian explicitly, because the edge file and
// the cluster file intentionally disagree (see graphio and clusterpool).
package binio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrReadFailed wraps a short read or other I/O failure on a Reader.
var ErrReadFailed = errors.New("binio: IO_READ")

// ErrWriteFailed wraps a flush or write failure on a Writer.
var ErrWriteFailed = errors.New("binio: IO_WRITE")

// Order selects the byte order a Reader/Writer uses for every field.
type Order int

const (
	// LittleEndian orders bytes least-significant first (the edge file).
	LittleEndian Order = iota
	// BigEndian orders bytes most-significant first (the cluster file).
	BigEndian
)

func (o Order) impl() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Reader is a buffered, byte-order-explicit reader of int32 and float32
// values. It never falls back to the platform's native order.
type Reader struct {
	br    *bufio.Reader
	order binary.ByteOrder
	buf   [4]byte
}

// NewReader wraps r with buffering and fixes the byte order for every
// subsequent ReadInt32/ReadFloat32 call.
func NewReader(r io.Reader, order Order) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024), order: order.impl()}
}

// ReadInt32 reads one 4-byte signed integer.
// Returns io.EOF when the stream is cleanly exhausted (no bytes were
// read), and a wrapped ErrReadFailed on a short/partial record.
func (r *Reader) ReadInt32() (int32, error) {
	n, err := io.ReadFull(r.br, r.buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("ReadInt32: %w: %v", ErrReadFailed, err)
	}
	return int32(r.order.Uint32(r.buf[:])), nil
}

// ReadFloat32 reads one 4-byte IEEE-754 single-precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	n, err := io.ReadFull(r.br, r.buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("ReadFloat32: %w: %v", ErrReadFailed, err)
	}
	return math.Float32frombits(r.order.Uint32(r.buf[:])), nil
}

// Writer is a buffered, byte-order-explicit writer of int32 and float32
// values. Callers must call Flush to guarantee bytes reach the underlying
// writer.
type Writer struct {
	bw    *bufio.Writer
	order binary.ByteOrder
	buf   [4]byte
}

// NewWriter wraps w with buffering and fixes the byte order for every
// subsequent WriteInt32/WriteFloat32 call.
func NewWriter(w io.Writer, order Order) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64*1024), order: order.impl()}
}

// WriteInt32 writes one 4-byte signed integer.
func (w *Writer) WriteInt32(v int32) error {
	w.order.PutUint32(w.buf[:], uint32(v))
	if _, err := w.bw.Write(w.buf[:]); err != nil {
		return fmt.Errorf("WriteInt32: %w: %v", ErrWriteFailed, err)
	}
	return nil
}

// WriteFloat32 writes one 4-byte IEEE-754 single-precision float.
func (w *Writer) WriteFloat32(v float32) error {
	w.order.PutUint32(w.buf[:], math.Float32bits(v))
	if _, err := w.bw.Write(w.buf[:]); err != nil {
		return fmt.Errorf("WriteFloat32: %w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Flush drains buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("Flush: %w: %v", ErrWriteFailed, err)
	}
	return nil
}
