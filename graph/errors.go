package graph

import "errors"

// ErrNegativeNode indicates a node id below zero was passed to an
// operation that requires a non-negative index into the dense adjacency
// storage.
var ErrNegativeNode = errors.New("graph: node id must be >= 0")
