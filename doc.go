// Package lvlathsenses computes word-sense inductions from learned token
// embeddings.
//
// Two pipelines form the core:
//
//	simkernel/graphio  — blocked dense cosine-similarity over an N×D token
//	                      matrix, producing a binary top-n edge file.
//	graph/whispers/clusterpool — loads that edge file, builds a per-token
//	                      ego network, and runs Chinese Whispers label
//	                      propagation across a worker pool to a binary
//	                      cluster file.
//
// Subpackages:
//
//	binio/       — little-endian and big-endian typed binary I/O
//	graph/       — undirected weighted graph, int32 node ids, flat adjacency
//	topk/        — in-place quickselect top-k partition
//	vecmatrix/   — flat float32 token-vector matrix + loader
//	simkernel/   — batched GEMM similarity kernel
//	graphio/     — edge-file writer/loader
//	whispers/    — ego network construction + Chinese Whispers
//	clusterpool/ — worker pool + bounded-queue cluster writer
//	cmd/simgraph/  — CLI driver for the similarity kernel
//	cmd/clustercw/ — CLI driver for ego-network clustering
//
// There is no online update path and no deterministic clustering output —
// Chinese Whispers is explicitly randomized (see package whispers).
package lvlathsenses
