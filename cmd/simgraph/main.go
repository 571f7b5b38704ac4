// Command simgraph is the similarity-kernel driver from spec.md §6: it
// loads a token-vector matrix, computes each token's top-n nearest
// neighbors under cosine similarity, and writes the result as a
// little-endian edge file for clustercw to load.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/lvlath-senses/graphio"
	"github.com/katalvlaran/lvlath-senses/simkernel"
	"github.com/katalvlaran/lvlath-senses/vecmatrix"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := slog.Default()

	fs := flag.NewFlagSet("simgraph", flag.ContinueOnError)
	n := fs.Int("n", simkernel.DefaultN, "neighbors per token")
	batchSize := fs.Int("batch_size", simkernel.DefaultBatchSize, "GEMM batch size")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: simgraph [flags] <vectors-path> <output-graph-path>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}

	if err := buildGraph(fs.Arg(0), fs.Arg(1), *n, *batchSize, log); err != nil {
		log.Error("simgraph failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func buildGraph(vectorsPath, outputPath string, n, batchSize int, log *slog.Logger) error {
	v, err := vecmatrix.Load(vectorsPath)
	if err != nil {
		return fmt.Errorf("loading vectors: %w", err)
	}
	log.Info("loaded token matrix", slog.Int("tokens", v.N()), slog.Int("dim", v.D()))

	edges, err := simkernel.Run(context.Background(), v, simkernel.Options{N: n, BatchSize: batchSize})
	if err != nil {
		return fmt.Errorf("computing similarities: %w", err)
	}
	log.Info("computed similarity edges", slog.Int("edges", len(edges)))

	if err := graphio.WriteEdges(outputPath, edges); err != nil {
		return fmt.Errorf("writing edge file: %w", err)
	}
	log.Info("wrote edge file", slog.String("path", outputPath))
	return nil
}
