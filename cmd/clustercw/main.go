// Command clustercw is the clustering driver from spec.md §6: it loads a
// binary edge file, runs Chinese Whispers over each token's ego network
// across a worker pool, and writes the resulting senses to a big-endian
// cluster file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/lvlath-senses/clusterpool"
	"github.com/katalvlaran/lvlath-senses/graphio"
	"github.com/katalvlaran/lvlath-senses/whispers"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := slog.Default()

	fs := flag.NewFlagSet("clustercw", flag.ContinueOnError)
	graphPath := fs.String("graph", "", "path to the binary edge file (required)")
	outputPath := fs.String("output", "", "path to write the binary cluster file (required)")
	maxEdges := fs.Int("max_edges", 200, "neighbors of the base node considered")
	maxConnectivity := fs.Int("max_connectivity", 200, "neighbor-of-neighbor edges considered")
	maxIterations := fs.Int("max_iterations", 100, "label-propagation sweep cap")
	minCluster := fs.Int("min_cluster", 5, "minimum members for a published cluster")
	numWorkers := fs.Int("num_workers", clusterpool.DefaultNumWorkers, "clustering worker count")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: clustercw -graph <path> -output <path> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *graphPath == "" || *outputPath == "" {
		log.Error("clustercw failed", slog.Any("error", fmt.Errorf("ARGS_INVALID: -graph and -output are required")))
		return 1
	}

	opts := clusterpool.Options{
		Whispers: whispers.Options{
			MaxEdges:        *maxEdges,
			MaxConnectivity: *maxConnectivity,
			MaxIterations:   *maxIterations,
			MinCluster:      *minCluster,
		},
		NumWorkers: *numWorkers,
	}
	if err := clusterAndWrite(*graphPath, *outputPath, opts, log); err != nil {
		log.Error("clustercw failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func clusterAndWrite(graphPath, outputPath string, opts clusterpool.Options, log *slog.Logger) error {
	g, err := graphio.Load(graphPath)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}
	numTokens := g.Bound()
	log.Info("loaded graph", slog.Int("nodes", g.Size()), slog.Int("bound", numTokens))

	if err := clusterpool.Run(context.Background(), g, numTokens, outputPath, opts, log); err != nil {
		return fmt.Errorf("clustering: %w", err)
	}
	return nil
}
