// Package clusterpool runs the Chinese Whispers engine across a worker
// pool sharing one read-only graph, and streams completed clusters to a
// binary cluster file through a single writer goroutine and a bounded
// queue. Grounded on spec.md §4.7 and on the worker-pool + reduce shape
// retrieved from PrograCyD-PC3's concurrent similarity drivers and
// dgraph's channel-per-worker executor.
package clusterpool

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/lvlath-senses/binio"
	"github.com/katalvlaran/lvlath-senses/graph"
	"github.com/katalvlaran/lvlath-senses/whispers"
)

// queueCapacity is the bounded cluster queue's capacity (spec.md §4.7).
const queueCapacity = 1024

// sentinelBaseNode marks end-of-stream on the cluster queue (spec.md §3,
// scenario S6): the writer must not persist this record.
const sentinelBaseNode = -1

// Options configures one clustering run.
type Options struct {
	Whispers   whispers.Options
	NumWorkers int // default 4, per spec.md §6
}

// DefaultNumWorkers mirrors the clustering driver's CLI default.
const DefaultNumWorkers = 4

// progressPollInterval is how often the orchestrator checks the shared
// progress counter. spec.md §5 flags the reference's busy-wait as
// something "implementers should replace with a sleeping wait" — this is
// that replacement.
const progressPollInterval = 200 * time.Millisecond

// Run partitions [0, numTokens) across Options.NumWorkers workers, each
// invoking whispers.Run per base node and feeding resulting clusters onto
// a bounded queue; a single writer goroutine drains the queue to path in
// the big-endian cluster-record format (spec.md §6).
//
// Cluster output order is unspecified across workers; within one worker,
// clusters for node i precede clusters for node i+1 (spec.md §5).
func Run(ctx context.Context, g *graph.Graph, numTokens int, path string, opts Options, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers
	}
	if numWorkers > numTokens && numTokens > 0 {
		numWorkers = numTokens
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("clusterpool.Run: %w: %v", binio.ErrWriteFailed, err)
	}
	defer f.Close()

	queue := make(chan whispers.Cluster, queueCapacity)
	var progress, written int64

	var writerErr error
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writerErr = writeLoop(f, queue, &written)
	}()

	var wg sync.WaitGroup
	ranges := splitRanges(numTokens, numWorkers)
	for workerID, r := range ranges {
		wg.Add(1)
		go func(workerID int, lo, hi int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(workerID) + 1))
			for v := lo; v < hi; v++ {
				for _, c := range whispers.Run(g, int32(v), opts.Whispers, rng) {
					queue <- c
				}
				atomic.AddInt64(&progress, 1)
			}
		}(workerID, r[0], r[1])
	}

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		ticker := time.NewTicker(progressPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				done := atomic.LoadInt64(&progress)
				log.Info("clustering progress", slog.Int64("nodes_done", done), slog.Int("nodes_total", numTokens))
				if int(done) >= numTokens {
					return
				}
			}
		}
	}()

	wg.Wait()
	<-monitorDone
	queue <- whispers.Cluster{BaseNode: sentinelBaseNode}
	<-writerDone

	if writerErr != nil {
		return writerErr
	}
	log.Info("clustering complete", slog.Int64("clusters_written", atomic.LoadInt64(&written)))
	return nil
}

// splitRanges divides [0, n) into numWorkers contiguous ranges of size
// floor(n/numWorkers), the last taking the remainder (spec.md §4.7).
func splitRanges(n, numWorkers int) [][2]int {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	ranges := make([][2]int, 0, numWorkers)
	base := n / numWorkers
	lo := 0
	for i := 0; i < numWorkers; i++ {
		hi := lo + base
		if i == numWorkers-1 {
			hi = n
		}
		ranges = append(ranges, [2]int{lo, hi})
		lo = hi
	}
	return ranges
}

// writeLoop drains queue, writing each cluster in the big-endian record
// format until the sentinel arrives.
func writeLoop(f *os.File, queue <-chan whispers.Cluster, written *int64) error {
	bw := bufio.NewWriterSize(f, 1<<20)
	w := binio.NewWriter(bw, binio.BigEndian)

	for c := range queue {
		if c.BaseNode == sentinelBaseNode {
			return w.Flush()
		}
		if err := writeCluster(w, c); err != nil {
			return err
		}
		atomic.AddInt64(written, 1)
	}
	return w.Flush()
}

func writeCluster(w *binio.Writer, c whispers.Cluster) error {
	if err := w.WriteInt32(c.BaseNode); err != nil {
		return err
	}
	if err := w.WriteInt32(c.SenseID); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(len(c.Members))); err != nil {
		return err
	}
	for _, m := range c.Members {
		if err := w.WriteInt32(m.Node); err != nil {
			return err
		}
		if err := w.WriteFloat32(m.Weight); err != nil {
			return err
		}
	}
	return nil
}
