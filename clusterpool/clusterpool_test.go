package clusterpool_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvlath-senses/binio"
	"github.com/katalvlaran/lvlath-senses/clusterpool"
	"github.com/katalvlaran/lvlath-senses/graph"
	"github.com/katalvlaran/lvlath-senses/whispers"
	"github.com/stretchr/testify/require"
)

// buildTwoTriangles makes a 7-node graph: node 0 is adjacent to two
// disjoint triangles {1,2,3} and {4,5,6}, giving base node 0 two
// clusterable senses.
func buildTwoTriangles() *graph.Graph {
	g := graph.NewGraph(0)
	for _, v := range []int32{1, 2, 3, 4, 5, 6} {
		g.AddEdge(0, v, 0.9)
	}
	g.AddEdge(1, 2, 0.9)
	g.AddEdge(2, 3, 0.9)
	g.AddEdge(1, 3, 0.9)
	g.AddEdge(4, 5, 0.9)
	g.AddEdge(5, 6, 0.9)
	g.AddEdge(4, 6, 0.9)
	return g
}

// TestRunProducesParsableClusterFile exercises the full worker pool +
// writer pipeline end to end and parses the result back with the
// big-endian record layout from spec.md §6.
func TestRunProducesParsableClusterFile(t *testing.T) {
	g := buildTwoTriangles()
	path := filepath.Join(t.TempDir(), "clusters.bin")

	opts := clusterpool.Options{
		Whispers: whispers.Options{
			MaxEdges: 200, MaxConnectivity: 200, MaxIterations: 50, MinCluster: 3,
		},
		NumWorkers: 2,
	}
	err := clusterpool.Run(context.Background(), g, 7, path, opts, nil)
	require.NoError(t, err)

	f, err := newBigEndianReader(path)
	require.NoError(t, err)

	var recordCount int
	for {
		base, senseID, members, err := f.readRecord()
		if err != nil {
			break
		}
		recordCount++
		require.GreaterOrEqual(t, base, int32(0))
		require.GreaterOrEqual(t, senseID, int32(1))
		require.GreaterOrEqual(t, len(members), 3)
	}
	require.Greater(t, recordCount, 0)
}

type clusterFileReader struct {
	r *binio.Reader
}

func newBigEndianReader(path string) (*clusterFileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &clusterFileReader{r: binio.NewReader(f, binio.BigEndian)}, nil
}

func (c *clusterFileReader) readRecord() (base, senseID int32, members []struct {
	Node   int32
	Weight float32
}, err error) {
	base, err = c.r.ReadInt32()
	if err != nil {
		return 0, 0, nil, err
	}
	senseID, err = c.r.ReadInt32()
	if err != nil {
		return 0, 0, nil, err
	}
	count, err := c.r.ReadInt32()
	if err != nil {
		return 0, 0, nil, err
	}
	members = make([]struct {
		Node   int32
		Weight float32
	}, count)
	for i := range members {
		members[i].Node, err = c.r.ReadInt32()
		if err != nil {
			return 0, 0, nil, err
		}
		members[i].Weight, err = c.r.ReadFloat32()
		if err != nil {
			return 0, 0, nil, err
		}
	}
	return base, senseID, members, nil
}
