package bfs_test

import (
	"testing"

	"github.com/katalvlaran/ghostbfs/bfs"
	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// BenchmarkPropagate_Open measures propagation over an open 12×12 board,
// the default demo size.
func BenchmarkPropagate_Open(b *testing.B) {
	g, _ := gridgraph.Open(12, 12)
	dist := gridgraph.NewDistances(g)

	b.ReportAllocs()
	b.SetBytes(int64(g.Len()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		dist.Clear()
		_, _ = bfs.Propagate(g, dist, 0)
	}
}

// BenchmarkPropagate_Large runs BFS on a 512×512 open board (~262k cells).
func BenchmarkPropagate_Large(b *testing.B) {
	g, _ := gridgraph.Open(512, 512)
	dist := gridgraph.NewDistances(g)

	b.ReportAllocs()
	b.SetBytes(int64(g.Len()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		dist.Clear()
		_, _ = bfs.Propagate(g, dist, g.Len()/2)
	}
}
