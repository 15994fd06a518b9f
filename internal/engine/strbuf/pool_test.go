package strbuf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRecyclesStorage(t *testing.T) {
	pool := NewPool()

	// sync.Pool may drop entries at any time, so only the counters that do not
	// depend on reuse are asserted strictly.
	for i := 0; i < 100; i++ {
		b := pool.Get(20)
		b.Release()
	}
	stats := pool.Stats()
	assert.EqualValues(t, 100, stats.Allocated)
	assert.EqualValues(t, 100, stats.Released)
	assert.Zero(t, stats.Live)
	assert.LessOrEqual(t, stats.Recycled, int64(99))
}

func TestPoolReusedStorageIsTerminated(t *testing.T) {
	pool := NewPool()
	b := pool.Get(20)
	for i := range b.data {
		b.data[i] = 'x'
	}
	b.Release()

	b = pool.Get(5)
	assert.Zero(t, b.data[5], "terminator missing on reused storage")
	b.Release()
}

func TestPoolMaxRetained(t *testing.T) {
	pool := NewPool(WithMaxRetained(0))
	for i := 0; i < 10; i++ {
		pool.Get(8).Release()
	}
	assert.Zero(t, pool.Stats().Recycled, "retention disabled")
}

func TestPoolGetNegativePanics(t *testing.T) {
	assert.Panics(t, func() { NewPool().Get(-1) })
}

func TestSizeClasses(t *testing.T) {
	tests := []struct {
		n         int
		wantCeil  int
		wantFloor int
		floorOK   bool
	}{
		{1, 0, 0, false},
		{15, 0, 0, false},
		{16, 0, 0, true},
		{17, 1, 0, true},
		{32, 1, 1, true},
		{33, 2, 1, true},
		{64 * 1024, 12, 12, true},
	}

	for _, tt := range tests {
		idx, ok := ceilClass(tt.n)
		assert.True(t, ok, "ceilClass(%d)", tt.n)
		assert.Equal(t, tt.wantCeil, idx, "ceilClass(%d)", tt.n)
		assert.GreaterOrEqual(t, 1<<(idx+minClassShift), tt.n, "ceilClass(%d) capacity", tt.n)

		fidx, fok := floorClass(tt.n)
		assert.Equal(t, tt.floorOK, fok, "floorClass(%d)", tt.n)
		if fok {
			assert.Equal(t, tt.wantFloor, fidx, "floorClass(%d)", tt.n)
		}
	}
}

func TestDefaultPool(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	p := NewPool()
	SetDefault(p)
	require.Same(t, p, Default())

	s := NewString("x")
	assert.EqualValues(t, 1, p.Stats().Live)
	s.Release()

	SetDefault(nil)
	assert.NotNil(t, Default())
	assert.NotSame(t, p, Default(), "SetDefault(nil) should install a fresh pool")
}

func TestPoolConcurrent(t *testing.T) {
	pool := NewPool()

	var wg sync.WaitGroup
	iterations := 1000

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				s := pool.NewString("concurrent")
				c := s.Clone()
				s.Release()
				c.Release()
			}
		}()
	}
	wg.Wait()

	stats := pool.Stats()
	assert.Zero(t, stats.Live)
	assert.EqualValues(t, 10*iterations, stats.Allocated)
}

func BenchmarkPoolGetRelease(b *testing.B) {
	pool := NewPool()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pool.Get(64).Release()
	}
}
