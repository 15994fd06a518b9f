package strbuf

import (
	"context"
	"log/slog"
	"math/bits"
	"sync"
	"sync/atomic"
)

// Storage is recycled in power-of-two size classes between 1<<minClassShift
// and 1<<maxClassShift bytes.
const (
	minClassShift = 4
	maxClassShift = 24

	numClasses = maxClassShift - minClassShift + 1

	// DefaultMaxRetained is the largest storage capacity a pool keeps for reuse.
	DefaultMaxRetained = 64 * 1024

	// poisonByte fills released storage in checked mode.
	poisonByte = 0xDD
)

// Pool allocates Buffers and recycles their storage.
// A Pool is safe for concurrent use; the Buffers it hands out are not.
type Pool struct {
	classes     [numClasses]sync.Pool
	maxRetained int
	checked     bool
	log         *slog.Logger

	allocated atomic.Int64
	released  atomic.Int64
	recycled  atomic.Int64
}

// Option configures a Pool.
type Option func(*Pool)

// WithMaxRetained sets the largest storage capacity kept for reuse.
// Zero or a negative value disables recycling.
func WithMaxRetained(n int) Option {
	return func(p *Pool) {
		p.maxRetained = n
	}
}

// WithChecked enables checked mode. Released storage is overwritten with a
// poison pattern and never reused, so stale borrowed views read garbage
// instead of another text, and use of a freed Buffer panics.
func WithChecked(checked bool) Option {
	return func(p *Pool) {
		p.checked = checked
	}
}

// WithLogger sets the logger used for buffer lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPool creates a pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		maxRetained: DefaultMaxRetained,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultPool atomic.Pointer[Pool]

func init() {
	defaultPool.Store(NewPool())
}

// Default returns the pool used by NewString, FromBytes and zero Builders.
func Default() *Pool {
	return defaultPool.Load()
}

// SetDefault replaces the default pool. Buffers already handed out keep
// returning to the pool that allocated them.
func SetDefault(p *Pool) {
	if p == nil {
		p = NewPool()
	}
	defaultPool.Store(p)
}

// Stats reports buffer counters for a pool.
type Stats struct {
	// Allocated is the number of buffers handed out.
	Allocated int64
	// Released is the number of buffers whose last reference was dropped.
	Released int64
	// Recycled is the number of allocations served from reused storage.
	Recycled int64
	// Live is Allocated minus Released.
	Live int64
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	a := p.allocated.Load()
	r := p.released.Load()
	return Stats{
		Allocated: a,
		Released:  r,
		Recycled:  p.recycled.Load(),
		Live:      a - r,
	}
}

// Checked reports whether the pool runs in checked mode.
func (p *Pool) Checked() bool {
	return p.checked
}

// Get returns a buffer with room for n text bytes and one reference.
// The text bytes are unspecified; the terminator is set.
func (p *Pool) Get(n int) *Buffer {
	if n < 0 {
		panic("strbuf: negative buffer length")
	}
	storage, reused := p.storage(n + 1)
	data := storage[:n+1]
	data[n] = 0

	p.allocated.Add(1)
	if reused {
		p.recycled.Add(1)
	}
	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("buffer allocated", "len", n, "cap", cap(data), "recycled", reused)
	}
	return &Buffer{data: data, refs: 1, pool: p}
}

// wrap adopts data, which must already end in a NUL byte, as a new buffer.
func (p *Pool) wrap(data []byte) *Buffer {
	p.allocated.Add(1)
	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("buffer adopted", "len", len(data)-1, "cap", cap(data))
	}
	return &Buffer{data: data, refs: 1, pool: p}
}

// storage returns a byte slice with capacity of at least n.
func (p *Pool) storage(n int) ([]byte, bool) {
	if n <= p.maxRetained {
		if idx, ok := ceilClass(n); ok {
			if s, _ := p.classes[idx].Get().(*[]byte); s != nil {
				return (*s)[:0], true
			}
			return make([]byte, 0, 1<<(idx+minClassShift)), false
		}
	}
	return make([]byte, 0, n), false
}

// put takes back the storage of a buffer whose last reference was released.
func (p *Pool) put(b *Buffer) {
	p.released.Add(1)
	storage := b.data[:cap(b.data)]

	if p.checked {
		for i := range storage {
			storage[i] = poisonByte
		}
		p.log.Debug("buffer released", "cap", len(storage), "poisoned", true)
		return
	}

	if len(storage) > p.maxRetained {
		p.log.Debug("buffer released", "cap", len(storage), "retained", false)
		return
	}
	idx, ok := floorClass(len(storage))
	if !ok {
		return
	}
	s := storage[:0]
	p.classes[idx].Put(&s)
	p.log.Debug("buffer released", "cap", len(storage), "retained", true)
}

func (p *Pool) logDoubleRelease(b *Buffer) {
	p.log.Error("double release of shared buffer", "refs", b.refs)
}

// ceilClass returns the smallest class whose capacity is at least n.
func ceilClass(n int) (int, bool) {
	shift := bits.Len(uint(n - 1))
	if n <= 1 {
		shift = 0
	}
	if shift < minClassShift {
		shift = minClassShift
	}
	if shift > maxClassShift {
		return 0, false
	}
	return shift - minClassShift, true
}

// floorClass returns the largest class whose capacity does not exceed n.
func floorClass(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	shift := bits.Len(uint(n)) - 1
	if shift < minClassShift {
		return 0, false
	}
	if shift > maxClassShift {
		shift = maxClassShift
	}
	return shift - minClassShift, true
}
