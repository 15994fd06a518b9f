package strbuf

import "sync"

// Buffer is shared storage for a single text.
//
// data always ends with a NUL byte that is not part of the text. A Buffer
// starts with one reference; AddRef and Release adjust the count and the
// release that drops it to zero frees the storage.
type Buffer struct {
	data     []byte
	refs     int
	pool     *Pool
	sentinel bool
}

var (
	emptyOnce sync.Once
	emptyBuf  *Buffer
)

// Empty returns the process-wide empty buffer.
// It is never freed: AddRef and Release on it are no-ops, which makes it a
// safe target for handles whose contents were moved elsewhere.
func Empty() *Buffer {
	emptyOnce.Do(func() {
		emptyBuf = &Buffer{data: []byte{0}, refs: 1, sentinel: true}
	})
	return emptyBuf
}

// IsEmptySentinel reports whether b is the buffer returned by Empty.
func (b *Buffer) IsEmptySentinel() bool {
	return b.sentinel
}

// AddRef registers one more owner of b.
// Calling AddRef on a freed buffer panics.
func (b *Buffer) AddRef() {
	if b.sentinel {
		return
	}
	if b.refs <= 0 {
		panic("strbuf: AddRef on released buffer")
	}
	b.refs++
}

// Release drops one reference. The storage is returned to the pool when the
// last reference goes away. Releasing a buffer that has no references left
// panics.
func (b *Buffer) Release() {
	if b.sentinel {
		return
	}
	if b.refs <= 0 {
		if b.pool != nil {
			b.pool.logDoubleRelease(b)
		}
		panic("strbuf: release of freed buffer")
	}
	b.refs--
	if b.refs > 0 {
		return
	}
	if b.pool != nil {
		b.pool.put(b)
	}
	b.data = nil
}

// Refs returns the current reference count.
func (b *Buffer) Refs() int {
	return b.refs
}

// Len returns the text length in bytes, excluding the terminator.
func (b *Buffer) Len() int {
	if b.data == nil {
		return 0
	}
	return len(b.data) - 1
}

// Text returns the stored text. The slice's capacity covers the trailing NUL,
// so b.Text()[:b.Len()+1] is always the terminated form.
// The returned bytes must not be modified.
func (b *Buffer) Text() []byte {
	if b.data == nil {
		if b.refs <= 0 && b.pool != nil && b.pool.checked {
			panic("strbuf: use of released buffer")
		}
		return nil
	}
	n := len(b.data) - 1
	return b.data[: n : n+1]
}
