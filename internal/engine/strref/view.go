package strref

import (
	"bytes"
	"unsafe"

	"github.com/dshills/strref/internal/engine/strbuf"
)

// Ownership tells whether a View holds a reference to its storage.
type Ownership uint8

const (
	// Borrowed views reference bytes owned by someone else.
	Borrowed Ownership = iota
	// Owned views hold one reference to a shared buffer.
	Owned
)

// String returns a human-readable name for the ownership.
func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	default:
		return "unknown"
	}
}

// View is a borrowed or owned reference to a run of text bytes.
//
// b holds the visible bytes. Its capacity may run past the visible range into
// the backing storage, which is how the terminator is found. buf is set only
// when own is Owned.
type View struct {
	own Ownership
	b   []byte
	buf *strbuf.Buffer
}

// emptyText backs every empty view. Index 0 is the terminator.
var emptyText = []byte{0}

// Empty returns the empty view. It is equal to the zero View.
func Empty() View {
	return View{b: emptyText[:0]}
}

// Lit borrows the storage of s without copying.
// The view ends at the first NUL in s, or at the end of s when there is none.
func Lit(s string) View {
	if len(s) == 0 {
		return Empty()
	}
	raw := unsafe.Slice(unsafe.StringData(s), len(s))
	return View{b: raw[:extent(raw, len(raw))]}
}

// FromBytes borrows p up to its first NUL byte, or all of p when it has none.
// p must not be nil.
func FromBytes(p []byte) View {
	if p == nil {
		panic("strref: FromBytes called with nil slice")
	}
	return View{b: p[:extent(p, len(p))]}
}

// FromRange borrows the first n bytes of p. When p has a NUL byte before n,
// or is shorter than n, the view is silently clamped to that natural extent.
func FromRange(p []byte, n int) View {
	if p == nil || n <= 0 {
		if p == nil {
			return Empty()
		}
		return View{b: p[:0]}
	}
	return View{b: p[:extent(p, n)]}
}

// FromString borrows the bytes of s without taking a reference.
// s must outlive the view. A NUL inside s ends the view there.
func FromString(s strbuf.String) View {
	t := s.CStr()
	return View{b: t[:extent(t, s.Len())]}
}

// Adopt moves s's buffer into a new owned view without copying. s is left
// pointing at the empty sentinel and can still be released safely. As with
// FromString, the view ends at the first NUL inside s.
func Adopt(s *strbuf.String) View {
	buf := s.TakeBuffer()
	if buf.IsEmptySentinel() {
		return Empty()
	}
	t := buf.Text()
	return View{own: Owned, b: t[:extent(t, len(t))], buf: buf}
}

// extent returns the length of the natural text in p, bounded by n.
func extent(p []byte, n int) int {
	if n > len(p) {
		n = len(p)
	}
	if i := bytes.IndexByte(p[:n], 0); i >= 0 {
		return i
	}
	return n
}

func (v View) text() []byte {
	if v.b == nil {
		return emptyText[:0]
	}
	return v.b
}

// Clone returns a copy of v. An owned view's buffer gains a reference.
func (v View) Clone() View {
	switch v.own {
	case Owned:
		v.buf.AddRef()
	case Borrowed:
	}
	return v
}

// Move transfers v's contents to the returned view and resets v to the empty
// borrowed view. No reference counts change.
func (v *View) Move() View {
	out := *v
	*v = View{}
	return out
}

// Release drops v's reference, if it owns one, and resets v to empty.
// Releasing an empty or borrowed view is a no-op.
func (v *View) Release() {
	switch v.own {
	case Owned:
		v.buf.Release()
	case Borrowed:
	}
	*v = View{}
}

// Swap exchanges the contents of v and other.
func (v *View) Swap(other *View) {
	*v, *other = *other, *v
}

// Assign makes v a copy of other. The previous contents of v are released
// after the copy is in place, so assigning a view to itself is safe.
func (v *View) Assign(other View) {
	tmp := other.Clone()
	v.Swap(&tmp)
	tmp.Release()
}

// Materialize returns v's bytes followed by a NUL terminator; the result has
// length v.Size()+1 and must not be modified.
//
// This is a cache fill, not a pure read. If v is a substring, its visible
// bytes are copied into a new buffer from the default strbuf pool and v
// switches to owning that buffer, releasing whatever it held before. If v is
// already terminated, its existing storage is returned and nothing is copied.
func (v *View) Materialize() []byte {
	if v.IsSubstring() {
		v.takeOwnership()
	}
	t := v.text()
	return t[:len(t)+1]
}

func (v *View) takeOwnership() {
	var tmp View
	if !v.IsEmpty() {
		s := strbuf.FromBytes(v.text())
		tmp = Adopt(&s)
	}
	v.Swap(&tmp)
	tmp.Release()
}

// Bytes returns the visible bytes with no termination guarantee.
// The slice aliases the view's storage and must not be modified; its capacity
// is clipped so appending to it never writes into that storage.
func (v View) Bytes() []byte {
	t := v.text()
	return t[:len(t):len(t)]
}

// Ownership returns whether v borrows or owns its bytes.
func (v View) Ownership() Ownership {
	return v.own
}

// IsOwned reports whether v holds a reference to a shared buffer.
func (v View) IsOwned() bool {
	return v.own == Owned
}

// IsSubstring reports whether the byte after v's visible range is missing or
// not NUL, meaning Materialize would have to copy.
func (v View) IsSubstring() bool {
	t := v.text()
	return cap(t) == len(t) || t[:len(t)+1][len(t)] != 0
}

// Size returns the number of visible bytes.
func (v View) Size() int {
	return len(v.b)
}

// IsEmpty reports whether v has no visible bytes.
func (v View) IsEmpty() bool {
	return len(v.b) == 0
}

// At returns the byte at index i. It panics if i is out of range.
func (v View) At(i int) byte {
	return v.b[i]
}

// Substr returns a borrowed view of length bytes starting at start. The length
// is clamped to what remains of v. A start outside v yields the empty view.
//
// The result shares v's bytes and takes no reference: it is valid only while
// the owner of those bytes, v itself when v is owned, stays alive.
func (v View) Substr(start, length int) View {
	if start < 0 || start >= v.Size() {
		return Empty()
	}
	if rest := v.Size() - start; length > rest {
		length = rest
	}
	return FromRange(v.text()[start:], length)
}

// Equal reports whether v and other hold the same bytes.
func (v View) Equal(other View) bool {
	return v.Size() == other.Size() && bytes.Equal(v.text(), other.text())
}

// EqualString reports whether v holds exactly the bytes of s.
func (v View) EqualString(s string) bool {
	return v.Size() == len(s) && string(v.text()) == s
}

// Compare returns an integer comparing v and other lexicographically by byte.
func (v View) Compare(other View) int {
	return bytes.Compare(v.text(), other.text())
}

// Text returns a Go copy of the visible bytes. Unlike String it never
// changes v.
func (v View) Text() string {
	return string(v.text())
}
