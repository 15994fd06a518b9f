package strbuf

// String is an owning handle to an immutable text in a shared Buffer.
//
// The zero value is the empty string. Copy a String with Clone and drop it
// with Release; plain assignment creates an uncounted alias.
type String struct {
	buf *Buffer
}

// NewString copies s into a new String allocated from the default pool.
func NewString(s string) String {
	return Default().NewString(s)
}

// FromBytes copies p into a new String allocated from the default pool.
func FromBytes(p []byte) String {
	return Default().FromBytes(p)
}

// NewString copies s into a new String allocated from p.
func (p *Pool) NewString(s string) String {
	b := p.Get(len(s))
	copy(b.data, s)
	return String{buf: b}
}

// FromBytes copies text into a new String allocated from p.
func (p *Pool) FromBytes(text []byte) String {
	b := p.Get(len(text))
	copy(b.data, text)
	return String{buf: b}
}

// Adopt wraps one existing reference to b. The caller gives up that
// reference; the returned String releases it.
func Adopt(b *Buffer) String {
	if b == nil {
		return String{}
	}
	return String{buf: b}
}

func (s String) buffer() *Buffer {
	if s.buf == nil {
		return Empty()
	}
	return s.buf
}

// Len returns the length in bytes.
func (s String) Len() int {
	return s.buffer().Len()
}

// IsEmpty reports whether the string has no bytes.
func (s String) IsEmpty() bool {
	return s.Len() == 0
}

// Bytes returns the text. The slice aliases shared storage and must not be
// modified; its capacity is clipped so appends never touch the terminator.
func (s String) Bytes() []byte {
	t := s.buffer().Text()
	return t[:len(t):len(t)]
}

// CStr returns the text followed by its NUL terminator.
func (s String) CStr() []byte {
	t := s.buffer().Text()
	return t[:len(t)+1]
}

// String returns a Go copy of the text.
func (s String) String() string {
	return string(s.buffer().Text())
}

// Buffer returns the underlying buffer without adding a reference.
func (s String) Buffer() *Buffer {
	return s.buffer()
}

// Clone returns a second owner of the same storage.
func (s String) Clone() String {
	b := s.buffer()
	b.AddRef()
	return String{buf: b}
}

// Release drops s's reference and leaves s empty.
func (s *String) Release() {
	b := s.buffer()
	s.buf = Empty()
	b.Release()
}

// TakeBuffer moves s's reference out to the caller and leaves s pointing at
// the empty sentinel, so s remains safe to Release.
func (s *String) TakeBuffer() *Buffer {
	b := s.buffer()
	s.buf = Empty()
	return b
}
