package strbuf

// Text is anything that exposes its bytes for appending.
type Text interface {
	Bytes() []byte
}

// Builder accumulates bytes into a new String.
// The zero value is ready to use and allocates from the default pool.
type Builder struct {
	pool *Pool
	buf  []byte
}

// NewBuilder creates a builder whose result is owned by p.
func (p *Pool) NewBuilder() *Builder {
	return &Builder{pool: p}
}

// Reserve makes room for a text of at least n bytes in total.
func (b *Builder) Reserve(n int) {
	if n+1 <= cap(b.buf) {
		return
	}
	grown := make([]byte, len(b.buf), n+1)
	copy(grown, b.buf)
	b.buf = grown
}

// Append adds t's bytes.
func (b *Builder) Append(t Text) {
	b.buf = append(b.buf, t.Bytes()...)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Builder) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// WriteByte implements io.ByteWriter.
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset discards the accumulated bytes.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Build terminates the accumulated bytes and hands them to a new String
// without copying. The builder is left empty and may be reused.
func (b *Builder) Build() String {
	p := b.pool
	if p == nil {
		p = Default()
	}
	data := append(b.buf, 0)
	b.buf = nil
	return String{buf: p.wrap(data)}
}
