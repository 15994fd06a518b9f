package strref

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/strref/internal/engine/strbuf"
)

// natural returns p up to its first NUL byte.
func natural(p []byte) []byte {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return p[:i]
	}
	return p
}

// Property: a copy of a view equals the original.
func TestProperty_CloneEqual(t *testing.T) {
	property := func(s string) bool {
		v := Lit(s)
		c := v.Clone()
		return c.Equal(v) && c.Size() == v.Size()
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: an owned copy equals the original and releasing both frees the
// buffer exactly once.
func TestProperty_OwnedCloneRelease(t *testing.T) {
	pool := strbuf.Default()
	property := func(data []byte) bool {
		before := pool.Stats()

		s := strbuf.FromBytes(data)
		v := Adopt(&s)
		c := v.Clone()
		ok := c.Equal(v)
		v.Release()
		ok = ok && bytes.Equal(c.Bytes(), natural(data))
		c.Release()

		after := pool.Stats()
		return ok && after.Live == before.Live && after.Released <= before.Released+1
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: a moved-from view is empty and safe to release.
func TestProperty_MoveLeavesEmpty(t *testing.T) {
	property := func(data []byte) bool {
		s := strbuf.FromBytes(data)
		v := Adopt(&s)
		w := v.Move()
		ok := v.Size() == 0 && !v.IsOwned() && bytes.Equal(w.Bytes(), natural(data))
		v.Release()
		w.Release()
		return ok
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: Substr returns the same bytes as slicing the source, or the empty
// view when start is out of range.
func TestProperty_Substr(t *testing.T) {
	property := func(data []byte, start, length uint8) bool {
		data = bytes.ReplaceAll(data, []byte{0}, []byte{1})
		v := FromRange(data, len(data))
		sub := v.Substr(int(start), int(length))

		if int(start) >= len(data) {
			return sub.Size() == 0
		}
		end := min(int(start)+int(length), len(data))
		return bytes.Equal(sub.Bytes(), data[start:end]) && !sub.IsOwned()
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: Materialize keeps the visible bytes and adds a terminator.
func TestProperty_Materialize(t *testing.T) {
	property := func(s string, start, length uint8) bool {
		v := Lit(s).Substr(int(start), int(length))
		want := v.Text()
		m := v.Materialize()
		ok := len(m) == len(want)+1 && m[len(want)] == 0 && string(m[:len(want)]) == want
		ok = ok && !v.IsSubstring()
		v.Release()
		return ok
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: concatenation has the combined bytes and length.
func TestProperty_Concat(t *testing.T) {
	property := func(a, b string) bool {
		va, vb := Lit(a), Lit(b)
		s := Concat(va, vb)
		defer s.Release()
		return s.Len() == va.Size()+vb.Size() && s.String() == va.Text()+vb.Text()
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: views of different sizes are never equal, even when one is a
// prefix of the other.
func TestProperty_PrefixNotEqual(t *testing.T) {
	property := func(s string, extra byte) bool {
		if extra == 0 {
			extra = 'x'
		}
		a := Lit(s)
		longer := a.Text() + string([]byte{extra})
		b := Lit(longer)
		return !a.Equal(b) && !b.Equal(a)
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: an explicit length never extends a view past its natural extent.
func TestProperty_RangeClamp(t *testing.T) {
	property := func(data []byte, extra uint8) bool {
		v := FromRange(data, len(data)+int(extra))
		return v.Size() == len(natural(data))
	}
	assert.NoError(t, quick.Check(property, nil))
}

// Property: borrowing bytes and adopting an owned copy of them give equal
// views of the same size.
func TestProperty_OwnedMatchesBorrowed(t *testing.T) {
	property := func(data []byte) bool {
		borrowed := FromRange(data, len(data))
		s := strbuf.FromBytes(data)
		owned := Adopt(&s)
		defer owned.Release()
		return owned.Size() == borrowed.Size() &&
			owned.Equal(borrowed) &&
			len(owned.Materialize()) == borrowed.Size()+1
	}
	assert.NoError(t, quick.Check(property, nil))
}
