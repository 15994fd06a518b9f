package strref

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/strref/internal/engine/strbuf"
)

// FuzzViewLifecycle drives a view through slicing, materializing, copying and
// releasing, and checks that no buffer is leaked or freed twice.
func FuzzViewLifecycle(f *testing.F) {
	f.Add([]byte("hello world"), 0, 5)
	f.Add([]byte("café\x00tail"), 2, 10)
	f.Add([]byte{}, 0, 0)
	f.Add([]byte{0xf0, 0x9f, 0x8c, 0x8d}, 1, 2)

	f.Fuzz(func(t *testing.T, data []byte, start, length int) {
		pool := strbuf.Default()
		before := pool.Stats().Live

		v := FromRange(data, length+start)
		sub := v.Substr(start, length)
		want := sub.Text()

		c := sub.Clone()
		m := sub.Materialize()
		require.Equal(t, want+"\x00", string(m), "Materialize")
		require.Equal(t, want, c.Text(), "clone changed")

		var other View
		other.Assign(sub)
		moved := other.Move()
		require.True(t, moved.Equal(sub), "moved %q != %q", moved.Text(), sub.Text())

		n := sub.NumberOfCharacters()
		require.GreaterOrEqual(t, n, 0)
		require.LessOrEqual(t, n, sub.Size())

		moved.Release()
		other.Release()
		sub.Release()
		c.Release()

		require.Equal(t, before, pool.Stats().Live, "live buffers")
	})
}
