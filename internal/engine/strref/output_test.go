package strref

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTo(t *testing.T) {
	checkNoLeak(t, func() {
		v := Lit("hello world").Substr(0, 5)
		var buf bytes.Buffer
		n, err := v.WriteTo(&buf)
		require.NoError(t, err)
		assert.EqualValues(t, 5, n)
		assert.Equal(t, "hello", buf.String())
		assert.True(t, v.IsOwned(), "writing a substring should materialize it")
		v.Release()
	})
}

func TestStringMaterializes(t *testing.T) {
	v := Lit("abc\x00")
	assert.Equal(t, "abc", v.String())
	assert.False(t, v.IsOwned(), "terminated view should stay borrowed")

	sub := Lit("abcdef").Substr(1, 2)
	assert.Equal(t, "bc", sub.String())
	assert.True(t, sub.IsOwned(), "String on a substring should take ownership")
	sub.Release()
}

func TestFormat(t *testing.T) {
	v := Lit("hi\x00")
	tests := []struct {
		format string
		want   string
	}{
		{"%s", "hi"},
		{"%v", "hi"},
		{"%q", `"hi"`},
		{"%4s", "  hi"},
		{"%-4s|", "hi  |"},
		{"%x", "6869"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fmt.Sprintf(tt.format, &v), "Sprintf(%q)", tt.format)
	}
}

func TestPrintNeedsPointer(t *testing.T) {
	v := Lit("hi\x00")
	assert.Equal(t, "hi", fmt.Sprint(&v))
	assert.NotEqual(t, "hi", fmt.Sprint(v), "a View value is not a Stringer")

	var _ fmt.Stringer = &v
	_, isStringer := any(v).(fmt.Stringer)
	assert.False(t, isStringer)
}

func TestLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	v := Lit("hello world").Substr(0, 5)
	logger.Info("view", "v", v)

	out := buf.String()
	for _, want := range []string{"v.text=hello", "v.size=5", "v.ownership=borrowed", "v.substring=true"} {
		assert.Contains(t, out, want)
	}
	assert.False(t, v.IsOwned(), "logging must not materialize")
}
