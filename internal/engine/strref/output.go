package strref

import (
	"fmt"
	"io"
	"log/slog"
)

// WriteTo writes v's bytes to w. It goes through Materialize, so a borrowed
// substring becomes owned as a side effect.
func (v *View) WriteTo(w io.Writer) (int64, error) {
	t := v.Materialize()
	n, err := w.Write(t[:len(t)-1])
	return int64(n), err
}

// String materializes v and returns a copy of its text. Only *View is a
// fmt.Stringer. Use Text to get a copy without touching v.
func (v *View) String() string {
	t := v.Materialize()
	return string(t[:len(t)-1])
}

// Format implements fmt.Formatter for *View. Verbs and flags are applied as
// they would be to a string, after materializing v.
func (v *View) Format(f fmt.State, verb rune) {
	t := v.Materialize()
	fmt.Fprintf(f, fmt.FormatString(f, verb), string(t[:len(t)-1]))
}

// LogValue implements slog.LogValuer. It reads v without materializing it.
func (v View) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("text", v.Text()),
		slog.Int("size", v.Size()),
		slog.String("ownership", v.own.String()),
		slog.Bool("substring", v.IsSubstring()),
	)
}
