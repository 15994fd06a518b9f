package strref

import "github.com/dshills/strref/internal/engine/strbuf"

// Concat returns a new string holding a's bytes followed by b's.
func Concat(a, b View) strbuf.String {
	var sb strbuf.Builder
	sb.Reserve(a.Size() + b.Size())
	sb.Append(a)
	sb.Append(b)
	return sb.Build()
}

// ConcatString appends the literal s to a. s is read up to its first NUL.
func ConcatString(a View, s string) strbuf.String {
	return Concat(a, Lit(s))
}

// StringConcat prepends the literal s to b. s is read up to its first NUL.
func StringConcat(s string, b View) strbuf.String {
	return Concat(Lit(s), b)
}
