// Package strref provides View, a text reference that either borrows bytes it
// does not own or owns a counted reference to a shared strbuf.Buffer.
//
// Borrowed views are created from string literals, byte slices and
// strbuf.String values and cost nothing: no allocation, no copy. Slicing a view
// with Substr is also zero-copy and always yields a borrowed view. A view
// becomes owned when it adopts a strbuf.String by move, or when Materialize
// has to copy a substring into a fresh NUL-terminated buffer.
//
// # Terminators
//
// The natural terminator is the NUL byte. A view is terminated when the byte
// right after its visible range exists in the backing storage and is NUL;
// otherwise it is a substring. Go string literals carry no terminator, so
//
//	strref.Lit("hello")     // substring of its storage
//	strref.Lit("hello\x00") // terminated in place, Size() == 5
//
// # Ownership
//
// Go assignment copies a View without counting it. Owned views must be
// duplicated with Clone, transferred with Move and dropped with Release.
// Borrowed views, including every result of Substr, are only valid while
// whatever owns their bytes keeps them alive and unmodified.
//
// # Printing
//
// String, Format and WriteTo materialize the view, so they have pointer
// receivers. Pass &v to fmt and friends: a View passed by value does not
// implement fmt.Stringer and prints as a raw struct.
//
//	fmt.Printf("%s\n", &v)
//
// Use v.Text() for a copy of the text that leaves v untouched. Passing a View
// by value to log/slog is fine, since LogValue never materializes.
//
// Views are not safe for concurrent use. Materialize in particular mutates
// the view it is called on.
package strref
