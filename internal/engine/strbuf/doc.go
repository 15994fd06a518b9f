// Package strbuf provides reference-counted, NUL-terminated text storage.
//
// A Buffer holds one text followed by a NUL byte and counts the handles that
// share it. The last Release hands the storage back to the Pool it came from,
// where it is recycled by size class. String is the owning handle built on a
// Buffer, and Builder accumulates bytes into a new String.
//
// Reference counts are plain integers. Buffers, Strings and Builders are
// value-like types meant for use from a single goroutine; sharing one across
// goroutines requires external synchronization. Pools themselves are safe for
// concurrent use.
//
// Basic usage:
//
//	s := strbuf.NewString("hello")
//	t := s.Clone()        // two references
//	s.Release()           // one reference
//	fmt.Println(t.Len())  // 5
//	t.Release()           // storage returns to the pool
//
// Go assignment copies a handle without counting it. Use Clone for a second
// owner and Release exactly once per owner.
package strbuf
