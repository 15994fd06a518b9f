package strref

// NumberOfCharacters returns the number of UTF-8 code points in v.
//
// Every byte counts as one character, minus the continuation bytes announced
// by each lead byte: one for a two-byte lead, two for three-byte, three for
// four-byte. Continuation bytes are not validated, so malformed input gives a
// deterministic but meaningless count, never less than zero.
func (v View) NumberOfCharacters() int {
	n := v.Size()
	for _, c := range v.text() {
		switch {
		case c&0b1110_0000 == 0b1100_0000:
			n--
		case c&0b1111_0000 == 0b1110_0000:
			n -= 2
		case c&0b1111_1000 == 0b1111_0000:
			n -= 3
		}
	}
	return max(n, 0)
}
