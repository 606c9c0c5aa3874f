package text

import "unicode/utf8"

// charLen returns the number of bytes in the character starting at index
// i. A lead byte that is not followed by the right number of continuation
// bytes is treated as a single byte character.
func charLen(b []byte, i int) int {
	c := b[i]
	var n int
	switch {
	case c < 0xC0:
		return 1
	case c < 0xE0:
		n = 2
	case c < 0xF0:
		n = 3
	default:
		n = 4
	}
	if i+n > len(b) {
		return 1
	}
	for _, cc := range b[i+1 : i+n] {
		if cc&0xC0 != 0x80 {
			return 1
		}
	}
	return n
}

// RuneLen returns the number of characters in the Buffer
func (t *Buffer) RuneLen() int {
	b := t.Bytes()
	count := 0
	for i := 0; i < len(b); i += charLen(b, i) {
		count++
	}
	return count
}

// Substr returns a new Buffer holding at most n characters starting at
// character start. The second value is false if start is beyond the end of
// the Buffer.
func (t *Buffer) Substr(start, n int) (*Buffer, bool) {
	b := t.Bytes()
	i := 0
	for ; start > 0; start-- {
		if i >= len(b) {
			return nil, false
		}
		i += charLen(b, i)
	}
	from := i
	for ; n > 0 && i < len(b); n-- {
		i += charLen(b, i)
	}
	return NewBytes(b[from:i]), true
}

// AppendRune adds the UTF-8 encoding of r. Values that are not valid code
// points are encoded as utf8.RuneError.
func (t *Buffer) AppendRune(r rune) {
	var scratch [utf8.UTFMax]byte
	n := utf8.EncodeRune(scratch[:], r)
	t.Append(scratch[:n])
}
