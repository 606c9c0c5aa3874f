package text

import "math"

// Number interprets the contents as a decimal integer. Leading and trailing
// white space is ignored and there may be a leading minus sign. The second
// value is false if the contents are not a number: if they are empty, have
// no digits, have any other characters or are too big to hold.
func (t *Buffer) Number() (int64, bool) {
	b := t.Bytes()
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	neg := false
	if i < len(b) && b[i] == '-' {
		neg = true
		i++
	}

	var n int64
	digits := 0
	for ; i < len(b) && isDigit(b[i]); i++ {
		d := int64(b[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, false
		}
		n = n*10 + d
		digits++
	}
	for ; i < len(b); i++ {
		if !isSpace(b[i]) {
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// AllDigits reports whether the Buffer is not empty and holds nothing but
// the decimal digits 0-9
func (t *Buffer) AllDigits() bool {
	b := t.Bytes()
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return true
}

// Less reports whether t sorts before o. If both are entirely decimal
// digits they are compared as (unbounded) integers, otherwise they are
// compared byte by byte and a strict prefix sorts first.
func (t *Buffer) Less(o *Buffer) bool {
	if t.AllDigits() && o.AllDigits() {
		return lessNumeric(t.Bytes(), o.Bytes())
	}
	return lessBytes(t.Bytes(), o.Bytes())
}

func lessBytes(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// lessNumeric compares two all-digit byte slices as integers
func lessNumeric(a, b []byte) bool {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return lessBytes(a, b)
}

func trimZeros(b []byte) []byte {
	for len(b) > 1 && b[0] == '0' {
		b = b[1:]
	}
	return b
}
