package text

// mix is Bob Jenkins' 1996 mixing function, see
// http://burtleburtle.net/bob/hash/evahash.html
func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= b
	a -= c
	a ^= c >> 13
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= b >> 13
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 3
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= b >> 15
	return a, b, c
}

func word(k []byte) uint32 {
	return uint32(k[0]) | uint32(k[1])<<8 | uint32(k[2])<<16 | uint32(k[3])<<24
}

// Hash returns a hash of the contents. The value is remembered until the
// Buffer is next changed.
func (t *Buffer) Hash() uint32 {
	if t == nil {
		return HashBytes(nil)
	}
	if !t.hashed {
		t.hash = HashBytes(t.b)
		t.hashed = true
	}
	return t.hash
}

// HashBytes returns the hash of the bytes, the same value as Hash would
// give for a Buffer with these contents
func HashBytes(k []byte) uint32 {
	var a, b, c uint32 = 0, 0xDEADBEAD, 0xCAFEB00B
	length := len(k)

	for len(k) >= 12 {
		a += word(k[0:4])
		b += word(k[4:8])
		c += word(k[8:12])
		a, b, c = mix(a, b, c)
		k = k[12:]
	}

	c += uint32(length)
	// the first byte of c is reserved for the length
	switch len(k) {
	case 11:
		c += uint32(k[10]) << 24
		fallthrough
	case 10:
		c += uint32(k[9]) << 16
		fallthrough
	case 9:
		c += uint32(k[8]) << 8
		fallthrough
	case 8:
		b += uint32(k[7]) << 24
		fallthrough
	case 7:
		b += uint32(k[6]) << 16
		fallthrough
	case 6:
		b += uint32(k[5]) << 8
		fallthrough
	case 5:
		b += uint32(k[4])
		fallthrough
	case 4:
		a += uint32(k[3]) << 24
		fallthrough
	case 3:
		a += uint32(k[2]) << 16
		fallthrough
	case 2:
		a += uint32(k[1]) << 8
		fallthrough
	case 1:
		a += uint32(k[0])
	}
	_, _, c = mix(a, b, c)
	return c
}
