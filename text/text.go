package text

import (
	"bytes"
	"strconv"
)

// EOT is returned by At when the index is outside the Buffer
const EOT = -1

// Buffer is a growable sequence of bytes with an optional name. The name is
// used to identify the source of the text in error messages. The hash of
// the contents is calculated on demand and remembered until the contents
// change.
//
// The zero value is an empty, unnamed Buffer ready for use. Most methods
// are safe to call on a nil *Buffer which behaves as an empty Buffer.
type Buffer struct {
	name   string
	b      []byte
	hash   uint32
	hashed bool
}

// New returns a new Buffer holding a copy of the string
func New(s string) *Buffer {
	t := &Buffer{}
	t.AppendString(s)
	return t
}

// NewBytes returns a new Buffer holding a copy of the bytes
func NewBytes(b []byte) *Buffer {
	t := &Buffer{}
	t.Append(b)
	return t
}

// NewNamed returns a new Buffer holding a copy of the bytes and having the
// given name
func NewNamed(name string, b []byte) *Buffer {
	t := NewBytes(b)
	t.name = name
	return t
}

// Name returns the name of the Buffer
func (t *Buffer) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// SetName sets the name of the Buffer
func (t *Buffer) SetName(name string) {
	t.name = name
}

// Len returns the length of the Buffer in bytes
func (t *Buffer) Len() int {
	if t == nil {
		return 0
	}
	return len(t.b)
}

// Bytes returns the contents of the Buffer. The slice is only valid until
// the next change to the Buffer.
func (t *Buffer) Bytes() []byte {
	if t == nil {
		return nil
	}
	return t.b
}

// String returns the contents of the Buffer as a string
func (t *Buffer) String() string {
	if t == nil {
		return ""
	}
	return string(t.b)
}

// At returns the byte at index i or EOT if i is out of range
func (t *Buffer) At(i int) int {
	if i < 0 || i >= t.Len() {
		return EOT
	}
	return int(t.b[i])
}

// changed records that the contents have changed
func (t *Buffer) changed() {
	t.hashed = false
}

// grow makes sure that there is room for n more bytes. The capacity is at
// least doubled each time it has to be increased.
func (t *Buffer) grow(n int) {
	req := len(t.b) + n
	if req <= cap(t.b) {
		return
	}
	newCap := cap(t.b) * 2
	if newCap < req {
		newCap = req
	}
	nb := make([]byte, len(t.b), newCap)
	copy(nb, t.b)
	t.b = nb
}

// Append adds the bytes to the end of the Buffer
func (t *Buffer) Append(b []byte) {
	if len(b) == 0 {
		return
	}
	t.grow(len(b))
	t.b = append(t.b, b...)
	t.changed()
}

// AppendString adds the string to the end of the Buffer
func (t *Buffer) AppendString(s string) {
	if len(s) == 0 {
		return
	}
	t.grow(len(s))
	t.b = append(t.b, s...)
	t.changed()
}

// AppendByte adds a single byte to the end of the Buffer
func (t *Buffer) AppendByte(c byte) {
	t.grow(1)
	t.b = append(t.b, c)
	t.changed()
}

// AppendRepeat adds n copies of the byte to the end of the Buffer
func (t *Buffer) AppendRepeat(c byte, n int) {
	if n <= 0 {
		return
	}
	t.grow(n)
	for ; n > 0; n-- {
		t.b = append(t.b, c)
	}
	t.changed()
}

// AppendBuffer adds the contents of the other Buffer to the end of this
// one. A nil Buffer adds nothing.
func (t *Buffer) AppendBuffer(o *Buffer) {
	if o == nil {
		return
	}
	t.Append(o.b)
}

// AppendInt adds the decimal representation of n
func (t *Buffer) AppendInt(n int64) {
	var scratch [24]byte
	t.Append(strconv.AppendInt(scratch[:0], n, 10))
}

// Tail removes the bytes from index i onwards and returns them as a new
// Buffer. If i is out of range nothing is removed and an empty Buffer is
// returned.
func (t *Buffer) Tail(i int) *Buffer {
	if i < 0 || i >= t.Len() {
		return &Buffer{}
	}
	tail := NewBytes(t.b[i:])
	t.b = t.b[:i]
	t.changed()
	return tail
}

// Truncate discards all but the first n bytes
func (t *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(t.b) {
		return
	}
	t.b = t.b[:n]
	t.changed()
}

// Reset empties the Buffer, keeping its storage and name
func (t *Buffer) Reset() {
	t.Truncate(0)
}

// Set replaces the contents of the Buffer with a copy of the contents of
// the other Buffer. The name is unchanged.
func (t *Buffer) Set(o *Buffer) {
	t.b = t.b[:0]
	t.changed()
	t.AppendBuffer(o)
}

// Clone returns an independent copy of the Buffer, including its name. A
// nil Buffer clones to nil.
func (t *Buffer) Clone() *Buffer {
	if t == nil {
		return nil
	}
	c := NewBytes(t.b)
	c.name = t.name
	return c
}

// Slice replaces the contents with the bytes in the range [from, to)
func (t *Buffer) Slice(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(t.b) {
		to = len(t.b)
	}
	if from >= to {
		t.Reset()
		return
	}
	n := copy(t.b, t.b[from:to])
	t.b = t.b[:n]
	t.changed()
}

// Equal reports whether the two Buffers have the same contents
func (t *Buffer) Equal(o *Buffer) bool {
	return bytes.Equal(t.Bytes(), o.Bytes())
}

// EqualString reports whether the Buffer holds exactly the string
func (t *Buffer) EqualString(s string) bool {
	return string(t.Bytes()) == s
}

// Index returns the index of the first instance of the contents of o or -1
// if it is not present. An empty o is never found.
func (t *Buffer) Index(o *Buffer) int {
	if o.Len() == 0 {
		return -1
	}
	return bytes.Index(t.Bytes(), o.Bytes())
}

// LastIndex returns the index of the last instance of the contents of o or
// -1 if it is not present. An empty o is never found.
func (t *Buffer) LastIndex(o *Buffer) int {
	if o.Len() == 0 {
		return -1
	}
	return bytes.LastIndex(t.Bytes(), o.Bytes())
}

// isSpace reports whether the byte counts as white space. Control
// characters are white space.
func isSpace(c byte) bool {
	return c <= ' '
}

// AppendTrimmed appends the contents of o with leading and trailing white
// space removed and with each internal run of white space reduced to a
// single space.
func (t *Buffer) AppendTrimmed(o *Buffer) {
	pendingSpace := false
	wrote := false
	for _, c := range o.Bytes() {
		if isSpace(c) {
			pendingSpace = wrote
			continue
		}
		if pendingSpace {
			t.AppendByte(' ')
			pendingSpace = false
		}
		t.AppendByte(c)
		wrote = true
	}
}
