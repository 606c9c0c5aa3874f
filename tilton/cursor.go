package tilton

import (
	"github.com/nickwells/location.mod/location"
	"github.com/nickwells/tilton.mod/text"
)

// cursor walks through a source Buffer one byte at a time, keeping track of
// the line and column for error messages
type cursor struct {
	src *text.Buffer
	idx int
	col int
	loc *location.L
}

func newCursor(src *text.Buffer) *cursor {
	loc := location.New(src.Name())
	loc.Incr()
	return &cursor{src: src, loc: loc}
}

// next returns the next byte or text.EOT at the end of the source. A
// newline, or a carriage return not followed by a newline, ends the line.
func (c *cursor) next() int {
	ch := c.src.At(c.idx)
	if ch == text.EOT {
		return ch
	}
	c.idx++
	c.col++
	if ch == '\n' || (ch == '\r' && c.src.At(c.idx) != '\n') {
		c.loc.Incr()
		c.col = 0
	}
	return ch
}

// peek returns the next byte without consuming it
func (c *cursor) peek() int {
	return c.src.At(c.idx)
}

// tildes consumes a run of tildes and returns its length
func (c *cursor) tildes() int {
	n := 0
	for c.peek() == '~' {
		c.next()
		n++
	}
	return n
}

// position returns a snapshot of the current position
func (c *cursor) position() *position {
	return &position{
		loc:    *c.loc,
		col:    c.col,
		offset: c.idx,
	}
}
