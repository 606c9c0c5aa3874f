package tilton

import (
	"fmt"
	"io"
	"strings"

	"github.com/nickwells/location.mod/location"
	"github.com/nickwells/tilton.mod/text"
)

// maxArgs is the largest argument number that can be rebound
const maxArgs = 1 << 16

// slot holds one argument of an invocation: the raw text as it appeared in
// the source and the value it evaluated to. The value is calculated at most
// once unless it is reset.
type slot struct {
	text  *text.Buffer
	value *text.Buffer
}

// position records where in its source a frame was opened
type position struct {
	loc    location.L
	col    int
	offset int
}

// Frame holds the arguments of one invocation. Argument 0 is the name of
// the macro. The raw text of each argument is evaluated in the context of
// the parent frame, the one holding the invocation.
type Frame struct {
	parent  *Frame
	slots   []*slot
	pending *text.Buffer
	pos     *position

	matched    *text.Buffer
	hasMatched bool
}

// NewFrame returns a top level frame with the arguments, starting from
// argument 0, already evaluated to the given values.
func NewFrame(args ...string) *Frame {
	f := &Frame{}
	for i, a := range args {
		f.SetArg(i, a)
	}
	return f
}

// newFrame returns a frame opened at the given position which will collect
// the arguments of an invocation made in the parent frame
func newFrame(parent *Frame, pos *position) *Frame {
	return &Frame{
		parent:  parent,
		pending: &text.Buffer{},
		pos:     pos,
	}
}

// SetArg sets the value of argument n, replacing any previous raw text or
// value. It does nothing if n is negative or too large.
func (f *Frame) SetArg(n int, v string) {
	f.rebind(n, text.New(v))
}

// Len returns the number of argument slots, including the name
func (f *Frame) Len() int {
	return len(f.slots)
}

// slot returns argument n or nil if there is no such argument
func (f *Frame) slot(n int) *slot {
	if n < 0 || n >= len(f.slots) {
		return nil
	}
	return f.slots[n]
}

// raw returns the raw text of argument n, nil if there is none
func (f *Frame) raw(n int) *text.Buffer {
	if s := f.slot(n); s != nil {
		return s.text
	}
	return nil
}

// addArg appends a new argument with the given raw text
func (f *Frame) addArg(t *text.Buffer) {
	f.slots = append(f.slots, &slot{text: t})
}

// split ends the current argument: the text collected since the last
// argument boundary becomes the raw text of a new argument
func (f *Frame) split() {
	f.addArg(f.pending)
	f.pending = &text.Buffer{}
}

// rebind discards the raw text of argument n and sets its value, adding
// empty arguments as needed. A nil value leaves the argument as nothing.
func (f *Frame) rebind(n int, v *text.Buffer) bool {
	if n < 0 || n > maxArgs {
		return false
	}
	for len(f.slots) <= n {
		f.slots = append(f.slots, &slot{})
	}
	f.slots[n] = &slot{value: v}
	return true
}

// Reset discards the value of argument n so that it will be evaluated
// again from its raw text the next time it is needed
func (f *Frame) Reset(n int) {
	if s := f.slot(n); s != nil {
		s.value = nil
	}
}

// setMatched records the delimiter found by first or last. It is passed
// back to the invoking frame as its argument 0 once the builtin completes.
func (f *Frame) setMatched(d *text.Buffer) {
	f.matched = d
	f.hasMatched = true
}

// index returns the argument number named by argument 0 if its raw text is
// all digits. The number saturates rather than overflowing.
func (f *Frame) index() (int, bool) {
	t := f.raw(0)
	if !t.AllDigits() {
		return 0, false
	}
	n := 0
	for _, c := range t.Bytes() {
		n = n*10 + int(c-'0')
		if n > maxArgs {
			return maxArgs + 1, true
		}
	}
	return n, true
}

// where writes a description of the chain of frames, outermost first, and
// the position at which each was opened
func (f *Frame) where(b *strings.Builder) {
	if f.parent != nil {
		f.parent.where(b)
	}
	if f.pos != nil {
		fmt.Fprintf(b, "%s(%d,%d/%d) ",
			f.pos.loc.Source(), f.pos.loc.Idx(), f.pos.col+1, f.pos.offset+1)
	}
	if t := f.raw(0); t.Len() > 0 {
		b.WriteString("<~")
		b.Write(t.Bytes())
		b.WriteString("~> ")
	}
}

// dump writes the arguments separated by tildes. The raw text is shown if
// there is any, otherwise the value.
func (f *Frame) dump(w io.Writer) error {
	parts := make([]string, 0, len(f.slots))
	for _, s := range f.slots {
		if s.text != nil {
			parts = append(parts, s.text.String())
			continue
		}
		parts = append(parts, s.value.String())
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, "~"))
	return err
}
