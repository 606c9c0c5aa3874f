package tilton

import (
	"github.com/nickwells/tilton.mod/text"
)

// eval is the heart of the processor. It scans the source for <~ ... ~>
// invocations, evaluating each as soon as it is closed. Characters outside
// of an invocation are copied to out. Within an invocation the text is
// split at the tilde separators into arguments which are stored, without
// being evaluated, in a new frame. Nested invocations within the arguments
// are kept as literal text to be evaluated if and when the argument is
// needed.
//
// Parsing and evaluation take place at the same time.
func (p *Processor) eval(cur *Frame, src, out *text.Buffer) error {
	c := newCursor(src)
	depth := 0
	width := 0
	var open *Frame

	for {
		ch := c.next()
		switch ch {
		case '<':
			run := c.tildes()
			switch {
			case depth > 0:
				open.pending.AppendByte('<')
				open.pending.AppendRepeat('~', run)
				if run > 0 {
					depth++
				}
			case run > 0:
				depth, width = 1, run
				open = newFrame(cur, c.position())
			default:
				out.AppendByte('<')
			}

		case '~':
			run := 1 + c.tildes()
			if depth == 1 && run >= width {
				open.split()
				for run -= width; run >= width; run -= width {
					open.addArg(&text.Buffer{})
				}
			}
			if depth > 0 {
				open.pending.AppendRepeat('~', run)
			} else {
				out.AppendRepeat('~', run)
			}

			if c.peek() != '>' {
				break
			}
			c.next()
			if depth == 0 {
				return fail(newFrame(cur, c.position()), ExtraClose, nil)
			}
			depth--
			if depth > 0 {
				open.pending.AppendByte('>')
				break
			}
			if run != 0 {
				return fail(open, ShortClose, nil)
			}
			closed := open
			open = nil
			if err := p.apply(cur, closed, out); err != nil {
				return err
			}

		case text.EOT:
			if depth > 0 {
				return fail(open, MissingClose, nil)
			}
			return nil

		default:
			if depth > 0 {
				open.pending.AppendByte(byte(ch))
			} else {
				out.AppendByte(byte(ch))
			}
		}
	}
}

// apply performs the invocation held in the closed frame f which was made
// in the frame cur
func (p *Processor) apply(cur, f *Frame, out *text.Buffer) error {
	if n, ok := f.index(); ok {
		if f.Len() < 2 {
			v, err := p.evalArg(cur, n)
			if err != nil {
				return err
			}
			out.AppendBuffer(v)
			return nil
		}
		v, err := p.evalArg(f, 1)
		if err != nil {
			return err
		}
		if !cur.rebind(n, v.Clone()) {
			return fail(f, BadArgument, f.raw(0))
		}
		return nil
	}

	name, err := p.evalArg(f, 0)
	if err != nil {
		return err
	}

	if b, ok := p.builtins[name.String()]; ok {
		if err := b(p, f, out); err != nil {
			return err
		}
		if f.hasMatched {
			cur.rebind(0, f.matched)
		}
		return nil
	}

	e, err := p.table.Find(name)
	if err != nil {
		return failErr(f, UndefinedMacro, name, err)
	}
	body := e.Value.Clone()
	body.SetName(e.Name())
	return p.eval(f, body, out)
}

// evalArg returns the value of argument n of frame f. If the value has not
// yet been found, the raw text of the argument is evaluated in the context
// of the parent of f and the result is kept for later use. A nil Buffer is
// returned if the argument has neither text nor value.
//
// The returned Buffer belongs to the frame and must not be changed.
func (p *Processor) evalArg(f *Frame, n int) (*text.Buffer, error) {
	s := f.slot(n)
	if s == nil {
		return nil, nil
	}
	if s.value == nil && s.text != nil {
		scope := f.parent
		if scope == nil {
			scope = NewFrame()
		}
		v := &text.Buffer{}
		if err := p.eval(scope, s.text, v); err != nil {
			return nil, err
		}
		s.value = v
	}
	return s.value, nil
}

// arg returns the value of argument n of frame f as evalArg does, except
// that an empty Buffer is returned in place of nil
func (p *Processor) arg(f *Frame, n int) (*text.Buffer, error) {
	v, err := p.evalArg(f, n)
	if v == nil && err == nil {
		v = &text.Buffer{}
	}
	return v, err
}

// name returns the value of argument n which must not be empty
func (p *Processor) name(f *Frame, n int) (*text.Buffer, error) {
	v, err := p.evalArg(f, n)
	if err != nil {
		return nil, err
	}
	if v.Len() == 0 {
		return nil, fail(f, MissingName, nil)
	}
	return v, nil
}

// evalNumber returns the value of argument n as a number. The second value
// is false if it is not a number.
func (p *Processor) evalNumber(f *Frame, n int) (int64, bool, error) {
	v, err := p.evalArg(f, n)
	if err != nil {
		return 0, false, err
	}
	num, ok := v.Number()
	return num, ok, nil
}

// number returns the value of argument n as a number, failing if it is not
// a number
func (p *Processor) number(f *Frame, n int) (int64, error) {
	v, err := p.arg(f, n)
	if err != nil {
		return 0, err
	}
	num, ok := v.Number()
	if !ok {
		return 0, fail(f, NotANumber, v)
	}
	return num, nil
}

// evalWith evaluates the source in a new frame whose arguments 1 to 7 are
// arguments 2 to 8 of f. The name is used as argument 0.
func (p *Processor) evalWith(f *Frame, name string, src, out *text.Buffer) error {
	sf := &Frame{parent: f}
	sf.addArg(text.New(name))
	for n := 2; n <= 8; n++ {
		ref := text.New("<~")
		ref.AppendInt(int64(n))
		ref.AppendString("~>")
		sf.addArg(ref)
	}
	return p.eval(sf, src, out)
}
