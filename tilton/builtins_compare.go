package tilton

import "github.com/nickwells/tilton.mod/text"

// compare implements the conditional builtins:
//
//	<~eq?~value~case1~then1~case2~then2~...~else~>
//
// The value is compared with each case in turn and the first then whose
// case matches is the result. If no case matches the result is the else
// argument, if there is one, otherwise nothing.
func compare(p *Processor, f *Frame, out *text.Buffer,
	match func(a, b *text.Buffer) bool,
) error {
	if f.Len() < 4 {
		return fail(f, MissingParameter, nil)
	}
	v, err := p.arg(f, 1)
	if err != nil {
		return err
	}

	for c := 2; ; c += 2 {
		cv, err := p.arg(f, c)
		if err != nil {
			return err
		}
		if match(v, cv) {
			then, err := p.evalArg(f, c+1)
			if err != nil {
				return err
			}
			out.AppendBuffer(then)
			return nil
		}
		if c+2 >= f.Len() {
			return nil
		}
		if c+3 >= f.Len() {
			els, err := p.evalArg(f, c+2)
			if err != nil {
				return err
			}
			out.AppendBuffer(els)
			return nil
		}
	}
}

func biEq(p *Processor, f *Frame, out *text.Buffer) error {
	return compare(p, f, out,
		func(a, b *text.Buffer) bool { return a.Equal(b) })
}

func biNe(p *Processor, f *Frame, out *text.Buffer) error {
	return compare(p, f, out,
		func(a, b *text.Buffer) bool { return !a.Equal(b) })
}

func biLt(p *Processor, f *Frame, out *text.Buffer) error {
	return compare(p, f, out,
		func(a, b *text.Buffer) bool { return a.Less(b) })
}

func biLe(p *Processor, f *Frame, out *text.Buffer) error {
	return compare(p, f, out,
		func(a, b *text.Buffer) bool { return !b.Less(a) })
}

func biGt(p *Processor, f *Frame, out *text.Buffer) error {
	return compare(p, f, out,
		func(a, b *text.Buffer) bool { return b.Less(a) })
}

func biGe(p *Processor, f *Frame, out *text.Buffer) error {
	return compare(p, f, out,
		func(a, b *text.Buffer) bool { return !a.Less(b) })
}

// biAnd gives the last argument if none of them is empty. The arguments
// are evaluated in order and evaluation stops at the first empty one.
func biAnd(p *Processor, f *Frame, out *text.Buffer) error {
	var v *text.Buffer
	for n := 1; n < f.Len(); n++ {
		var err error
		v, err = p.evalArg(f, n)
		if err != nil {
			return err
		}
		if v.Len() == 0 {
			return nil
		}
	}
	out.AppendBuffer(v)
	return nil
}

// biOr gives the first argument that is not empty
func biOr(p *Processor, f *Frame, out *text.Buffer) error {
	for n := 1; n < f.Len(); n++ {
		v, err := p.evalArg(f, n)
		if err != nil {
			return err
		}
		if v.Len() > 0 {
			out.AppendBuffer(v)
			return nil
		}
	}
	return nil
}
