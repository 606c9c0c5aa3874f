package tilton

import "github.com/nickwells/tilton.mod/text"

// biDefine sets the macro named by argument 1 to the raw text of argument
// 2. The text is not evaluated until the macro is used.
func biDefine(p *Processor, f *Frame, _ *text.Buffer) error {
	name, err := p.name(f, 1)
	if err != nil {
		return err
	}
	p.table.Install(name, f.raw(2))
	return nil
}

// biDefined gives argument 2 if argument 1 names a macro or a builtin,
// otherwise argument 3
func biDefined(p *Processor, f *Frame, out *text.Buffer) error {
	name, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	pick := 3
	if p.IsBuiltin(name.String()) || p.table.Lookup(name) != nil {
		pick = 2
	}
	v, err := p.evalArg(f, pick)
	if err != nil {
		return err
	}
	out.AppendBuffer(v)
	return nil
}

// biDelete removes each of the named macros. Builtins cannot be deleted.
func biDelete(p *Processor, f *Frame, _ *text.Buffer) error {
	for n := 1; n < f.Len(); n++ {
		name, err := p.arg(f, n)
		if err != nil {
			return err
		}
		p.table.Delete(name)
	}
	return nil
}

// biDump writes all the macros to the diagnostic writer
func biDump(p *Processor, _ *Frame, _ *text.Buffer) error {
	return p.table.Dump(p.diag)
}

// biPrint writes the arguments of the invocation to the diagnostic writer
func biPrint(p *Processor, f *Frame, _ *text.Buffer) error {
	return f.dump(p.diag)
}

// biEval evaluates the raw text of argument 1 in a new frame whose
// arguments 1 to 7 are arguments 2 to 8 of this one
func biEval(p *Processor, f *Frame, out *text.Buffer) error {
	src := f.raw(1)
	if src == nil {
		return nil
	}
	return p.evalWith(f, "eval", src, out)
}

// biGensym gives a new number each time it is used
func biGensym(p *Processor, _ *Frame, out *text.Buffer) error {
	p.seq++
	out.AppendInt(p.seq)
	return nil
}

// biLiteral gives the raw text of argument 1 without evaluating it
func biLiteral(_ *Processor, f *Frame, out *text.Buffer) error {
	out.AppendBuffer(f.raw(1))
	return nil
}

// biLoop evaluates argument 2 for as long as argument 1 is not empty. Both
// arguments are evaluated afresh each time around the loop.
func biLoop(p *Processor, f *Frame, out *text.Buffer) error {
	for {
		cond, err := p.evalArg(f, 1)
		if err != nil {
			return err
		}
		if cond.Len() == 0 {
			return nil
		}
		f.Reset(1)
		f.Reset(2)
		body, err := p.evalArg(f, 2)
		if err != nil {
			return err
		}
		out.AppendBuffer(body)
	}
}

// biMute evaluates each of the arguments and discards the results
func biMute(p *Processor, f *Frame, _ *text.Buffer) error {
	for n := 1; n < f.Len(); n++ {
		if _, err := p.evalArg(f, n); err != nil {
			return err
		}
	}
	return nil
}

// biNull ignores its arguments. It can be used for comments.
func biNull(_ *Processor, _ *Frame, _ *text.Buffer) error {
	return nil
}

// biStop ends the evaluation, giving argument 1 as the reason
func biStop(p *Processor, f *Frame, _ *text.Buffer) error {
	v, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	return fail(f, Stop, v)
}
