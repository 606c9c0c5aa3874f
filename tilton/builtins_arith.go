package tilton

import "github.com/nickwells/tilton.mod/text"

// reduce folds the numeric values of the arguments, from argument 1
// onwards, into a single value using op. If fromFirst is set the value of
// argument 1 is the starting value, otherwise it is init. Any value that is
// not a number, or an op that fails, makes the result not a number and
// nothing is written.
func reduce(p *Processor, f *Frame, out *text.Buffer,
	fromFirst bool, init int64, op func(a, b int64) (int64, bool),
) error {
	acc, ok := init, true
	n := 1
	if fromFirst {
		if f.Len() < 2 {
			return nil
		}
		var err error
		acc, ok, err = p.evalNumber(f, 1)
		if err != nil {
			return err
		}
		n = 2
	}

	for ; ok && n < f.Len(); n++ {
		d, dOK, err := p.evalNumber(f, n)
		if err != nil {
			return err
		}
		if !dOK {
			ok = false
			break
		}
		acc, ok = op(acc, d)
	}

	if ok {
		out.AppendInt(acc)
	}
	return nil
}

func biAdd(p *Processor, f *Frame, out *text.Buffer) error {
	return reduce(p, f, out, false, 0,
		func(a, b int64) (int64, bool) { return a + b, true })
}

func biSub(p *Processor, f *Frame, out *text.Buffer) error {
	return reduce(p, f, out, true, 0,
		func(a, b int64) (int64, bool) { return a - b, true })
}

func biMult(p *Processor, f *Frame, out *text.Buffer) error {
	return reduce(p, f, out, false, 1,
		func(a, b int64) (int64, bool) { return a * b, true })
}

func biDiv(p *Processor, f *Frame, out *text.Buffer) error {
	return reduce(p, f, out, true, 0,
		func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})
}

func biMod(p *Processor, f *Frame, out *text.Buffer) error {
	return reduce(p, f, out, true, 0,
		func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a % b, true
		})
}
