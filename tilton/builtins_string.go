package tilton

import (
	"math"
	"unicode/utf8"

	"github.com/nickwells/tilton.mod/text"
)

// biLength gives the number of characters in argument 1
func biLength(p *Processor, f *Frame, out *text.Buffer) error {
	v, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	out.AppendInt(int64(v.RuneLen()))
	return nil
}

// clampInt converts n to an int, limiting it to the range of an int32 so
// that the arithmetic on it cannot overflow
func clampInt(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// biSubstr gives the part of argument 1 starting at the character given by
// argument 2 and with the length given by argument 3. A negative start
// counts back from the end. If there is no length the rest of the string is
// given.
func biSubstr(p *Processor, f *Frame, out *text.Buffer) error {
	s, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	if f.Len() < 3 {
		return nil
	}
	n, err := p.number(f, 2)
	if err != nil {
		return err
	}
	start := clampInt(n)
	if start < 0 {
		start += s.RuneLen()
	}
	length := math.MaxInt32
	if f.Len() > 3 {
		n, err := p.number(f, 3)
		if err != nil {
			return err
		}
		length = clampInt(n)
	}
	if start < 0 || length <= 0 {
		return nil
	}
	if sub, ok := s.Substr(start, length); ok {
		out.AppendBuffer(sub)
	}
	return nil
}

// variable returns the macro table entry named by argument 1
func (p *Processor) variable(f *Frame) (*text.Buffer, error) {
	name, err := p.name(f, 1)
	if err != nil {
		return nil, err
	}
	e := p.table.Lookup(name)
	if e == nil {
		return nil, fail(f, UndefinedVariable, name)
	}
	return e.Value, nil
}

// biFirst removes the text up to the first of the delimiters (arguments 2
// onwards) from the variable named by argument 1. The text before the
// delimiter is given and the delimiter itself is removed. The delimiter
// that was found is passed back as argument 0 of the invoking frame; if
// none was found the whole value is given and argument 0 is left as
// nothing.
func biFirst(p *Processor, f *Frame, out *text.Buffer) error {
	s, err := p.variable(f)
	if err != nil {
		return err
	}

	var delim *text.Buffer
	r := -1
	for n := 2; n < f.Len(); n++ {
		d, err := p.arg(f, n)
		if err != nil {
			return err
		}
		if i := s.Index(d); i >= 0 && (r < 0 || i < r) {
			r = i
			delim = d
		}
	}
	if r < 0 {
		r = s.Len()
	}

	out.Append(s.Bytes()[:r])
	s.Slice(r+delim.Len(), s.Len())
	f.setMatched(delim.Clone())
	return nil
}

// biLast removes the text after the last of the delimiters (arguments 2
// onwards) from the variable named by argument 1. The text after the
// delimiter is given and the delimiter itself is removed. The delimiter
// is passed back as for first.
func biLast(p *Processor, f *Frame, out *text.Buffer) error {
	s, err := p.variable(f)
	if err != nil {
		return err
	}

	var delim *text.Buffer
	r := -1
	for n := 2; n < f.Len(); n++ {
		d, err := p.arg(f, n)
		if err != nil {
			return err
		}
		if i := s.LastIndex(d); i > r {
			r = i
			delim = d
		}
	}
	if r < 0 {
		r = 0
	}

	out.Append(s.Bytes()[r+delim.Len():])
	s.Truncate(r)
	f.setMatched(delim.Clone())
	return nil
}

// biGet gives the values of each of the named variables
func biGet(p *Processor, f *Frame, out *text.Buffer) error {
	for n := 1; n < f.Len(); n++ {
		name, err := p.arg(f, n)
		if err != nil {
			return err
		}
		e := p.table.Lookup(name)
		if e == nil {
			return fail(f, UndefinedVariable, name)
		}
		out.AppendBuffer(e.Value)
	}
	return nil
}

// biSet sets the variable named by argument 1 to the value of argument 2
func biSet(p *Processor, f *Frame, _ *text.Buffer) error {
	name, err := p.name(f, 1)
	if err != nil {
		return err
	}
	v, err := p.evalArg(f, 2)
	if err != nil {
		return err
	}
	p.table.Install(name, v)
	return nil
}

// biAppend adds the values of arguments 2 onwards to the end of the
// variable named by argument 1, creating it if necessary
func biAppend(p *Processor, f *Frame, _ *text.Buffer) error {
	name, err := p.name(f, 1)
	if err != nil {
		return err
	}
	e := p.table.GetOrCreate(name)
	for n := 2; n < f.Len(); n++ {
		v, err := p.evalArg(f, n)
		if err != nil {
			return err
		}
		e.Value.AppendBuffer(v)
	}
	return nil
}

var entities = map[byte]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#039;",
	'\\': "&#092;",
	'~':  "&#126;",
}

// biEntityify gives argument 1 with the HTML special characters, and
// tildes, replaced by entities
func biEntityify(p *Processor, f *Frame, out *text.Buffer) error {
	v, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	for _, c := range v.Bytes() {
		if e, ok := entities[c]; ok {
			out.AppendString(e)
			continue
		}
		out.AppendByte(c)
	}
	return nil
}

// biSlashify gives argument 1 with a backslash before each backslash and
// quote
func biSlashify(p *Processor, f *Frame, out *text.Buffer) error {
	v, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	for _, c := range v.Bytes() {
		switch c {
		case '\\', '\'', '"':
			out.AppendByte('\\')
		}
		out.AppendByte(c)
	}
	return nil
}

// biTrim gives each argument with the white space trimmed from both ends
// and runs of white space within it reduced to a single space
func biTrim(p *Processor, f *Frame, out *text.Buffer) error {
	for n := 1; n < f.Len(); n++ {
		v, err := p.evalArg(f, n)
		if err != nil {
			return err
		}
		out.AppendTrimmed(v)
	}
	return nil
}

// biUnicode gives the UTF-8 encoding of each of the character codes
func biUnicode(p *Processor, f *Frame, out *text.Buffer) error {
	for n := 1; n < f.Len(); n++ {
		code, err := p.number(f, n)
		if err != nil {
			return err
		}
		if code < 0 || code > utf8.MaxRune {
			v, _ := p.arg(f, n)
			return fail(f, BadCharacter, v)
		}
		out.AppendRune(rune(code))
	}
	return nil
}

// biNumber gives argument 2 if argument 1 is a number, otherwise argument 3
func biNumber(p *Processor, f *Frame, out *text.Buffer) error {
	_, ok, err := p.evalNumber(f, 1)
	if err != nil {
		return err
	}
	pick := 3
	if ok {
		pick = 2
	}
	v, err := p.evalArg(f, pick)
	if err != nil {
		return err
	}
	out.AppendBuffer(v)
	return nil
}

// biRep gives argument 1 repeated the number of times given by argument 2
func biRep(p *Processor, f *Frame, out *text.Buffer) error {
	v, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	count, err := p.number(f, 2)
	if err != nil {
		return err
	}
	for ; count > 0; count-- {
		out.AppendBuffer(v)
	}
	return nil
}
