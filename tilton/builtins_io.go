package tilton

import "github.com/nickwells/tilton.mod/text"

// biRead gives the contents of the file named by argument 1
func biRead(p *Processor, f *Frame, out *text.Buffer) error {
	name, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	data, err := p.files.ReadFile(name.String())
	if err != nil {
		return failErr(f, ReadFailed, name, err)
	}
	out.Append(data)
	return nil
}

// biWrite replaces the contents of the file named by argument 1 with the
// value of argument 2
func biWrite(p *Processor, f *Frame, _ *text.Buffer) error {
	name, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	v, err := p.arg(f, 2)
	if err != nil {
		return err
	}
	if err := p.files.WriteFile(name.String(), v.Bytes()); err != nil {
		return failErr(f, WriteFailed, name, err)
	}
	return nil
}

// biInclude evaluates the contents of the file named by argument 1 in a
// new frame whose arguments 1 to 7 are arguments 2 to 8 of this one
func biInclude(p *Processor, f *Frame, out *text.Buffer) error {
	name, err := p.arg(f, 1)
	if err != nil {
		return err
	}
	data, err := p.files.ReadFile(name.String())
	if err != nil {
		return failErr(f, ReadFailed, name, err)
	}
	return p.evalWith(f, "include", text.NewNamed(name.String(), data), out)
}
