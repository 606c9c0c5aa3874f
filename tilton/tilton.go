package tilton

import (
	"fmt"
	"io"
	"os"

	"github.com/nickwells/tilton.mod/macros"
	"github.com/nickwells/tilton.mod/text"
)

// Version is the value of the predefined macro "tilton"
const Version = "1.0"

// dfltSequence is the value before the first one given by gensym
const dfltSequence = 1000

// Builtin is the signature of a native operation. It is given the frame of
// the invocation, whose arguments it may evaluate, and the Buffer to which
// it should write its result.
type Builtin func(p *Processor, f *Frame, out *text.Buffer) error

// Processor evaluates macro text. It holds the macro table and the
// builtins, which persist from one evaluation to the next.
//
// A Processor is not safe for concurrent use.
type Processor struct {
	table    *macros.Table
	builtins map[string]Builtin
	files    FileIO
	diag     io.Writer
	seq      int64
}

type OptFunc func(p *Processor) error

// New creates a new Processor. Unless a macro table is given as an option
// a new, empty one is created. The predefined macros gt, lt, tilde and
// tilton are added to the table.
func New(opts ...OptFunc) (*Processor, error) {
	p := &Processor{
		builtins: make(map[string]Builtin, len(stdBuiltins)),
		files:    OSFiles{},
		diag:     os.Stderr,
		seq:      dfltSequence,
	}
	for name, b := range stdBuiltins {
		p.builtins[name] = b
	}

	for _, o := range opts {
		if err := o(p); err != nil {
			return nil, err
		}
	}

	if p.table == nil {
		t, err := macros.New()
		if err != nil {
			return nil, err
		}
		p.table = t
	}

	p.table.AddMacro("gt", ">")
	p.table.AddMacro("lt", "<")
	p.table.AddMacro("tilde", "~")
	p.table.AddMacro("tilton", Version)

	return p, nil
}

// MacroTable returns an OptFunc that will make the Processor use the given
// table
func MacroTable(t *macros.Table) OptFunc {
	return func(p *Processor) error {
		if t == nil {
			return fmt.Errorf("the macro table must not be nil")
		}
		p.table = t
		return nil
	}
}

// Files returns an OptFunc that will make the Processor use the given file
// reader and writer for the read, write and include builtins
func Files(fio FileIO) OptFunc {
	return func(p *Processor) error {
		if fio == nil {
			return fmt.Errorf("the file reader/writer must not be nil")
		}
		p.files = fio
		return nil
	}
}

// Diagnostics returns an OptFunc that will make the dump and print
// builtins write to w. The default is the standard error.
func Diagnostics(w io.Writer) OptFunc {
	return func(p *Processor) error {
		p.diag = w
		return nil
	}
}

// AddBuiltin returns an OptFunc that will add a builtin, replacing any
// existing builtin with the same name
func AddBuiltin(name string, b Builtin) OptFunc {
	return func(p *Processor) error {
		if name == "" {
			return fmt.Errorf("a builtin must have a name")
		}
		if b == nil {
			return fmt.Errorf("builtin %q: the function must not be nil", name)
		}
		p.builtins[name] = b
		return nil
	}
}

// Macros returns the macro table
func (p *Processor) Macros() *macros.Table {
	return p.table
}

// IsBuiltin reports whether there is a builtin with the given name
func (p *Processor) IsBuiltin(name string) bool {
	_, ok := p.builtins[name]
	return ok
}

// Eval evaluates the source text in the context of the frame f, appending
// the result to out. Positional references in the source (<~1~> and so on)
// refer to the arguments of f. The name of the source is used in error
// messages.
//
// Any error returned is an *Error. After an error the contents of out are
// incomplete.
func (p *Processor) Eval(f *Frame, src, out *text.Buffer) error {
	if f == nil {
		f = NewFrame()
	}
	return p.eval(f, src, out)
}

// Expand evaluates the string in a new top level frame having the given
// arguments and returns the result. Argument 0 is "tilton".
func (p *Processor) Expand(src string, args ...string) (string, error) {
	f := NewFrame(append([]string{"tilton"}, args...)...)
	out := &text.Buffer{}
	if err := p.eval(f, text.NewNamed("[expand]", []byte(src)), out); err != nil {
		return "", err
	}
	return out.String(), nil
}
