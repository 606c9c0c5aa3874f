package main

import (
	"io"
	"os"
	"strings"

	"github.com/nickwells/tilton.mod/macros"
	"github.com/nickwells/tilton.mod/text"
	"github.com/nickwells/tilton.mod/tilton"
)

const usage = `  tilton command line parameters:
    -eval <tilton expression>
    -go
    -help
    -include <filespec>
    -lib <directory>
    -mute
    -no
    -read <filespec>
    -repl
    -set <name> <value>
    -suffix <suffix>
    -write <filespec>
    -<digit>
`

// session holds the state built up as the command line is processed
type session struct {
	p     *tilton.Processor
	table *macros.Table
	files tilton.FileIO
	top   *tilton.Frame
	out   *text.Buffer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	args     []string
	slot     int
	useStdin bool
}

// option is the action for a command line option. It is given the index of
// the next unprocessed argument and returns the index after any values the
// option has consumed. It also returns true if processing should stop.
type option func(s *session, i int) (int, bool, error)

var options = map[string]option{
	"eval":    optEval,
	"go":      optGo,
	"help":    optHelp,
	"include": optInclude,
	"lib":     optLib,
	"mute":    optMute,
	"no":      optNo,
	"read":    optRead,
	"repl":    optRepl,
	"set":     optSet,
	"suffix":  optSuffix,
	"write":   optWrite,
}

// shortOptions are matched by the first letter of the option when the
// whole name doesn't match
var shortOptions = map[byte]option{
	'e': optEval,
	'g': optGo,
	'h': optHelp,
	'i': optInclude,
	'm': optMute,
	'n': optNo,
	'r': optRead,
	's': optSet,
	'w': optWrite,
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run processes the command line arguments, in order, and then evaluates
// the standard input unless told not to. Any output is written only once
// everything has succeeded. It returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	s, err := newSession(args, stdin, stdout, stderr)
	if err == nil {
		var stop bool
		stop, err = s.processArgs()
		if stop && err == nil {
			return 0
		}
	}
	if err == nil && s.useStdin {
		err = s.evalStdin("[standard input]")
	}
	if err == nil {
		_, err = stdout.Write(s.out.Bytes())
	}
	if err != nil {
		msg := err.Error() + "\n"
		_, _ = io.WriteString(stdout, msg)
		_, _ = io.WriteString(stderr, msg)
		return 1
	}
	return 0
}

// newSession creates a session with a new Processor
func newSession(args []string, stdin io.Reader, stdout, stderr io.Writer,
) (*session, error) {
	table, err := macros.New()
	if err != nil {
		return nil, err
	}
	files := tilton.OSFiles{}
	p, err := tilton.New(
		tilton.MacroTable(table),
		tilton.Files(files),
		tilton.Diagnostics(stderr),
	)
	if err != nil {
		return nil, err
	}
	return &session{
		p:        p,
		table:    table,
		files:    files,
		top:      tilton.NewFrame(),
		out:      &text.Buffer{},
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		args:     args,
		useStdin: true,
	}, nil
}

// processArgs works through the arguments. Those starting with a '-' are
// options, anything else is a value for the next argument of the top level
// frame. The first argument, the program name, is argument 0.
func (s *session) processArgs() (bool, error) {
	for i := 0; i < len(s.args); {
		arg := s.args[i]
		i++
		if !strings.HasPrefix(arg, "-") {
			s.top.SetArg(s.slot, arg)
			s.slot++
			continue
		}

		o, err := s.findOption(arg, i)
		if err != nil {
			return false, err
		}
		var stop bool
		i, stop, err = o(s, i)
		if err != nil || stop {
			return stop, err
		}
	}
	return false, nil
}

// findOption returns the action for the option. The name is looked for in
// full and then by its first letter. A digit selects the argument number
// to be given the next value.
func (s *session) findOption(arg string, i int) (option, error) {
	name := arg[1:]
	if o, ok := options[name]; ok {
		return o, nil
	}
	if name == "" {
		return nil, badOption(arg)
	}
	if o, ok := shortOptions[name[0]]; ok {
		return o, nil
	}
	if c := name[0]; c >= '0' && c <= '9' && i < len(s.args) {
		return func(s *session, i int) (int, bool, error) {
			s.slot = int(c - '0')
			return i, false, nil
		}, nil
	}
	return nil, badOption(arg)
}

func badOption(arg string) error {
	return &tilton.Error{Kind: tilton.BadOption, Evidence: arg}
}

func missingValue(opt string) error {
	return &tilton.Error{Kind: tilton.MissingParameter, Evidence: opt}
}

// eval evaluates the source in the top level frame, adding the result to
// the output
func (s *session) eval(src *text.Buffer) error {
	return s.p.Eval(s.top, src, s.out)
}

// evalStdin reads and evaluates the whole of the standard input
func (s *session) evalStdin(name string) error {
	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return &tilton.Error{
			Kind:     tilton.ReadFailed,
			Evidence: name,
			Err:      err,
		}
	}
	return s.eval(text.NewNamed(name, data))
}

// readFile returns the contents of the named file
func (s *session) readFile(name string) ([]byte, error) {
	data, err := s.files.ReadFile(name)
	if err != nil {
		return nil, &tilton.Error{
			Kind:     tilton.ReadFailed,
			Evidence: name,
			Err:      err,
		}
	}
	return data, nil
}

func optEval(s *session, i int) (int, bool, error) {
	if i >= len(s.args) {
		return i, false, missingValue("-eval")
	}
	return i + 1, false, s.eval(text.NewNamed("[eval]", []byte(s.args[i])))
}

func optGo(s *session, i int) (int, bool, error) {
	s.useStdin = false
	return i, false, s.evalStdin("[go]")
}

func optHelp(s *session, i int) (int, bool, error) {
	_, err := io.WriteString(s.stdout, usage)
	return i, true, err
}

func optInclude(s *session, i int) (int, bool, error) {
	if i >= len(s.args) {
		return i, false, missingValue("-include")
	}
	name := s.args[i]
	data, err := s.readFile(name)
	if err != nil {
		return i, false, err
	}
	return i + 1, false, s.eval(text.NewNamed(name, data))
}

func optLib(s *session, i int) (int, bool, error) {
	if i >= len(s.args) {
		return i, false, missingValue("-lib")
	}
	if err := s.table.Configure(macros.Dirs(s.args[i])); err != nil {
		return i, false, &tilton.Error{
			Kind:     tilton.ReadFailed,
			Evidence: s.args[i],
			Err:      err,
		}
	}
	return i + 1, false, nil
}

func optMute(s *session, i int) (int, bool, error) {
	s.out.Reset()
	return i, false, nil
}

func optNo(s *session, i int) (int, bool, error) {
	s.useStdin = false
	return i, false, nil
}

func optRead(s *session, i int) (int, bool, error) {
	if i >= len(s.args) {
		return i, false, missingValue("-read")
	}
	data, err := s.readFile(s.args[i])
	if err != nil {
		return i, false, err
	}
	s.out.Append(data)
	return i + 1, false, nil
}

func optRepl(s *session, i int) (int, bool, error) {
	s.useStdin = false
	s.repl()
	return i, false, nil
}

func optSet(s *session, i int) (int, bool, error) {
	if i+1 >= len(s.args) {
		return i, false, missingValue("-set")
	}
	s.table.Install(text.New(s.args[i]), text.New(s.args[i+1]))
	return i + 2, false, nil
}

func optSuffix(s *session, i int) (int, bool, error) {
	if i >= len(s.args) {
		return i, false, missingValue("-suffix")
	}
	if err := s.table.Configure(macros.Suffix(s.args[i])); err != nil {
		return i, false, err
	}
	return i + 1, false, nil
}

func optWrite(s *session, i int) (int, bool, error) {
	if i >= len(s.args) {
		return i, false, missingValue("-write")
	}
	name := s.args[i]
	if err := s.files.WriteFile(name, s.out.Bytes()); err != nil {
		return i, false, &tilton.Error{
			Kind:     tilton.WriteFailed,
			Evidence: name,
			Err:      err,
		}
	}
	s.out.Reset()
	return i + 1, false, nil
}
