package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickwells/tilton.mod/text"
	"github.com/nickwells/tilton.mod/tilton"
	"github.com/peterh/liner"
)

const (
	historyFile = ".tilton_history"
	promptMain  = "tilton> "
	promptCont  = "  ...   "
)

// prompter reads lines of input, as a liner.State does
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl runs an interactive session on the terminal, keeping the history
// between sessions in the user's home directory
func (s *session) repl() {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(s.stdout, "tilton %s\n", tilton.Version)
	s.interact(ln)
}

// interact reads chunks of input and evaluates each one in the top level
// frame, writing the result straight away. Errors are reported and the
// session carries on. It returns at the end of the input.
func (s *session) interact(pr prompter) {
	for {
		src, ok := readChunk(pr, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(s.stdout)
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		pr.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		out := &text.Buffer{}
		err := s.p.Eval(s.top, text.NewNamed("[repl]", []byte(src)), out)
		if err != nil {
			fmt.Fprintln(s.stderr, err)
			continue
		}
		if out.Len() == 0 {
			continue
		}
		_, _ = s.stdout.Write(out.Bytes())
		if out.At(out.Len()-1) != '\n' {
			fmt.Fprintln(s.stdout)
		}
	}
}

// readChunk reads lines until every invocation opened is also closed. It
// returns false at the end of the input. An interrupted chunk is discarded.
func readChunk(pr prompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := pr.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if tilton.Complete(text.New(src)) {
			return src, true
		}
	}
}
