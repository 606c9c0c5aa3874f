package tilton

import (
	"errors"
	"strings"

	"github.com/nickwells/tilton.mod/text"
)

// Kind classifies the reason for a failed evaluation
type Kind int

// These are the kinds of Error. None of them can be caught by the macro
// text; each one ends the evaluation.
const (
	ShortClose Kind = iota + 1
	ExtraClose
	MissingClose
	UndefinedMacro
	UndefinedVariable
	MissingName
	MissingParameter
	NotANumber
	BadCharacter
	BadArgument
	Stop
	ReadFailed
	WriteFailed
	BadOption
)

var kindReasons = map[Kind]string{
	ShortClose:        "Short ~>",
	ExtraClose:        "Extra ~>",
	MissingClose:      "Missing ~>",
	UndefinedMacro:    "Undefined macro",
	UndefinedVariable: "Undefined variable",
	MissingName:       "Missing name",
	MissingParameter:  "Missing parameter",
	NotANumber:        "Not a number",
	BadCharacter:      "Bad character code",
	BadArgument:       "Bad argument number",
	Stop:              "Stop",
	ReadFailed:        "Error in reading file",
	WriteFailed:       "Error in writing file",
	BadOption:         "Unrecognized command line parameter",
}

// String returns the reason given in the error message for this Kind
func (k Kind) String() string {
	if r, ok := kindReasons[k]; ok {
		return r
	}
	return "Unknown error"
}

// Error records a failed evaluation. Where describes the chain of open
// invocations at the point of failure, outermost first. Evidence is the
// offending text, if any, and Err is the underlying cause of a file error.
type Error struct {
	Kind     Kind
	Where    string
	Evidence string
	Err      error
}

// Error returns the full diagnostic message
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Where)
	b.WriteString(e.Kind.String())
	if e.Evidence != "" {
		b.WriteString(": ")
		b.WriteString(e.Evidence)
	}
	b.WriteString(".")
	return b.String()
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given Kind
func IsKind(err error, k Kind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == k
}

// fail returns a new Error of the given kind for a failure in frame f
func fail(f *Frame, k Kind, evidence *text.Buffer) error {
	return failErr(f, k, evidence, nil)
}

// failErr returns a new Error of the given kind for a failure in frame f
// which was caused by err
func failErr(f *Frame, k Kind, evidence *text.Buffer, err error) error {
	var b strings.Builder
	f.where(&b)
	return &Error{
		Kind:     k,
		Where:    b.String(),
		Evidence: evidence.String(),
		Err:      err,
	}
}
