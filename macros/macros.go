package macros

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickwells/check.mod/v2/check"
	"github.com/nickwells/filecheck.mod/filecheck"
	"github.com/nickwells/tilton.mod/text"
)

// DfltBuckets is the default number of hash buckets in a Table
const DfltBuckets = 1024

// ErrNotFound is wrapped by the error returned by Find when the macro is
// neither in the table nor in any of the macro directories
var ErrNotFound = errors.New("macro not found")

// Entry is a single named macro in the Table. The name cannot be changed
// once the Entry has been created but the Value can be changed in place.
type Entry struct {
	name  []byte
	Value *text.Buffer
	next  *Entry
}

// Name returns the name of the macro
func (e *Entry) Name() string {
	return string(e.name)
}

// Table records the macros by name. The names are hashed into a fixed
// number of buckets and entries sharing a bucket are chained together with
// the most recently added first.
//
// You should create a new Table with New. If you want any undefined macros
// to be read from files then give the macro directories as options. You
// can also give any suffixes that should be tried when searching the macro
// directories.
type Table struct {
	buckets  []*Entry
	mask     uint32
	mDirs    []string
	suffixes []string
}

type OptFunc func(t *Table) error

// New creates a new Table object.
func New(opts ...OptFunc) (*Table, error) {
	t := &Table{
		mDirs:    make([]string, 0),
		suffixes: []string{""},
	}
	if err := Buckets(DfltBuckets)(t); err != nil {
		return nil, err
	}

	for _, o := range opts {
		if err := o(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Buckets returns an OptFunc that will set the number of hash buckets. The
// number must be a power of two. Any macros already in the table are lost
// so this should be given before any macros are added.
func Buckets(n int) OptFunc {
	return func(t *Table) error {
		if n <= 0 || n&(n-1) != 0 {
			return fmt.Errorf("the number of buckets (%d) must be a power of two",
				n)
		}
		t.buckets = make([]*Entry, n)
		t.mask = uint32(n - 1)
		return nil
	}
}

// Dirs returns an OptFunc that will add the directory names to the,
// initially empty, set of directories to be searched. Each of the passed
// values must be a directory, an error will be returned if not and none of
// the passed values will be added.
func Dirs(dirs ...string) OptFunc {
	return func(t *Table) error {
		if len(dirs) == 0 {
			return fmt.Errorf("at least one macros directory must be passed")
		}

		es := filecheck.Provisos{
			Checks:    []check.FileInfo{check.FileInfoIsDir},
			Existence: filecheck.MustExist,
		}
		for _, dir := range dirs {
			err := es.StatusCheck(dir)
			if err != nil {
				return err
			}
		}

		t.mDirs = append(t.mDirs, dirs...)
		return nil
	}
}

// Suffix returns an OptFunc that will add a suffix to the list of strings to
// be tried as suffixes Any suffix must be complete and include the separator
// (if any). For instance ".ti". The suffixes are tried in the order they
// are added and there is always a first, empty suffix so that a macro name
// will always match a file with the exact same name.
func Suffix(suffix string) OptFunc {
	return func(t *Table) error {
		t.suffixes = append(t.suffixes, suffix)

		return nil
	}
}

// Configure applies the options to an existing Table
func (t *Table) Configure(opts ...OptFunc) error {
	for _, o := range opts {
		if err := o(t); err != nil {
			return err
		}
	}
	return nil
}

// bucket returns the index of the bucket for the name
func (t *Table) bucket(name *text.Buffer) uint32 {
	return name.Hash() & t.mask
}

// Lookup returns the entry with exactly this name or nil if there is none
func (t *Table) Lookup(name *text.Buffer) *Entry {
	for e := t.buckets[t.bucket(name)]; e != nil; e = e.next {
		if string(e.name) == string(name.Bytes()) {
			return e
		}
	}
	return nil
}

// link creates a new entry and adds it to the head of its chain
func (t *Table) link(name *text.Buffer, value *text.Buffer) *Entry {
	h := t.bucket(name)
	e := &Entry{
		name:  append([]byte(nil), name.Bytes()...),
		Value: value,
		next:  t.buckets[h],
	}
	t.buckets[h] = e
	return e
}

// Install sets the value of the named macro to a copy of the value, adding
// the macro if it is not already present
func (t *Table) Install(name, value *text.Buffer) *Entry {
	if e := t.Lookup(name); e != nil {
		e.Value.Set(value)
		return e
	}
	v := &text.Buffer{}
	v.AppendBuffer(value)
	return t.link(name, v)
}

// GetOrCreate returns the named entry, adding an empty one if it is not
// already present
func (t *Table) GetOrCreate(name *text.Buffer) *Entry {
	if e := t.Lookup(name); e != nil {
		return e
	}
	return t.link(name, &text.Buffer{})
}

// AddMacro will add a named macro to the table which can subsequently be
// found by name
func (t *Table) AddMacro(name, value string) {
	t.Install(text.New(name), text.New(value))
}

// Delete removes the named macro. It reports whether there was a macro to
// remove; it is not an error if there was not.
func (t *Table) Delete(name *text.Buffer) bool {
	h := t.bucket(name)
	var prev *Entry
	for e := t.buckets[h]; e != nil; prev, e = e, e.next {
		if string(e.name) != string(name.Bytes()) {
			continue
		}
		if prev == nil {
			t.buckets[h] = e.next
		} else {
			prev.next = e.next
		}
		return true
	}
	return false
}

// Each calls f for every entry in the table. The entries are visited bucket
// by bucket and in chain order within each bucket so the order is always
// the same for the same history of changes.
func (t *Table) Each(f func(e *Entry)) {
	for _, e := range t.buckets {
		for ; e != nil; e = e.next {
			f(e)
		}
	}
}

// Dump writes every entry to the writer, one per line, as the name followed
// by a tilde and the value. The tilde and value are omitted if the value is
// empty.
func (t *Table) Dump(w io.Writer) error {
	var err error
	t.Each(func(e *Entry) {
		if err != nil {
			return
		}
		if e.Value.Len() == 0 {
			_, err = fmt.Fprintf(w, "%s\n", e.name)
			return
		}
		_, err = fmt.Fprintf(w, "%s~%s\n", e.name, e.Value.Bytes())
	})
	return err
}

// Find searches for the macro name in the table. If it is not found and
// there are macro directories to be searched then it will search for a
// matching file name and returns the new entry if it finds it. If no
// matching macro is found an error wrapping ErrNotFound is returned
func (t *Table) Find(name *text.Buffer) (*Entry, error) {
	if e := t.Lookup(name); e != nil {
		return e, nil
	}

	mName := name.String()
	if !strings.ContainsAny(mName, `/\`) && mName != "" &&
		mName != "." && mName != ".." {
		for _, fd := range t.mDirs {
			for _, suffix := range t.suffixes {
				macro, err := os.ReadFile(filepath.Join(fd, mName+suffix))
				if err == nil {
					return t.link(name, text.NewBytes(macro)), nil
				}
			}
		}
	}

	errStr := fmt.Sprintf("%q", mName)
	if len(t.mDirs) == 1 {
		errStr += " in the macro directory: " + t.mDirs[0]
	} else if len(t.mDirs) > 1 {
		errStr += " in any of the macro directories: " +
			strings.Join(t.mDirs, ", ")
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, errStr)
}
