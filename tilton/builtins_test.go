package tilton_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nickwells/tilton.mod/macros"
	"github.com/nickwells/tilton.mod/text"
	"github.com/nickwells/tilton.mod/tilton"
)

func TestArithmetic(t *testing.T) {
	runExpandTests(t, []expandTest{
		{name: "add nothing", input: "<~add~>", output: "0"},
		{name: "add", input: "<~add~1~2~3~>", output: "6"},
		{name: "add negative", input: "<~add~-1~-2~>", output: "-3"},
		{name: "add spaces", input: "<~add~ 1 ~\n2\n~>", output: "3"},
		{name: "add not a number", input: "<~add~1~x~>", output: ""},
		{name: "add empty", input: "<~add~1~~>", output: ""},
		{name: "sub", input: "<~sub~10~3~2~>", output: "5"},
		{name: "sub one", input: "<~sub~10~>", output: "10"},
		{name: "sub nothing", input: "<~sub~>", output: ""},
		{name: "mult nothing", input: "<~mult~>", output: "1"},
		{name: "mult", input: "<~mult~2~3~4~>", output: "24"},
		{name: "div", input: "<~div~7~2~>", output: "3"},
		{name: "div negative", input: "<~div~-7~2~>", output: "-3"},
		{name: "div by zero", input: "<~div~1~0~>", output: ""},
		{name: "mod", input: "<~mod~7~3~>", output: "1"},
		{name: "mod by zero", input: "<~mod~7~0~>", output: ""},
		{name: "overflow", input: "<~add~99999999999999999999~1~>", output: ""},
	})
}

func TestComparison(t *testing.T) {
	runExpandTests(t, []expandTest{
		{name: "eq? cases", input: "<~eq?~b~a~A~b~B~C~>", output: "B"},
		{name: "eq? else", input: "<~eq?~z~a~A~b~B~C~>", output: "C"},
		{name: "eq? no else", input: "<~eq?~z~a~A~>", output: ""},
		{name: "eq? empty", input: "<~eq?~~~y~n~>", output: "y"},
		{name: "ne?", input: "<~ne?~a~b~y~n~>", output: "y"},
		{name: "lt? numbers", input: "<~lt?~5~10~y~n~>", output: "y"},
		{name: "lt? strings", input: "<~lt?~abc~abd~y~n~>", output: "y"},
		{name: "lt? prefix", input: "<~lt?~ab~abc~y~n~>", output: "y"},
		{name: "lt? long numbers", input: "<~lt?~123456789012345678901~123456789012345678902~y~n~>", output: "y"},
		{name: "lt? leading zeros", input: "<~lt?~007~7~y~n~>", output: "n"},
		{name: "le? equal", input: "<~le?~7~7~y~n~>", output: "y"},
		{name: "gt?", input: "<~gt?~10~9~y~n~>", output: "y"},
		{name: "ge?", input: "<~ge?~10~5~y~n~>", output: "y"},
		{name: "ge? less", input: "<~ge?~4~5~y~n~>", output: "n"},
		{name: "only the chosen branch", input: "<~eq?~a~a~y~<~set~x~1~>~><~defined?~x~X~-~>", output: "y-"},
		{name: "and", input: "<~and~1~2~3~>", output: "3"},
		{name: "and empty", input: "<~and~1~~3~>", output: ""},
		{name: "and stops", input: "<~and~~<~set~x~1~>~><~defined?~x~X~-~>", output: "-"},
		{name: "or", input: "<~or~~~b~c~>", output: "b"},
		{name: "or all empty", input: "<~or~~~>", output: ""},
		{name: "number? yes", input: "<~number?~ 12 ~yes~no~>", output: "yes"},
		{name: "number? no", input: "<~number?~x~yes~no~>", output: "no"},
		{name: "number? empty", input: "<~number?~~yes~no~>", output: "no"},
	})
}

func TestStrings(t *testing.T) {
	runExpandTests(t, []expandTest{
		{name: "length", input: "<~length~hello~>", output: "5"},
		{name: "length utf-8", input: "<~length~→→~>", output: "2"},
		{name: "length empty", input: "<~length~>", output: "0"},
		{name: "substr", input: "<~substr~hello~1~3~>", output: "ell"},
		{name: "substr rest", input: "<~substr~hello~2~>", output: "llo"},
		{name: "substr negative", input: "<~substr~héllo~-4~>", output: "éllo"},
		{name: "substr too far", input: "<~substr~hello~9~>", output: ""},
		{name: "substr too long", input: "<~substr~hello~3~10~>", output: "lo"},
		{name: "substr too negative", input: "<~substr~hello~-9~>", output: ""},
		{name: "entityify", input: "<~entityify~<~lt~>a&b<~gt~>~>", output: "&lt;a&amp;b&gt;"},
		{name: "entityify quotes", input: `<~entityify~"it's"~>`, output: "&quot;it&#039;s&quot;"},
		{name: "slashify", input: `<~slashify~it's "x"\~>`, output: `it\'s \"x\"\\`},
		{name: "trim", input: "<~trim~  a   b  ~>", output: "a b"},
		{name: "trim several", input: "<~trim~ a ~\tb\n~>", output: "ab"},
		{name: "unicode", input: "<~unicode~65~8594~>", output: "A→"},
		{name: "rep", input: "<~rep~ab~3~>", output: "ababab"},
		{name: "rep none", input: "<~rep~ab~0~>", output: ""},
		{name: "append", input: "<~append~num~1~2~3~><~num~>", output: "123"},
		{name: "append existing", input: "<~set~s~a~><~append~s~b~><~get~s~>", output: "ab"},
		{name: "get several", input: "<~set~a~1~><~set~b~2~><~get~a~b~a~>", output: "121"},
		{name: "set nothing", input: "<~set~x~><~get~x~>|", output: "|"},
	})
}

func TestFirstLast(t *testing.T) {
	runExpandTests(t, []expandTest{
		{
			name:   "first",
			input:  "<~set~list~a,b;c~><~first~list~,~;~>|<~0~>|<~get~list~>",
			output: "a|,|b;c",
		},
		{
			name:   "first no match",
			input:  "<~set~list~abc~><~first~list~,~>|<~0~>|<~get~list~>",
			output: "abc||",
		},
		{
			name:   "first in a loop",
			input:  "<~set~l~a,b,c~><~loop~<~get~l~>~[<~first~l~,~>]~>",
			output: "[a][b][c]",
		},
		{
			name:   "last",
			input:  "<~set~p~/usr/local/bin~><~last~p~/~>|<~0~>|<~get~p~>",
			output: "bin|/|/usr/local",
		},
		{
			name:   "last at the start",
			input:  "<~set~p~/usr~><~last~p~/~>|<~get~p~>",
			output: "usr|",
		},
		{
			name:   "last no match",
			input:  "<~set~p~usr~><~last~p~/~>|<~get~p~>",
			output: "usr|",
		},
		{
			name:   "first sets the invoking frame",
			input:  "<~define~split~<~first~<~1~>~-~+~>=<~0~>~><~set~v~a+b-c~><~split~v~>",
			output: "a=+",
		},
	})
}

func TestMeta(t *testing.T) {
	runExpandTests(t, []expandTest{
		{name: "defined? builtin", input: "<~defined?~add~y~n~>", output: "y"},
		{
			name:   "defined? macro",
			input:  "<~defined?~zz~y~n~><~set~zz~~><~defined?~zz~y~n~>",
			output: "ny",
		},
		{name: "delete", input: "<~set~x~1~><~delete~x~><~defined?~x~y~n~>", output: "n"},
		{name: "delete builtin", input: "<~delete~add~><~add~1~1~>", output: "2"},
		{name: "delete unknown", input: "<~delete~nonesuch~>ok", output: "ok"},
		{name: "literal", input: "<~literal~<~add~1~2~>~>", output: "<~add~1~2~>"},
		{name: "mute", input: "<~mute~<~set~x~1~>~ignored~><~get~x~>", output: "1"},
		{name: "null", input: "a<~null~comment <~stop~>~>b", output: "ab"},
		{name: "eval", input: "<~eval~<~1~>+<~2~>~a~b~>", output: "a+b"},
		{name: "eval nested", input: "<~set~x~<~literal~<~add~1~2~>~>~><~eval~<~get~x~>~>", output: "<~add~1~2~>"},
		{name: "eval literal", input: "<~eval~<~literal~<~add~1~2~>~>~>", output: "<~add~1~2~>"},
		{name: "gensym", input: "<~gensym~>,<~gensym~>", output: "1001,1002"},
		{name: "loop never", input: "<~loop~~<~stop~>~>done", output: "done"},
	})
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		kind     tilton.Kind
		evidence string
	}{
		{name: "missing close", input: "<~add~1~2~", kind: tilton.MissingClose},
		{name: "nested missing close", input: "<~1~<~2~>", kind: tilton.MissingClose},
		{name: "short close", input: "<~~a~>", kind: tilton.ShortClose},
		{name: "extra close", input: "Now is ~the~> time", kind: tilton.ExtraClose},
		{
			name:     "undefined macro",
			input:    "<~nonesuch~>",
			kind:     tilton.UndefinedMacro,
			evidence: "nonesuch",
		},
		{
			name:     "undefined variable",
			input:    "<~get~x~>",
			kind:     tilton.UndefinedVariable,
			evidence: "x",
		},
		{
			name:     "first undefined",
			input:    "<~first~x~,~>",
			kind:     tilton.UndefinedVariable,
			evidence: "x",
		},
		{name: "set no name", input: "<~set~~x~>", kind: tilton.MissingName},
		{name: "define no name", input: "<~define~>", kind: tilton.MissingName},
		{name: "compare too few", input: "<~eq?~a~b~>", kind: tilton.MissingParameter},
		{name: "rep count", input: "<~rep~ab~x~>", kind: tilton.NotANumber, evidence: "x"},
		{name: "substr start", input: "<~substr~ab~x~>", kind: tilton.NotANumber, evidence: "x"},
		{name: "unicode code", input: "<~unicode~x~>", kind: tilton.NotANumber, evidence: "x"},
		{
			name:     "unicode range",
			input:    "<~unicode~1114112~>",
			kind:     tilton.BadCharacter,
			evidence: "1114112",
		},
		{name: "bad rebind", input: "<~99999~x~>", kind: tilton.BadArgument, evidence: "99999"},
		{name: "stop", input: "before<~stop~enough~>after", kind: tilton.Stop, evidence: "enough"},
		{
			name:     "error in an argument",
			input:    "<~add~1~<~nonesuch~>~>",
			kind:     tilton.UndefinedMacro,
			evidence: "nonesuch",
		},
		{
			name:     "error in a macro",
			input:    "<~define~m~<~get~<~1~>~>~><~m~y~>",
			kind:     tilton.UndefinedVariable,
			evidence: "y",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProcessor(t)
			_, err := p.Expand(tc.input)
			if err == nil {
				t.Fatal("an error was expected")
			}
			var te *tilton.Error
			if !errors.As(err, &te) {
				t.Fatalf("the error should be a *tilton.Error, got %T", err)
			}
			if te.Kind != tc.kind {
				t.Errorf("bad kind: want %q, got %q", tc.kind, te.Kind)
			}
			if !tilton.IsKind(err, tc.kind) {
				t.Errorf("IsKind(err, %q) should be true", tc.kind)
			}
			if diff := cmp.Diff(tc.evidence, te.Evidence); diff != "" {
				t.Errorf("bad evidence (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	p := newProcessor(t)
	_, err := p.Expand("ab\n<~nonesuch~>")
	if err == nil {
		t.Fatal("an error was expected")
	}
	want := "[expand](2,3/6) <~nonesuch~> Undefined macro: nonesuch."
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, macros.ErrNotFound) {
		t.Error("the error should wrap macros.ErrNotFound")
	}

	_, err = p.Expand("<~define~m~<~get~<~1~>~>~><~m~y~>")
	if err == nil {
		t.Fatal("an error was expected")
	}
	want = "[expand](1,29/29) <~m~> m(1,3/3) <~get~> Undefined variable: y."
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = p.Expand("<~~stop~~a~b~~>")
	if err == nil {
		t.Fatal("an error was expected")
	}
	if msg := err.Error(); !strings.HasSuffix(msg, "<~stop~> Stop: a~b.") {
		t.Errorf("unexpected message: %q", msg)
	}
}

// mapFiles is a FileIO which keeps the files in memory
type mapFiles map[string]string

func (m mapFiles) ReadFile(name string) ([]byte, error) {
	s, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(s), nil
}

func (m mapFiles) WriteFile(name string, data []byte) error {
	m[name] = string(data)
	return nil
}

func TestFiles(t *testing.T) {
	files := mapFiles{
		"head": "<~1~> and <~2~>",
		"defs": "<~define~shout~<~1~>!~>",
	}
	p := newProcessor(t, tilton.Files(files))

	testCases := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "read",
			input:  "<~read~head~>",
			output: "<~1~> and <~2~>",
		},
		{
			name:   "include",
			input:  "<~include~head~Revelux~x~>",
			output: "Revelux and x",
		},
		{
			name:   "include definitions",
			input:  "<~include~defs~><~shout~hey~>",
			output: "hey!",
		},
		{
			name:   "write then read",
			input:  "<~write~out~<~add~1~2~>~><~read~out~>",
			output: "3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Expand(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.output, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := p.Expand("<~include~nonesuch~>")
	if !tilton.IsKind(err, tilton.ReadFailed) {
		t.Errorf("expected a ReadFailed error, got: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("the error should wrap the cause: %v", err)
	}
}

func TestOSFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	p := newProcessor(t)

	got, err := p.Expand("<~write~" + out + "~[<~add~2~2~>]~><~include~testdata/inc.ti~a~b~>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("[a|b]", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("cannot read the written file: %v", err)
	}
	if diff := cmp.Diff("[4]", string(data)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = p.Expand("<~read~" + dir + "~>")
	if !tilton.IsKind(err, tilton.ReadFailed) {
		t.Errorf("reading a directory should fail, got: %v", err)
	}
	_, err = p.Expand("<~write~" + filepath.Join(dir, "no", "such") + "~x~>")
	if !tilton.IsKind(err, tilton.WriteFailed) {
		t.Errorf("writing to a missing directory should fail, got: %v", err)
	}
}

func TestLibrary(t *testing.T) {
	tbl, err := macros.New(macros.Dirs("testdata/lib"), macros.Suffix(".ti"))
	if err != nil {
		t.Fatalf("unexpected error creating the macro table: %v", err)
	}
	p := newProcessor(t, tilton.MacroTable(tbl))

	got, err := p.Expand("<~greet~World~>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("Hello, World!", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if tbl.Lookup(text.New("greet")) == nil {
		t.Error("the library macro should have been added to the table")
	}

	got, err = p.Expand("<~defs~><~shout~hey~>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("hey!", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = p.Expand("<~nonesuch~>")
	if !tilton.IsKind(err, tilton.UndefinedMacro) {
		t.Errorf("expected an UndefinedMacro error, got: %v", err)
	}
}
