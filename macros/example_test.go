package macros_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/nickwells/tilton.mod/macros"
	"github.com/nickwells/tilton.mod/text"
)

// Example_withDirs demonstrates how the macros package might be used with
// macros directories
func Example_withDirs() {
	dirs := []string{
		"testdata/macros1",
		"testdata/macros2",
	}
	t, err := macros.New(macros.Dirs(dirs...), macros.Suffix(".ti"))
	if err != nil {
		fmt.Printf("Unexpected error creating a new macro table")
		return
	}

	for _, name := range []string{"f1", "f2", "XXX"} {
		e, err := t.Find(text.New(name))
		if err != nil {
			fmt.Println("Error:", err)
			fmt.Println("Not found:", errors.Is(err, macros.ErrNotFound))
			continue
		}
		fmt.Println(e.Value)
	}
	// Output:
	// The contents of f1
	// The contents of <~1~> in f2.ti
	// Error: macro not found: "XXX" in any of the macro directories: testdata/macros1, testdata/macros2
	// Not found: true
}

// Example_withoutDirs demonstrates how the macros package might be used
// without any macros directories
func Example_withoutDirs() {
	t, err := macros.New()
	if err != nil {
		fmt.Printf("Unexpected error creating a new macro table")
		return
	}
	t.AddMacro("f1", "Replaced")
	t.AddMacro("f2", "Changed")
	t.AddMacro("f2", "Substituted")
	t.Delete(text.New("f1"))

	if err := t.Dump(os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// f2~Substituted
}
