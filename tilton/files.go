package tilton

import (
	"os"

	"github.com/nickwells/check.mod/v2/check"
	"github.com/nickwells/filecheck.mod/filecheck"
)

// FileIO is used by the read, write and include builtins to get and put
// the contents of files
type FileIO interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// OSFiles reads and writes files in the file system. Files to be read must
// exist and be regular files.
type OSFiles struct{}

// ReadFile returns the contents of the named file
func (OSFiles) ReadFile(name string) ([]byte, error) {
	es := filecheck.Provisos{
		Checks:    []check.FileInfo{check.FileInfoIsRegular},
		Existence: filecheck.MustExist,
	}
	if err := es.StatusCheck(name); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

// WriteFile replaces the contents of the named file, creating it if
// necessary
func (OSFiles) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}
