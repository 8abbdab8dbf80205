package polymon

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
)

// writeFile writes the data produced by fn to path. Data is first written to
// a temporary file in the directory of path, then renamed into place, so path
// either holds the complete output or is left untouched.
func writeFile(path string, fn func(w io.Writer) error) (rerr error) {
	f, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrOutputWrite, err)
	}

	// Ensure cleanup in case of failure.
	defer func() {
		if rerr != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	// TempFile creates with mode 0600, make it a regular file as if created with os.Create.
	if err := f.Chmod(0644); err != nil {
		return fmt.Errorf("%w: chmod temp file: %v", ErrOutputWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", ErrOutputWrite, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}
