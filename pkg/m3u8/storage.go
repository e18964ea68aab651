package m3u8

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// createDirAll creates dir and any missing parents.
func createDirAll(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return newError(ErrIO, "create directory", dir, err)
	}
	return nil
}

// writeFile atomically replaces path with data, creating parent directories
// on demand.
func writeFile(path string, data []byte) error {
	if err := createDirAll(filepath.Dir(path)); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, filePerm); err != nil {
		return newError(ErrIO, "write", path, err)
	}
	return nil
}

// writeStream copies r into path through a pending file that only replaces
// path once the copy completed. It returns the number of bytes written.
func writeStream(path string, r io.Reader) (int64, error) {
	if err := createDirAll(filepath.Dir(path)); err != nil {
		return 0, err
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(filePerm))
	if err != nil {
		return 0, newError(ErrIO, "create", path, err)
	}
	defer pending.Cleanup()

	src := &readTracker{r: r}
	n, err := io.Copy(pending, src)
	if err != nil {
		if src.err != nil {
			return n, newError(ErrNetwork, "read body for", path, err)
		}
		return n, newError(ErrIO, "write", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return n, newError(ErrIO, "replace", path, err)
	}
	return n, nil
}

// readTracker remembers the last read failure so copy errors can be told
// apart from write errors.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
