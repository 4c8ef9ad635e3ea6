package store

import (
	"io"
	"os"
	"path/filepath"
)

const filePerm = 0o644

// writeFileAtomic writes path via a temp file in the same directory and a
// rename, so readers see either the old content or the new content.
func writeFileAtomic(path string, rename func(oldpath, newpath string) error, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "create temp", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return &IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := rename(tmpPath, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	success = true
	return nil
}
