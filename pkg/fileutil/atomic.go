// Package fileutil provides file system utilities including atomic write operations.
package fileutil

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/modcheck/internal/errors"
)

const tempPattern = ".modcheck-atomic-*.tmp"

// AtomicFile is a writer whose content replaces the destination only on Commit.
// Until then the destination is left untouched; Abort discards the temp file.
type AtomicFile struct {
	*os.File
	path string
	perm os.FileMode
	done bool
}

// CreateAtomic opens a temp file next to path for streaming writes.
// The caller must call Commit or Abort exactly once.
func CreateAtomic(path string, perm os.FileMode) (*AtomicFile, error) {
	// Same directory so the final rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return nil, errors.Wrap(err, "creating temp file")
	}
	return &AtomicFile{File: tmp, path: path, perm: perm}, nil
}

// Commit closes the temp file and renames it over the destination.
func (f *AtomicFile) Commit() error {
	if f.done {
		return nil
	}
	f.done = true
	tmpName := f.Name()

	if err := f.Chmod(f.perm); err != nil {
		f.File.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "setting file permissions")
	}
	if err := f.File.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// Abort closes and removes the temp file. It is a no-op after Commit.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.File.Close()
	os.Remove(f.Name())
}

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// Interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	f, err := CreateAtomic(path, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return errors.Wrap(err, "writing temp file")
	}
	return f.Commit()
}

// AtomicWriteYAML writes v as YAML to path atomically with 0644 permissions.
// Appends a trailing newline for POSIX compliance.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, 0o644)
}
