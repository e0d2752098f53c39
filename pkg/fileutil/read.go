package fileutil

import (
	"fmt"
	"io"
	"os"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// MaxFileSize is the default read limit (1MB).
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge matches every *TooLargeError.
var ErrFileTooLarge = errors.New("file too large")

// TooLargeError reports a file that exceeded a read limit.
// Size is the size seen when reading stopped, which may be Limit+1 when the
// file was not statted up front.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is %d bytes, over the %d byte limit", e.Path, e.Size, e.Limit)
}

// Is makes errors.Is(err, ErrFileTooLarge) true.
func (e *TooLargeError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// ReadFileWithLimit reads a file up to MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadFileLimit(path, MaxFileSize)
}

// ReadFileLimit reads path, failing with a *TooLargeError when it holds more
// than limit bytes.
func ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, &TooLargeError{Path: path, Size: info.Size(), Limit: limit}
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, &TooLargeError{Path: path, Size: int64(len(data)), Limit: limit}
	}
	return data, nil
}
