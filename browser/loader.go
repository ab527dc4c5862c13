package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader fetches the raw text of a node from a location.
type Loader interface {
	Load(ctx context.Context, location string) (string, error)
	Exists(ctx context.Context, location string) bool
}

// LoadError reports an I/O failure while loading a node. It is distinct from
// *aipparser.FormatError, which reports a malformed document.
type LoadError struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Location, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a LoadError for a missing location.
func IsNotFound(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && errors.Is(le.Err, fs.ErrNotExist)
}

// FileLoader loads nodes from the local file system.
type FileLoader struct{}

// Load reads the file at location.
func (FileLoader) Load(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return "", &LoadError{Location: location, Err: err}
	}
	return string(data), nil
}

// Exists reports whether location names a regular file.
func (FileLoader) Exists(_ context.Context, location string) bool {
	info, err := os.Stat(location)
	return err == nil && info.Mode().IsRegular()
}
