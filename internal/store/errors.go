package store

import (
	"errors"
	"fmt"
)

// ReadError reports that the tasks file could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports that the tasks file could not be written.
// The previous document is left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// FormatError reports that the tasks file does not hold a valid task collection.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string { return fmt.Sprintf("malformed %s: %v", e.Path, e.Err) }
func (e *FormatError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is a ReadError, WriteError or FormatError.
func IsStorageError(err error) bool {
	var (
		re *ReadError
		we *WriteError
		fe *FormatError
	)
	return errors.As(err, &re) || errors.As(err, &we) || errors.As(err, &fe)
}
