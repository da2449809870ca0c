package pdfrename

import (
	"errors"
	"fmt"
)

// Sentinel errors for rename operations.
var (
	// ErrUnreadable indicates the PDF text layer could not be read.
	ErrUnreadable = errors.New("pdfrename: unreadable document")
	// ErrUnexpected marks a panic recovered at the per-file boundary.
	ErrUnexpected = errors.New("pdfrename: unexpected failure")
)

// FileError wraps a failure with the operation and file it concerns.
//
//	var fileErr *pdfrename.FileError
//	if errors.As(err, &fileErr) {
//		fmt.Printf("%s %s: %v\n", fileErr.Op, fileErr.Path, fileErr.Err)
//	}
type FileError struct {
	// Op is the failed step: "read", "load keywords", "rename", "process".
	Op string
	// Path is the file being worked on.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("pdfrename: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
