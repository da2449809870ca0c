package stamp

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPattern indicates the file name carries no supported date pattern.
	ErrNoPattern = errors.New("stamp: no date pattern in file name")
	// ErrInvalidDate indicates the encoded date is not a calendar day, e.g. 20231332.
	ErrInvalidDate = errors.New("stamp: invalid date in file name")
	// ErrUnexpected marks a panic recovered while stamping a file.
	ErrUnexpected = errors.New("stamp: unexpected failure")
)

// StampError reports a failed timestamp update.
type StampError struct {
	Op   string
	Path string
	Err  error
}

func (e *StampError) Error() string {
	return fmt.Sprintf("stamp: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StampError) Unwrap() error { return e.Err }
