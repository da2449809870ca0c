package stamp

import "time"

// Stamper writes timestamps to a file.
type Stamper interface {
	// Stamp sets the creation time of path to t. With modified set, the
	// modification time is updated as well.
	Stamp(path string, t time.Time, modified bool) error
}

// StamperFunc adapts a function to the Stamper interface.
type StamperFunc func(path string, t time.Time, modified bool) error

// Stamp calls f(path, t, modified).
func (f StamperFunc) Stamp(path string, t time.Time, modified bool) error {
	return f(path, t, modified)
}
