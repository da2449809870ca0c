//go:build darwin

package stamp

import (
	"errors"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// darwinStamper sets the creation date with SetFile from the Xcode command
// line tools. Without them it falls back to utimes, which also moves the
// creation date when the new time is earlier.
type darwinStamper struct {
	setFile string
}

// NewStamper returns the stamper for macOS.
func NewStamper() Stamper {
	return darwinStamper{setFile: "SetFile"}
}

func (s darwinStamper) Stamp(path string, t time.Time, modified bool) error {
	err := exec.Command(s.setFile, "-d", t.Format("01/02/2006 15:04:05"), path).Run()
	if errors.Is(err, exec.ErrNotFound) {
		return utimes(path, t)
	}
	if err != nil {
		return fmt.Errorf("SetFile: %w", err)
	}
	if modified {
		return utimes(path, t)
	}
	return nil
}

func utimes(path string, t time.Time) error {
	ts := unix.NsecToTimespec(t.UnixNano())
	if err := unix.UtimesNano(path, []unix.Timespec{ts, ts}); err != nil {
		return fmt.Errorf("utimes: %w", err)
	}
	return nil
}
