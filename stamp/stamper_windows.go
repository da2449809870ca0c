//go:build windows

package stamp

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

type windowsStamper struct{}

// NewStamper returns the stamper for Windows, which sets the creation time
// with SetFileTime.
func NewStamper() Stamper {
	return windowsStamper{}
}

func (windowsStamper) Stamp(path string, t time.Time, modified bool) error {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	h, err := windows.CreateFile(
		name,
		windows.FILE_WRITE_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer windows.CloseHandle(h)

	ft := windows.NsecToFiletime(t.UnixNano())
	var write *windows.Filetime
	if modified {
		write = &ft
	}
	if err := windows.SetFileTime(h, &ft, nil, write); err != nil {
		return fmt.Errorf("set file time: %w", err)
	}
	return nil
}
