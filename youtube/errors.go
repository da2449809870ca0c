// Package youtube validates YouTube links and downloads videos or their audio
// track with yt-dlp.
package youtube

import "errors"

// Sentinel errors for download operations.
var (
	ErrInvalidLink        = errors.New("youtube: invalid link")
	ErrUnsupportedFormat  = errors.New("youtube: unsupported audio format")
	ErrUnsupportedQuality = errors.New("youtube: unsupported resolution")
	ErrYtdlpNotInstalled  = errors.New("youtube: yt-dlp not installed")
	ErrMetadataIncomplete = errors.New("youtube: incomplete metadata")
)

// DownloadError reports a failed download.
// Use errors.As() to extract the link that failed:
//
//	var dlErr *youtube.DownloadError
//	if errors.As(err, &dlErr) {
//		fmt.Printf("Failed to download %s: %v\n", dlErr.Link, dlErr.Err)
//	}
type DownloadError struct {
	// Link is the link as entered by the user.
	Link string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the download error.
func (e *DownloadError) Error() string {
	return "youtube: download " + e.Link + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *DownloadError) Unwrap() error { return e.Err }
