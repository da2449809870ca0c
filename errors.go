package filekit

import (
	"errors"

	"filekit/internal/fuzzydate"
	"filekit/pdfrename"
	"filekit/stamp"
	"filekit/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, filekit.ErrInvalidDate) {
//		fmt.Println("file name holds no valid date")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var fileErr *filekit.FileError
//	if errors.As(err, &fileErr) {
//		fmt.Printf("%s failed for %s: %v\n", fileErr.Op, fileErr.Path, fileErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// FileError wraps failures while reading or renaming a PDF.
	FileError = pdfrename.FileError
	// StampError wraps failures while setting file times.
	StampError = stamp.StampError
	// DownloadError wraps failures while downloading a video.
	DownloadError = youtube.DownloadError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrUnreadable indicates the text layer of a PDF could not be read.
	ErrUnreadable = pdfrename.ErrUnreadable
	// ErrUnexpected indicates a panic was recovered while renaming a file.
	ErrUnexpected = pdfrename.ErrUnexpected
	// ErrUnrecognizedDate indicates a date string could not be parsed.
	ErrUnrecognizedDate = fuzzydate.ErrUnrecognized

	// ErrNoPattern indicates a file name carries no supported date.
	ErrNoPattern = stamp.ErrNoPattern
	// ErrInvalidDate indicates a file name date is not a calendar day.
	ErrInvalidDate = stamp.ErrInvalidDate

	// ErrInvalidLink indicates the input is not a YouTube video link.
	ErrInvalidLink = youtube.ErrInvalidLink
	// ErrYtdlpNotInstalled indicates yt-dlp binary was not found.
	ErrYtdlpNotInstalled = youtube.ErrYtdlpNotInstalled
)

// IsSkip reports whether err describes input that was skipped rather than an
// operation that failed: a missing or impossible date, or an invalid link.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoPattern) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnrecognizedDate) ||
		errors.Is(err, ErrInvalidLink)
}
