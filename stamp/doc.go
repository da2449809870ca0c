// Package stamp sets file timestamps from a date encoded in the file name.
//
// Supported names are YYYYMMDD_*.pdf, YYYY-MM-DD_*.pdf and *_YYYYMMDD.pdf.
// The platform specific work is done by a Stamper chosen at build time:
// Windows sets the creation time directly, macOS uses the SetFile developer
// tool, and other Unix systems, which cannot set a birth time, update the
// access and modification times instead.
package stamp
