// Package walk lists the PDF files a batch works on.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrFolderNotFound indicates the folder to scan does not exist.
var ErrFolderNotFound = errors.New("walk: folder not found")

// ErrNotAFolder indicates the path exists but is not a directory.
var ErrNotAFolder = errors.New("walk: not a folder")

// PDFs returns the .pdf files (case-insensitive) in folder, sorted by path.
// With recursive set, subfolders are searched as well.
func PDFs(folder string, recursive bool) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
		}
		return nil, fmt.Errorf("stat %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFolder, folder)
	}

	var files []string
	if !recursive {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", folder, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() && IsPDF(e.Name()) {
				files = append(files, filepath.Join(folder, e.Name()))
			}
		}
		return files, nil
	}

	err = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && IsPDF(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", folder, err)
	}
	sort.Strings(files)
	return files, nil
}

// IsPDF reports whether name has a .pdf extension.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
