package pdfrename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultNameFormat is the template used when none is configured.
const DefaultNameFormat = "{date}_{title}"

// FormatName fills the {date} (YYYYMMDD) and {title} placeholders of format
// and appends ".pdf" when missing.
func FormatName(format string, date time.Time, title string) string {
	if format == "" {
		format = DefaultNameFormat
	}
	name := strings.NewReplacer(
		"{date}", date.Format("20060102"),
		"{title}", title,
	).Replace(format)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// FreeName returns target, or the first of target_1, target_2, ... that does
// not exist yet. A candidate that is src itself counts as free.
func FreeName(src, target string) (string, error) {
	return freeName(src, target, nil)
}

// freeName is FreeName with an extra set of paths that count as taken even
// though nothing exists there yet.
func freeName(src, target string, claimed map[string]struct{}) (string, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	candidate := target
	for i := 1; ; i++ {
		if _, taken := claimed[candidate]; !taken {
			info, err := os.Stat(candidate)
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			if err != nil {
				return "", err
			}
			if os.SameFile(srcInfo, info) {
				return candidate, nil
			}
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

// Renamer moves files to their new names inside the same folder. One Renamer
// is used per batch: targets it has handed out stay reserved, so a dry run
// reports the same _N suffixes a real run would pick.
type Renamer struct {
	Log    *zap.SugaredLogger
	DryRun bool

	claimed map[string]struct{}
}

// Rename moves src to newName in the folder of src, adding a numeric suffix
// when the name is taken. It returns the final path. In dry-run mode the
// intended move is logged and nothing is touched. On failure src stays where
// it was and is returned along with the error.
func (r *Renamer) Rename(src, newName string) (string, error) {
	target, err := freeName(src, filepath.Join(filepath.Dir(src), newName), r.claimed)
	if err != nil {
		return src, &FileError{Op: "rename", Path: src, Err: err}
	}
	if r.claimed == nil {
		r.claimed = make(map[string]struct{})
	}
	r.claimed[target] = struct{}{}

	if r.DryRun {
		r.log().Infow("would rename", "from", src, "to", target)
		return target, nil
	}

	if err := os.Rename(src, target); err != nil {
		return src, &FileError{Op: "rename", Path: src, Err: err}
	}
	r.log().Infow("renamed", "from", src, "to", target)
	return target, nil
}

func (r *Renamer) log() *zap.SugaredLogger {
	if r.Log == nil {
		return zap.NewNop().Sugar()
	}
	return r.Log
}
