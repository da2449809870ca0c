package stamp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"filekit/internal/progress"
	"filekit/internal/run"
	"filekit/internal/walk"
)

// Editor applies file name dates to PDFs.
type Editor struct {
	Stamper Stamper
	// Modified also updates the modification time.
	Modified bool
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

// NewEditor returns an editor using the stamper of the current platform.
func NewEditor(modified bool) *Editor {
	return &Editor{Stamper: NewStamper(), Modified: modified}
}

// Apply stamps a single file. Names without a pattern or with an impossible
// date are skipped and left untouched; the returned error then tells why.
func (e *Editor) Apply(r *run.Run, path string) (outcome run.Outcome, err error) {
	log := r.Named("stamp")

	defer func() {
		if v := recover(); v != nil {
			outcome = run.Failed
			err = &StampError{Op: "stamp", Path: path, Err: fmt.Errorf("%w: %v", ErrUnexpected, v)}
		}
	}()

	date, err := ParseFilenameDate(path)
	switch {
	case errors.Is(err, ErrInvalidDate):
		log.Warnw("invalid date in file name", "path", path)
		return run.Skipped, err
	case err != nil:
		log.Infow("file name has no supported date pattern", "path", path)
		return run.Skipped, err
	}

	if r.DryRun {
		log.Infow("would set creation date", "path", path, "date", date.Format("2006-01-02"), "modified", e.Modified)
		return run.Processed, nil
	}

	if err := e.Stamper.Stamp(path, date, e.Modified); err != nil {
		return run.Failed, &StampError{Op: "stamp", Path: path, Err: err}
	}
	log.Debugw("updated creation date", "path", path, "date", date.Format("2006-01-02"))
	return run.Processed, nil
}

// ProcessFolder stamps every PDF in folder. A failing file is logged and
// counted; the batch stops early only when ctx is done.
func (e *Editor) ProcessFolder(ctx context.Context, r *run.Run, folder string, recursive bool) (run.Summary, error) {
	var sum run.Summary
	log := r.Named("stamp")

	files, err := walk.PDFs(folder, recursive)
	if err != nil {
		return sum, err
	}
	if len(files) == 0 {
		log.Infow("no PDF files found", "folder", folder)
		return sum, nil
	}

	var bar *progress.Bar
	if e.Progress != nil {
		bar = progress.New(e.Progress, "Processing "+folder, len(files))
		defer bar.Finish()
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		outcome, err := e.Apply(r, path)
		if outcome == run.Failed {
			log.Errorw("failed to update file", "path", path, "error", err)
		}
		sum.Add(outcome)
		if bar != nil {
			bar.Increment()
		}
	}
	return sum, nil
}
