package pdfrename

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"filekit/internal/progress"
	"filekit/internal/run"
	"filekit/internal/walk"
)

// Result describes what happened to one PDF.
type Result struct {
	Path    string
	Target  string
	Date    time.Time
	Title   string
	Matcher string
	Outcome run.Outcome
	// AlreadyNamed is set when the file carries its target name already.
	AlreadyNamed bool
}

// Processor renames PDFs after the date and subject found in their text.
type Processor struct {
	Source TextSource
	Dates  *DateExtractor
	Title  TitleOptions
	// Format is the target name template, DefaultNameFormat when empty.
	Format string
	// PageWindow is the number of leading pages read per document.
	PageWindow int

	// KeywordsFile is re-read through Keywords whenever it changes on disk.
	KeywordsFile string
	Keywords     *KeywordLoader

	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

// NewProcessor returns a processor with the default text source and matchers.
func NewProcessor(keywordsFile string) *Processor {
	return &Processor{
		Source:       PDFTextSource{},
		Dates:        NewDateExtractor(),
		Format:       DefaultNameFormat,
		PageWindow:   3,
		KeywordsFile: keywordsFile,
		Keywords:     NewKeywordLoader(4),
	}
}

// ProcessFolder renames every PDF in folder, one file at a time. Failures on a
// file are counted and the batch goes on. It stops early only when ctx is done.
func (p *Processor) ProcessFolder(ctx context.Context, r *run.Run, folder string, recursive bool) (run.Summary, error) {
	var sum run.Summary
	log := r.Named("rename")

	files, err := walk.PDFs(folder, recursive)
	if err != nil {
		return sum, err
	}
	if len(files) == 0 {
		log.Infow("no PDF files found", "folder", folder)
		return sum, nil
	}

	keywords := p.keywords(r)
	renamer := &Renamer{Log: log, DryRun: r.DryRun}

	var bar *progress.Bar
	if p.Progress != nil {
		bar = progress.New(p.Progress, "Processing PDFs", len(files))
		defer bar.Finish()
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := p.processFile(ctx, r, path, keywords, renamer)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return sum, err
			}
			log.Errorw("failed to process file", "path", path, "error", err)
		}
		sum.Add(res.Outcome)
		if bar != nil {
			bar.Increment()
		}
	}
	return sum, nil
}

// ProcessFile renames a single PDF. The returned error is non-nil only for
// failures; a document without a date yields a Skipped result and no error.
func (p *Processor) ProcessFile(ctx context.Context, r *run.Run, path string) (Result, error) {
	renamer := &Renamer{Log: r.Named("rename"), DryRun: r.DryRun}
	return p.processFile(ctx, r, path, p.keywords(r), renamer)
}

func (p *Processor) processFile(ctx context.Context, r *run.Run, path string, keywords []string, renamer *Renamer) (res Result, err error) {
	log := r.Named("rename")
	res = Result{Path: path, Outcome: run.Failed}

	defer func() {
		if v := recover(); v != nil {
			res.Outcome = run.Failed
			err = &FileError{Op: "process", Path: path, Err: fmt.Errorf("%w: %v", ErrUnexpected, v)}
		}
	}()

	log.Debugw("processing", "path", path)

	text, err := p.Source.Text(ctx, path, p.PageWindow)
	if err != nil {
		return res, &FileError{Op: "read", Path: path, Err: err}
	}

	date, matcher, ok := p.dates().Extract(text, path)
	if !ok {
		log.Warnw("no date found, skipping", "path", path)
		res.Outcome = run.Skipped
		return res, nil
	}
	res.Date = date
	res.Matcher = matcher
	res.Title = ExtractTitle(text, keywords, p.Title)

	newName := FormatName(p.Format, date, res.Title)
	if filepath.Base(path) == newName {
		log.Infow("already named", "path", path)
		res.Target = path
		res.AlreadyNamed = true
		res.Outcome = run.Processed
		return res, nil
	}

	target, err := renamer.Rename(path, newName)
	if err != nil {
		return res, err
	}
	res.Target = target
	res.Outcome = run.Processed
	return res, nil
}

func (p *Processor) dates() *DateExtractor {
	if p.Dates == nil {
		p.Dates = NewDateExtractor()
	}
	return p.Dates
}

// keywords loads the keyword file. A missing or unreadable file is logged and
// every title falls back to the placeholder.
func (p *Processor) keywords(r *run.Run) []string {
	if p.KeywordsFile == "" {
		return nil
	}
	if p.Keywords == nil {
		p.Keywords = NewKeywordLoader(4)
	}
	keywords, err := p.Keywords.Load(p.KeywordsFile)
	if err != nil {
		r.Named("rename").Errorw("cannot load keywords", "path", p.KeywordsFile, "error", err)
		return nil
	}
	r.Named("rename").Debugw("keywords loaded", "path", p.KeywordsFile, "count", len(keywords))
	return keywords
}
