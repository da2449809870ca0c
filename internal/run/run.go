// Package run carries the state scoped to one batch: its logger, the dry-run
// switch and the outcome counters reported at the end.
package run

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome classifies how a single file was handled.
type Outcome int

const (
	// Processed means the file was changed, or would have been in dry-run mode.
	Processed Outcome = iota
	// Skipped means nothing applied to the file (no date, no pattern, invalid date).
	Skipped
	// Failed means an I/O or library error stopped the file.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Summary counts outcomes over a batch.
type Summary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Add records one outcome.
func (s *Summary) Add(o Outcome) {
	switch o {
	case Processed:
		s.Processed++
	case Skipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// Merge adds the counters of other to s.
func (s *Summary) Merge(other Summary) {
	s.Processed += other.Processed
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Total is the number of files seen.
func (s Summary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("processed: %d, skipped: %d, failed: %d", s.Processed, s.Skipped, s.Failed)
}

// Run is passed explicitly to every processing function of one invocation.
type Run struct {
	ID     string
	Log    *zap.SugaredLogger
	DryRun bool
	Total  Summary
}

// New starts a run. A nil logger is replaced with a no-op logger.
func New(log *zap.SugaredLogger, dryRun bool) *Run {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	id := uuid.NewString()
	return &Run{
		ID:     id,
		Log:    log.With("run", id[:8]),
		DryRun: dryRun,
	}
}

// Named returns a child logger for a component.
func (r *Run) Named(name string) *zap.SugaredLogger {
	return r.Log.Named(name)
}
