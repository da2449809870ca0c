// Package progress draws a single-line progress bar for file batches.
// The bar is purely visual and is suppressed when the output is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const barWidth = 30

// Bar renders "desc  3/10 [#########---------------]  30%".
type Bar struct {
	out     io.Writer
	desc    string
	total   int
	current int
	enabled bool
}

// New creates a bar writing to out. Rendering is enabled only when out is a
// terminal; use Force to override.
func New(out io.Writer, desc string, total int) *Bar {
	enabled := false
	if f, ok := out.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Bar{out: out, desc: desc, total: total, enabled: enabled}
}

// Force turns rendering on or off regardless of the output type.
func (b *Bar) Force(enabled bool) *Bar {
	b.enabled = enabled
	return b
}

// Increment advances the bar by one and redraws it.
func (b *Bar) Increment() {
	if b.current < b.total {
		b.current++
	}
	b.draw()
}

// Finish terminates the line.
func (b *Bar) Finish() {
	if !b.enabled {
		return
	}
	fmt.Fprintln(b.out)
}

// String returns the current rendering without the leading carriage return.
func (b *Bar) String() string {
	pct := 100
	filled := barWidth
	if b.total > 0 {
		pct = b.current * 100 / b.total
		filled = b.current * barWidth / b.total
	}
	return fmt.Sprintf("%s %*d/%d [%s%s] %3d%%",
		b.desc,
		len(fmt.Sprint(b.total)), b.current, b.total,
		strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled),
		pct)
}

func (b *Bar) draw() {
	if !b.enabled {
		return
	}
	fmt.Fprint(b.out, "\r"+b.String())
}
