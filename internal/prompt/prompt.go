// Package prompt implements the interactive fallback used when a command is
// started without positional arguments.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ExitWord ends an interactive session.
const ExitWord = "exit"

// Handler processes one answer.
type Handler func(ctx context.Context, answer string)

// Loop asks label repeatedly and passes every non-blank answer to fn until the
// user types ExitWord, the input ends or ctx is cancelled. Cancellation returns
// ctx.Err(); the other endings return nil unless reading failed.
func Loop(ctx context.Context, in io.Reader, out io.Writer, label string, fn Handler) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	// The scanner may stay blocked in Read after Loop returns; it exits at
	// the next line or at the end of input.
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	for {
		fmt.Fprintf(out, "%s (or '%s' to quit): ", label, ExitWord)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-errc
			}
			answer := strings.TrimSpace(line)
			if strings.EqualFold(answer, ExitWord) {
				return nil
			}
			if answer == "" {
				continue
			}
			fn(ctx, answer)
		}
	}
}
