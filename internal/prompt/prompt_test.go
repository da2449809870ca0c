package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_StopsAtExit(t *testing.T) {
	in := strings.NewReader("first\n\n  second  \nEXIT\nnever\n")
	var out bytes.Buffer
	var got []string

	err := Loop(context.Background(), in, &out, "Folder path", func(_ context.Context, answer string) {
		got = append(got, answer)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
	assert.Contains(t, out.String(), "Folder path (or 'exit' to quit): ")
}

func TestLoop_StopsAtEOF(t *testing.T) {
	var got []string
	err := Loop(context.Background(), strings.NewReader("only"), io.Discard, "Link", func(_ context.Context, answer string) {
		got = append(got, answer)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got)
}

func TestLoop_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, pr, io.Discard, "Folder path", func(context.Context, string) {})
	}()

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not return after cancellation")
	}
}

func TestLoop_ReleasesReaderAfterExit(t *testing.T) {
	before := runtime.NumGoroutine()

	err := Loop(context.Background(), strings.NewReader("exit\nleft over\n"), io.Discard, "Link",
		func(context.Context, string) { t.Error("no answer expected") })
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond, "scanner goroutine still running after exit")
}
