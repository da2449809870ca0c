package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"filekit/internal/storage"
)

// DownloadOptions configures a single download.
type DownloadOptions struct {
	// OutputDir is the directory to save the download in.
	// Defaults to current directory if empty.
	OutputDir string
	// Resolution caps the video height. Defaults to ResolutionHighest.
	Resolution Resolution
	// AudioOnly extracts the audio track instead of downloading video.
	AudioOnly bool
	// AudioFormat is the codec used with AudioOnly. Defaults to mp3.
	AudioFormat AudioFormat
	// AudioQuality is the audio bitrate in kbps used with AudioOnly.
	// Defaults to 192 if not specified.
	AudioQuality int
	// IncludeMetadata saves video metadata to a JSON file alongside the media.
	IncludeMetadata bool
	// Filename specifies a custom output filename (without extension).
	// If empty, the video title is used.
	Filename string
	// OnProgress receives every progress line yt-dlp prints (optional).
	OnProgress func(line string)
}

// DownloadResult contains information about a completed download.
type DownloadResult struct {
	Link    string
	VideoID string
	// Path is the downloaded media file as reported by yt-dlp.
	Path string
	// Size of the media file in bytes, 0 if it could not be determined.
	Size int64
	// MetadataPath is the path to the metadata JSON file, if one was written.
	MetadataPath string
	// Metadata contains the parsed video metadata (if IncludeMetadata was true).
	Metadata *VideoMetadata
}

// Downloader downloads videos with yt-dlp.
type Downloader struct {
	// YtdlpPath is the path to the yt-dlp executable.
	YtdlpPath string
	// Timeout bounds a single download including the metadata lookup.
	// Zero means no limit beyond the caller's context.
	Timeout time.Duration
	// Metadata looks up video metadata. Defaults to yt-dlp -J.
	Metadata MetadataSource
	Log      *zap.SugaredLogger
}

// NewDownloader creates a Downloader using yt-dlp from PATH.
func NewDownloader(log *zap.SugaredLogger) *Downloader {
	return &Downloader{
		YtdlpPath: "yt-dlp",
		Log:       log,
	}
}

// Download fetches the video behind link. Invalid links are rejected before
// yt-dlp is started. Failures are returned as *DownloadError.
func (d *Downloader) Download(ctx context.Context, link string, opts *DownloadOptions) (*DownloadResult, error) {
	if opts == nil {
		opts = &DownloadOptions{}
	}
	fail := func(err error) (*DownloadResult, error) {
		return nil, &DownloadError{Link: link, Err: err}
	}

	id, err := VideoID(link)
	if err != nil {
		return fail(err)
	}
	args, err := d.args(id, opts)
	if err != nil {
		return fail(err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fail(fmt.Errorf("create output directory: %w", err))
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	log := d.log().With("video", id)
	result := &DownloadResult{Link: link, VideoID: id}

	if opts.IncludeMetadata {
		meta, err := d.metadata().Fetch(ctx, link)
		if err != nil {
			log.Warnw("metadata unavailable, downloading anyway", "error", err)
		} else {
			result.Metadata = meta
		}
	}

	log.Infow("downloading", "dir", outputDir, "audio_only", opts.AudioOnly)

	out := &outputSink{onLine: opts.OnProgress}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.ytdlp(), args...)
	cmd.Stdout = &lineWriter{fn: out.stdout}
	cmd.Stderr = &teeLineWriter{buf: &stderr, lines: lineWriter{fn: out.progress}}
	// Children of yt-dlp (ffmpeg) may keep the pipes open after a kill.
	cmd.WaitDelay = 2 * time.Second

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return fail(fmt.Errorf("%w: %v", ErrYtdlpNotInstalled, err))
		case ctx.Err() != nil:
			return fail(ctx.Err())
		}
		return fail(fmt.Errorf("download video: %w", withStderr(err, stderr.String())))
	}

	result.Path = out.path()
	if result.Path == "" {
		log.Warnw("yt-dlp did not report the output file", "dir", outputDir)
		result.Path = outputDir
	} else if info, err := os.Stat(result.Path); err == nil && info.Mode().IsRegular() {
		result.Size = info.Size()
	}
	log.Infow("download complete", "path", result.Path, "size", humanize.Bytes(uint64(result.Size)))

	if result.Metadata != nil {
		path := metadataPath(result.Path, outputDir, result.Metadata.Title)
		if err := storage.WriteJSON(path, result.Metadata); err != nil {
			log.Warnw("could not save metadata", "path", path, "error", err)
		} else {
			result.MetadataPath = path
		}
	}

	return result, nil
}

func (d *Downloader) args(id string, opts *DownloadOptions) ([]string, error) {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	name := "%(title)s"
	if opts.Filename != "" {
		name = sanitizeFilename(opts.Filename)
	}

	args := []string{
		"-o", filepath.Join(outputDir, name+".%(ext)s"),
		"--no-warnings",
		"--no-playlist",
		"--newline",
		"--progress",
		"--print", "after_move:filepath",
	}

	if opts.AudioOnly {
		format, err := ParseAudioFormat(string(opts.AudioFormat))
		if err != nil {
			return nil, err
		}
		quality := opts.AudioQuality
		if quality <= 0 {
			quality = 192
		}
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", string(format),
			"--audio-quality", fmt.Sprintf("%dK", quality),
		)
	} else {
		res, err := ParseResolution(string(opts.Resolution))
		if err != nil {
			return nil, err
		}
		args = append(args, "-f", res.Selector())
	}

	return append(args, WatchURL(id)), nil
}

func (d *Downloader) ytdlp() string {
	if d.YtdlpPath == "" {
		return "yt-dlp"
	}
	return d.YtdlpPath
}

func (d *Downloader) metadata() MetadataSource {
	if d.Metadata == nil {
		return YtdlpMetadata{YtdlpPath: d.ytdlp()}
	}
	return d.Metadata
}

func (d *Downloader) log() *zap.SugaredLogger {
	if d.Log == nil {
		return zap.NewNop().Sugar()
	}
	return d.Log
}

// metadataPath puts the JSON file next to the media file, or into dir named
// after the title when the media path is unknown.
func metadataPath(mediaPath, dir, title string) string {
	if mediaPath != dir {
		return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".json"
	}
	return filepath.Join(dir, sanitizeFilename(title)+".json")
}

var unsafeFilename = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	return unsafeFilename.Replace(s)
}

func withStderr(err error, stderr string) error {
	if s := strings.TrimSpace(stderr); s != "" {
		return fmt.Errorf("%w: %s", err, s)
	}
	return err
}

// outputSink collects yt-dlp output. stdout and stderr are copied by
// separate goroutines, so access is serialized.
type outputSink struct {
	mu     sync.Mutex
	onLine func(string)
	last   string
}

func (s *outputSink) stdout(line string) {
	if strings.HasPrefix(line, "[") {
		s.progress(line)
		return
	}
	// Everything else is the after_move:filepath print.
	s.mu.Lock()
	s.last = line
	s.mu.Unlock()
}

func (s *outputSink) progress(line string) {
	if s.onLine == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLine(line)
}

func (s *outputSink) path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// lineWriter splits written bytes into trimmed, non-empty lines. yt-dlp
// terminates progress updates with either \r or \n.
type lineWriter struct {
	buf []byte
	fn  func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		if line := strings.TrimSpace(string(w.buf[:i])); line != "" {
			w.fn(line)
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// teeLineWriter keeps the raw output for error messages and forwards lines.
type teeLineWriter struct {
	buf   *bytes.Buffer
	lines lineWriter
}

func (w *teeLineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.lines.Write(p)
}
