package youtube

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

const testLink = "https://youtu.be/dQw4w9WgXcQ"

// writeMockYtdlp installs a shell script standing in for yt-dlp. It records
// its arguments in args.txt and answers -J with canned metadata.
func writeMockYtdlp(t *testing.T, dir, body string) (mockPath, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("mock yt-dlp is a shell script")
	}

	mockPath = filepath.Join(dir, "yt-dlp")
	argsFile = filepath.Join(dir, "args.txt")
	script := `#!/bin/sh
echo "$@" >> "` + argsFile + `"
for arg in "$@"; do
    if [ "$arg" = "-J" ]; then
        cat << 'METADATA'
{
  "id": "dQw4w9WgXcQ",
  "title": "Test Video",
  "description": "A test video",
  "duration": 212.0,
  "view_count": 1000,
  "upload_date": "20091025",
  "uploader": "Test Channel",
  "channel_url": "https://www.youtube.com/channel/UCtest123",
  "thumbnail": "https://example.com/thumb.jpg",
  "tags": ["test", "video"],
  "height": 1080,
  "ext": "mp4"
}
METADATA
        exit 0
    fi
done
` + body
	if err := os.WriteFile(mockPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to create mock yt-dlp: %v", err)
	}
	return mockPath, argsFile
}

func TestNewDownloader(t *testing.T) {
	d := NewDownloader(nil)
	if d.YtdlpPath != "yt-dlp" {
		t.Errorf("NewDownloader().YtdlpPath = %q, want %q", d.YtdlpPath, "yt-dlp")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "clean filename", input: "My Video Title", want: "My Video Title"},
		{name: "forward slash", input: "Video/Part 1", want: "Video_Part 1"},
		{name: "backslash", input: "Video\\Part 1", want: "Video_Part 1"},
		{name: "multiple invalid chars", input: "Video: Part 1 - \"Best\" <2024>", want: "Video_ Part 1 - _Best_ _2024_"},
		{name: "question mark, asterisk and pipe", input: "What? * | more", want: "What_ _ _ more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDownloader_Download_InvalidLink(t *testing.T) {
	dir := t.TempDir()
	mockPath, argsFile := writeMockYtdlp(t, dir, "")

	d := &Downloader{YtdlpPath: mockPath}
	_, err := d.Download(context.Background(), "https://vimeo.com/123", nil)
	if !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("Download() error = %v, want ErrInvalidLink", err)
	}
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) || dlErr.Link != "https://vimeo.com/123" {
		t.Errorf("expected *DownloadError for the link, got %v", err)
	}
	if _, err := os.Stat(argsFile); !os.IsNotExist(err) {
		t.Error("yt-dlp must not run for an invalid link")
	}
}

func TestDownloader_Download_MissingYtdlp(t *testing.T) {
	d := &Downloader{YtdlpPath: "/nonexistent/path/to/yt-dlp"}

	_, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: t.TempDir()})
	if !errors.Is(err, ErrYtdlpNotInstalled) {
		t.Errorf("Download() error = %v, want ErrYtdlpNotInstalled", err)
	}
}

func TestDownloader_Download_WithMetadata(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	dir := t.TempDir()
	outputDir := filepath.Join(dir, "output")
	mockPath, argsFile := writeMockYtdlp(t, dir, `mkdir -p "`+outputDir+`"
echo "[download]  50.0% of 10.00MiB"
printf 'mediadata' > "`+outputDir+`/Test Video.mp4"
echo "[download] 100.0% of 10.00MiB"
echo "`+outputDir+`/Test Video.mp4"
`)

	var progress []string
	d := &Downloader{YtdlpPath: mockPath, Timeout: 30 * time.Second}
	result, err := d.Download(context.Background(), testLink, &DownloadOptions{
		OutputDir:       outputDir,
		IncludeMetadata: true,
		OnProgress:      func(line string) { progress = append(progress, line) },
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	wantPath := filepath.Join(outputDir, "Test Video.mp4")
	if result.Path != wantPath {
		t.Errorf("Path = %q, want %q", result.Path, wantPath)
	}
	if result.Size != int64(len("mediadata")) {
		t.Errorf("Size = %d, want %d", result.Size, len("mediadata"))
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q", result.VideoID)
	}
	if len(progress) != 2 || !strings.HasPrefix(progress[0], "[download]") {
		t.Errorf("progress lines = %q", progress)
	}

	if result.Metadata == nil {
		t.Fatal("Metadata is nil when IncludeMetadata=true")
	}
	if result.Metadata.Title != "Test Video" || result.Metadata.Duration != 212 || result.Metadata.Link != testLink {
		t.Errorf("unexpected metadata: %+v", result.Metadata)
	}

	wantMeta := filepath.Join(outputDir, "Test Video.json")
	if result.MetadataPath != wantMeta {
		t.Errorf("MetadataPath = %q, want %q", result.MetadataPath, wantMeta)
	}
	data, err := os.ReadFile(wantMeta)
	if err != nil {
		t.Fatalf("failed to read metadata file: %v", err)
	}
	if !strings.Contains(string(data), `"id": "dQw4w9WgXcQ"`) {
		t.Errorf("metadata file should contain the indented video ID: %s", data)
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("failed to read args file: %v", err)
	}
	if !strings.Contains(string(args), "https://www.youtube.com/watch?v=dQw4w9WgXcQ") {
		t.Errorf("expected canonical watch URL in args: %s", args)
	}
}

func TestDownloader_Download_AudioOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	dir := t.TempDir()
	outputDir := filepath.Join(dir, "output")
	mockPath, argsFile := writeMockYtdlp(t, dir, `mkdir -p "`+outputDir+`"
touch "`+outputDir+`/Test Audio.flac"
echo "`+outputDir+`/Test Audio.flac"
`)

	d := &Downloader{YtdlpPath: mockPath}
	_, err := d.Download(context.Background(), testLink, &DownloadOptions{
		OutputDir:    outputDir,
		AudioOnly:    true,
		AudioFormat:  AudioFLAC,
		AudioQuality: 320,
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("failed to read args file: %v", err)
	}
	argsStr := string(args)
	for _, want := range []string{"-x", "--audio-format flac", "--audio-quality 320K", "bestaudio/best"} {
		if !strings.Contains(argsStr, want) {
			t.Errorf("expected %q in args: %s", want, argsStr)
		}
	}
}

func TestDownloader_Download_Resolution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	dir := t.TempDir()
	outputDir := filepath.Join(dir, "output")
	mockPath, argsFile := writeMockYtdlp(t, dir, `mkdir -p "`+outputDir+`"
touch "`+outputDir+`/Test Video.webm"
echo "`+outputDir+`/Test Video.webm"
`)

	d := &Downloader{YtdlpPath: mockPath}
	_, err := d.Download(context.Background(), testLink, &DownloadOptions{
		OutputDir:  outputDir,
		Resolution: Resolution720p,
		Filename:   "talk: part 1",
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("failed to read args file: %v", err)
	}
	if !strings.Contains(string(args), "bestvideo[height<=720]") {
		t.Errorf("expected 720p selector in args: %s", args)
	}
	if !strings.Contains(string(args), "talk_ part 1.%(ext)s") {
		t.Errorf("expected sanitized custom filename in args: %s", args)
	}
}

func TestDownloader_Download_RejectsUnknownChoices(t *testing.T) {
	d := &Downloader{YtdlpPath: "/nonexistent/yt-dlp"}

	_, err := d.Download(context.Background(), testLink, &DownloadOptions{Resolution: "4k"})
	if !errors.Is(err, ErrUnsupportedQuality) {
		t.Errorf("error = %v, want ErrUnsupportedQuality", err)
	}
	_, err = d.Download(context.Background(), testLink, &DownloadOptions{AudioOnly: true, AudioFormat: "aac"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDownloader_Download_Failure(t *testing.T) {
	dir := t.TempDir()
	mockPath, _ := writeMockYtdlp(t, dir, `echo "ERROR: Video unavailable" >&2
exit 1
`)

	d := &Downloader{YtdlpPath: mockPath}
	_, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: dir})
	if err == nil {
		t.Fatal("expected error from failing yt-dlp")
	}
	if !strings.Contains(err.Error(), "Video unavailable") {
		t.Errorf("error should carry yt-dlp stderr: %v", err)
	}
}

func TestDownloader_Download_Timeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	dir := t.TempDir()
	mockPath, _ := writeMockYtdlp(t, dir, "sleep 60\n")

	d := &Downloader{YtdlpPath: mockPath, Timeout: 100 * time.Millisecond}
	_, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: dir})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Download() error = %v, want deadline exceeded", err)
	}
}

func TestDownloader_Download_CreatesOutputDir(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	dir := t.TempDir()
	outputDir := filepath.Join(dir, "nested", "output", "dir")
	mockPath, _ := writeMockYtdlp(t, dir, `touch "`+outputDir+`/Test.mp4"
echo "`+outputDir+`/Test.mp4"
`)

	d := &Downloader{YtdlpPath: mockPath}
	if _, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: outputDir}); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		t.Error("expected output directory to be created")
	}
}

func TestParseMetadata(t *testing.T) {
	meta, err := parseMetadata([]byte(`{"id":"dQw4w9WgXcQ","title":"T","uploader_url":"https://u"}`), testLink)
	if err != nil {
		t.Fatalf("parseMetadata() error = %v", err)
	}
	if meta.ChannelURL != "https://u" {
		t.Errorf("ChannelURL = %q, want uploader URL fallback", meta.ChannelURL)
	}

	if _, err := parseMetadata([]byte(`{"id":"dQw4w9WgXcQ"}`), testLink); !errors.Is(err, ErrMetadataIncomplete) {
		t.Errorf("error = %v, want ErrMetadataIncomplete", err)
	}
	if _, err := parseMetadata([]byte(`not json`), testLink); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

// stubMetadata is a MetadataSource with a canned answer.
type stubMetadata struct {
	meta  *VideoMetadata
	err   error
	calls int
}

func (s *stubMetadata) Fetch(context.Context, string) (*VideoMetadata, error) {
	s.calls++
	return s.meta, s.err
}

func TestDownloader_Download_MetadataSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	dir := t.TempDir()
	outputDir := filepath.Join(dir, "output")
	mockPath, _ := writeMockYtdlp(t, dir, `mkdir -p "`+outputDir+`"
touch "`+outputDir+`/clip.mp4"
echo "`+outputDir+`/clip.mp4"
`)

	t.Run("custom source", func(t *testing.T) {
		src := &stubMetadata{meta: &VideoMetadata{ID: "dQw4w9WgXcQ", Title: "From API"}}
		d := &Downloader{YtdlpPath: mockPath, Metadata: src}
		result, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: outputDir, IncludeMetadata: true})
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		if src.calls != 1 || result.Metadata.Title != "From API" {
			t.Errorf("metadata source not used: calls=%d meta=%+v", src.calls, result.Metadata)
		}
		if result.MetadataPath != filepath.Join(outputDir, "clip.json") {
			t.Errorf("MetadataPath = %q", result.MetadataPath)
		}
	})

	t.Run("failing source does not stop the download", func(t *testing.T) {
		src := &stubMetadata{err: errors.New("quota exceeded")}
		d := &Downloader{YtdlpPath: mockPath, Metadata: src}
		result, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: outputDir, IncludeMetadata: true})
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		if result.Metadata != nil || result.MetadataPath != "" {
			t.Errorf("expected no metadata, got %+v at %q", result.Metadata, result.MetadataPath)
		}
	})

	t.Run("metadata skipped when not requested", func(t *testing.T) {
		src := &stubMetadata{}
		d := &Downloader{YtdlpPath: mockPath, Metadata: src}
		if _, err := d.Download(context.Background(), testLink, &DownloadOptions{OutputDir: outputDir}); err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		if src.calls != 0 {
			t.Errorf("metadata fetched %d times, want 0", src.calls)
		}
	})
}
