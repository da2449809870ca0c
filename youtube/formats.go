package youtube

import (
	"fmt"
	"strings"
)

// Resolution is the largest video height to download.
type Resolution string

const (
	// ResolutionHighest picks the best stream yt-dlp can find.
	ResolutionHighest Resolution = "highest"
	Resolution1080p   Resolution = "1080p"
	Resolution720p    Resolution = "720p"
	Resolution480p    Resolution = "480p"
	Resolution360p    Resolution = "360p"
)

// AudioFormat is the codec of an extracted audio track.
type AudioFormat string

const (
	AudioMP3  AudioFormat = "mp3"
	AudioM4A  AudioFormat = "m4a"
	AudioOpus AudioFormat = "opus"
	AudioWAV  AudioFormat = "wav"
	AudioFLAC AudioFormat = "flac"
)

var heights = map[Resolution]int{
	Resolution1080p: 1080,
	Resolution720p:  720,
	Resolution480p:  480,
	Resolution360p:  360,
}

// ParseResolution accepts "highest", "1080p", "720p", "480p" and "360p",
// case-insensitively. The empty string means highest.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(strings.ToLower(strings.TrimSpace(s)))
	if r == "" || r == ResolutionHighest {
		return ResolutionHighest, nil
	}
	if _, ok := heights[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedQuality, s)
	}
	return r, nil
}

// Selector returns the yt-dlp format selector for r. Separate video and audio
// streams are preferred, with a single combined stream as fallback.
func (r Resolution) Selector() string {
	h, ok := heights[r]
	if !ok {
		return "bestvideo+bestaudio/best"
	}
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/best", h, h)
}

// ParseAudioFormat accepts mp3, m4a, opus, wav and flac. The empty string
// means mp3.
func ParseAudioFormat(s string) (AudioFormat, error) {
	f := AudioFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return AudioMP3, nil
	case AudioMP3, AudioM4A, AudioOpus, AudioWAV, AudioFLAC:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}
