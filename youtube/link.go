package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

// linkPattern accepts youtube.com, youtu.be and youtube-nocookie.com links,
// with or without scheme and "www.", ending in an 11 character video ID.
var linkPattern = regexp.MustCompile(
	`^(?:https?://)?(?:www\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/` +
		`(?:watch\?v=|embed/|v/|.+\?v=)?([^&=%?]{11})`)

// IsValidLink reports whether link points to a YouTube video.
func IsValidLink(link string) bool {
	return linkPattern.MatchString(strings.TrimSpace(link))
}

// VideoID extracts the video ID from link.
func VideoID(link string) (string, error) {
	m := linkPattern.FindStringSubmatch(strings.TrimSpace(link))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLink, link)
	}
	return m[1], nil
}

// WatchURL returns the canonical watch page of a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
