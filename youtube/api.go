package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// MetadataSource looks up metadata for a video link.
type MetadataSource interface {
	Fetch(ctx context.Context, link string) (*VideoMetadata, error)
}

// YtdlpMetadata reads metadata with yt-dlp -J.
type YtdlpMetadata struct {
	YtdlpPath string
}

// Fetch implements MetadataSource.
func (y YtdlpMetadata) Fetch(ctx context.Context, link string) (*VideoMetadata, error) {
	path := y.YtdlpPath
	if path == "" {
		path = "yt-dlp"
	}
	return FetchMetadata(ctx, path, link)
}

// APIMetadata reads metadata from the YouTube Data API v3. One lookup costs a
// single quota unit, which is cheaper than starting yt-dlp twice.
type APIMetadata struct {
	service *ytapi.Service
}

// NewAPIMetadata creates an API client authenticated with apiKey. Extra
// options are passed to the client, e.g. a custom endpoint.
func NewAPIMetadata(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APIMetadata, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	service, err := ytapi.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &APIMetadata{service: service}, nil
}

// Fetch implements MetadataSource.
func (a *APIMetadata) Fetch(ctx context.Context, link string) (*VideoMetadata, error) {
	id, err := VideoID(link)
	if err != nil {
		return nil, err
	}

	resp, err := a.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: video %s not found", ErrMetadataIncomplete, id)
	}

	v := resp.Items[0]
	meta := &VideoMetadata{
		ID:          v.Id,
		Title:       v.Snippet.Title,
		Link:        link,
		Description: v.Snippet.Description,
		Uploader:    v.Snippet.ChannelTitle,
		Tags:        v.Snippet.Tags,
		FetchedAt:   time.Now().UTC(),
	}
	if v.Snippet.ChannelId != "" {
		meta.ChannelURL = "https://www.youtube.com/channel/" + v.Snippet.ChannelId
	}
	if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
		meta.UploadDate = t.UTC().Format("20060102")
	}
	if th := v.Snippet.Thumbnails; th != nil {
		for _, t := range []*ytapi.Thumbnail{th.Maxres, th.High, th.Medium, th.Default} {
			if t != nil && t.Url != "" {
				meta.ThumbnailURL = t.Url
				break
			}
		}
	}
	if v.Statistics != nil {
		meta.ViewCount = int64(v.Statistics.ViewCount)
	}
	if v.ContentDetails != nil {
		meta.Duration = parseISODuration(v.ContentDetails.Duration)
	}
	if meta.ID == "" || meta.Title == "" {
		return nil, fmt.Errorf("%w: id and title are required", ErrMetadataIncomplete)
	}
	return meta, nil
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration converts an ISO 8601 duration such as PT1H2M3S to seconds.
// Unparsable input yields 0.
func parseISODuration(s string) int {
	m := isoDuration.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return 0
	}
	total := 0
	for i, unit := range []int{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, _ := strconv.Atoi(m[i+1])
		total += n * unit
	}
	return total
}
