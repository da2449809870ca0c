package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// VideoMetadata describes a downloaded video. It is written next to the media
// file when metadata is requested.
type VideoMetadata struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID    string `json:"id"`
	Title string `json:"title"`
	// Link is the link the download was started from.
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
	// Duration is the video length in seconds.
	Duration  int   `json:"duration"`
	ViewCount int64 `json:"view_count"`
	// UploadDate is when the video was uploaded in YYYYMMDD format.
	UploadDate   string   `json:"upload_date,omitempty"`
	Uploader     string   `json:"uploader,omitempty"`
	ChannelURL   string   `json:"channel_url,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	// Height and Ext describe the best stream yt-dlp reported.
	Height int    `json:"height,omitempty"`
	Ext    string `json:"ext,omitempty"`
	// FetchedAt is when this metadata was retrieved.
	FetchedAt time.Time `json:"fetched_at"`
}

// ytdlpInfo is the subset of the yt-dlp -J document that is kept.
type ytdlpInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    float64  `json:"duration"`
	ViewCount   int64    `json:"view_count"`
	UploadDate  string   `json:"upload_date"`
	Uploader    string   `json:"uploader"`
	UploaderURL string   `json:"uploader_url"`
	ChannelURL  string   `json:"channel_url"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        []string `json:"tags"`
	Height      int      `json:"height"`
	Ext         string   `json:"ext"`
}

// FetchMetadata runs yt-dlp -J for the video behind link.
func FetchMetadata(ctx context.Context, ytdlpPath, link string) (*VideoMetadata, error) {
	id, err := VideoID(link)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ytdlpPath, "-J", "--no-warnings", "--no-playlist", WatchURL(id))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", withStderr(err, stderr.String()))
	}

	return parseMetadata(stdout.Bytes(), link)
}

func parseMetadata(data []byte, link string) (*VideoMetadata, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse metadata JSON: %w", err)
	}
	if info.ID == "" || info.Title == "" {
		return nil, fmt.Errorf("%w: id and title are required", ErrMetadataIncomplete)
	}

	channel := info.ChannelURL
	if channel == "" {
		channel = info.UploaderURL
	}
	return &VideoMetadata{
		ID:           info.ID,
		Title:        info.Title,
		Link:         link,
		Description:  info.Description,
		Duration:     int(info.Duration),
		ViewCount:    info.ViewCount,
		UploadDate:   info.UploadDate,
		Uploader:     info.Uploader,
		ChannelURL:   channel,
		ThumbnailURL: info.Thumbnail,
		Tags:         info.Tags,
		Height:       info.Height,
		Ext:          info.Ext,
		FetchedAt:    time.Now().UTC(),
	}, nil
}
