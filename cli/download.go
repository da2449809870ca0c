package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"filekit/internal/prompt"
	"filekit/internal/run"
	"filekit/youtube"
)

type downloadFlags struct {
	resolution  string
	audioOnly   bool
	audioFormat string
	dir         string
	noMetadata  bool
}

func newDownloadCmd(a *app) *cobra.Command {
	f := &downloadFlags{}
	cmd := &cobra.Command{
		Use:   "download [link...]",
		Short: "Download YouTube videos or their audio",
		Long: `Downloads each link with yt-dlp. Without links an interactive prompt asks
for them until 'exit' is entered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDownload(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.resolution, "resolution", "", "highest, 1080p, 720p, 480p or 360p (default from config)")
	cmd.Flags().BoolVar(&f.audioOnly, "audio-only", false, "download the audio track only")
	cmd.Flags().StringVar(&f.audioFormat, "audio-format", "", "mp3, m4a, opus, wav or flac (default from config)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "directory to save downloads (default from config)")
	cmd.Flags().BoolVar(&f.noMetadata, "no-metadata", false, "skip writing the metadata JSON file")
	return cmd
}

func (a *app) runDownload(cmd *cobra.Command, args []string, f *downloadFlags) error {
	resolution, err := youtube.ParseResolution(pick(f.resolution, a.cfg.Resolution))
	if err != nil {
		return err
	}
	audioFormat, err := youtube.ParseAudioFormat(pick(f.audioFormat, a.cfg.AudioFormat))
	if err != nil {
		return err
	}

	r := run.New(a.log.SugaredLogger, false)
	d := youtube.NewDownloader(r.Named("download"))
	d.YtdlpPath = a.cfg.YtdlpPath
	d.Timeout = a.cfg.YtdlpTimeout
	if a.cfg.YouTubeAPIKey != "" {
		api, err := youtube.NewAPIMetadata(cmd.Context(), a.cfg.YouTubeAPIKey)
		if err != nil {
			return err
		}
		d.Metadata = api
	}

	opts := &youtube.DownloadOptions{
		OutputDir:       pick(f.dir, a.cfg.DownloadDir),
		Resolution:      resolution,
		AudioOnly:       f.audioOnly,
		AudioFormat:     audioFormat,
		AudioQuality:    a.cfg.AudioQuality,
		IncludeMetadata: !f.noMetadata,
	}
	// yt-dlp prints several progress lines per second.
	throttle := &rate.Sometimes{Interval: 2 * time.Second}
	opts.OnProgress = func(line string) {
		throttle.Do(func() { r.Log.Infow("progress", "status", line) })
	}

	out := cmd.OutOrStdout()
	process := func(ctx context.Context, link string) {
		if !youtube.IsValidLink(link) {
			fmt.Fprintln(out, "This does not seem to be a valid YouTube link. Please try again.")
			r.Total.Add(run.Skipped)
			return
		}
		fmt.Fprintln(out, "Downloading...")
		res, err := d.Download(ctx, link, opts)
		if err != nil {
			if ctx.Err() == nil {
				r.Log.Errorw("download failed", "link", link, "error", err)
			}
			r.Total.Add(run.Failed)
			return
		}
		r.Total.Add(run.Processed)
		fmt.Fprintf(out, "Download completed: %s\n", res.Path)
	}

	ctx := cmd.Context()
	if len(args) > 0 {
		for _, link := range args {
			if ctx.Err() != nil {
				break
			}
			process(ctx, link)
		}
	} else {
		err = prompt.Loop(ctx, cmd.InOrStdin(), out, "Enter the link of the YouTube video", process)
	}

	printSummary(out, r)
	return interrupted(err)
}

// pick returns flag unless it is empty.
func pick(flag, fallback string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return fallback
}

// interrupted treats a cancelled prompt as a normal end of the session.
func interrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
