package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"filekit/config"
	"filekit/internal/prompt"
	"filekit/internal/run"
	"filekit/pdfrename"
)

type renameFlags struct {
	keywords  string
	recursive bool
	format    string
	dryRun    bool
}

func newRenameCmd(a *app) *cobra.Command {
	f := &renameFlags{}
	cmd := &cobra.Command{
		Use:   "rename [folder...]",
		Short: "Rename PDFs to {date}_{title}.pdf from their text",
		Long: `Reads the first pages of every PDF in a folder, finds the document date
and a subject keyword, and renames the file accordingly. Without folders an
interactive prompt asks for them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRename(cmd, args, f)
		},
	}
	cmd.Flags().StringVarP(&f.keywords, "keywords", "k", "", "keyword file, one keyword per line (default from config)")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "process subfolders")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "name template with {date} and {title} (default from config)")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "d", false, "show what would be renamed without renaming")
	return cmd
}

func (a *app) runRename(cmd *cobra.Command, args []string, f *renameFlags) error {
	keywords := a.cfg.KeywordsFile
	if f.keywords != "" {
		keywords = f.keywords
	}
	format := a.cfg.NameFormat
	if f.format != "" {
		if err := config.ValidateNameFormat(f.format); err != nil {
			return err
		}
		format = f.format
	}

	p := pdfrename.NewProcessor(keywords)
	p.Format = format
	p.PageWindow = a.cfg.PageWindow
	p.Title = pdfrename.TitleOptions{Placeholder: a.cfg.Placeholder, MaxLength: a.cfg.MaxTitleLength}
	p.Progress = cmd.ErrOrStderr()

	r := run.New(a.log.SugaredLogger, f.dryRun)
	out := cmd.OutOrStdout()
	banner(out, "PDF Rename Tool", f.dryRun)

	process := func(ctx context.Context, folder string) {
		sum, err := p.ProcessFolder(ctx, r, folder, f.recursive)
		r.Total.Merge(sum)
		if err != nil && ctx.Err() == nil {
			r.Log.Errorw("cannot process folder", "folder", folder, "error", err)
			return
		}
		fmt.Fprintf(out, "Files %s\n\n", sum)
	}

	ctx := cmd.Context()
	var err error
	if len(args) > 0 {
		for _, folder := range args {
			if ctx.Err() != nil {
				break
			}
			process(ctx, folder)
		}
	} else {
		err = prompt.Loop(ctx, cmd.InOrStdin(), out, "Folder path", process)
	}

	printSummary(out, r)
	return interrupted(err)
}
