package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"filekit/internal/prompt"
	"filekit/internal/run"
	"filekit/stamp"
)

type stampFlags struct {
	recursive bool
	modified  bool
	dryRun    bool
}

func newStampCmd(a *app) *cobra.Command {
	f := &stampFlags{}
	cmd := &cobra.Command{
		Use:   "stamp [folder...]",
		Short: "Set PDF creation dates from dates in their file names",
		Long: `Sets the creation date of every PDF named YYYYMMDD_*.pdf, YYYY-MM-DD_*.pdf
or *_YYYYMMDD.pdf. Folders given as arguments are processed first, then an
interactive prompt asks for more.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStamp(cmd, args, f)
		},
	}
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "process subfolders")
	cmd.Flags().BoolVarP(&f.modified, "modified-date", "m", false, "also update the modification date")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "d", false, "show what would change without changing it")
	return cmd
}

func (a *app) runStamp(cmd *cobra.Command, args []string, f *stampFlags) error {
	e := stamp.NewEditor(f.modified)
	e.Progress = cmd.ErrOrStderr()

	r := run.New(a.log.SugaredLogger, f.dryRun)
	out := cmd.OutOrStdout()
	banner(out, "Edit Creation Date Tool", f.dryRun)

	process := func(ctx context.Context, folder string) {
		sum, err := e.ProcessFolder(ctx, r, folder, f.recursive)
		r.Total.Merge(sum)
		if err != nil && ctx.Err() == nil {
			r.Log.Errorw("cannot process folder", "folder", folder, "error", err)
			return
		}
		fmt.Fprintf(out, "Files %s\n\n", sum)
	}

	ctx := cmd.Context()
	for _, folder := range args {
		if ctx.Err() != nil {
			break
		}
		process(ctx, folder)
	}

	var err error
	if ctx.Err() == nil {
		err = prompt.Loop(ctx, cmd.InOrStdin(), out, "Folder path", process)
	}

	printSummary(out, r)
	return interrupted(err)
}
