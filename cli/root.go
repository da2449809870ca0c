package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"filekit/config"
	"filekit/internal/logger"
	"filekit/internal/prompt"
	"filekit/internal/run"
)

// app holds what every subcommand shares once the root command has run.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "filekit",
		Short:         "Personal file automation tools",
		Long:          `Rename PDFs by date and subject, stamp creation dates from file names and download YouTube videos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error loading config: %v\n", err)
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Options{Verbose: a.verbose, Output: cmd.ErrOrStderr()})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRenameCmd(a))
	cmd.AddCommand(newStampCmd(a))
	cmd.AddCommand(newDownloadCmd(a))
	return cmd
}

// banner prints the tool header the way each command starts.
func banner(out io.Writer, title string, dryRun bool) {
	fmt.Fprintf(out, "\n%s\n", title)
	fmt.Fprintln(out, "===============")
	fmt.Fprintf(out, "Type '%s' to quit the program.\n", prompt.ExitWord)
	fmt.Fprintln(out, "===============")
	if dryRun {
		fmt.Fprintln(out, "*** DRY RUN MODE - No files will be modified ***")
	}
	fmt.Fprintln(out)
}

func printSummary(out io.Writer, r *run.Run) {
	fmt.Fprintf(out, "\nSummary: %s\n", r.Total)
}
