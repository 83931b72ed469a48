package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	debug         bool
	verbose       bool
	logFile       string
	configPath    string
	outputFormat  string
	colorMode     string
	workers       int
	chunkLines    int
	matchTimeout  string
	includeHidden bool
	noIgnore      bool
)

var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Flags are bound to the package-level
// variables above and reset to their defaults on every call.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rgrep <pattern> <path>",
		Short: "Search files for lines matching a regular expression",
		Long: `rgrep searches a file, or every file under a directory, for lines matching
a regular expression. Lines are matched concurrently and printed in file
order as <line>:<column> <content>, where column is the character index
of the first match.`,
		Args:         cobra.ExactArgs(2),
		RunE:         runSearch,
		Version:      versionInfo(),
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate("{{.Version}}")

	flags := cmd.Flags()
	flags.BoolVarP(&debug, "debug", "d", false, "Print the elapsed time after the search")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	flags.StringVar(&configPath, "config", "", "Path to YAML config file (default $RGREP_CONFIG or ~/.config/rgrep/config.yaml)")
	flags.StringVar(&outputFormat, "format", "human", "Output format: human, json, sarif")
	flags.StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	flags.IntVar(&workers, "workers", 0, "Concurrent line evaluations per file (0 = number of CPUs)")
	flags.IntVar(&chunkLines, "chunk-lines", 1, "Consecutive lines evaluated per task")
	flags.StringVar(&matchTimeout, "match-timeout", "5s", "Maximum time to evaluate a single line")
	flags.BoolVar(&includeHidden, "include-hidden", false, "Include hidden files and directories")
	flags.BoolVar(&noIgnore, "no-ignore", false, "Do not skip paths listed in .gitignore")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
