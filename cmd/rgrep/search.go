package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/praetorian-inc/rgrep/pkg/config"
	"github.com/praetorian-inc/rgrep/pkg/report"
	"github.com/praetorian-inc/rgrep/pkg/scanner"
	"github.com/praetorian-inc/rgrep/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runSearch(cmd *cobra.Command, args []string) error {
	pattern, root := args[0], args[1]
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logConfig := defaultLogConfig()
	logConfig.Verbose = verbose
	logConfig.LogFile = logFile
	logger, closer, err := setupLogging(logConfig, errOut)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	// Validate target exists
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", root)
	}

	outColor, err := report.ColorEnabled(cfg.Color, out)
	if err != nil {
		return err
	}
	errColor, err := report.ColorEnabled(cfg.Color, errOut)
	if err != nil {
		return err
	}

	writer, err := report.New(cfg.Format, out, report.Options{
		Color:    outColor,
		ShowPath: info.IsDir(),
		Pattern:  pattern,
	})
	if err != nil {
		return err
	}

	entry := logger.WithFields(logrus.Fields{"pattern": pattern, "path": root})
	core := scanner.NewCore(scanner.Config{
		Workers:          cfg.Workers,
		ChunkLines:       cfg.ChunkLines,
		MatchTimeout:     cfg.MatchTimeout,
		Prefilter:        cfg.Prefilter,
		IncludeHidden:    cfg.IncludeHidden,
		RespectGitignore: cfg.RespectGitignore,
	}, debugLogger{entry: entry})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, scanErr := core.Scan(ctx, root, pattern, &printHandler{
		writer: writer,
		errOut: errOut,
		color:  errColor,
	})
	closeErr := writer.Close()
	if scanErr != nil {
		return fmt.Errorf("searching %s: %w", root, scanErr)
	}
	if closeErr != nil {
		return closeErr
	}

	entry.WithFields(logrus.Fields{
		"files":   summary.Files,
		"matched": summary.FilesMatched,
		"matches": summary.Matches,
		"errors":  summary.Errors,
	}).Info("search complete")

	if debug {
		// Keep machine-readable stdout parseable.
		dst := out
		if cfg.Format != report.FormatHuman {
			dst = errOut
		}
		fmt.Fprintf(dst, "Time elapsed: %d ms\n", summary.Elapsed.Milliseconds())
	}

	return nil
}

// loadConfig merges defaults, the config file and explicitly set flags,
// in increasing order of precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("chunk-lines") {
		cfg.ChunkLines = chunkLines
	}
	if flags.Changed("match-timeout") {
		timeout, err := time.ParseDuration(matchTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid --match-timeout %q: %w", matchTimeout, err)
		}
		cfg.MatchTimeout = timeout
	}
	if flags.Changed("format") {
		cfg.Format = outputFormat
	}
	if flags.Changed("color") {
		cfg.Color = colorMode
	}
	if flags.Changed("include-hidden") {
		cfg.IncludeHidden = includeHidden
	}
	if flags.Changed("no-ignore") {
		cfg.RespectGitignore = !noIgnore
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printHandler writes results through the selected writer and per-file
// failures as "Err at" lines.
type printHandler struct {
	writer report.Writer
	errOut io.Writer
	color  bool
}

func (h *printHandler) HandleResult(result types.FileResult) error {
	return h.writer.Write(result)
}

func (h *printHandler) HandleError(path string, err error) {
	report.ErrorLine(h.errOut, path, err, h.color)
}
