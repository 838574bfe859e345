package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"restitch/internal/batch"
	"restitch/internal/config"
	"restitch/internal/history"
	"restitch/internal/logging"
)

type combineFlags struct {
	input   string
	output  string
	pattern string
	file    string
}

func runCombine(cmd *cobra.Command, ctx *commandContext, flags combineFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	inputDir := cfg.Paths.InputDir
	if flags.input != "" {
		if inputDir, err = config.ExpandPath(flags.input); err != nil {
			return err
		}
	}
	outputDir := cfg.Paths.OutputDir
	if flags.output != "" {
		if outputDir, err = config.ExpandPath(flags.output); err != nil {
			return err
		}
	}
	pattern := cfg.Combine.Pattern
	if flags.pattern != "" {
		pattern = flags.pattern
	}

	runLog := fmt.Sprintf("restitch-%s.log", time.Now().UTC().Format("20060102T150405"))
	logger, err := logging.NewFromConfig(cfg, runLog)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var opts []batch.Option
	if cfg.History.Enabled {
		store, err := history.Open(cfg.Paths.HistoryDB)
		if err != nil {
			logger.Warn("history recording disabled", logging.Error(err))
		} else {
			defer store.Close()
			opts = append(opts, batch.WithHistory(store))
		}
	}

	if flags.file != "" {
		return runSingle(cmd, cfg, logger, opts, flags.file, outputDir)
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stdout.Fd()) {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("combining"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
		)
		opts = append(opts, batch.WithFileHook(func(batch.FileResult) {
			_ = bar.Add(1)
		}))
	}

	driver := batch.New(cfg, logger, opts...)
	summary, err := driver.ProcessAll(cmd.Context(), inputDir, outputDir, pattern)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Found", "Processed", "Failed", "Elapsed"},
		[][]string{{
			strconv.Itoa(summary.Found),
			strconv.Itoa(summary.Processed),
			strconv.Itoa(summary.Failed),
			summary.Elapsed.Round(time.Millisecond).String(),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Found)
	}
	return nil
}

func runSingle(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts []batch.Option, file, outputDir string) error {
	path, err := config.ExpandPath(file)
	if err != nil {
		return err
	}

	driver := batch.New(cfg, logger, opts...)
	result, err := driver.ProcessOne(cmd.Context(), path, outputDir)
	if err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("combine %s: %w", file, result.Err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Combined %d strips into %s (%dx%d)\n",
		result.Decoded, result.Output, result.Width, result.Height)
	if result.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d strips that failed to decode\n", result.Skipped)
	}
	return nil
}
