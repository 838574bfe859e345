package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"restitch/internal/config"
	"restitch/internal/history"
	"restitch/internal/imaging"
	"restitch/internal/logging"
	"restitch/internal/preflight"
	"restitch/internal/strips"
)

const lockFileName = ".restitch.lock"

// Driver runs the combine pipeline over source files.
type Driver struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *history.Store
	reporter strips.Reporter
	fileHook func(FileResult)
}

// Option customizes a Driver.
type Option func(*Driver)

// WithHistory records every processed file in the given store.
func WithHistory(store *history.Store) Option {
	return func(d *Driver) { d.store = store }
}

// WithReporter overrides the default per-strip log reporter.
func WithReporter(reporter strips.Reporter) Option {
	return func(d *Driver) { d.reporter = reporter }
}

// WithFileHook registers a callback invoked after each file finishes,
// success or failure.
func WithFileHook(hook func(FileResult)) Option {
	return func(d *Driver) { d.fileHook = hook }
}

// New builds a Driver. A nil logger falls back to the no-op logger.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "batch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FileResult is the outcome of one source file.
type FileResult struct {
	Source  string
	Output  string
	Total   int // strips found in the source
	Decoded int
	Skipped int
	Width   int
	Height  int
	Err     error
}

// Failed reports whether the file produced no output.
func (r FileResult) Failed() bool { return r.Err != nil }

// Summary aggregates one batch run.
type Summary struct {
	RunID     string
	Found     int
	Processed int
	Failed    int
	Elapsed   time.Duration
}

// ProcessAll combines every file in inputDir matching pattern, writing
// <base>.jpg into outputDir. Both directories are created when absent.
// Per-file failures are tallied, never propagated; the returned error is
// reserved for conditions that abort the whole run (directory setup, lock
// contention, a bad glob pattern, context cancellation).
func (d *Driver) ProcessAll(ctx context.Context, inputDir, outputDir, pattern string) (Summary, error) {
	runID := uuid.NewString()
	logger := d.logger.With(logging.String("run_id", runID))
	started := time.Now()

	for _, dir := range []string{inputDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if _, err := preflight.CheckDirectories(map[string]string{
		"input directory":  inputDir,
		"output directory": outputDir,
	}); err != nil {
		return Summary{}, err
	}

	lock := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("output directory %s is in use by another run", outputDir)
	}
	defer func() { _ = lock.Unlock() }()

	matches, err := filepath.Glob(filepath.Join(inputDir, pattern))
	if err != nil {
		return Summary{}, fmt.Errorf("match pattern %q: %w", pattern, err)
	}
	sortPaths(matches)

	summary := Summary{RunID: runID, Found: len(matches)}
	if len(matches) == 0 {
		logger.Warn("no files matched",
			logging.String("input_dir", inputDir),
			logging.String("pattern", pattern))
		summary.Elapsed = time.Since(started)
		return summary, nil
	}

	logger.Info("batch started",
		logging.Int("files", len(matches)),
		logging.String("input_dir", inputDir),
		logging.String("output_dir", outputDir))

	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(started)
			return summary, err
		}
		outPath := filepath.Join(outputDir, baseWithoutExt(path)+".jpg")
		result := d.processFile(logger, path, outPath)
		d.finish(ctx, runID, logger, result)
		if result.Failed() {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}

	summary.Elapsed = time.Since(started)
	logger.Info("batch finished",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// ProcessOne combines a single source file, writing
// combined_<base>.jpg into outputDir.
func (d *Driver) ProcessOne(ctx context.Context, inputFile, outputDir string) (FileResult, error) {
	runID := uuid.NewString()
	logger := d.logger.With(logging.String("run_id", runID))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return FileResult{}, fmt.Errorf("create directory %q: %w", outputDir, err)
	}

	outPath := filepath.Join(outputDir, "combined_"+baseWithoutExt(inputFile)+".jpg")
	result := d.processFile(logger, inputFile, outPath)
	d.finish(ctx, runID, logger, result)
	return result, nil
}

func (d *Driver) processFile(logger *slog.Logger, path, outPath string) FileResult {
	result := FileResult{Source: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read source: %w", err)
		return result
	}
	text := string(data)
	format := strips.DetectFormat(text)

	batch, err := strips.Load(text, format)
	if err != nil {
		// Malformed JSON collapses to "nothing to process" but stays
		// distinguishable in the recorded error.
		result.Err = err
		return result
	}
	result.Total = len(batch)

	fileLogger := logger.With(logging.String("file", filepath.Base(path)))
	fileLogger.Debug("loaded strip batch",
		logging.String("format", format.String()),
		logging.Int("strips", len(batch)))

	reporter := d.reporter
	if reporter == nil {
		reporter = &logReporter{logger: fileLogger}
	}

	composite, err := strips.Combine(batch, reporter)
	if err != nil {
		if errors.Is(err, strips.ErrNoStrips) && len(batch) == 0 {
			result.Err = fmt.Errorf("no strip data found: %w", err)
		} else {
			result.Err = err
		}
		return result
	}
	result.Decoded = composite.Decoded
	result.Skipped = composite.Skipped
	result.Width = composite.Width()
	result.Height = composite.Height()

	if err := imaging.Write(outPath, composite.Image, d.cfg.Combine.JPEGQuality); err != nil {
		result.Err = err
		return result
	}
	result.Output = outPath
	return result
}

func (d *Driver) finish(ctx context.Context, runID string, logger *slog.Logger, result FileResult) {
	base := filepath.Base(result.Source)
	if result.Failed() {
		logger.Error("file failed", logging.String("file", base), logging.Error(result.Err))
	} else {
		logger.Info("file combined",
			logging.String("file", base),
			logging.Int("strips", result.Decoded),
			logging.Int("skipped", result.Skipped),
			logging.Int("width", result.Width),
			logging.Int("height", result.Height),
			logging.String("output", result.Output))
	}

	if d.store != nil {
		rec := &history.Record{
			RunID:         runID,
			SourcePath:    result.Source,
			OutputPath:    result.Output,
			StripsTotal:   result.Total,
			StripsDecoded: result.Decoded,
			Width:         result.Width,
			Height:        result.Height,
			Status:        history.StatusCompleted,
		}
		if result.Failed() {
			rec.Status = history.StatusFailed
			rec.ErrorMessage = result.Err.Error()
		}
		if err := d.store.Record(ctx, rec); err != nil {
			logger.Warn("record history", logging.Error(err))
		}
	}

	if d.fileHook != nil {
		d.fileHook(result)
	}
}

type logReporter struct {
	logger *slog.Logger
}

func (r *logReporter) StripDecoded(index, width, height int) {
	r.logger.Debug("strip decoded",
		logging.Int("strip", index+1),
		logging.Int("width", width),
		logging.Int("height", height))
}

func (r *logReporter) StripSkipped(index int, err error) {
	r.logger.Warn("strip skipped", logging.Int("strip", index+1), logging.Error(err))
}
