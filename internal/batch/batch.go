package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"nccompress/internal/converter"
	"nccompress/internal/fileutil"
	"nccompress/internal/logging"
	"nccompress/internal/ncfile"
	"nccompress/internal/preflight"
)

// lockFileName is the advisory lock kept inside the scratch directory for
// the duration of a batch, so two runs cannot interleave in one directory.
const lockFileName = ".nccompress.lock"

// Options holds the per-run knobs of the coordinator.
type Options struct {
	TmpDir      string
	Level       int
	Shuffle     bool
	Chunking    string
	Limited     bool
	Overwrite   bool
	MaxCompress int
	Paranoid    bool
	Force       bool
	Clean       bool
	Verbose     bool
}

// Classifier answers whether a file already carries compression.
type Classifier interface {
	IsCompressed(ctx context.Context, path string) (bool, error)
}

// Checker compares a converted file against its original.
type Checker interface {
	Equal(ctx context.Context, a, b string) bool
}

// Summary accumulates per-directory statistics. Counters cover successful
// conversions only; everything on the skip list was left alone.
type Summary struct {
	Dir        string
	TotalFiles int
	OrigBytes  int64
	CompBytes  int64
	Skipped    []string
	Outcomes   []Outcome
	// ScratchRetained is set when the scratch directory could not be
	// removed, usually because outputs stayed behind (no overwrite).
	ScratchRetained bool
}

// SpaceSaved returns the byte difference between originals and outputs.
// Negative when compression made things worse.
func (s *Summary) SpaceSaved() int64 {
	return s.OrigBytes - s.CompBytes
}

// AverageRatio returns the aggregate compression ratio, or 0 when nothing
// was compressed.
func (s *Summary) AverageRatio() float64 {
	if s.CompBytes == 0 {
		return 0
	}
	return float64(s.OrigBytes) / float64(s.CompBytes)
}

// Coordinator drives the per-directory compress/verify/commit workflow,
// strictly sequentially: one file and one external process at a time.
type Coordinator struct {
	opts      Options
	converter converter.Converter
	inspector Classifier
	checker   Checker
	logger    *slog.Logger
	isValid   func(string) bool
}

// New constructs a Coordinator. checker may be nil when Paranoid is off.
func New(opts Options, conv converter.Converter, inspector Classifier, checker Checker, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		opts:      opts,
		converter: conv,
		inspector: inspector,
		checker:   checker,
		logger:    logger,
		isValid:   ncfile.IsValid,
	}
}

// Process runs the batch for one directory. Per-file failures end up on the
// summary's skip list; only directory-level problems (permissions, a
// concurrent run) are returned as errors.
func (c *Coordinator) Process(ctx context.Context, dir string, files []string) (*Summary, error) {
	if result := preflight.CheckDirectoryAccess("directory", dir); !result.Passed {
		return nil, fmt.Errorf("directory not usable: %s", result.Detail)
	}

	outdir := filepath.Join(dir, c.opts.TmpDir)
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	lockPath := filepath.Join(outdir, lockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock scratch directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another nccompress run is active in %s", dir)
	}

	if c.opts.Clean {
		c.cleanScratch(outdir)
	}

	summary := &Summary{Dir: dir}
	for _, file := range files {
		outcome := c.processFile(ctx, dir, outdir, file)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.SkipListed() {
			summary.Skipped = append(summary.Skipped, file)
			continue
		}
		if outcome.Kind == OutcomeCompressed {
			summary.TotalFiles++
			summary.OrigBytes += outcome.Result.OrigSize
			summary.CompBytes += outcome.Result.CompSize
		}
	}

	_ = lock.Unlock()
	_ = os.Remove(lockPath)
	if err := os.Remove(outdir); err != nil {
		c.logger.Warn("failed to remove scratch directory",
			logging.String("dir", outdir), logging.Error(err))
		summary.ScratchRetained = true
	}
	return summary, nil
}

// cleanScratch removes stale regular files left by a prior differently-scoped
// run. Directories inside the scratch area and our own lock are left alone.
func (c *Coordinator) cleanScratch(outdir string) {
	entries, err := os.ReadDir(outdir)
	if err != nil {
		c.logger.Warn("cannot clean scratch directory",
			logging.String("dir", outdir), logging.Error(err))
		return
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name() == lockFileName {
			continue
		}
		path := filepath.Join(outdir, entry.Name())
		if err := os.Remove(path); err != nil {
			c.logger.Warn("cannot remove stale scratch file",
				logging.String("file", path), logging.Error(err))
			continue
		}
		c.logger.Debug("removed stale scratch file", logging.String("file", path))
	}
}

func (c *Coordinator) processFile(ctx context.Context, dir, outdir, file string) Outcome {
	infile := filepath.Join(dir, file)
	outfile := filepath.Join(outdir, file)

	if !c.isValid(infile) {
		c.logger.Debug("not a netCDF file, skipping", logging.String("file", infile))
		return Outcome{File: file, Kind: OutcomeSkippedInvalid}
	}

	if !c.opts.Force {
		compressed, err := c.inspector.IsCompressed(ctx, infile)
		switch {
		case err != nil:
			// Inspection trouble is not fatal; the file simply gets
			// compressed again.
			c.logger.Warn("could not inspect compression state",
				logging.String("file", infile), logging.Error(err))
		case compressed:
			c.logger.Debug("already compressed, skipping", logging.String("file", infile))
			return Outcome{File: file, Kind: OutcomeSkippedCompressed}
		}
	}

	result, err := c.converter.Convert(ctx, converter.Request{
		Infile:   infile,
		Outfile:  outfile,
		Level:    c.opts.Level,
		Shuffle:  c.opts.Shuffle,
		Chunking: c.opts.Chunking,
		Limited:  c.opts.Limited,
	})
	if err != nil {
		c.logger.Warn("conversion failed, original untouched",
			logging.String("file", infile), logging.Error(err))
		return Outcome{File: file, Kind: OutcomeFailed, Err: err}
	}

	if c.opts.Paranoid {
		if c.checker == nil || !c.checker.Equal(ctx, infile, result.Outfile) {
			_ = os.Remove(result.Outfile)
			c.logger.Warn("output does not match original, discarded",
				logging.String("file", infile))
			return Outcome{File: file, Kind: OutcomeVerifyMismatch, Result: &result}
		}
	}

	if c.opts.Overwrite {
		if c.opts.MaxCompress != 0 && result.OrigSize > int64(c.opts.MaxCompress)*result.CompSize {
			c.logger.Warn("compression ratio suspiciously high, original not overwritten",
				logging.String("file", file),
				logging.Float64("ratio", result.Ratio()),
				logging.Int("maxcompress", c.opts.MaxCompress))
			return Outcome{File: file, Kind: OutcomeSuspiciousRatio, Result: &result}
		}
		if result.CompSize > result.OrigSize {
			// The ratio guard only fires on suspiciously good compression;
			// poor compression still commits. Make that visible.
			c.logger.Warn("compressed output is larger than the original",
				logging.String("file", file),
				logging.Int64("orig_size", result.OrigSize),
				logging.Int64("comp_size", result.CompSize))
		}
		if err := fileutil.ReplaceFile(result.Outfile, infile); err != nil {
			c.logger.Warn("could not move output over original",
				logging.String("file", infile), logging.Error(err))
			return Outcome{File: file, Kind: OutcomeFailed, Err: err}
		}
	}

	c.logFileResult(file, result)
	return Outcome{File: file, Kind: OutcomeCompressed, Result: &result}
}

func (c *Coordinator) logFileResult(file string, result converter.Result) {
	attrs := []any{
		logging.String("file", file),
		logging.Int("dlevel", result.Level),
		logging.Bool("shuffle", result.Shuffle),
		logging.Float64("elapsed_s", result.Times.Elapsed),
		logging.Float64("kernel_s", result.Times.Kernel),
		logging.Float64("user_s", result.Times.User),
		logging.Int64("max_rss_kb", result.Times.MaxRSSKB),
		logging.Int64("comp_size", result.CompSize),
		logging.Float64("ratio", result.Ratio()),
	}
	message := "compressed"
	if result.SkippedExisting {
		message = "output already existed"
	}
	if c.opts.Verbose {
		c.logger.Info(message, attrs...)
	} else {
		c.logger.Debug(message, attrs...)
	}
}
