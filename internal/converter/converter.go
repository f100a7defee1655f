package converter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// SentinelTime marks a conversion that was skipped because the destination
// already existed; no tool was invoked so no timing data exists.
const SentinelTime = -1

// Request describes a single file conversion.
type Request struct {
	Infile  string
	Outfile string
	// Level is the deflate level, 0 (off) to 9 (maximum).
	Level   int
	Shuffle bool
	// Chunking is an optional chunking specification passed through to the
	// tool verbatim.
	Chunking string
	// Limited converts the unlimited dimension to fixed size. Only nccopy
	// supports this.
	Limited bool
}

// Times holds the resource figures reported by the timing wrapper.
type Times struct {
	Elapsed  float64
	Kernel   float64
	User     float64
	MaxRSSKB int64
}

// Result records one conversion attempt. It is consumed immediately for
// reporting and never persisted.
type Result struct {
	Outfile  string
	Times    Times
	CompSize int64
	OrigSize int64
	Level    int
	Shuffle  bool
	// SkippedExisting is set when the destination already existed and the
	// converter was not invoked.
	SkippedExisting bool
}

// Ratio returns original size over compressed size, or 0 when the output is
// empty.
func (r Result) Ratio() float64 {
	if r.CompSize == 0 {
		return 0
	}
	return float64(r.OrigSize) / float64(r.CompSize)
}

// Converter runs one external compression tool. Implementations share the
// same contract: an existing destination short-circuits with sentinel
// timings, and a tool failure yields no partial result.
type Converter interface {
	Name() string
	Convert(ctx context.Context, req Request) (Result, error)
}

// Executor abstracts command execution for testability. Run returns the
// combined stdout and stderr of the command; the timing wrapper writes its
// report to stderr.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.Infile) == "" {
		return fmt.Errorf("input path required")
	}
	if strings.TrimSpace(req.Outfile) == "" {
		return fmt.Errorf("output path required")
	}
	if req.Level < 0 || req.Level > 9 {
		return fmt.Errorf("deflate level %d out of range 0-9", req.Level)
	}
	return nil
}

// runTimed wraps a converter invocation in the timing wrapper and assembles
// the result record. Idempotent re-runs never overwrite a previous output:
// an existing destination returns immediately with sentinel timings.
func runTimed(ctx context.Context, exec Executor, timeBinary, binary string, args []string, req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	if info, err := os.Stat(req.Outfile); err == nil && info.Mode().IsRegular() {
		origInfo, err := os.Stat(req.Infile)
		if err != nil {
			return Result{}, fmt.Errorf("stat input: %w", err)
		}
		return Result{
			Outfile:         req.Outfile,
			Times:           Times{SentinelTime, SentinelTime, SentinelTime, SentinelTime},
			CompSize:        info.Size(),
			OrigSize:        origInfo.Size(),
			Level:           req.Level,
			Shuffle:         req.Shuffle,
			SkippedExisting: true,
		}, nil
	}

	wrapped := append([]string{"-f", timeFormat, binary}, args...)
	output, err := exec.Run(ctx, timeBinary, wrapped)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %w (%s)", binary, req.Infile, err, firstLine(output))
	}

	times, err := ParseTimes(output)
	if err != nil {
		return Result{}, fmt.Errorf("timing output from %s: %w", binary, err)
	}

	compInfo, err := os.Stat(req.Outfile)
	if err != nil {
		return Result{}, fmt.Errorf("stat output: %w", err)
	}
	origInfo, err := os.Stat(req.Infile)
	if err != nil {
		return Result{}, fmt.Errorf("stat input: %w", err)
	}

	return Result{
		Outfile:  req.Outfile,
		Times:    times,
		CompSize: compInfo.Size(),
		OrigSize: origInfo.Size(),
		Level:    req.Level,
		Shuffle:  req.Shuffle,
	}, nil
}

func firstLine(output []byte) string {
	text := strings.TrimSpace(string(output))
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
