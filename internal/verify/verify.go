// Package verify compares a compressed output against its original using the
// external cdo structural diff. The comparison is fail-closed: unless the
// tool runs cleanly and reports zero differing records, the files are
// treated as not equal.
package verify

import (
	"context"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"nccompress/internal/logging"
)

// Executor abstracts command execution for the checker.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Checker runs the structural diff tool.
type Checker struct {
	binary string
	exec   Executor
	logger *slog.Logger
}

// NewChecker constructs a Checker for the provided cdo binary.
func NewChecker(binary string, logger *slog.Logger) *Checker {
	return newChecker(binary, commandExecutor{}, logger)
}

// NewCheckerWithExecutor allows injecting a custom executor for testing.
func NewCheckerWithExecutor(binary string, exec Executor, logger *slog.Logger) *Checker {
	if exec == nil {
		exec = commandExecutor{}
	}
	return newChecker(binary, exec, logger)
}

func newChecker(binary string, exec Executor, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Checker{binary: strings.TrimSpace(binary), exec: exec, logger: logger}
}

// cdo diffn summarizes as e.g. "  0 of 365 records differ".
var recordsDifferPattern = regexp.MustCompile(`(\d+)\s+of\s+\d+\s+records differ`)

// Equal reports whether the two files hold the same data. Any execution
// failure or unexplained diff output counts as a mismatch.
func (c *Checker) Equal(ctx context.Context, a, b string) bool {
	if c.binary == "" {
		c.logger.Warn("diff tool not configured, treating files as different")
		return false
	}

	output, err := c.exec.Run(ctx, c.binary, []string{"diffn", a, b})
	if err != nil {
		c.logger.Debug("diff tool failed",
			logging.String("a", a),
			logging.String("b", b),
			logging.Error(err))
		return false
	}

	text := strings.TrimSpace(string(output))
	if text == "" {
		return true
	}
	if match := recordsDifferPattern.FindStringSubmatch(text); match != nil {
		differ, err := strconv.Atoi(match[1])
		return err == nil && differ == 0
	}
	// Output we do not understand counts as a difference.
	c.logger.Debug("unrecognized diff output", logging.String("output", text))
	return false
}
