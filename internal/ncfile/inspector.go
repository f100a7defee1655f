package ncfile

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Executor abstracts command execution for the inspector.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.Output()
}

// Inspector answers whether a netCDF-4 file already carries deflate
// compression by reading the per-variable storage metadata that ncdump -sh
// exposes as special _DeflateLevel attributes.
type Inspector struct {
	binary string
	exec   Executor
}

// NewInspector constructs an Inspector for the provided ncdump binary.
func NewInspector(binary string) *Inspector {
	return newInspector(strings.TrimSpace(binary), commandExecutor{})
}

// NewInspectorWithExecutor allows injecting a custom executor for testing.
func NewInspectorWithExecutor(binary string, exec Executor) *Inspector {
	if exec == nil {
		exec = commandExecutor{}
	}
	return newInspector(strings.TrimSpace(binary), exec)
}

func newInspector(binary string, exec Executor) *Inspector {
	return &Inspector{binary: binary, exec: exec}
}

var deflateLevelPattern = regexp.MustCompile(`_DeflateLevel\s*=\s*(\d+)`)

// IsCompressed reports whether any variable in the file carries a positive
// deflate level. Classic-format files cannot carry filter metadata and are
// always reported uncompressed.
func (i *Inspector) IsCompressed(ctx context.Context, path string) (bool, error) {
	switch DetectKind(path) {
	case KindClassic:
		return false, nil
	case KindNetCDF4:
	default:
		return false, fmt.Errorf("not a netCDF file: %s", path)
	}

	if i.binary == "" {
		return false, errors.New("ncdump binary not configured")
	}

	output, err := i.exec.Run(ctx, i.binary, []string{"-sh", path})
	if err != nil {
		return false, fmt.Errorf("inspect %s: %w", path, err)
	}

	for _, match := range deflateLevelPattern.FindAllSubmatch(output, -1) {
		level, err := strconv.Atoi(string(match[1]))
		if err != nil {
			continue
		}
		if level > 0 {
			return true, nil
		}
	}
	return false, nil
}
