package converter

import (
	"context"
	"strconv"
	"strings"
)

// Nccopy drives the stock nccopy utility shipped with the netCDF library.
type Nccopy struct {
	timeBinary string
	binary     string
	exec       Executor
}

// NewNccopy constructs the nccopy strategy.
func NewNccopy(timeBinary, binary string) *Nccopy {
	return &Nccopy{
		timeBinary: strings.TrimSpace(timeBinary),
		binary:     strings.TrimSpace(binary),
		exec:       commandExecutor{},
	}
}

// NewNccopyWithExecutor allows injecting a custom executor for testing.
func NewNccopyWithExecutor(timeBinary, binary string, exec Executor) *Nccopy {
	c := NewNccopy(timeBinary, binary)
	if exec != nil {
		c.exec = exec
	}
	return c
}

func (c *Nccopy) Name() string { return "nccopy" }

// Convert runs nccopy under the timing wrapper.
func (c *Nccopy) Convert(ctx context.Context, req Request) (Result, error) {
	args := []string{"-d", strconv.Itoa(req.Level)}
	if req.Shuffle {
		args = append(args, "-s")
	}
	if req.Limited {
		args = append(args, "-u")
	}
	if req.Chunking != "" {
		args = append(args, "-c", req.Chunking)
	}
	args = append(args, req.Infile, req.Outfile)
	return runTimed(ctx, c.exec, c.timeBinary, c.binary, args, req)
}
