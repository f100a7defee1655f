package converter

import (
	"context"
	"strconv"
	"strings"
)

// Nc2nc drives the nc2nc copy tool, which chooses chunking better for some
// access patterns. It cannot convert the unlimited dimension, so
// Request.Limited is ignored.
type Nc2nc struct {
	timeBinary string
	binary     string
	exec       Executor
}

// NewNc2nc constructs the nc2nc strategy.
func NewNc2nc(timeBinary, binary string) *Nc2nc {
	return &Nc2nc{
		timeBinary: strings.TrimSpace(timeBinary),
		binary:     strings.TrimSpace(binary),
		exec:       commandExecutor{},
	}
}

// NewNc2ncWithExecutor allows injecting a custom executor for testing.
func NewNc2ncWithExecutor(timeBinary, binary string, exec Executor) *Nc2nc {
	c := NewNc2nc(timeBinary, binary)
	if exec != nil {
		c.exec = exec
	}
	return c
}

func (c *Nc2nc) Name() string { return "nc2nc" }

// Convert runs nc2nc under the timing wrapper.
func (c *Nc2nc) Convert(ctx context.Context, req Request) (Result, error) {
	args := []string{"-d", strconv.Itoa(req.Level)}
	if !req.Shuffle {
		args = append(args, "-n")
	}
	if req.Chunking != "" {
		args = append(args, "-c", req.Chunking)
	}
	args = append(args, req.Infile, req.Outfile)
	return runTimed(ctx, c.exec, c.timeBinary, c.binary, args, req)
}
