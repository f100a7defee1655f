// Package chunking computes chunk shapes for gridded variables that give
// approximately balanced access to 1D and 2D subsets, the shape nccopy and
// nc2nc accept through their -c option.
package chunking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultValSize is the size of one data value in bytes (float32).
	DefaultValSize = 4
	// DefaultChunkSize is the target uncompressed chunk size in bytes,
	// typically a disk block size.
	DefaultChunkSize = 4096
)

// ChunkShape returns chunk lengths for a variable of the given dimension
// sizes. The number of chunks read for any 1D or 2D subset is approximately
// equal, and the uncompressed chunk stays at or under chunkSize where
// possible. Every returned length is at least 1 and at most the dimension
// size.
func ChunkShape(varShape []int, valSize, chunkSize int) ([]int, error) {
	rank := len(varShape)
	if rank == 0 {
		return nil, fmt.Errorf("variable shape required")
	}
	for i, dim := range varShape {
		if dim < 1 {
			return nil, fmt.Errorf("dimension %d has size %d, want >= 1", i, dim)
		}
	}
	if valSize < 1 {
		return nil, fmt.Errorf("value size %d, want >= 1", valSize)
	}
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size %d, want >= 1", chunkSize)
	}

	chunkVals := float64(chunkSize) / float64(valSize)
	numChunks := float64(numVals(varShape)) / chunkVals
	if numChunks <= 1 {
		// The whole variable fits in one chunk.
		return append([]int{}, varShape...), nil
	}
	axisChunks := math.Pow(numChunks, 1/float64(rank))

	// First estimate: the record dimension is split across axisChunks^2
	// chunks, the others across axisChunks each. Dimensions too small to
	// split get a chunk length of 1, and the deficit is spread over the
	// remaining dimensions.
	floor := make([]float64, 0, rank)
	if float64(varShape[0])/(axisChunks*axisChunks) < 1 {
		floor = append(floor, 1)
		axisChunks /= math.Sqrt(float64(varShape[0]) / (axisChunks * axisChunks))
	} else {
		floor = append(floor, math.Floor(float64(varShape[0])/(axisChunks*axisChunks)))
	}
	prod := 1.0
	for i := 1; i < rank; i++ {
		if float64(varShape[i])/axisChunks < 1 {
			prod *= axisChunks / float64(varShape[i])
		}
	}
	for i := 1; i < rank; i++ {
		if float64(varShape[i])/axisChunks < 1 {
			floor = append(floor, 1)
		} else {
			floor = append(floor, math.Floor(prod*float64(varShape[i])/axisChunks))
		}
	}

	// The floor shape usually undershoots chunkSize while adding 1 to every
	// dimension overshoots it. Try all 2^rank combinations of +1 and keep
	// the candidate closest to chunkSize without exceeding it.
	best := make([]int, rank)
	for i := range floor {
		best[i] = clamp(int(floor[i]), 1, varShape[i])
	}
	bestSize := 0
	candidate := make([]int, rank)
	for bits := 0; bits < 1<<rank; bits++ {
		for i := range candidate {
			candidate[i] = clamp(int(floor[i])+(bits>>i)&1, 1, varShape[i])
		}
		size := valSize * numVals(candidate)
		if size > bestSize && size <= chunkSize {
			bestSize = size
			copy(best, candidate)
		}
	}
	return best, nil
}

// ParseShape parses a comma-separated list of dimension sizes.
func ParseShape(spec string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(spec), ",")
	shape := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("dimension size %q: %w", part, err)
		}
		shape = append(shape, value)
	}
	return shape, nil
}

// FormatSpec renders a chunk shape as an nccopy -c chunking specification,
// pairing dimension names with chunk lengths. With no names it returns the
// bare lengths joined by commas.
func FormatSpec(names []string, shape []int) string {
	parts := make([]string, len(shape))
	for i, length := range shape {
		if i < len(names) && names[i] != "" {
			parts[i] = names[i] + "/" + strconv.Itoa(length)
		} else {
			parts[i] = strconv.Itoa(length)
		}
	}
	return strings.Join(parts, ",")
}

func numVals(shape []int) int {
	total := 1
	for _, dim := range shape {
		total *= dim
	}
	return total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
