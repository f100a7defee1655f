package chunking

import (
	"reflect"
	"testing"
)

func TestChunkShapeBounds(t *testing.T) {
	cases := [][]int{
		{744, 90, 144},
		{8760, 180, 360},
		{100, 100},
		{31, 2, 720, 1440},
		{1000000},
	}
	for _, shape := range cases {
		chunks, err := ChunkShape(shape, DefaultValSize, DefaultChunkSize)
		if err != nil {
			t.Fatalf("ChunkShape(%v): %v", shape, err)
		}
		if len(chunks) != len(shape) {
			t.Fatalf("ChunkShape(%v) rank %d, want %d", shape, len(chunks), len(shape))
		}
		vals := 1
		for i, length := range chunks {
			if length < 1 || length > shape[i] {
				t.Errorf("ChunkShape(%v)[%d] = %d, out of [1,%d]", shape, i, length, shape[i])
			}
			vals *= length
		}
		if vals*DefaultValSize > DefaultChunkSize {
			t.Errorf("ChunkShape(%v) = %v: %d bytes exceeds target %d",
				shape, chunks, vals*DefaultValSize, DefaultChunkSize)
		}
	}
}

func TestChunkShapeSmallVariableIsWholeChunk(t *testing.T) {
	shape := []int{10, 10}
	chunks, err := ChunkShape(shape, 4, 4096)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(chunks, shape) {
		t.Fatalf("small variable should be a single chunk: got %v", chunks)
	}
}

func TestChunkShapeRejectsBadInput(t *testing.T) {
	if _, err := ChunkShape(nil, 4, 4096); err == nil {
		t.Error("empty shape accepted")
	}
	if _, err := ChunkShape([]int{0, 5}, 4, 4096); err == nil {
		t.Error("zero dimension accepted")
	}
	if _, err := ChunkShape([]int{5}, 0, 4096); err == nil {
		t.Error("zero value size accepted")
	}
	if _, err := ChunkShape([]int{5}, 4, 0); err == nil {
		t.Error("zero chunk size accepted")
	}
}

func TestParseShape(t *testing.T) {
	shape, err := ParseShape("744, 90,144")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(shape, []int{744, 90, 144}) {
		t.Fatalf("shape = %v", shape)
	}
	if _, err := ParseShape("12,abc"); err == nil {
		t.Fatal("expected error for junk dimension")
	}
}

func TestFormatSpec(t *testing.T) {
	spec := FormatSpec([]string{"time", "lat", "lon"}, []int{12, 30, 48})
	if spec != "time/12,lat/30,lon/48" {
		t.Fatalf("spec = %q", spec)
	}
	bare := FormatSpec(nil, []int{12, 30})
	if bare != "12,30" {
		t.Fatalf("bare spec = %q", bare)
	}
}
