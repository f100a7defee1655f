package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// scriptedExecutor fakes the timing wrapper: it records the invocation,
// optionally creates the output file, and returns canned output.
type scriptedExecutor struct {
	output    []byte
	err       error
	writeFile string
	fileBody  []byte

	calls  int
	binary string
	args   []string
}

func (s *scriptedExecutor) Run(_ context.Context, binary string, args []string) ([]byte, error) {
	s.calls++
	s.binary = binary
	s.args = args
	if s.err == nil && s.writeFile != "" {
		if err := os.WriteFile(s.writeFile, s.fileBody, 0o644); err != nil {
			return nil, err
		}
	}
	return s.output, s.err
}

func testRequest(t *testing.T) Request {
	t.Helper()
	dir := t.TempDir()
	infile := filepath.Join(dir, "a.nc")
	if err := os.WriteFile(infile, make([]byte, 1000), 0o644); err != nil {
		t.Fatal(err)
	}
	return Request{
		Infile:  infile,
		Outfile: filepath.Join(dir, "out", "a.nc"),
		Level:   5,
		Shuffle: true,
	}
}

func TestNccopyConvert(t *testing.T) {
	req := testRequest(t)
	if err := os.Mkdir(filepath.Dir(req.Outfile), 0o755); err != nil {
		t.Fatal(err)
	}
	exec := &scriptedExecutor{
		output:    []byte("2.00 0.10 1.80 4096\n"),
		writeFile: req.Outfile,
		fileBody:  make([]byte, 100),
	}
	conv := NewNccopyWithExecutor("/usr/bin/time", "nccopy", exec)

	result, err := conv.Convert(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if exec.binary != "/usr/bin/time" {
		t.Errorf("binary = %q, want timing wrapper", exec.binary)
	}
	want := []string{"-f", "%e %S %U %M", "nccopy", "-d", "5", "-s", req.Infile, req.Outfile}
	if !reflect.DeepEqual(exec.args, want) {
		t.Errorf("args = %v, want %v", exec.args, want)
	}
	if result.OrigSize != 1000 || result.CompSize != 100 {
		t.Errorf("sizes = %d/%d, want 1000/100", result.OrigSize, result.CompSize)
	}
	if result.Times.Elapsed != 2.0 || result.Times.MaxRSSKB != 4096 {
		t.Errorf("times = %+v", result.Times)
	}
	if result.SkippedExisting {
		t.Error("fresh conversion flagged as skipped")
	}
	if got := result.Ratio(); got != 10 {
		t.Errorf("ratio = %v, want 10", got)
	}
}

func TestNccopyArgsVariants(t *testing.T) {
	req := testRequest(t)
	if err := os.Mkdir(filepath.Dir(req.Outfile), 0o755); err != nil {
		t.Fatal(err)
	}
	req.Shuffle = false
	req.Limited = true
	req.Chunking = "time/12,lat/90"

	exec := &scriptedExecutor{
		output:    []byte("0.1 0.0 0.1 512\n"),
		writeFile: req.Outfile,
		fileBody:  []byte("x"),
	}
	conv := NewNccopyWithExecutor("/usr/bin/time", "nccopy", exec)
	if _, err := conv.Convert(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	want := []string{"-f", "%e %S %U %M", "nccopy", "-d", "5", "-u", "-c", "time/12,lat/90", req.Infile, req.Outfile}
	if !reflect.DeepEqual(exec.args, want) {
		t.Errorf("args = %v, want %v", exec.args, want)
	}
}

func TestNc2ncArgs(t *testing.T) {
	req := testRequest(t)
	if err := os.Mkdir(filepath.Dir(req.Outfile), 0o755); err != nil {
		t.Fatal(err)
	}
	req.Shuffle = false

	exec := &scriptedExecutor{
		output:    []byte("0.1 0.0 0.1 512\n"),
		writeFile: req.Outfile,
		fileBody:  []byte("x"),
	}
	conv := NewNc2ncWithExecutor("/usr/bin/time", "nc2nc", exec)
	if _, err := conv.Convert(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	want := []string{"-f", "%e %S %U %M", "nc2nc", "-d", "5", "-n", req.Infile, req.Outfile}
	if !reflect.DeepEqual(exec.args, want) {
		t.Errorf("args = %v, want %v", exec.args, want)
	}
}

func TestConvertSkipsExistingDestination(t *testing.T) {
	req := testRequest(t)
	if err := os.Mkdir(filepath.Dir(req.Outfile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(req.Outfile, make([]byte, 250), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &scriptedExecutor{}
	conv := NewNccopyWithExecutor("/usr/bin/time", "nccopy", exec)

	result, err := conv.Convert(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if exec.calls != 0 {
		t.Fatalf("converter invoked %d times for existing destination", exec.calls)
	}
	if !result.SkippedExisting {
		t.Error("result should be flagged as skipped")
	}
	sentinel := Times{SentinelTime, SentinelTime, SentinelTime, SentinelTime}
	if result.Times != sentinel {
		t.Errorf("times = %+v, want sentinel values", result.Times)
	}
	if result.CompSize != 250 || result.OrigSize != 1000 {
		t.Errorf("sizes = %d/%d, want 250/1000", result.CompSize, result.OrigSize)
	}
}

func TestConvertPropagatesToolFailure(t *testing.T) {
	req := testRequest(t)
	if err := os.Mkdir(filepath.Dir(req.Outfile), 0o755); err != nil {
		t.Fatal(err)
	}
	exec := &scriptedExecutor{err: errors.New("exit status 1"), output: []byte("nccopy: NetCDF: HDF error")}
	conv := NewNccopyWithExecutor("/usr/bin/time", "nccopy", exec)

	if _, err := conv.Convert(context.Background(), req); err == nil {
		t.Fatal("expected error from failing tool")
	}
	if _, err := os.Stat(req.Outfile); !os.IsNotExist(err) {
		t.Error("no partial output expected")
	}
}

func TestConvertMalformedTimingOutput(t *testing.T) {
	req := testRequest(t)
	if err := os.Mkdir(filepath.Dir(req.Outfile), 0o755); err != nil {
		t.Fatal(err)
	}
	exec := &scriptedExecutor{
		output:    []byte("not a timing line\n"),
		writeFile: req.Outfile,
		fileBody:  []byte("x"),
	}
	conv := NewNccopyWithExecutor("/usr/bin/time", "nccopy", exec)

	_, err := conv.Convert(context.Background(), req)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestConvertRejectsBadLevel(t *testing.T) {
	req := testRequest(t)
	req.Level = 11
	conv := NewNccopyWithExecutor("/usr/bin/time", "nccopy", &scriptedExecutor{})
	if _, err := conv.Convert(context.Background(), req); err == nil {
		t.Fatal("expected error for out-of-range level")
	}
}
