package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"nccompress/internal/config"
)

func TestRootFlagDefaults(t *testing.T) {
	cmd := newRootCommand()
	flags := cmd.Flags()

	cases := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"dlevel", "d", "5"},
		{"noshuffle", "n", "false"},
		{"tmpdir", "t", "tmp.nc_compress"},
		{"verbose", "v", "false"},
		{"recursive", "r", "false"},
		{"overwrite", "o", "false"},
		{"maxcompress", "m", "10"},
		{"paranoid", "p", "false"},
		{"force", "f", "false"},
		{"clean", "c", "false"},
		{"limited", "l", "false"},
		{"chunking", "", ""},
		{"nccopy", "", "false"},
	}
	for _, tc := range cases {
		flag := flags.Lookup(tc.name)
		if flag == nil {
			t.Errorf("flag --%s not registered", tc.name)
			continue
		}
		if flag.Shorthand != tc.shorthand {
			t.Errorf("flag --%s shorthand = %q, want %q", tc.name, flag.Shorthand, tc.shorthand)
		}
		if flag.DefValue != tc.defValue {
			t.Errorf("flag --%s default = %q, want %q", tc.name, flag.DefValue, tc.defValue)
		}
	}
}

func parseTestFlags(t *testing.T, args []string) (*cobra.Command, *rootOptions) {
	t.Helper()
	opts := &rootOptions{}
	cmd := &cobra.Command{Use: "test"}
	bindRootFlags(cmd.Flags(), opts)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd, opts
}

func TestBuildBatchOptionsUsesConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Compress.Dlevel = 7
	cfg.Compress.Shuffle = false
	cfg.Compress.TmpDir = "scratch"
	cfg.Compress.MaxCompress = 25

	cmd, opts := parseTestFlags(t, nil)
	batchOpts := buildBatchOptions(cmd, &cfg, opts)

	if batchOpts.Level != 7 {
		t.Errorf("Level = %d, want config default 7", batchOpts.Level)
	}
	if batchOpts.Shuffle {
		t.Error("Shuffle should follow config default")
	}
	if batchOpts.TmpDir != "scratch" {
		t.Errorf("TmpDir = %q", batchOpts.TmpDir)
	}
	if batchOpts.MaxCompress != 25 {
		t.Errorf("MaxCompress = %d", batchOpts.MaxCompress)
	}
}

func TestBuildBatchOptionsFlagsWin(t *testing.T) {
	cfg := config.Default()
	cfg.Compress.Dlevel = 7

	cmd, opts := parseTestFlags(t, []string{"-d", "9", "-n", "-m", "0", "-t", "othertmp"})
	batchOpts := buildBatchOptions(cmd, &cfg, opts)

	if batchOpts.Level != 9 {
		t.Errorf("Level = %d, want 9", batchOpts.Level)
	}
	if batchOpts.Shuffle {
		t.Error("-n must disable shuffle")
	}
	if batchOpts.MaxCompress != 0 {
		t.Errorf("MaxCompress = %d, want 0", batchOpts.MaxCompress)
	}
	if batchOpts.TmpDir != "othertmp" {
		t.Errorf("TmpDir = %q, want othertmp", batchOpts.TmpDir)
	}
}

func TestRunCompressRequiresInputs(t *testing.T) {
	cfg := config.Default()
	cmd, opts := parseTestFlags(t, nil)
	cmd.SetOut(&bytes.Buffer{})
	if err := runCompress(cmd, &cfg, opts, nil); err == nil {
		t.Fatal("expected error without inputs")
	}
}

func TestChunksCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"chunks", "8760,180,360", "--names", "time,lat,lon"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	spec := strings.TrimSpace(out.String())
	if !strings.HasPrefix(spec, "time/") || !strings.Contains(spec, "lat/") || !strings.Contains(spec, "lon/") {
		t.Fatalf("unexpected chunk spec %q", spec)
	}
}

func TestChunksCommandRejectsJunk(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"chunks", "12,potato"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for junk dimensions")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", path})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("init output %q missing target path", out.String())
	}

	out.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", path, "config", "show"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[tools]") || !strings.Contains(out.String(), "nccopy") {
		t.Fatalf("show output missing tool section: %q", out.String())
	}
}

func TestBindRootFlagsPflagCompat(t *testing.T) {
	// The shorthand set must stay free of collisions.
	opts := &rootOptions{}
	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	bindRootFlags(flags, opts)

	seen := map[string]string{}
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Shorthand == "" {
			return
		}
		if other, ok := seen[f.Shorthand]; ok {
			t.Errorf("shorthand -%s used by both --%s and --%s", f.Shorthand, other, f.Name)
		}
		seen[f.Shorthand] = f.Name
	})
}
