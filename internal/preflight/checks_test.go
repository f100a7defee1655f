package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"nccompress/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := CheckDirectoryAccess("target", dir)
	if !result.Passed {
		t.Fatalf("writable temp dir failed check: %+v", result)
	}

	result = CheckDirectoryAccess("target", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatal("missing directory passed check")
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result = CheckDirectoryAccess("target", file)
	if result.Passed {
		t.Fatal("regular file passed directory check")
	}
}

func TestRequirementsSelectConverter(t *testing.T) {
	cfg := config.Default()

	names := func(useNccopy, paranoid bool) map[string]bool {
		found := make(map[string]bool)
		for _, req := range Requirements(&cfg, useNccopy, paranoid) {
			found[req.Name] = req.Optional
		}
		return found
	}

	withNccopy := names(true, false)
	if _, ok := withNccopy["nccopy"]; !ok {
		t.Error("nccopy missing from requirements")
	}
	if _, ok := withNccopy["nc2nc"]; ok {
		t.Error("nc2nc should not be required when nccopy is selected")
	}
	if optional := withNccopy["cdo"]; !optional {
		t.Error("cdo should be optional without paranoid")
	}

	paranoid := names(false, true)
	if optional := paranoid["cdo"]; optional {
		t.Error("cdo should be required with paranoid")
	}
	if _, ok := paranoid["nc2nc"]; !ok {
		t.Error("nc2nc missing from requirements")
	}
}
