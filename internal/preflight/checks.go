// Package preflight verifies the environment before a compression run:
// external tool availability and target directory permissions.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"nccompress/internal/config"
	"nccompress/internal/deps"
)

// Result captures the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable. Compressed outputs are staged and originals replaced in
// place, so write access to the containing directory is mandatory.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Requirements assembles the external tool list for the given run shape.
// The differ is only required when paranoid verification is requested, and
// only the selected converter is required.
func Requirements(cfg *config.Config, useNccopy, paranoid bool) []deps.Requirement {
	requirements := []deps.Requirement{
		{
			Name:        "time",
			Command:     cfg.Tools.Time,
			Description: "Timing wrapper for converter invocations",
		},
		{
			Name:        "ncdump",
			Command:     cfg.Tools.Ncdump,
			Description: "Required to detect already-compressed files",
		},
	}
	if useNccopy {
		requirements = append(requirements, deps.Requirement{
			Name:        "nccopy",
			Command:     cfg.Tools.Nccopy,
			Description: "netCDF copy/compress tool",
		})
	} else {
		requirements = append(requirements, deps.Requirement{
			Name:        "nc2nc",
			Command:     cfg.Tools.Nc2nc,
			Description: "netCDF copy/compress tool",
		})
	}
	requirements = append(requirements, deps.Requirement{
		Name:        "cdo",
		Command:     cfg.Tools.Cdo,
		Description: "Structural diff for paranoid verification",
		Optional:    !paranoid,
	})
	return requirements
}

// CheckTools evaluates all external tools for the given run shape.
func CheckTools(cfg *config.Config, useNccopy, paranoid bool) []deps.Status {
	return deps.CheckBinaries(Requirements(cfg, useNccopy, paranoid))
}

// AllRequirements lists every external tool regardless of run shape, for
// status reporting. Only the converter actually selected at run time is
// required, so both are marked optional here.
func AllRequirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "time",
			Command:     cfg.Tools.Time,
			Description: "Timing wrapper for converter invocations",
		},
		{
			Name:        "nccopy",
			Command:     cfg.Tools.Nccopy,
			Description: "netCDF copy/compress tool (--nccopy)",
			Optional:    true,
		},
		{
			Name:        "nc2nc",
			Command:     cfg.Tools.Nc2nc,
			Description: "netCDF copy/compress tool (default)",
			Optional:    true,
		},
		{
			Name:        "ncdump",
			Command:     cfg.Tools.Ncdump,
			Description: "Required to detect already-compressed files",
		},
		{
			Name:        "cdo",
			Command:     cfg.Tools.Cdo,
			Description: "Structural diff for paranoid verification",
			Optional:    true,
		},
	}
}
