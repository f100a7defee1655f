package batch

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"nccompress/internal/logging"
)

// Groups maps a directory to the ordered file names found under it. Built
// once per run from the CLI inputs and consumed directory by directory.
type Groups map[string][]string

// Dirs returns the group directories in sorted order.
func (g Groups) Dirs() []string {
	dirs := make([]string, 0, len(g))
	for dir := range g {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

func (g Groups) add(dir, file string) {
	if slices.Contains(g[dir], file) {
		return
	}
	g[dir] = append(g[dir], file)
}

// BuildGroups walks the CLI inputs and groups candidate files by containing
// directory. Plain files join their directory's group; directories are
// walked, descending into subdirectories only when recursive is set. The
// scratch directory is always skipped so re-runs do not reprocess their own
// output, and directories without regular files are dropped.
func BuildGroups(inputs []string, tmpdir string, recursive bool, logger *slog.Logger) Groups {
	if logger == nil {
		logger = logging.NewNop()
	}
	groups := make(Groups)
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			logger.Warn("input does not exist, skipping", logging.String("input", input))
			continue
		}
		switch {
		case info.IsDir():
			if filepath.Base(input) == tmpdir {
				continue
			}
			collectDir(groups, input, tmpdir, recursive, logger)
		case info.Mode().IsRegular():
			dir := filepath.Dir(input)
			groups.add(dir, filepath.Base(input))
		default:
			logger.Warn("input is neither file nor directory, skipping", logging.String("input", input))
		}
	}
	return groups
}

func collectDir(groups Groups, dir, tmpdir string, recursive bool, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("cannot read directory, skipping", logging.String("dir", dir), logging.Error(err))
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			if name == tmpdir {
				continue
			}
			if !recursive {
				logger.Info("skipping subdirectory, --recursive not specified",
					logging.String("dir", filepath.Join(dir, name)))
				continue
			}
			collectDir(groups, filepath.Join(dir, name), tmpdir, recursive, logger)
		case entry.Type().IsRegular():
			groups.add(dir, name)
		}
	}
}
