package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nccompress/internal/batch"
	"nccompress/internal/config"
	"nccompress/internal/converter"
	"nccompress/internal/deps"
	"nccompress/internal/logging"
	"nccompress/internal/ncfile"
	"nccompress/internal/preflight"
	"nccompress/internal/verify"
)

// buildBatchOptions merges configuration defaults with explicit flags. A
// flag the user set always wins; otherwise the config file value applies.
func buildBatchOptions(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) batch.Options {
	flags := cmd.Flags()

	level := cfg.Compress.Dlevel
	if flags.Changed("dlevel") {
		level = opts.dlevel
	}
	shuffle := cfg.Compress.Shuffle
	if opts.noshuffle {
		shuffle = false
	}
	tmpdir := cfg.Compress.TmpDir
	if flags.Changed("tmpdir") {
		tmpdir = opts.tmpdir
	}
	maxcompress := cfg.Compress.MaxCompress
	if flags.Changed("maxcompress") {
		maxcompress = opts.maxcompress
	}

	return batch.Options{
		TmpDir:      tmpdir,
		Level:       level,
		Shuffle:     shuffle,
		Chunking:    opts.chunking,
		Limited:     opts.limited,
		Overwrite:   opts.overwrite,
		MaxCompress: maxcompress,
		Paranoid:    opts.paranoid,
		Force:       opts.force,
		Clean:       opts.clean,
		Verbose:     opts.verbose,
	}
}

func runCompress(cmd *cobra.Command, cfg *config.Config, opts *rootOptions, inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs given (netCDF files, or directories with -r)")
	}

	batchOpts := buildBatchOptions(cmd, cfg, opts)
	if batchOpts.Level < 0 || batchOpts.Level > 9 {
		return fmt.Errorf("deflate level %d out of range 0-9", batchOpts.Level)
	}
	if batchOpts.MaxCompress < 0 {
		return fmt.Errorf("maxcompress must not be negative")
	}

	logLevel := cfg.Logging.Level
	if opts.verbose {
		logLevel = "debug"
	}
	logFormat := cfg.Logging.Format
	if opts.logFormat != "" {
		logFormat = opts.logFormat
	}
	logger, err := logging.New(logging.Options{Level: logLevel, Format: logFormat, Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	logger = logger.With(logging.String("run_id", uuid.NewString()))

	statuses := preflight.CheckTools(cfg, opts.useNccopy, opts.paranoid)
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (see 'nccompress deps')", strings.Join(missing, ", "))
	}

	var conv converter.Converter
	if opts.useNccopy {
		conv = converter.NewNccopy(cfg.Tools.Time, cfg.Tools.Nccopy)
	} else {
		conv = converter.NewNc2nc(cfg.Tools.Time, cfg.Tools.Nc2nc)
	}
	inspector := ncfile.NewInspector(cfg.Tools.Ncdump)
	var checker batch.Checker
	if opts.paranoid {
		checker = verify.NewChecker(cfg.Tools.Cdo, logger)
	}

	coordinator := batch.New(batchOpts, conv, inspector, checker, logger)

	groups := batch.BuildGroups(inputs, batchOpts.TmpDir, opts.recursive, logger)
	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files found to process")
		return nil
	}

	out := cmd.OutOrStdout()
	var summaries []*batch.Summary
	for _, dir := range groups.Dirs() {
		summary, err := coordinator.Process(cmd.Context(), dir, groups[dir])
		if err != nil {
			logger.Error("directory skipped", logging.String("dir", dir), logging.Error(err))
			continue
		}
		printSummary(out, summary)
		summaries = append(summaries, summary)
	}

	if len(summaries) > 1 && stdoutIsTerminal() {
		fmt.Fprintln(out, renderRunSummary(summaries))
	}
	return nil
}
