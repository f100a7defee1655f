package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	dlevel      int
	noshuffle   bool
	tmpdir      string
	verbose     bool
	recursive   bool
	overwrite   bool
	maxcompress int
	paranoid    bool
	force       bool
	clean       bool
	limited     bool
	chunking    string
	useNccopy   bool
	logFormat   string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	opts := &rootOptions{}

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "nccompress [flags] inputs...",
		Short: "Batch-compress netCDF files with nccopy or nc2nc",
		Long: `nccompress compresses netCDF files in place by driving the external
nccopy or nc2nc tools, verifying the results, and optionally replacing the
originals. Files are processed directory by directory through a scratch
subdirectory; a previous run's outputs are never overwritten, so interrupted
runs can simply be repeated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runCompress(cmd, cfg, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	bindRootFlags(rootCmd.Flags(), opts)

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newChunksCommand())

	return rootCmd
}

func bindRootFlags(flags *pflag.FlagSet, opts *rootOptions) {
	flags.IntVarP(&opts.dlevel, "dlevel", "d", 5, "Deflate level, 0 (off) to 9 (maximum)")
	flags.BoolVarP(&opts.noshuffle, "noshuffle", "n", false, "Don't apply the shuffle filter on deflation")
	flags.StringVarP(&opts.tmpdir, "tmpdir", "t", "tmp.nc_compress", "Name of the scratch subdirectory for compressed files")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Report every file as it is processed")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Recursively descend directories")
	flags.BoolVarP(&opts.overwrite, "overwrite", "o", false, "Overwrite original files with compressed versions")
	flags.IntVarP(&opts.maxcompress, "maxcompress", "m", 10, "Refuse to overwrite when the compression ratio exceeds this (0 disables)")
	flags.BoolVarP(&opts.paranoid, "paranoid", "p", false, "Verify each output against its original with cdo before committing")
	flags.BoolVarP(&opts.force, "force", "f", false, "Compress files even when they already carry compression")
	flags.BoolVarP(&opts.clean, "clean", "c", false, "Remove stale files from the scratch directory before processing")
	flags.BoolVarP(&opts.limited, "limited", "l", false, "Change the unlimited dimension to fixed size (nccopy only)")
	flags.StringVar(&opts.chunking, "chunking", "", "Chunking specification passed through to the converter")
	flags.BoolVar(&opts.useNccopy, "nccopy", false, "Use nccopy instead of nc2nc")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log output format: console or json")
}
