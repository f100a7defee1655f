package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nccompress/internal/chunking"
)

func newChunksCommand() *cobra.Command {
	var valSize int
	var chunkSize int
	var names string

	cmd := &cobra.Command{
		Use:   "chunks <dim-sizes>",
		Short: "Suggest a chunk shape for a variable of the given dimension sizes",
		Long: `Computes a chunk shape giving approximately balanced access to 1D and 2D
subsets of a variable, suitable for the converter's --chunking option.
Dimension sizes are comma separated, e.g. 8760,180,360.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := chunking.ParseShape(args[0])
			if err != nil {
				return err
			}

			chunks, err := chunking.ChunkShape(shape, valSize, chunkSize)
			if err != nil {
				return err
			}

			var dimNames []string
			if names != "" {
				dimNames = strings.Split(names, ",")
				if len(dimNames) != len(shape) {
					return fmt.Errorf("got %d dimension names for %d dimensions", len(dimNames), len(shape))
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), chunking.FormatSpec(dimNames, chunks))
			return nil
		},
	}

	cmd.Flags().IntVar(&valSize, "val-size", chunking.DefaultValSize, "Size of one data value in bytes")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", chunking.DefaultChunkSize, "Target uncompressed chunk size in bytes")
	cmd.Flags().StringVar(&names, "names", "", "Comma-separated dimension names for the emitted spec")
	return cmd
}
