package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"nccompress/internal/batch"
	"nccompress/internal/fileutil"
)

func printSummary(w io.Writer, summary *batch.Summary) {
	fmt.Fprintf(w, "Directory: %s\n", summary.Dir)
	fmt.Fprintf(w, "    Number files compressed: %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "    Total space saved: %s\n", fileutil.HumanSize(summary.SpaceSaved()))
	fmt.Fprintf(w, "    Average compression ratio: %s\n", formatRatio(summary.AverageRatio()))
	if len(summary.Skipped) > 0 {
		fmt.Fprintln(w, "    Following files not properly compressed or suspiciously high compression ratio:")
		for _, file := range summary.Skipped {
			fmt.Fprintln(w, file)
		}
	}
}

func formatRatio(ratio float64) string {
	if ratio == 0 {
		return "-"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64)
}

func renderRunSummary(summaries []*batch.Summary) string {
	rows := make([][]string, 0, len(summaries))
	var files int
	var saved int64
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Dir,
			strconv.Itoa(summary.TotalFiles),
			fileutil.HumanSize(summary.SpaceSaved()),
			formatRatio(summary.AverageRatio()),
			strconv.Itoa(len(summary.Skipped)),
		})
		files += summary.TotalFiles
		saved += summary.SpaceSaved()
	}
	rows = append(rows, []string{"total", strconv.Itoa(files), fileutil.HumanSize(saved), "", ""})
	return renderTable(
		[]string{"Directory", "Files", "Saved", "Ratio", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
