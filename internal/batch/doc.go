// Package batch drives the per-directory compress/verify/commit workflow.
//
// Files are grouped by containing directory; each directory gets a scratch
// subdirectory for converter outputs, an advisory lock for the duration of
// the batch, and a summary of sizes, counts, and skipped files. Every
// per-file failure is terminal for that file only; the original is the
// protected resource and is never lost.
package batch
