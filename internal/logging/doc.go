// Package logging assembles the structured slog loggers used across
// nccompress.
//
// It owns the console and JSON handlers and centralizes level parsing so
// every component emits log lines with the same shape. Prefer these
// constructors over hand-rolled slog setup; NewNop is available for tests.
package logging
