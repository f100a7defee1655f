package batch

import "nccompress/internal/converter"

// OutcomeKind classifies what happened to one file.
type OutcomeKind int

const (
	// OutcomeCompressed is a successful conversion, including the
	// sentinel case where a previous run already produced the output.
	OutcomeCompressed OutcomeKind = iota
	// OutcomeSkippedInvalid is a file that is not a netCDF container.
	OutcomeSkippedInvalid
	// OutcomeSkippedCompressed is a file that already carries compression.
	OutcomeSkippedCompressed
	// OutcomeFailed is a converter invocation or commit failure.
	OutcomeFailed
	// OutcomeVerifyMismatch is a paranoid-check failure; the output was
	// discarded.
	OutcomeVerifyMismatch
	// OutcomeSuspiciousRatio is a ratio-guard trip; the original was kept.
	OutcomeSuspiciousRatio
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompressed:
		return "compressed"
	case OutcomeSkippedInvalid:
		return "not a netCDF file"
	case OutcomeSkippedCompressed:
		return "already compressed"
	case OutcomeFailed:
		return "conversion failed"
	case OutcomeVerifyMismatch:
		return "verification mismatch"
	case OutcomeSuspiciousRatio:
		return "suspicious compression ratio"
	default:
		return "unknown"
	}
}

// Outcome records the fate of one file within a directory batch.
type Outcome struct {
	File   string
	Kind   OutcomeKind
	Result *converter.Result
	Err    error
}

// SkipListed reports whether the outcome belongs on the directory's skip
// list. Files that are simply not candidates (invalid, already compressed)
// are omitted silently; only failures are listed.
func (o Outcome) SkipListed() bool {
	switch o.Kind {
	case OutcomeFailed, OutcomeVerifyMismatch, OutcomeSuspiciousRatio:
		return true
	}
	return false
}
