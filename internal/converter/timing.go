package converter

import (
	"fmt"
	"strconv"
	"strings"
)

// timeFormat is passed to the timing wrapper:
//
//	%e  elapsed real time in seconds
//	%S  CPU seconds spent in kernel mode
//	%U  CPU seconds spent in user mode
//	%M  maximum resident set size in KB
const timeFormat = "%e %S %U %M"

// ParseError reports timing wrapper output that does not match the expected
// four-token format.
type ParseError struct {
	Output string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse timing output %q: %s", e.Output, e.Reason)
}

// ParseTimes extracts the four timing figures from the wrapper's combined
// output. The report is the last non-empty line; anything the converter
// printed before it is ignored.
func ParseTimes(output []byte) (Times, error) {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			last = trimmed
			break
		}
	}
	if last == "" {
		return Times{}, &ParseError{Output: last, Reason: "empty output"}
	}

	fields := strings.Fields(last)
	if len(fields) != 4 {
		return Times{}, &ParseError{Output: last, Reason: fmt.Sprintf("want 4 fields, got %d", len(fields))}
	}

	elapsed, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Times{}, &ParseError{Output: last, Reason: "elapsed: " + err.Error()}
	}
	kernel, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Times{}, &ParseError{Output: last, Reason: "kernel: " + err.Error()}
	}
	user, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Times{}, &ParseError{Output: last, Reason: "user: " + err.Error()}
	}
	maxRSS, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Times{}, &ParseError{Output: last, Reason: "maxrss: " + err.Error()}
	}

	return Times{Elapsed: elapsed, Kernel: kernel, User: user, MaxRSSKB: maxRSS}, nil
}
