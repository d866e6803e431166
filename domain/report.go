package domain

import (
	"fmt"
	"strings"
)

// reportLineWidth bounds every rendered summary line so long engine errors
// and artifact IDs do not wreck scanability.
const reportLineWidth = 100

// ReportEntry is the recorded outcome of one manifest line. Entries are never
// mutated after being added.
type ReportEntry struct {
	File       string
	Line       int
	Raw        string
	ArtifactID string // set on success
	Message    string // set on failure
	Failed     bool
}

// Report accumulates one outcome per processed manifest line, in processing
// order: grouped by file, ascending line number.
type Report struct {
	entries  []ReportEntry
	failures int
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// AddSuccess records a successful entry and the artifact it produced.
func (r *Report) AddSuccess(file string, line int, raw, artifactID string) {
	r.entries = append(r.entries, ReportEntry{
		File:       file,
		Line:       line,
		Raw:        raw,
		ArtifactID: artifactID,
	})
}

// AddFailure records a failed entry. Multi-line errors (typically engine
// logs) are reduced to their last non-empty line.
func (r *Report) AddFailure(file string, line int, raw string, err error) {
	r.entries = append(r.entries, ReportEntry{
		File:    file,
		Line:    line,
		Raw:     raw,
		Message: failureMessage(err),
		Failed:  true,
	})
	r.failures++
}

// OverallSuccess reports whether no failure outcome was ever added.
func (r *Report) OverallSuccess() bool {
	return r.failures == 0
}

// Len returns the number of recorded outcomes.
func (r *Report) Len() int {
	return len(r.entries)
}

// FailureCount returns the number of failure outcomes.
func (r *Report) FailureCount() int {
	return r.failures
}

// Entries returns a copy of the recorded outcomes in insertion order.
func (r *Report) Entries() []ReportEntry {
	out := make([]ReportEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Render produces the human-readable summary, grouped by manifest file in
// processing order, one bounded line per entry.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("Build summary:\n")

	lastFile := ""
	for _, e := range r.entries {
		if e.File != lastFile {
			fmt.Fprintf(&b, "%s:\n", e.File)
			lastFile = e.File
		}
		status, detail := "OK", e.ArtifactID
		if e.Failed {
			status, detail = "KO", e.Message
		}
		b.WriteString(clip(fmt.Sprintf("  line %-4d %s  %s", e.Line, status, detail), reportLineWidth))
		b.WriteByte('\n')
	}

	if r.failures == 0 {
		fmt.Fprintf(&b, "%d entries, all succeeded\n", len(r.entries))
	} else {
		fmt.Fprintf(&b, "%d of %d entries failed\n", r.failures, len(r.entries))
	}
	return b.String()
}

// failureMessage keeps only the last non-empty line of an error so multi-line
// engine output stays scannable in the summary.
func failureMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	return msg
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
