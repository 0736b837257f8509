package presentation

import (
	"fmt"
	"io"
	"strings"

	"clipdate/internal/domain"
	appErrors "clipdate/internal/errors"
)

// Printer writes plain progress lines and the final summary. It satisfies
// app.Observer.
type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) OnStart(dir string, total int) {
	fmt.Fprintf(p.Writer, "Processing %d files in %s\n\n", total, dir)
}

func (p Printer) OnFileDone(done, total int, outcome domain.Outcome) {
	line := formatOutcome(outcome, p.Verbose)
	if line == "" {
		return
	}
	if p.Verbose {
		line = fmt.Sprintf("[%d/%d] %s", done, total, line)
	}
	fmt.Fprintln(p.Writer, line)
}

func (p Printer) OnFinish(summary domain.Summary) {
	fmt.Fprintln(p.Writer)
	for _, line := range SummaryLines(summary) {
		fmt.Fprintln(p.Writer, line)
	}
}

// SummaryLines renders the counters in a fixed order.
func SummaryLines(s domain.Summary) []string {
	lines := make([]string, 0, 6)
	if s.DryRun {
		lines = append(lines, fmt.Sprintf("Planned: %d", s.Planned))
	} else {
		lines = append(lines, fmt.Sprintf("Updated: %d", s.Updated))
	}
	lines = append(lines,
		fmt.Sprintf("Unchanged: %d", s.Unchanged),
		fmt.Sprintf("Skipped: %d", s.Skipped),
		fmt.Sprintf("Failed: %d", s.Failed),
		fmt.Sprintf("Ignored: %d", s.Ignored),
	)
	if s.DryRun {
		lines = append(lines, "No files were modified (dry run).")
	}
	return lines
}

func formatOutcome(o domain.Outcome, verbose bool) string {
	name := o.Candidate.RelativePath
	if name == "" {
		name = o.Candidate.Name
	}

	switch o.Status {
	case domain.StatusUpdated:
		return fmt.Sprintf("Updated %s  %s", name, o.Timestamp)
	case domain.StatusPlanned:
		return fmt.Sprintf("Would update %s  %s", name, o.Timestamp)
	case domain.StatusUnchanged:
		if !verbose {
			return ""
		}
		return fmt.Sprintf("Unchanged %s  %s", name, o.Timestamp)
	case domain.StatusSkipped:
		return fmt.Sprintf("Skipped %s  no date in filename", name)
	case domain.StatusFailed:
		return fmt.Sprintf("Failed %s  %s", name, FailureText(o.Err))
	}
	return ""
}

// FailureText renders an outcome error on one line, one part per joined cause.
func FailureText(err error) string {
	if err == nil {
		return "unknown error"
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts := make([]string, 0, 2)
		for _, cause := range joined.Unwrap() {
			parts = append(parts, FailureText(cause))
		}
		return strings.Join(parts, "; ")
	}
	return strings.Join(strings.Fields(appErrors.UserMessage(err)), " ")
}
