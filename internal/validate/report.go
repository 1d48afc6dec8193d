// ABOUTME: ValidationReport accumulates data-quality findings.
// ABOUTME: Warnings always print; info lines only in verbose mode.
package validate

import (
	"fmt"
	"io"
)

// Report collects findings from a validation pass. Warnings indicate data
// that needs operator attention; info lines record checks that passed.
type Report struct {
	Warnings []string
	Info     []string
}

// AddWarning records an issue needing attention.
func (r *Report) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// AddInfo records a check that passed or neutral context.
func (r *Report) AddInfo(format string, args ...any) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// HasIssues reports whether at least one warning was recorded.
func (r *Report) HasIssues() bool {
	return len(r.Warnings) > 0
}

// Print writes the report. Info lines are shown only in verbose mode.
func (r *Report) Print(w io.Writer, verbose bool) {
	fmt.Fprintln(w, "Data quality validation")

	if verbose {
		for _, msg := range r.Info {
			fmt.Fprintf(w, "  ℹ %s\n", msg)
		}
	}

	if len(r.Warnings) == 0 {
		fmt.Fprintln(w, "  ✓ no data quality issues found")
		return
	}

	fmt.Fprintf(w, "  %d warning(s):\n", len(r.Warnings))
	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "  ⚠ %s\n", msg)
	}
}
