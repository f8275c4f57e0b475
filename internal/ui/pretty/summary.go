package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/sarifapply/pkg/applier"
)

const (
	summaryDividerWidth = 40
	wordFix             = "fix"
	wordFixes           = "fixes"
)

func plural(n int) string {
	if n == 1 {
		return wordFix
	}
	return wordFixes
}

// FormatOutcome renders an outcome name in the style matching its severity.
func (s *Styles) FormatOutcome(outcome applier.Outcome) string {
	name := outcome.String()
	switch outcome {
	case applier.Applied, applier.Written:
		return s.Success.Render(name)
	case applier.DryRun:
		return s.Info.Render(name)
	case applier.NoEffectiveChange, applier.Skipped:
		return s.Dim.Render(name)
	case applier.FileNotFound, applier.CommitFailed:
		return s.Warning.Render(name)
	default:
		return s.Error.Render(name)
	}
}

// FormatFinalLine returns the closing line of a run: how many fixes were
// applied, or that none were.
// Example: "Successfully applied 3 fix(es)."
func (s *Styles) FormatFinalLine(stats applier.Stats) string {
	applied := stats.Count(applier.Applied)
	switch {
	case applied > 0:
		return s.Success.Render(fmt.Sprintf("Successfully applied %d fix(es).", applied)) + "\n"
	case stats.Count(applier.Written) > 0:
		n := stats.Count(applier.Written)
		return s.Success.Render(fmt.Sprintf("Wrote %d %s without committing.", n, plural(n))) + "\n"
	case stats.Count(applier.DryRun) > 0:
		n := stats.Count(applier.DryRun)
		return s.Info.Render(fmt.Sprintf("Dry run: %d %s would be applied.", n, plural(n))) + "\n"
	default:
		return s.Dim.Render("No fixes were applied.") + "\n"
	}
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 changes: 2 applied, 1 no-effective-change, 1 file-not-found".
func (s *Styles) FormatSummaryOneLine(stats applier.Stats) string {
	if stats.Attempted == 0 {
		msg := s.Dim.Render("No fixes to apply")
		if skipped := stats.Count(applier.Skipped); skipped > 0 {
			msg += s.Dim.Render(fmt.Sprintf(" (%d skipped)", skipped))
		}
		return msg + "\n"
	}

	var parts []string
	for _, outcome := range applier.Outcomes() {
		if n := stats.Count(outcome); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s.FormatOutcome(outcome)))
		}
	}

	word := "changes"
	if stats.Attempted == 1 {
		word = "change"
	}
	return fmt.Sprintf("%d %s: %s\n", stats.Attempted, word, strings.Join(parts, ", "))
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats applier.Stats, width int) string {
	var builder strings.Builder

	divider := min(max(width, 1), summaryDividerWidth)

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", divider))
	builder.WriteString("\n")

	builder.WriteString("  Changes attempted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.Attempted)) + "\n")

	for _, outcome := range applier.Outcomes() {
		n := stats.Count(outcome)
		if n == 0 {
			continue
		}
		label := fmt.Sprintf("    %-20s", outcome.String()+":")
		builder.WriteString(label + s.SummaryValue.Render(strconv.Itoa(n)) + "\n")
	}

	builder.WriteString("\n")

	switch failed := stats.Failed(); {
	case failed > 0:
		builder.WriteString(s.Failure.Render(fmt.Sprintf("%d %s failed", failed, plural(failed))))
	default:
		builder.WriteString(s.Success.Render("All fixes processed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
