package pretty

import (
	"strings"

	"github.com/yaklabco/sarifapply/pkg/applier"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // OUTCOME, RULE, PATH, DETAIL
	minRuleWidth     = 8
	minPathWidth     = 16
	minDetailWidth   = 12
	lightSeparator   = "-"
)

// TableRow is one change in the change table.
type TableRow struct {
	Outcome applier.Outcome
	RuleID  string
	Path    string
	Detail  string
}

// ChangeToTableRow converts a change result into a table row. The detail
// column carries the commit hash for applied changes and the reason otherwise.
func ChangeToTableRow(change applier.ChangeResult) TableRow {
	path := change.Path
	if path == "" {
		path = change.URI
	}

	detail := change.Reason
	switch {
	case change.Commit != "":
		detail = change.Commit
	case change.Err != nil:
		detail = change.Reason + ": " + change.Err.Error()
	}

	return TableRow{
		Outcome: change.Outcome,
		RuleID:  change.RuleID,
		Path:    path,
		Detail:  detail,
	}
}

// TableFormatter formats change results as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	outcome, rule, path, detail int
}

// FormatTable formats the changes of a result. Skipped changes are omitted.
func (t *TableFormatter) FormatTable(result *applier.Result) string {
	if result == nil {
		return ""
	}

	var rows []TableRow
	for _, change := range result.Changes {
		if change.Outcome == applier.Skipped {
			continue
		}
		rows = append(rows, ChangeToTableRow(change))
	}
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var b strings.Builder
	b.WriteString(t.formatHeader(widths))
	b.WriteString(t.formatSeparator(widths))
	for _, row := range rows {
		b.WriteString(t.formatRow(row, widths))
	}
	return b.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		outcome: len("OUTCOME"),
		rule:    len("RULE"),
		path:    len("PATH"),
		detail:  len("DETAIL"),
	}
	for _, row := range rows {
		widths.outcome = max(widths.outcome, len(row.Outcome.String()))
		widths.rule = max(widths.rule, len(row.RuleID))
		widths.path = max(widths.path, len(row.Path))
		widths.detail = max(widths.detail, len(row.Detail))
	}

	// Shrink detail, then path, then rule until the table fits.
	overflow := t.totalWidth(widths) - t.termWidth
	shrink := func(col *int, floor int) {
		if overflow <= 0 || *col <= floor {
			return
		}
		cut := min(overflow, *col-floor)
		*col -= cut
		overflow -= cut
	}
	shrink(&widths.detail, minDetailWidth)
	shrink(&widths.path, minPathWidth)
	shrink(&widths.rule, minRuleWidth)

	return widths
}

func (t *TableFormatter) totalWidth(w columnWidths) int {
	return w.outcome + w.rule + w.path + w.detail + tablePadding*(tableColumnCount-1)
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	gap := strings.Repeat(" ", tablePadding)
	line := pad("OUTCOME", w.outcome) + gap + pad("RULE", w.rule) + gap + pad("PATH", w.path) + gap + "DETAIL"
	return t.styles.TableHeader.Render(line) + "\n"
}

func (t *TableFormatter) formatSeparator(w columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, t.totalWidth(w))) + "\n"
}

func (t *TableFormatter) formatRow(row TableRow, w columnWidths) string {
	gap := strings.Repeat(" ", tablePadding)

	// Pad before styling so escape codes do not count toward the width.
	outcome := pad(row.Outcome.String(), w.outcome)
	outcome = strings.Replace(outcome, row.Outcome.String(), t.styles.FormatOutcome(row.Outcome), 1)

	return outcome + gap +
		t.styles.RuleID.Render(pad(truncateString(row.RuleID, w.rule), w.rule)) + gap +
		t.styles.FilePath.Render(pad(truncateFilePath(row.Path, w.path), w.path)) + gap +
		t.styles.Reason.Render(truncateString(row.Detail, w.detail)) + "\n"
}

func pad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
