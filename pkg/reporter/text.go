package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/sarifapply/internal/ui/pretty"
	"github.com/yaklabco/sarifapply/pkg/applier"
)

// TextReporter writes one line per change, dry-run diffs, and a closing summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *applier.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &applier.Result{}
	}

	for _, change := range result.Changes {
		if change.Outcome == applier.Skipped {
			continue
		}
		r.writeChange(change)
		if change.Diff != "" {
			writeDiff(r.bw, r.styles, change.Diff)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	fmt.Fprint(r.bw, r.styles.FormatFinalLine(result.Stats))

	return nil
}

func (r *TextReporter) writeChange(change applier.ChangeResult) {
	path := change.Path
	if path == "" {
		path = change.URI
	}

	fmt.Fprintf(r.bw, "%s %s %s",
		r.styles.FormatOutcome(change.Outcome),
		r.styles.FilePath.Render(path),
		r.styles.RuleID.Render("("+change.RuleID+")"),
	)
	if change.Commit != "" {
		fmt.Fprintf(r.bw, " %s", r.styles.Commit.Render(change.Commit))
	}
	if change.Outcome.Failed() {
		detail := change.Reason
		if change.Err != nil {
			detail += ": " + change.Err.Error()
		}
		fmt.Fprintf(r.bw, " %s", r.styles.Reason.Render(detail))
	}
	fmt.Fprintln(r.bw)
}

// writeDiff colorizes a rendered unified diff line by line.
func writeDiff(w io.Writer, styles *pretty.Styles, diff string) {
	for _, line := range splitLines(diff) {
		fmt.Fprintln(w, styleDiffLine(styles, line))
	}
	fmt.Fprintln(w)
}
