package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/sarifapply/internal/ui/pretty"
	"github.com/yaklabco/sarifapply/pkg/applier"
)

// DiffReporter writes only the unified diffs of dry-run changes, in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *applier.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	var files, additions, deletions int
	for _, change := range result.Changes {
		if change.Diff == "" {
			continue
		}
		files++
		for _, line := range splitLines(change.Diff) {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			case strings.HasPrefix(line, "+"):
				additions++
			case strings.HasPrefix(line, "-"):
				deletions++
			}
		}
		writeDiff(r.bw, r.styles, change.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		fileWord := "files"
		if files == 1 {
			fileWord = "file"
		}
		fmt.Fprintf(r.bw, "%d %s changed, %s, %s\n", files, fileWord,
			r.styles.DiffAdd.Render(fmt.Sprintf("%d insertions(+)", additions)),
			r.styles.DiffRemove.Render(fmt.Sprintf("%d deletions(-)", deletions)),
		)
	}
	return nil
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// styleDiffLine formats a single diff line with color.
func styleDiffLine(styles *pretty.Styles, line string) string {
	switch {
	case strings.HasPrefix(line, "diff "):
		return styles.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "+"):
		return styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "-"):
		return styles.DiffRemove.Render(line)
	default:
		return styles.DiffContext.Render(line)
	}
}
