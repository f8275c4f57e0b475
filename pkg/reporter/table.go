package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/sarifapply/internal/ui/pretty"
	"github.com/yaklabco/sarifapply/pkg/applier"
)

// TableReporter writes the changes as a table sized to the terminal.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	width     int
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	width := pretty.TerminalWidth(opts.Writer)
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, width),
		width:     width,
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *applier.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &applier.Result{}
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(result))
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.width))
	}
	fmt.Fprint(r.bw, r.styles.FormatFinalLine(result.Stats))
	return nil
}
