// Package reporter writes the outcome of applying a report.
package reporter

import (
	"context"
	"os"

	"github.com/yaklabco/sarifapply/pkg/applier"
)

// Reporter writes an apply result in one output format.
type Reporter interface {
	Report(ctx context.Context, result *applier.Result) error
}

// New returns the Reporter for opts.Format. An empty format means text and
// a nil writer means stdout.
func New(opts Options) (Reporter, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	opts.Format = format

	switch format {
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
