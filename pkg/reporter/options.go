package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size of reporter output (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowSummary adds per-outcome counts after the changes.
	ShowSummary bool

	// Compact writes single-line JSON.
	Compact bool

	// Version is the tool version recorded in JSON output.
	Version string
}

// DefaultOptions returns text output to stdout with automatic color.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
