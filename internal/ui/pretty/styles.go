// Package pretty renders run results for the terminal with lipgloss styles.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the output is not a terminal.
const defaultTermWidth = 100

// Styles holds one lipgloss style per kind of output element.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Change components
	FilePath lipgloss.Style
	RuleID   lipgloss.Style
	Reason   lipgloss.Style
	Commit   lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// Palette colors, ANSI 16-color indices.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGray   = "8"
	colorSilver = "7"
)

// NewStyles returns the output styles. With color disabled every style
// renders its input unchanged, bold and italic included.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(color string) lipgloss.Style {
		if !colorEnabled || color == "" {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	strong := func(color string) lipgloss.Style {
		return fg(color).Bold(colorEnabled)
	}

	return &Styles{
		Error:   strong(colorRed),
		Warning: strong(colorYellow),
		Info:    strong(colorBlue),

		FilePath: strong(""),
		RuleID:   fg(colorGray),
		Reason:   fg(colorSilver).Italic(colorEnabled),
		Commit:   fg(colorYellow),

		DiffHeader:  strong(""),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: strong(""),
		SummaryValue: fg(""),
		Success:      strong(colorGreen),
		Failure:      strong(colorRed),

		TableHeader:    strong(colorSilver),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: strong(""),
	}
}

// IsColorEnabled resolves a color mode for writer. "always" and "never" are
// absolute. Anything else means auto: color only when writer is a terminal
// and NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd, ok := fileDescriptor(writer)
	return ok && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// TerminalWidth returns the column count of writer if it is a terminal, or a
// fixed default otherwise.
func TerminalWidth(writer io.Writer) int {
	fd, ok := fileDescriptor(writer)
	if !ok || !term.IsTerminal(int(fd)) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func fileDescriptor(writer io.Writer) (uintptr, bool) {
	f, ok := writer.(*os.File)
	if !ok || f == nil {
		return 0, false
	}
	return f.Fd(), true
}
