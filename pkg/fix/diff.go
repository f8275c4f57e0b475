package fix

import (
	"bytes"
	"fmt"
	"strings"

	"fortio.org/safecast"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff is a unified line diff between the original and patched content of one file.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Hunks holds the changed regions in go-diff form.
	Hunks []*godiff.Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// GenerateDiff computes the unified diff between original and modified.
// Returns nil when the contents are identical.
func GenerateDiff(path string, original, modified []byte) (*Diff, error) {
	if bytes.Equal(original, modified) {
		return nil, nil
	}

	ops := diffLines(splitLines(original), splitLines(modified))

	diff := &Diff{Path: strings.TrimPrefix(path, "/")}
	for _, op := range ops {
		switch op.kind {
		case opAdd:
			diff.Additions++
		case opRemove:
			diff.Deletions++
		}
	}

	hunks, err := buildHunks(ops)
	if err != nil {
		return nil, fmt.Errorf("build hunks for %s: %w", path, err)
	}
	diff.Hunks = hunks

	return diff, nil
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// FileDiff returns the diff as a go-diff FileDiff with git-style headers.
func (d *Diff) FileDiff() *godiff.FileDiff {
	return &godiff.FileDiff{
		OrigName: "a/" + d.Path,
		NewName:  "b/" + d.Path,
		Extended: []string{fmt.Sprintf("diff --git a/%s b/%s", d.Path, d.Path)},
		Hunks:    d.Hunks,
	}
}

// Render prints the diff in unified format, including the git header.
func (d *Diff) Render() (string, error) {
	if !d.HasChanges() {
		return "", nil
	}
	out, err := godiff.PrintFileDiff(d.FileDiff())
	if err != nil {
		return "", fmt.Errorf("print diff: %w", err)
	}
	return string(out), nil
}

type opKind byte

const (
	opContext opKind = ' '
	opRemove  opKind = '-'
	opAdd     opKind = '+'
)

type lineOp struct {
	kind opKind
	line []byte
}

// splitLines splits content after each newline, keeping the terminators.
func splitLines(content []byte) [][]byte {
	if len(content) == 0 {
		return nil
	}
	lines := bytes.SplitAfter(content, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffLines produces the edit script between a and b from their longest
// common subsequence.
func diffLines(a, b [][]byte) []lineOp {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if bytes.Equal(a[i], b[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]lineOp, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case bytes.Equal(a[i], b[j]):
			ops = append(ops, lineOp{opContext, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, lineOp{opRemove, a[i]})
			i++
		default:
			ops = append(ops, lineOp{opAdd, b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, lineOp{opRemove, a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, lineOp{opAdd, b[j]})
	}
	return ops
}

// buildHunks groups changed lines with their surrounding context. Changes
// separated by at most twice the context size share a hunk.
func buildHunks(ops []lineOp) ([]*godiff.Hunk, error) {
	var hunks []*godiff.Hunk

	for start := 0; start < len(ops); {
		first := nextChange(ops, start)
		if first < 0 {
			break
		}

		last := first
		for {
			next := nextChange(ops, last+1)
			if next < 0 || next-last-1 > 2*contextLines {
				break
			}
			last = next
		}

		from := max(first-contextLines, start)
		to := min(last+contextLines+1, len(ops))

		hunk, err := newHunk(ops, from, to)
		if err != nil {
			return nil, err
		}
		hunks = append(hunks, hunk)
		start = to
	}

	return hunks, nil
}

func nextChange(ops []lineOp, from int) int {
	for idx := from; idx < len(ops); idx++ {
		if ops[idx].kind != opContext {
			return idx
		}
	}
	return -1
}

// newHunk builds the go-diff hunk covering ops[from:to].
func newHunk(ops []lineOp, from, to int) (*godiff.Hunk, error) {
	origStart, newStart := 1, 1
	for _, op := range ops[:from] {
		if op.kind != opAdd {
			origStart++
		}
		if op.kind != opRemove {
			newStart++
		}
	}

	var body bytes.Buffer
	origLines, newLines := 0, 0
	origNoNewlineAt, newNoNewline := 0, false
	for _, op := range ops[from:to] {
		body.WriteByte(byte(op.kind))
		body.Write(op.line)
		if !bytes.HasSuffix(op.line, []byte("\n")) {
			body.WriteByte('\n')
			// Only a file's last line lacks a newline, so it ends its side.
			if op.kind == opRemove {
				origNoNewlineAt = body.Len()
			} else {
				newNoNewline = true
			}
		}
		if op.kind != opAdd {
			origLines++
		}
		if op.kind != opRemove {
			newLines++
		}
	}

	// An empty side is anchored at the line before it.
	if origLines == 0 {
		origStart--
	}
	if newLines == 0 {
		newStart--
	}

	// go-diff prints the marker after a body that does not end in a newline,
	// and after OrigNoNewlineAt for the original side.
	if newNoNewline {
		body.Truncate(body.Len() - 1)
	}

	hunk := &godiff.Hunk{Body: body.Bytes()}
	var err error
	if hunk.OrigNoNewlineAt, err = safecast.Conv[int32](origNoNewlineAt); err != nil {
		return nil, fmt.Errorf("original no-newline offset %d: %w", origNoNewlineAt, err)
	}
	if hunk.OrigStartLine, err = safecast.Conv[int32](origStart); err != nil {
		return nil, fmt.Errorf("original start line %d: %w", origStart, err)
	}
	if hunk.OrigLines, err = safecast.Conv[int32](origLines); err != nil {
		return nil, fmt.Errorf("original line count %d: %w", origLines, err)
	}
	if hunk.NewStartLine, err = safecast.Conv[int32](newStart); err != nil {
		return nil, fmt.Errorf("new start line %d: %w", newStart, err)
	}
	if hunk.NewLines, err = safecast.Conv[int32](newLines); err != nil {
		return nil, fmt.Errorf("new line count %d: %w", newLines, err)
	}
	return hunk, nil
}
