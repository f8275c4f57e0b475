package fix

import "bytes"

// Reconstruct applies edits to original and returns the patched content.
//
// Edits may arrive in any order; they are validated against len(original),
// stably sorted by offset into a private copy and applied in a single
// left-to-right pass over original. Every offset is read in the original
// coordinate space, so no edit shifts another.
//
// An edit that starts before the end of an earlier edit's deleted span
// contributes its inserted content but no unmodified span, and the cursor
// never moves backwards. Use DetectOverlaps to reject such input instead.
//
// With no edits the original slice is returned as is. Neither original nor
// edits is modified.
func Reconstruct(original []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return original, nil
	}

	if err := ValidateEdits(edits, len(original)); err != nil {
		return nil, err
	}

	sorted := SortedCopy(edits)

	size := len(original)
	for _, e := range sorted {
		size += len(e.InsertedContent) - e.DeletedLength
	}

	var out bytes.Buffer
	out.Grow(max(size, 0))

	cursor := 0
	for _, e := range sorted {
		if e.Offset > cursor {
			out.Write(original[cursor:e.Offset])
		}
		out.WriteString(e.InsertedContent)
		cursor = max(cursor, e.End())
	}
	out.Write(original[cursor:])

	return out.Bytes(), nil
}

// ReconstructString is Reconstruct for string content.
func ReconstructString(original string, edits []Edit) (string, error) {
	out, err := Reconstruct([]byte(original), edits)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
