package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit that does not fit the content it targets.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit %s: %s", e.Edit, e.Message)
}

// OverlapError describes two edits whose spans intersect.
type OverlapError struct {
	First  Edit
	Second Edit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits: %s and %s", e.First, e.Second)
}

// ValidateEdits checks that every edit lies within content of contentLen units.
// Returns nil if all edits are valid, or the first validation error encountered.
func ValidateEdits(edits []Edit, contentLen int) error {
	for _, edit := range edits {
		if edit.Offset < 0 {
			return &ValidationError{Edit: edit, Message: "offset is negative"}
		}
		if edit.DeletedLength < 0 {
			return &ValidationError{Edit: edit, Message: "deleted length is negative"}
		}
		if edit.Offset > contentLen || edit.DeletedLength > contentLen-edit.Offset {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end %d exceeds content length %d", edit.End(), contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by offset. The sort is stable, so edits sharing an
// offset keep their input order.
func SortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Offset < edits[j].Offset
	})
}

// SortedCopy returns a stably sorted copy of edits, leaving the input untouched.
func SortedCopy(edits []Edit) []Edit {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)
	return sorted
}

// DetectOverlaps returns an *OverlapError for the first edit in a sorted slice
// that starts inside the deleted span of an earlier edit.
// Edits must be sorted by SortEdits before calling.
func DetectOverlaps(edits []Edit) error {
	if len(edits) < 2 {
		return nil
	}

	widest := edits[0]
	for _, curr := range edits[1:] {
		if curr.Offset < widest.End() {
			return &OverlapError{First: widest, Second: curr}
		}
		if curr.End() > widest.End() {
			widest = curr
		}
	}
	return nil
}
