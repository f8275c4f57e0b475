// Package fix provides offset-addressed text edits and the reconstruction
// that applies them to file content.
package fix

import "fmt"

// Edit replaces DeletedLength units starting at Offset with InsertedContent.
// Offsets always refer to the original content, never to content produced by
// earlier edits.
type Edit struct {
	// Offset is where the edit begins in the original content.
	Offset int `json:"offset"`

	// DeletedLength is the number of units removed starting at Offset.
	DeletedLength int `json:"deletedLength"`

	// InsertedContent replaces the deleted span.
	InsertedContent string `json:"insertedContent"`
}

// End returns the exclusive end of the deleted span.
func (e Edit) End() int {
	return e.Offset + e.DeletedLength
}

// IsNoop reports whether the edit neither deletes nor inserts anything.
func (e Edit) IsNoop() bool {
	return e.DeletedLength == 0 && e.InsertedContent == ""
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d:%d]", e.Offset, e.End())
}

// Unit is the coordinate system edit offsets are expressed in.
type Unit int

const (
	// UnitBytes counts offsets in bytes of the UTF-8 content.
	UnitBytes Unit = iota

	// UnitChars counts offsets in Unicode code points.
	UnitChars
)

// String returns the configuration name of the unit.
func (u Unit) String() string {
	switch u {
	case UnitBytes:
		return "bytes"
	case UnitChars:
		return "chars"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParseUnit parses a unit name as used in configuration ("bytes" or "chars").
func ParseUnit(name string) (Unit, error) {
	switch name {
	case "bytes", "byte":
		return UnitBytes, nil
	case "chars", "char", "":
		return UnitChars, nil
	default:
		return UnitChars, fmt.Errorf("unknown offset unit %q (expected chars or bytes)", name)
	}
}
