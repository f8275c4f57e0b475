package sarif

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/yaklabco/sarifapply/pkg/fix"
)

// ErrUnaddressable is reported for replacements whose position cannot be
// expressed as an offset into the file.
var ErrUnaddressable = errors.New("replacement has no byte or character offset")

// Replacement is one suggested edit within an artifact change.
//
// Two encodings are accepted. The flat form used by CodeQL fix tooling:
//
//	{"offset": 6, "deletedLength": 5, "insertedContent": "there"}
//
// and the SARIF 2.1.0 form:
//
//	{"deletedRegion": {"charOffset": 6, "charLength": 5}, "insertedContent": {"text": "there"}}
//
// Flat offsets use the unit chosen by the caller; deletedRegion offsets carry
// their own unit (charOffset or byteOffset).
type Replacement struct {
	// DeletedRegion is set when the SARIF 2.1.0 form was used.
	DeletedRegion *Region

	edit     fix.Edit
	unit     fix.Unit
	explicit bool
	problem  error
}

// NewReplacement builds a flat replacement whose unit is left to the caller.
func NewReplacement(offset, deletedLength int, inserted string) Replacement {
	return Replacement{
		edit: fix.Edit{Offset: offset, DeletedLength: deletedLength, InsertedContent: inserted},
	}
}

// Resolve returns the replacement as an edit and the unit its offsets use.
// defaultUnit applies to the flat form.
func (r Replacement) Resolve(defaultUnit fix.Unit) (fix.Edit, fix.Unit, error) {
	if r.problem != nil {
		return fix.Edit{}, defaultUnit, r.problem
	}
	if r.explicit {
		return r.edit, r.unit, nil
	}
	return r.edit, defaultUnit, nil
}

type rawReplacement struct {
	Offset          *int64          `json:"offset"`
	DeletedLength   *int64          `json:"deletedLength"`
	InsertedContent json.RawMessage `json:"insertedContent"`
	DeletedRegion   *Region         `json:"deletedRegion"`
}

// UnmarshalJSON decodes either replacement encoding. Structural errors fail
// the decode; a region that cannot be addressed by offset is kept and
// reported by Resolve.
func (r *Replacement) UnmarshalJSON(data []byte) error {
	var raw rawReplacement
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	inserted, err := decodeInserted(raw.InsertedContent)
	if err != nil {
		return err
	}

	*r = Replacement{DeletedRegion: raw.DeletedRegion}
	r.edit.InsertedContent = inserted

	switch {
	case raw.DeletedRegion != nil:
		r.problem = r.fromRegion(raw.DeletedRegion)
	case raw.Offset != nil:
		r.problem = r.setSpan(*raw.Offset, raw.DeletedLength)
	default:
		r.problem = fmt.Errorf("%w: neither offset nor deletedRegion present", ErrUnaddressable)
	}

	return nil
}

func (r *Replacement) fromRegion(region *Region) error {
	switch {
	case region.ByteOffset != nil:
		r.unit, r.explicit = fix.UnitBytes, true
		return r.setSpan(*region.ByteOffset, region.ByteLength)
	case region.CharOffset != nil && *region.CharOffset >= 0:
		r.unit, r.explicit = fix.UnitChars, true
		return r.setSpan(*region.CharOffset, region.CharLength)
	default:
		return fmt.Errorf("%w: region starts at line %d column %d",
			ErrUnaddressable, region.StartLine, region.StartColumn)
	}
}

func (r *Replacement) setSpan(offset int64, length *int64) error {
	var err error
	if r.edit.Offset, err = safecast.Conv[int](offset); err != nil {
		return fmt.Errorf("offset %d: %w", offset, err)
	}
	if length == nil {
		return nil
	}
	if r.edit.DeletedLength, err = safecast.Conv[int](*length); err != nil {
		return fmt.Errorf("deleted length %d: %w", *length, err)
	}
	return nil
}

// decodeInserted accepts a bare string, an artifactContent object, or nothing.
func decodeInserted(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", fmt.Errorf("insertedContent: %w", err)
		}
		return text, nil
	case '{':
		var content ArtifactContent
		if err := json.Unmarshal(trimmed, &content); err != nil {
			return "", fmt.Errorf("insertedContent: %w", err)
		}
		return content.Text, nil
	default:
		return "", fmt.Errorf("insertedContent: expected string or object, got %s", trimmed)
	}
}

// MarshalJSON encodes the replacement in the form it was decoded from.
func (r Replacement) MarshalJSON() ([]byte, error) {
	if r.DeletedRegion != nil {
		return json.Marshal(struct {
			DeletedRegion   *Region          `json:"deletedRegion"`
			InsertedContent *ArtifactContent `json:"insertedContent,omitempty"`
		}{
			DeletedRegion:   r.DeletedRegion,
			InsertedContent: &ArtifactContent{Text: r.edit.InsertedContent},
		})
	}
	return json.Marshal(r.edit)
}
