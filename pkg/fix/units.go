package fix

import "unicode/utf8"

// CharIndex maps code point offsets to byte offsets within one piece of content.
// Invalid UTF-8 bytes count as one character each.
type CharIndex struct {
	starts []int
}

// NewCharIndex builds the index for content.
func NewCharIndex(content []byte) *CharIndex {
	starts := make([]int, 0, len(content)+1)
	for pos := 0; pos < len(content); {
		starts = append(starts, pos)
		_, size := utf8.DecodeRune(content[pos:])
		pos += size
	}
	starts = append(starts, len(content))
	return &CharIndex{starts: starts}
}

// Len returns the number of characters in the indexed content.
func (x *CharIndex) Len() int {
	return len(x.starts) - 1
}

// ByteOffset returns the byte offset of character offset char.
// Offsets equal to Len map to the end of the content.
func (x *CharIndex) ByteOffset(char int) (int, bool) {
	if char < 0 || char >= len(x.starts) {
		return 0, false
	}
	return x.starts[char], true
}

// ToBytes converts a character-addressed edit into a byte-addressed one.
func (x *CharIndex) ToBytes(edit Edit) (Edit, error) {
	if err := ValidateEdits([]Edit{edit}, x.Len()); err != nil {
		return Edit{}, err
	}

	start, _ := x.ByteOffset(edit.Offset)
	end, _ := x.ByteOffset(edit.End())

	return Edit{
		Offset:          start,
		DeletedLength:   end - start,
		InsertedContent: edit.InsertedContent,
	}, nil
}

// CharsToBytes converts character-addressed edits against content into
// byte-addressed edits, preserving their order.
func CharsToBytes(content []byte, edits []Edit) ([]Edit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	index := NewCharIndex(content)
	converted := make([]Edit, 0, len(edits))
	for _, edit := range edits {
		byteEdit, err := index.ToBytes(edit)
		if err != nil {
			return nil, err
		}
		converted = append(converted, byteEdit)
	}
	return converted, nil
}
