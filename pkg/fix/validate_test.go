package fix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/sarifapply/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.Edit
		contentLen int
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "empty edits",
			edits:      nil,
			contentLen: 10,
		},
		{
			name: "valid edits",
			edits: []fix.Edit{
				{Offset: 0, DeletedLength: 5, InsertedContent: "hello"},
				{Offset: 5, DeletedLength: 5, InsertedContent: "world"},
			},
			contentLen: 10,
		},
		{
			name: "negative offset",
			edits: []fix.Edit{
				{Offset: -1, DeletedLength: 5},
			},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "offset is negative",
		},
		{
			name: "negative deleted length",
			edits: []fix.Edit{
				{Offset: 5, DeletedLength: -2},
			},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "deleted length is negative",
		},
		{
			name: "end exceeds content length",
			edits: []fix.Edit{
				{Offset: 5, DeletedLength: 10},
			},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "exceeds content length",
		},
		{
			name: "insertion at end of content",
			edits: []fix.Edit{
				{Offset: 10, InsertedContent: "tail"},
			},
			contentLen: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, tt.contentLen)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var valErr *fix.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error message %q does not contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.Edit{
		{Offset: 8, InsertedContent: "d"},
		{Offset: 2, InsertedContent: "a"},
		{Offset: 5, InsertedContent: "c"},
		{Offset: 2, DeletedLength: 3, InsertedContent: "b"},
	}

	fix.SortEdits(edits)

	var got strings.Builder
	for _, e := range edits {
		got.WriteString(e.InsertedContent)
	}
	if got.String() != "abcd" {
		t.Errorf("sorted order = %q, want %q", got.String(), "abcd")
	}
}

func TestSortedCopy_LeavesInputUntouched(t *testing.T) {
	t.Parallel()

	edits := []fix.Edit{{Offset: 3}, {Offset: 1}}
	sorted := fix.SortedCopy(edits)

	if edits[0].Offset != 3 || edits[1].Offset != 1 {
		t.Errorf("input reordered: %v", edits)
	}
	if sorted[0].Offset != 1 || sorted[1].Offset != 3 {
		t.Errorf("copy not sorted: %v", sorted)
	}
}

func TestDetectOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.Edit
		wantErr bool
	}{
		{name: "empty", edits: nil},
		{name: "single", edits: []fix.Edit{{Offset: 0, DeletedLength: 5}}},
		{
			name: "adjacent spans",
			edits: []fix.Edit{
				{Offset: 0, DeletedLength: 5},
				{Offset: 5, DeletedLength: 5},
			},
		},
		{
			name: "insertions at the same offset",
			edits: []fix.Edit{
				{Offset: 3, InsertedContent: "a"},
				{Offset: 3, InsertedContent: "b"},
			},
		},
		{
			name: "insertion inside deleted span",
			edits: []fix.Edit{
				{Offset: 0, DeletedLength: 5},
				{Offset: 2, InsertedContent: "x"},
			},
			wantErr: true,
		},
		{
			name: "overlap with an earlier wide span",
			edits: []fix.Edit{
				{Offset: 0, DeletedLength: 10},
				{Offset: 2, DeletedLength: 1},
				{Offset: 6, DeletedLength: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.DetectOverlaps(tt.edits)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var overlapErr *fix.OverlapError
			if !errors.As(err, &overlapErr) {
				t.Fatalf("expected OverlapError, got %v", err)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    fix.Unit
		wantErr bool
	}{
		{"chars", fix.UnitChars, false},
		{"char", fix.UnitChars, false},
		{"", fix.UnitChars, false},
		{"bytes", fix.UnitBytes, false},
		{"byte", fix.UnitBytes, false},
		{"runes", fix.UnitChars, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := fix.ParseUnit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
