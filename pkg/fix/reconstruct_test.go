package fix_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/sarifapply/pkg/fix"
)

func TestReconstruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.Edit
		want    string
	}{
		{
			name:    "empty edits returns original",
			content: "hello world",
			edits:   nil,
			want:    "hello world",
		},
		{
			name:    "single replacement",
			content: "hello world",
			edits: []fix.Edit{
				{Offset: 6, DeletedLength: 5, InsertedContent: "there"},
			},
			want: "hello there",
		},
		{
			name:    "unsorted insertions",
			content: "abcdef",
			edits: []fix.Edit{
				{Offset: 4, DeletedLength: 0, InsertedContent: "Y"},
				{Offset: 1, DeletedLength: 0, InsertedContent: "X"},
			},
			want: "aXbcdYef",
		},
		{
			name:    "single deletion",
			content: "hello world",
			edits: []fix.Edit{
				{Offset: 5, DeletedLength: 6},
			},
			want: "hello",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.Edit{
				{Offset: 4, DeletedLength: 2, InsertedContent: "ZZ"},
				{Offset: 0, DeletedLength: 2, InsertedContent: "XX"},
				{Offset: 2, DeletedLength: 2, InsertedContent: "YY"},
			},
			want: "XXYYZZ",
		},
		{
			name:    "insert at start and end",
			content: "middle",
			edits: []fix.Edit{
				{Offset: 6, InsertedContent: ">"},
				{Offset: 0, InsertedContent: "<"},
			},
			want: "<middle>",
		},
		{
			name:    "empty content with insertion",
			content: "",
			edits: []fix.Edit{
				{Offset: 0, InsertedContent: "hello"},
			},
			want: "hello",
		},
		{
			name:    "delete all content",
			content: "hello",
			edits: []fix.Edit{
				{Offset: 0, DeletedLength: 5},
			},
			want: "",
		},
		{
			name:    "same offset keeps input order",
			content: "ab",
			edits: []fix.Edit{
				{Offset: 1, InsertedContent: "1"},
				{Offset: 1, InsertedContent: "2"},
				{Offset: 1, InsertedContent: "3"},
			},
			want: "a123b",
		},
		{
			name:    "noop edit leaves content unchanged",
			content: "unchanged",
			edits: []fix.Edit{
				{Offset: 3},
			},
			want: "unchanged",
		},
		{
			name:    "overlapping edit emits insertion without regressing",
			content: "abcdefgh",
			edits: []fix.Edit{
				{Offset: 1, DeletedLength: 4, InsertedContent: "X"},
				{Offset: 3, DeletedLength: 1, InsertedContent: "Y"},
			},
			want: "aXYfgh",
		},
		{
			name:    "overlapping edit extends the cursor",
			content: "abcdefgh",
			edits: []fix.Edit{
				{Offset: 1, DeletedLength: 2, InsertedContent: "X"},
				{Offset: 2, DeletedLength: 4, InsertedContent: "Y"},
			},
			want: "aXYgh",
		},
		{
			name:    "contained edit does not move cursor backwards",
			content: "abcdefgh",
			edits: []fix.Edit{
				{Offset: 0, DeletedLength: 6, InsertedContent: "_"},
				{Offset: 2, DeletedLength: 1, InsertedContent: "!"},
			},
			want: "_!gh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fix.ReconstructString(tt.content, tt.edits)
			if err != nil {
				t.Fatalf("ReconstructString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReconstructString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReconstruct_OutOfBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edits []fix.Edit
	}{
		{"end past content", []fix.Edit{{Offset: 3, DeletedLength: 5}}},
		{"offset past content", []fix.Edit{{Offset: 9, InsertedContent: "x"}}},
		{"negative offset", []fix.Edit{{Offset: -1}}},
		{"negative length", []fix.Edit{{Offset: 1, DeletedLength: -1}}},
		{"one bad edit among good ones", []fix.Edit{
			{Offset: 0, InsertedContent: "ok"},
			{Offset: 4, DeletedLength: 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fix.Reconstruct([]byte("hello"), tt.edits)
			var valErr *fix.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
		})
	}
}

func TestReconstruct_SingleEditFormula(t *testing.T) {
	t.Parallel()

	content := "The quick brown fox"
	for offset := 0; offset <= len(content); offset++ {
		for deleted := 0; offset+deleted <= len(content); deleted++ {
			edit := fix.Edit{Offset: offset, DeletedLength: deleted, InsertedContent: "~"}
			want := content[:offset] + "~" + content[offset+deleted:]

			got, err := fix.ReconstructString(content, []fix.Edit{edit})
			if err != nil {
				t.Fatalf("edit %v: unexpected error %v", edit, err)
			}
			if got != want {
				t.Fatalf("edit %v: got %q, want %q", edit, got, want)
			}
		}
	}
}

func TestReconstruct_OrderIndependentForDisjointSpans(t *testing.T) {
	t.Parallel()

	content := "alpha beta gamma delta"
	edits := []fix.Edit{
		{Offset: 0, DeletedLength: 5, InsertedContent: "ALPHA"},
		{Offset: 6, DeletedLength: 4, InsertedContent: "b"},
		{Offset: 11, DeletedLength: 0, InsertedContent: "very "},
		{Offset: 17, DeletedLength: 5, InsertedContent: "DELTA!"},
	}
	want := "ALPHA b very gamma DELTA!"

	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 3, 0, 2},
	}

	for _, perm := range permutations {
		shuffled := make([]fix.Edit, 0, len(perm))
		for _, idx := range perm {
			shuffled = append(shuffled, edits[idx])
		}

		got, err := fix.ReconstructString(content, shuffled)
		if err != nil {
			t.Fatalf("order %v: unexpected error %v", perm, err)
		}
		if got != want {
			t.Errorf("order %v: got %q, want %q", perm, got, want)
		}
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	t.Parallel()

	content := "func main() {\n\tprintln(\"hi\")\n}\n"
	for offset := 0; offset < len(content); offset += 3 {
		for deleted := 0; offset+deleted <= len(content); deleted += 4 {
			edit := fix.Edit{
				Offset:          offset,
				DeletedLength:   deleted,
				InsertedContent: content[offset : offset+deleted],
			}
			got, err := fix.ReconstructString(content, []fix.Edit{edit})
			if err != nil {
				t.Fatalf("edit %v: unexpected error %v", edit, err)
			}
			if got != content {
				t.Fatalf("edit %v: round trip changed content to %q", edit, got)
			}
		}
	}
}

func TestReconstruct_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")
	original := string(content)

	edits := []fix.Edit{
		{Offset: 6, DeletedLength: 5, InsertedContent: "there"},
		{Offset: 0, DeletedLength: 5, InsertedContent: "hi"},
	}
	editsBefore := append([]fix.Edit(nil), edits...)

	if _, err := fix.Reconstruct(content, edits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(content) != original {
		t.Error("Reconstruct modified the original content")
	}
	for i := range edits {
		if edits[i] != editsBefore[i] {
			t.Errorf("edit %d changed from %v to %v", i, editsBefore[i], edits[i])
		}
	}
}
