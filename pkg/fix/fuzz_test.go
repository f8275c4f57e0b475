package fix_test

import (
	"testing"

	"github.com/yaklabco/sarifapply/pkg/fix"
)

func FuzzReconstruct(f *testing.F) {
	f.Add("hello world", 6, 5, "there", 0, 0, "")
	f.Add("abcdef", 4, 0, "Y", 1, 0, "X")
	f.Add("", 0, 0, "x", 0, 0, "y")
	f.Add("overlap", 1, 4, "A", 2, 3, "B")

	f.Fuzz(func(t *testing.T, content string, off1, del1 int, ins1 string, off2, del2 int, ins2 string) {
		edits := []fix.Edit{
			{Offset: off1, DeletedLength: del1, InsertedContent: ins1},
			{Offset: off2, DeletedLength: del2, InsertedContent: ins2},
		}

		got, err := fix.ReconstructString(content, edits)
		if err != nil {
			// Only out-of-range input may fail.
			if fix.ValidateEdits(edits, len(content)) == nil {
				t.Fatalf("valid edits rejected: %v", err)
			}
			return
		}

		// The output holds every inserted string and never more of the
		// original than was there.
		maxLen := len(content) + len(ins1) + len(ins2)
		if len(got) > maxLen {
			t.Fatalf("result length %d exceeds %d", len(got), maxLen)
		}

		// Without overlap the result is independent of input order.
		if fix.DetectOverlaps(fix.SortedCopy(edits)) == nil && off1 != off2 {
			reversed, err := fix.ReconstructString(content, []fix.Edit{edits[1], edits[0]})
			if err != nil {
				t.Fatalf("reversed order failed: %v", err)
			}
			if reversed != got {
				t.Fatalf("order dependence: %q vs %q", got, reversed)
			}
		}
	})
}

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("hello"), []byte("world"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("line1\nline2\nline3\n"), []byte("line1\nline3\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff, err := fix.GenerateDiff("test.txt", original, modified)
		if err != nil {
			t.Fatalf("GenerateDiff() error = %v", err)
		}
		if diff == nil {
			return
		}

		for idx, hunk := range diff.Hunks {
			if hunk.OrigStartLine < 0 || hunk.NewStartLine < 0 {
				t.Errorf("hunk %d: negative start line", idx)
			}
			if hunk.OrigLines == 0 && hunk.NewLines == 0 {
				t.Errorf("hunk %d: empty on both sides", idx)
			}
		}

		if _, err := diff.Render(); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	})
}
