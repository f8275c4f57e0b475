package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifapply/pkg/applier"
	"github.com/yaklabco/sarifapply/pkg/reporter"
)

const sampleDiff = "diff --git a/src/app.py b/src/app.py\n" +
	"--- a/src/app.py\n" +
	"+++ b/src/app.py\n" +
	"@@ -1,2 +1,1 @@\n" +
	"-import os\n" +
	" print(1)\n"

func sampleResult() *applier.Result {
	return &applier.Result{
		RunID: "run-1",
		Changes: []applier.ChangeResult{
			{RuleID: "py/unused-import", URI: "src/app.py", Path: "src/app.py", Outcome: applier.Applied, Edits: 1, Commit: "abc1234"},
			{RuleID: "js/eq", URI: "web/main.js", Path: "web/main.js", Outcome: applier.FileNotFound, Reason: "file not found, skipping fix", Err: errors.New("no such file")},
			{RuleID: "other", URI: "x.go", Outcome: applier.Skipped, Reason: "rule not selected"},
		},
		Stats: applier.Stats{
			Attempted: 2,
			ByOutcome: map[applier.Outcome]int{applier.Applied: 1, applier.FileNotFound: 1, applier.Skipped: 1},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "diff reporter", format: reporter.FormatDiff},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func report(t *testing.T, format reporter.Format, result *applier.Result) string {
	t.Helper()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		Version:     "1.2.3",
	})
	require.NoError(t, err)
	require.NoError(t, rep.Report(context.Background(), result))
	return buf.String()
}

func TestTextReporter(t *testing.T) {
	out := report(t, reporter.FormatText, sampleResult())

	assert.Contains(t, out, "applied src/app.py (py/unused-import) abc1234\n")
	assert.Contains(t, out, "file-not-found web/main.js (js/eq) file not found, skipping fix: no such file\n")
	assert.NotContains(t, out, "x.go", "skipped changes are not listed")
	assert.Contains(t, out, "2 changes: 1 applied, 1 file-not-found, 1 skipped\n")
	assert.True(t, strings.HasSuffix(out, "Successfully applied 1 fix(es).\n"), out)
}

func TestTextReporter_DryRunDiff(t *testing.T) {
	result := &applier.Result{
		Changes: []applier.ChangeResult{{RuleID: "r", Path: "src/app.py", Outcome: applier.DryRun, Diff: sampleDiff}},
		Stats:   applier.Stats{Attempted: 1, ByOutcome: map[applier.Outcome]int{applier.DryRun: 1}},
	}

	out := report(t, reporter.FormatText, result)
	assert.Contains(t, out, sampleDiff)
	assert.Contains(t, out, "Dry run: 1 fix would be applied.")
}

func TestTextReporter_NilResult(t *testing.T) {
	out := report(t, reporter.FormatText, nil)
	assert.Equal(t, "No fixes to apply\nNo fixes were applied.\n", out)
}

func TestTableReporter(t *testing.T) {
	out := report(t, reporter.FormatTable, sampleResult())

	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "1 fix failed")
	assert.True(t, strings.HasSuffix(out, "Successfully applied 1 fix(es).\n"), out)
}

func TestJSONReporter(t *testing.T) {
	out := report(t, reporter.FormatJSON, sampleResult())

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.2.3", decoded.Version)
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Changes, 3)
	assert.Equal(t, applier.Applied, decoded.Changes[0].Outcome)
	assert.Equal(t, "abc1234", decoded.Changes[0].Commit)
	assert.Equal(t, "no such file", decoded.Changes[1].Error)
	assert.Equal(t, 2, decoded.Summary.Attempted)
	assert.Equal(t, 1, decoded.Summary.Applied)
	assert.Equal(t, 1, decoded.Summary.Failed)
	assert.Equal(t, 1, decoded.Summary.ByOutcome[applier.Skipped])
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})
	require.NoError(t, rep.Report(context.Background(), nil))

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"changes":[]`)
}

func TestDiffReporter(t *testing.T) {
	result := &applier.Result{
		Changes: []applier.ChangeResult{
			{Outcome: applier.DryRun, Diff: sampleDiff},
			{Outcome: applier.NoEffectiveChange},
		},
	}

	out := report(t, reporter.FormatDiff, result)
	assert.True(t, strings.HasPrefix(out, sampleDiff), out)
	assert.Contains(t, out, "1 file changed, 0 insertions(+), 1 deletions(-)\n")
}
