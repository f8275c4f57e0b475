package applier_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifapply/pkg/applier"
)

func TestOutcome_Text(t *testing.T) {
	for _, outcome := range applier.Outcomes() {
		t.Run(outcome.String(), func(t *testing.T) {
			text, err := outcome.MarshalText()
			require.NoError(t, err)

			var back applier.Outcome
			require.NoError(t, back.UnmarshalText(text))
			assert.Equal(t, outcome, back)
		})
	}

	var bad applier.Outcome
	require.Error(t, bad.UnmarshalText([]byte("exploded")))
	assert.Equal(t, "Outcome(42)", applier.Outcome(42).String())
}

func TestOutcome_Failed(t *testing.T) {
	failed := map[applier.Outcome]bool{
		applier.FileNotFound:    true,
		applier.CommitFailed:    true,
		applier.ProcessingError: true,
	}
	for _, outcome := range applier.Outcomes() {
		assert.Equal(t, failed[outcome], outcome.Failed(), outcome.String())
	}
}

func TestResult_JSON(t *testing.T) {
	res := applier.Result{
		RunID: "run-1",
		Changes: []applier.ChangeResult{
			{RuleID: "r", URI: "a.go", Outcome: applier.NoEffectiveChange, Edits: 1},
		},
		Stats: applier.Stats{
			Attempted: 1,
			ByOutcome: map[applier.Outcome]int{applier.NoEffectiveChange: 1},
		},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"outcome":"no-effective-change"`)
	assert.Contains(t, string(data), `"byOutcome":{"no-effective-change":1}`)
}

func TestCommitMessage(t *testing.T) {
	tests := []struct {
		name        string
		description string
		runID       string
		want        string
	}{
		{name: "subject only", want: "Fix: js/x - src/a.js\n"},
		{name: "with body", description: "  Use strict equality.\n", want: "Fix: js/x - src/a.js\n\nUse strict equality.\n"},
		{name: "with trailer", runID: "abc", want: "Fix: js/x - src/a.js\n\nSarifapply-Run: abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applier.CommitMessage("js/x", "src/a.js", tt.description, tt.runID))
		})
	}
}
