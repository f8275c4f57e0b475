package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/sarifapply/pkg/applier"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string       `json:"version"`
	RunID   string       `json:"runId"`
	Changes []JSONChange `json:"changes"`
	Summary JSONSummary  `json:"summary"`
}

// JSONChange is one artifact change.
type JSONChange struct {
	applier.ChangeResult

	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Attempted int                     `json:"attempted"`
	Applied   int                     `json:"applied"`
	Failed    int                     `json:"failed"`
	ByOutcome map[applier.Outcome]int `json:"byOutcome"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *applier.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *applier.Result) *JSONOutput {
	output := &JSONOutput{
		Version: r.opts.Version,
		Changes: make([]JSONChange, 0),
		Summary: JSONSummary{ByOutcome: make(map[applier.Outcome]int)},
	}
	if result == nil {
		return output
	}

	output.RunID = result.RunID
	for _, change := range result.Changes {
		jc := JSONChange{ChangeResult: change}
		if change.Err != nil {
			jc.Error = change.Err.Error()
		}
		output.Changes = append(output.Changes, jc)
	}

	output.Summary.Attempted = result.Stats.Attempted
	output.Summary.Applied = result.Applied()
	output.Summary.Failed = result.Stats.Failed()
	for outcome, n := range result.Stats.ByOutcome {
		output.Summary.ByOutcome[outcome] = n
	}
	return output
}
