package applier

// ChangeResult is the outcome of one artifact change.
type ChangeResult struct {
	// RuleID is the rule of the result the fix belongs to.
	RuleID string `json:"ruleId"`

	// URI is the artifact location as written in the report.
	URI string `json:"uri"`

	// Path is the filesystem path the URI resolved to.
	Path string `json:"path,omitempty"`

	Outcome Outcome `json:"outcome"`

	// Edits is the number of replacements in the change.
	Edits int `json:"edits"`

	// Language is the detected language of the target file.
	Language string `json:"language,omitempty"`

	// Commit is the hash of the commit recording the change, when known.
	Commit string `json:"commit,omitempty"`

	// Diff is the unified diff of the change, recorded in dry-run mode or
	// when Options.Diffs is set.
	Diff string `json:"diff,omitempty"`

	// Reason explains skips and failures.
	Reason string `json:"reason,omitempty"`

	// Err is the underlying error for failures.
	Err error `json:"-"`
}

// Stats captures aggregate information about a run.
type Stats struct {
	// Attempted is the number of changes processed, excluding skips.
	Attempted int `json:"attempted"`

	// ByOutcome counts changes per outcome, skips included.
	ByOutcome map[Outcome]int `json:"byOutcome"`
}

// Count returns the number of changes with outcome o.
func (s Stats) Count(o Outcome) int {
	return s.ByOutcome[o]
}

// Failed returns the number of changes that failed.
func (s Stats) Failed() int {
	return s.Count(FileNotFound) + s.Count(CommitFailed) + s.Count(ProcessingError)
}

// Result is the overall result of applying a report.
type Result struct {
	// RunID identifies the run; it appears in commit trailers.
	RunID string `json:"runId"`

	// Changes holds one entry per artifact change in report order.
	Changes []ChangeResult `json:"changes"`

	Stats Stats `json:"stats"`
}

// Applied returns the number of fixes applied and committed.
func (r *Result) Applied() int {
	if r == nil {
		return 0
	}
	return r.Stats.Count(Applied)
}

// HasFailures reports whether any change failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Failed() > 0
}

func newResult(runID string) *Result {
	return &Result{
		RunID: runID,
		Stats: Stats{ByOutcome: make(map[Outcome]int)},
	}
}

// accumulate records a change result.
func (r *Result) accumulate(change ChangeResult) {
	r.Changes = append(r.Changes, change)
	r.Stats.ByOutcome[change.Outcome]++
	if change.Outcome != Skipped {
		r.Stats.Attempted++
	}
}
