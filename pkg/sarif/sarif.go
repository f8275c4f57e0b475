// Package sarif models the parts of a SARIF 2.1.0 log that carry suggested
// fixes, and loads such logs from disk.
package sarif

// UnknownRule is the rule ID reported for results without one.
const UnknownRule = "UnknownRule"

// Report is the root SARIF document.
type Report struct {
	Schema  string `json:"$schema,omitempty"`
	Version string `json:"version,omitempty"`
	Runs    []Run  `json:"runs"`
}

// Run is a single analysis run.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool that produced a run.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver holds the tool name and version.
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Result is a single rule violation.
type Result struct {
	RuleID  string   `json:"ruleId,omitempty"`
	RuleRef *RuleRef `json:"rule,omitempty"`
	Message Message  `json:"message"`
	Fixes   []Fix    `json:"fixes,omitempty"`
}

// RuleRef references a rule by ID when ruleId is not set directly.
type RuleRef struct {
	ID string `json:"id,omitempty"`
}

// Rule returns the result's rule ID, or UnknownRule if it has none.
func (r *Result) Rule() string {
	if r.RuleID != "" {
		return r.RuleID
	}
	if r.RuleRef != nil && r.RuleRef.ID != "" {
		return r.RuleRef.ID
	}
	return UnknownRule
}

// Message is SARIF message text in plain and/or markdown form.
type Message struct {
	Text     string `json:"text,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// Plain returns the message as plain text, rendering markdown when no plain
// text is present.
func (m Message) Plain() string {
	if m.Text != "" {
		return m.Text
	}
	if m.Markdown != "" {
		return PlainText(m.Markdown)
	}
	return ""
}

// Fix is a proposed remediation for a result, possibly spanning several files.
type Fix struct {
	Description     Message          `json:"description"`
	ArtifactChanges []ArtifactChange `json:"artifactChanges"`
}

// ArtifactChange is the portion of a fix that applies to a single file.
type ArtifactChange struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Replacements     []Replacement    `json:"replacements"`
}

// ArtifactLocation identifies a file.
type ArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// Region is a span of an artifact. Only the offset-based fields can address
// a replacement; line and column fields are decoded for diagnostics.
type Region struct {
	StartLine   int    `json:"startLine,omitempty"`
	StartColumn int    `json:"startColumn,omitempty"`
	EndLine     int    `json:"endLine,omitempty"`
	EndColumn   int    `json:"endColumn,omitempty"`
	CharOffset  *int64 `json:"charOffset,omitempty"`
	CharLength  *int64 `json:"charLength,omitempty"`
	ByteOffset  *int64 `json:"byteOffset,omitempty"`
	ByteLength  *int64 `json:"byteLength,omitempty"`
}

// ArtifactContent is inserted replacement content.
type ArtifactContent struct {
	Text string `json:"text"`
}

// Changes returns the number of artifact changes across all fixes in the report.
func (r *Report) Changes() int {
	total := 0
	for _, run := range r.Runs {
		for _, result := range run.Results {
			for _, fix := range result.Fixes {
				total += len(fix.ArtifactChanges)
			}
		}
	}
	return total
}
