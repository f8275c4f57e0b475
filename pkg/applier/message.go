package applier

import (
	"fmt"
	"strings"
)

// TrailerKey is the git trailer that ties a commit to the run that made it.
const TrailerKey = "Sarifapply-Run"

// CommitMessage builds the commit message for one applied change. The
// subject names the rule and the artifact URI as given in the report.
func CommitMessage(ruleID, uri, description, runID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fix: %s - %s\n", ruleID, uri)

	if description = strings.TrimSpace(description); description != "" {
		b.WriteString("\n")
		b.WriteString(description)
		b.WriteString("\n")
	}

	if runID != "" {
		fmt.Fprintf(&b, "\n%s: %s\n", TrailerKey, runID)
	}
	return b.String()
}
