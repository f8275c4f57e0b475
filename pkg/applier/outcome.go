package applier

import "fmt"

// Outcome is the classified result of attempting one artifact change.
type Outcome int

const (
	// Applied means the file was patched and the change committed.
	Applied Outcome = iota

	// NoEffectiveChange means the patched content equals the original.
	NoEffectiveChange

	// FileNotFound means the target file does not exist.
	FileNotFound

	// CommitFailed means the file was patched on disk but staging or
	// committing it failed.
	CommitFailed

	// ProcessingError covers every other failure while applying a change.
	ProcessingError

	// DryRun means the change would have been applied; nothing was written.
	DryRun

	// Written means the file was patched and committing was disabled.
	Written

	// Skipped means the change was not attempted. Skipped changes are not
	// counted as attempts.
	Skipped
)

var outcomeNames = [...]string{
	Applied:           "applied",
	NoEffectiveChange: "no-effective-change",
	FileNotFound:      "file-not-found",
	CommitFailed:      "commit-failed",
	ProcessingError:   "processing-error",
	DryRun:            "dry-run",
	Written:           "written",
	Skipped:           "skipped",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Failed reports whether the outcome is one of the per-change failures.
func (o Outcome) Failed() bool {
	switch o {
	case FileNotFound, CommitFailed, ProcessingError:
		return true
	default:
		return false
	}
}

// Outcomes lists every outcome in display order.
func Outcomes() []Outcome {
	return []Outcome{Applied, Written, DryRun, NoEffectiveChange, FileNotFound, CommitFailed, ProcessingError, Skipped}
}
