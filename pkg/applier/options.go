package applier

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/sarifapply/pkg/fix"
	"github.com/yaklabco/sarifapply/pkg/fsutil"
)

// Options controls how a report is applied.
type Options struct {
	// WorkDir is the directory relative artifact paths resolve against. It
	// should be the root of the working tree the committer operates on.
	// Empty means the process working directory.
	WorkDir string

	// Unit is the coordinate system of flat replacement offsets. Replacements
	// given as a deletedRegion carry their own unit.
	Unit fix.Unit

	// StrictOverlaps rejects a change whose edits overlap instead of applying
	// them with the later edit's unconsumed tail.
	StrictOverlaps bool

	// DryRun computes every change and its diff without writing or committing.
	DryRun bool

	// Diffs records a unified diff for every change that alters a file.
	// Dry runs always record one.
	Diffs bool

	// NoCommit writes patched files but leaves version control alone.
	NoCommit bool

	// Rules limits application to results with these rule IDs. Empty means all.
	Rules []string

	// Backup controls pre-fix copies of patched files.
	Backup fsutil.BackupConfig

	// Trailer appends a run identifier trailer to commit messages.
	Trailer bool

	// RunID identifies this run in commit trailers. Empty means a fresh UUID.
	RunID string

	// Logger receives one progress line per attempted change. Nil discards.
	Logger *log.Logger
}

// DefaultOptions returns options matching the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Unit:    fix.UnitChars,
		Backup:  fsutil.DefaultBackupConfig(),
		Trailer: true,
	}
}
