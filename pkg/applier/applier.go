// Package applier applies the suggested fixes in a SARIF report to a working
// tree and commits each applied change.
package applier

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/sarifapply/internal/logging"
	"github.com/yaklabco/sarifapply/pkg/fix"
	"github.com/yaklabco/sarifapply/pkg/fsutil"
	"github.com/yaklabco/sarifapply/pkg/langdetect"
	"github.com/yaklabco/sarifapply/pkg/sarif"
	"github.com/yaklabco/sarifapply/pkg/vcs"
)

// ErrNilReport is returned by Apply when given no report.
var ErrNilReport = errors.New("nil report")

// Applier walks a report and applies each artifact change in order.
// Changes are processed one at a time so that a change to a file always sees
// the content written by earlier changes to the same file.
type Applier struct {
	vcs   vcs.Committer
	opts  Options
	log   *log.Logger
	rules map[string]struct{}
}

// New creates an Applier that records changes through committer.
func New(committer vcs.Committer, opts Options) *Applier {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var rules map[string]struct{}
	if len(opts.Rules) > 0 {
		rules = make(map[string]struct{}, len(opts.Rules))
		for _, rule := range opts.Rules {
			rules[rule] = struct{}{}
		}
	}

	return &Applier{vcs: committer, opts: opts, log: logger, rules: rules}
}

// change is one artifact change with the context needed to apply it.
type change struct {
	ruleID      string
	description string
	artifact    sarif.ArtifactChange
}

// Apply processes every artifact change in report. Per-change failures are
// recorded in the result and never stop the run; the returned error is
// non-nil only for a nil report or a cancelled context.
func (a *Applier) Apply(ctx context.Context, report *sarif.Report) (*Result, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	runID := a.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := newResult(runID)

	if a.commits() {
		if err := a.vcs.EnsureIdentity(ctx); err != nil {
			a.log.Warn("could not configure commit identity", logging.FieldError, err)
		}
	}

	for _, run := range report.Runs {
		for i := range run.Results {
			res := &run.Results[i]
			for _, proposed := range res.Fixes {
				for _, artifact := range proposed.ArtifactChanges {
					if err := ctx.Err(); err != nil {
						return result, fmt.Errorf("apply: %w", err)
					}

					result.accumulate(a.applyChange(ctx, runID, change{
						ruleID:      res.Rule(),
						description: proposed.Description.Plain(),
						artifact:    artifact,
					}))
				}
			}
		}
	}

	return result, nil
}

func (a *Applier) commits() bool {
	return !a.opts.DryRun && !a.opts.NoCommit && a.vcs != nil
}

func (a *Applier) applyChange(ctx context.Context, runID string, ch change) ChangeResult {
	uri := ch.artifact.ArtifactLocation.URI
	res := ChangeResult{
		RuleID: ch.ruleID,
		URI:    uri,
		Edits:  len(ch.artifact.Replacements),
	}
	logger := a.log.With(logging.FieldRule, ch.ruleID, logging.FieldURI, uri)

	if a.rules != nil {
		if _, ok := a.rules[ch.ruleID]; !ok {
			res.Outcome, res.Reason = Skipped, "rule not selected"
			logger.Debug("skipping change", "reason", res.Reason)
			return res
		}
	}
	if len(ch.artifact.Replacements) == 0 {
		res.Outcome, res.Reason = Skipped, "no replacements"
		logger.Debug("skipping change", "reason", res.Reason)
		return res
	}

	relPath, err := sarif.NormalizeURI(uri)
	if err != nil {
		return a.fail(logger, res, ProcessingError, "invalid artifact location", err)
	}
	res.Path = relPath
	path := a.resolve(relPath)
	logger = logger.With(logging.FieldPath, relPath)

	logger.Info("attempting fix")

	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return a.fail(logger, res, FileNotFound, "file not found, skipping fix", err)
		}
		return a.fail(logger, res, ProcessingError, "error reading file", err)
	}

	detected := langdetect.Detect(relPath, original)
	res.Language = detected.Language
	if detected.Generated || detected.Vendored {
		logger.Warn("patching generated or vendored file", logging.FieldLanguage, detected.Language)
	}

	edits, err := a.edits(original, ch.artifact.Replacements)
	if err != nil {
		return a.fail(logger, res, ProcessingError, "error resolving replacements", err)
	}
	if a.opts.StrictOverlaps {
		if err := fix.DetectOverlaps(fix.SortedCopy(edits)); err != nil {
			return a.fail(logger, res, ProcessingError, "overlapping replacements", err)
		}
	}

	patched, err := fix.Reconstruct(original, edits)
	if err != nil {
		return a.fail(logger, res, ProcessingError, "error applying replacements", err)
	}

	if bytes.Equal(patched, original) {
		res.Outcome, res.Reason = NoEffectiveChange, "patched content equals original"
		logger.Info("no effective change, skipping commit")
		return res
	}

	if a.opts.DryRun || a.opts.Diffs {
		diff, err := fix.GenerateDiff(relPath, original, patched)
		if err != nil {
			return a.fail(logger, res, ProcessingError, "error rendering diff", err)
		}
		if res.Diff, err = diff.Render(); err != nil {
			return a.fail(logger, res, ProcessingError, "error rendering diff", err)
		}
	}

	if a.opts.DryRun {
		res.Outcome = DryRun
		logger.Info("would apply fix", logging.FieldDryRun, true)
		return res
	}

	created, err := fsutil.CreateBackup(ctx, info, original, a.opts.Backup)
	if err != nil {
		return a.fail(logger, res, ProcessingError, "error creating backup", err)
	}
	if created {
		logger.Debug("backup created", logging.FieldBackup, fsutil.BackupPath(info.Target, a.opts.Backup.Mode))
	}

	if err := fsutil.Overwrite(ctx, info, patched); err != nil {
		return a.fail(logger, res, ProcessingError, "error writing file", err)
	}

	if !a.commits() {
		res.Outcome = Written
		logger.Info("wrote fix without committing")
		return res
	}

	if err := a.vcs.Stage(ctx, a.stagePath(relPath, path, info.Target)); err != nil {
		return a.fail(logger, res, CommitFailed, "error staging fix", err)
	}

	trailer := ""
	if a.opts.Trailer {
		trailer = runID
	}
	if err := a.vcs.Commit(ctx, CommitMessage(ch.ruleID, sarif.TrimFileScheme(uri), ch.description, trailer)); err != nil {
		return a.fail(logger, res, CommitFailed, "error committing fix", err)
	}

	if head, ok := a.vcs.(vcs.HeadReader); ok {
		if hash, err := head.Head(ctx); err == nil {
			res.Commit = hash
		}
	}

	res.Outcome = Applied
	logger.Info("committed fix", logging.FieldCommit, res.Commit)
	return res
}

// edits resolves replacements into byte-addressed edits against content.
func (a *Applier) edits(content []byte, replacements []sarif.Replacement) ([]fix.Edit, error) {
	var index *fix.CharIndex

	edits := make([]fix.Edit, 0, len(replacements))
	for i, repl := range replacements {
		edit, unit, err := repl.Resolve(a.opts.Unit)
		if err != nil {
			return nil, fmt.Errorf("replacement %d: %w", i, err)
		}

		if unit == fix.UnitChars {
			if index == nil {
				index = fix.NewCharIndex(content)
			}
			if edit, err = index.ToBytes(edit); err != nil {
				return nil, fmt.Errorf("replacement %d: %w", i, err)
			}
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

func (a *Applier) resolve(path string) string {
	if filepath.IsAbs(path) || a.opts.WorkDir == "" {
		return path
	}
	return filepath.Join(a.opts.WorkDir, path)
}

// stagePath names the file to stage after writing through path. When path is
// a symlink the link itself is unchanged, so its target is staged instead,
// relative to the working tree. Targets outside the tree keep relPath.
func (a *Applier) stagePath(relPath, path, target string) string {
	if target == "" || target == path {
		return relPath
	}

	root, err := filepath.EvalSymlinks(cmp.Or(a.opts.WorkDir, "."))
	if err != nil {
		return relPath
	}
	if root, err = filepath.Abs(root); err != nil {
		return relPath
	}
	if target, err = filepath.Abs(target); err != nil {
		return relPath
	}

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return relPath
	}
	return rel
}

func (a *Applier) fail(logger *log.Logger, res ChangeResult, outcome Outcome, reason string, err error) ChangeResult {
	res.Outcome, res.Reason, res.Err = outcome, reason, err
	logger.Error(reason, logging.FieldOutcome, outcome, logging.FieldError, err)
	return res
}
