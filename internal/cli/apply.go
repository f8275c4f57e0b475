package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifapply/internal/configloader"
	"github.com/yaklabco/sarifapply/internal/logging"
	"github.com/yaklabco/sarifapply/pkg/applier"
	"github.com/yaklabco/sarifapply/pkg/config"
	"github.com/yaklabco/sarifapply/pkg/fix"
	"github.com/yaklabco/sarifapply/pkg/fsutil"
	"github.com/yaklabco/sarifapply/pkg/reporter"
	"github.com/yaklabco/sarifapply/pkg/sarif"
	"github.com/yaklabco/sarifapply/pkg/vcs"
)

type applyFlags struct {
	dryRun         bool
	noCommit       bool
	rules          []string
	strictOverlaps bool
	failOnError    bool
	backup         bool
	format         string
	offsetUnit     string
}

func addApplyFlags(cmd *cobra.Command, flags *applyFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the fixes as diffs without writing or committing")
	cmd.Flags().BoolVar(&flags.noCommit, "no-commit", false, "write fixed files but do not commit them")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil, "only apply fixes for this rule ID (repeatable)")
	cmd.Flags().BoolVar(&flags.strictOverlaps, "strict-overlaps", false,
		"fail a change whose replacements overlap instead of applying it")
	cmd.Flags().BoolVar(&flags.failOnError, "fail-on-error", false, "exit 1 when any fix could not be applied")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a copy of each file before patching it")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, diff")
	cmd.Flags().StringVar(&flags.offsetUnit, "offset-unit", "chars",
		"unit of replacement offsets: chars or bytes")
}

// overrides collects the flags that were set explicitly, so that unset flags
// leave configured values alone.
func (f *applyFlags) overrides(cmd *cobra.Command, globals *globalFlags) *configloader.Overrides {
	o := &configloader.Overrides{}
	changed := cmd.Flags().Changed

	boolFlags := []struct {
		name  string
		value bool
		dst   **bool
	}{
		{"dry-run", f.dryRun, &o.DryRun},
		{"no-commit", f.noCommit, &o.NoCommit},
		{"strict-overlaps", f.strictOverlaps, &o.StrictOverlaps},
		{"fail-on-error", f.failOnError, &o.FailOnError},
		{"backup", f.backup, &o.Backups},
	}
	for _, flag := range boolFlags {
		if changed(flag.name) {
			value := flag.value
			*flag.dst = &value
		}
	}

	if changed("format") {
		format := config.OutputFormat(f.format)
		o.Format = &format
	}
	if changed("offset-unit") {
		unit := config.OffsetUnit(f.offsetUnit)
		o.OffsetUnit = &unit
	}
	if changed("color") {
		color := config.ColorMode(globals.color)
		o.Color = &color
	}
	o.Rules = f.rules

	return o
}

func runApply(cmd *cobra.Command, reportPath string, globals *globalFlags, flags *applyFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := resolveWorkDir(globals.workDir)
	if err != nil {
		return usageError(err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		Overrides:    flags.overrides(cmd, globals),
	})
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("load configuration: %w", err)}
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration",
			logging.FieldConfig, loadResult.LoadedFrom,
			logging.FieldWorkingDir, workDir,
		)
	}
	cfg := loadResult.Config

	report, err := sarif.Load(ctx, reportPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded report",
		logging.FieldReport, reportPath,
		logging.FieldChanges, report.Changes(),
	)

	opts, err := applierOptions(cfg, workDir, logger)
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}

	if !cfg.DryRun && !cfg.NoCommit && !vcs.Available() {
		logger.Warn("git not found on PATH; fixes will be written but every commit will fail")
	}

	result, err := applier.New(vcs.NewGit(workDir, cfg.Git), opts).Apply(ctx, report)
	if err != nil {
		return fmt.Errorf("apply report: %w", err)
	}

	logger.Debug("run finished",
		logging.FieldRunID, result.RunID,
		logging.FieldApplied, result.Applied(),
		logging.FieldFailed, result.Stats.Failed(),
	)

	repOpts := reporter.DefaultOptions()
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.Format = reporter.Format(cfg.Format)
	repOpts.Color = string(cfg.Color)
	repOpts.Version = info.Version
	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.FailOnError && result.HasFailures() {
		return ErrPartialFailure
	}
	return nil
}

// applierOptions translates the resolved configuration into applier options.
func applierOptions(cfg *config.Config, workDir string, logger *log.Logger) (applier.Options, error) {
	unit, err := fix.ParseUnit(string(cfg.OffsetUnit))
	if err != nil {
		return applier.Options{}, fmt.Errorf("offset unit: %w", err)
	}

	opts := applier.DefaultOptions()
	opts.WorkDir = workDir
	opts.Unit = unit
	opts.StrictOverlaps = cfg.StrictOverlaps
	opts.DryRun = cfg.DryRun
	opts.NoCommit = cfg.NoCommit
	opts.Diffs = cfg.Format == config.FormatDiff
	opts.Rules = cfg.Rules
	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	opts.Trailer = cfg.Commit.Trailer
	opts.Logger = logger
	return opts, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve --workdir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("--workdir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("--workdir %s is not a directory", abs)
	}
	return abs, nil
}
