// Package config defines core configuration types for sarifapply.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/sarifapply/pkg/vcs"

// OffsetUnit names the coordinate system of flat replacement offsets.
type OffsetUnit string

const (
	// OffsetChars counts Unicode code points.
	OffsetChars OffsetUnit = "chars"
	// OffsetBytes counts UTF-8 bytes.
	OffsetBytes OffsetUnit = "bytes"
)

// OutputFormat specifies how run results are reported.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatDiff  OutputFormat = "diff"
)

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// BackupsConfig controls backup behavior when patching files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode" validate:"oneof=sidecar none"`
}

// CommitConfig controls the commit recorded for each applied fix.
type CommitConfig struct {
	// Trailer appends a Sarifapply-Run trailer with the run ID.
	Trailer bool `yaml:"trailer" toml:"trailer"`
}

// Config is the root configuration structure for sarifapply.
type Config struct {
	// OffsetUnit is the unit of flat replacement offsets ("chars" or "bytes").
	OffsetUnit OffsetUnit `yaml:"offset_unit" toml:"offset_unit" validate:"oneof=chars bytes"`

	// StrictOverlaps rejects changes whose edits overlap.
	StrictOverlaps bool `yaml:"strict_overlaps" toml:"strict_overlaps"`

	// DryRun computes fixes without writing or committing.
	DryRun bool `yaml:"dry_run" toml:"dry_run"`

	// NoCommit writes patched files without committing them.
	NoCommit bool `yaml:"no_commit" toml:"no_commit"`

	// Rules limits application to these rule IDs. Empty means all rules.
	Rules []string `yaml:"rules" toml:"rules" validate:"dive,required"`

	// FailOnError exits non-zero when any change failed.
	FailOnError bool `yaml:"fail_on_error" toml:"fail_on_error"`

	// Format is the report output format.
	Format OutputFormat `yaml:"format" toml:"format" validate:"oneof=text table json diff"`

	// Color controls styled output.
	Color ColorMode `yaml:"color" toml:"color" validate:"oneof=auto always never"`

	// Backups configures pre-fix copies of patched files.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// Git is the commit identity configured when the repository has none.
	Git vcs.Identity `yaml:"git" toml:"git"`

	// Commit configures commit messages.
	Commit CommitConfig `yaml:"commit" toml:"commit"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		OffsetUnit: OffsetChars,
		Format:     FormatText,
		Color:      ColorAuto,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Git:    vcs.DefaultIdentity(),
		Commit: CommitConfig{Trailer: true},
	}
}
