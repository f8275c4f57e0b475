package configloader

import "github.com/yaklabco/sarifapply/pkg/config"

// Overrides holds values set explicitly on the command line. A nil field was
// not given and leaves the configured value alone, so a flag can turn an
// option off as well as on.
type Overrides struct {
	OffsetUnit     *config.OffsetUnit
	StrictOverlaps *bool
	DryRun         *bool
	NoCommit       *bool
	FailOnError    *bool
	Backups        *bool
	Format         *config.OutputFormat
	Color          *config.ColorMode

	// Rules replaces the configured rule list when non-empty.
	Rules []string
}

// apply merges the overrides into cfg.
// The merge follows these rules:
//   - Scalars: a non-nil override replaces the configured value
//   - Slices: a non-empty override replaces the configured slice entirely
func (o *Overrides) apply(cfg *config.Config) {
	if o == nil || cfg == nil {
		return
	}

	if o.OffsetUnit != nil {
		cfg.OffsetUnit = *o.OffsetUnit
	}
	if o.Format != nil {
		cfg.Format = *o.Format
	}
	if o.Color != nil {
		cfg.Color = *o.Color
	}

	if o.StrictOverlaps != nil {
		cfg.StrictOverlaps = *o.StrictOverlaps
	}
	if o.DryRun != nil {
		cfg.DryRun = *o.DryRun
	}
	if o.NoCommit != nil {
		cfg.NoCommit = *o.NoCommit
	}
	if o.FailOnError != nil {
		cfg.FailOnError = *o.FailOnError
	}
	if o.Backups != nil {
		cfg.Backups.Enabled = *o.Backups
	}

	if len(o.Rules) > 0 {
		cfg.Rules = make([]string, len(o.Rules))
		copy(cfg.Rules, o.Rules)
	}
}
