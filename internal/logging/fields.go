// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldReport     = "report"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"

	// Fix fields.
	FieldRule     = "rule"
	FieldURI      = "uri"
	FieldOutcome  = "outcome"
	FieldEdits    = "edits"
	FieldUnit     = "unit"
	FieldLanguage = "language"
	FieldCommit   = "commit"
	FieldBackup   = "backup"

	// Run fields.
	FieldRunID   = "run_id"
	FieldDryRun  = "dry_run"
	FieldChanges = "changes"
	FieldApplied = "applied"
	FieldFailed  = "failed"

	// Version fields.
	FieldVersion = "version"
	FieldBuilt   = "built"
	FieldSHA     = "sha"
)
