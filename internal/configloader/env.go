package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/sarifapply/pkg/config"
)

// envVarPrefix is the prefix for all sarifapply environment variables.
const envVarPrefix = "SARIFAPPLY_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"OFFSET_UNIT":     {field: "offset_unit", typ: envTypeString, description: "Offset unit of flat replacements: chars or bytes"},
	"STRICT_OVERLAPS": {field: "strict_overlaps", typ: envTypeBool, description: "Reject overlapping edits: true or false"},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool, description: "Dry-run mode: true or false"},
	"NO_COMMIT":       {field: "no_commit", typ: envTypeBool, description: "Write fixes without committing: true or false"},
	"RULES":           {field: "rules", typ: envTypeSlice, description: "Comma-separated list of rule IDs to apply"},
	"FAIL_ON_ERROR":   {field: "fail_on_error", typ: envTypeBool, description: "Exit 1 when any fix failed: true or false"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: text, table, json, or diff"},
	"COLOR":           {field: "color", typ: envTypeString, description: "Color output: auto, always, or never"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Keep a copy of each file before patching: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"GIT_NAME":        {field: "git.name", typ: envTypeString, description: "Commit author name used when the repository has none"},
	"GIT_EMAIL":       {field: "git.email", typ: envTypeString, description: "Commit author email used when the repository has none"},
	"COMMIT_TRAILER":  {field: "commit.trailer", typ: envTypeBool, description: "Append a run ID trailer to commits: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SARIFAPPLY_ (e.g., SARIFAPPLY_DRY_RUN).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{
				Field:   envVar,
				Value:   value,
				Message: "invalid boolean (expected true/false/1/0)",
			}
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "offset_unit":
		cfg.OffsetUnit = config.OffsetUnit(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "git.name":
		cfg.Git.Name = value
	case "git.email":
		cfg.Git.Email = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict_overlaps":
		cfg.StrictOverlaps = value
	case "dry_run":
		cfg.DryRun = value
	case "no_commit":
		cfg.NoCommit = value
	case "fail_on_error":
		cfg.FailOnError = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "commit.trailer":
		cfg.Commit.Trailer = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "rules":
		cfg.Rules = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
