package configloader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yaklabco/sarifapply/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Lazily built, safe for concurrent use.
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator, reporting fields by their
// config file key rather than their Go name.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for an empty tag or nil function.
		_ = validate.RegisterValidation("gitemail", isGitEmail)
	})
	return validate
}

// isGitEmail accepts addresses git can record as an author: a local part and
// a domain around one "@", with no whitespace or angle brackets. Bot
// accounts such as "github-actions[bot]@users.noreply.github.com" pass.
func isGitEmail(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	local, domain, found := strings.Cut(value, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return false
	}
	return !strings.ContainsAny(value, "<> \t\r\n")
}

// Validate checks the configuration for errors and potential issues.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.Errors = append(result.Errors, ValidationError{Message: "configuration is nil"})
		return result
	}

	if err := structValidator().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
			return result
		}
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Value:   fe.Value(),
				Message: describe(fe),
			})
		}
	}

	if cfg.Backups.Enabled && cfg.Backups.Mode == "none" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups",
			Message: "backups.enabled is true but backups.mode is none; no backups will be written",
		})
	}
	if cfg.DryRun && cfg.NoCommit {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "no_commit",
			Message: "no_commit has no effect in dry-run mode",
		})
	}

	return result
}

// ValidateWithFile validates and attaches the file path to every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("invalid value %q (expected one of: %s)", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gitemail":
		return fmt.Sprintf("invalid email address %q", fe.Value())
	case "required":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
