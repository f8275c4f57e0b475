package sarif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yaklabco/sarifapply/pkg/fsutil"
)

// InputKind classifies why a report could not be loaded.
type InputKind int

const (
	// InputNotFound means the report path does not exist.
	InputNotFound InputKind = iota
	// InputUnreadable means the report exists but could not be read.
	InputUnreadable
	// InputMalformed means the report is not a valid SARIF document.
	InputMalformed
)

func (k InputKind) String() string {
	switch k {
	case InputNotFound:
		return "not found"
	case InputUnreadable:
		return "unreadable"
	case InputMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
}

// InputError is returned when a report cannot be loaded. It is fatal to a run.
type InputError struct {
	Path string
	Kind InputKind
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("report %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("report %s %s: %v", e.Path, e.Kind, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Load reads and parses the SARIF report at path.
func Load(ctx context.Context, path string) (*Report, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		kind := InputUnreadable
		if errors.Is(err, fsutil.ErrNotFound) {
			kind = InputNotFound
		}
		return nil, &InputError{Path: path, Kind: kind, Err: err}
	}

	report, err := Parse(data)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			inputErr.Path = path
		}
		return nil, err
	}
	return report, nil
}

// Parse decodes a SARIF report from data.
func Parse(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &InputError{Kind: InputMalformed, Err: err}
	}
	if report.Runs == nil {
		return nil, &InputError{Kind: InputMalformed, Err: errors.New(`missing "runs"`)}
	}
	return &report, nil
}
