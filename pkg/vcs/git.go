package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandError is returned when a git invocation fails.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Git drives the git CLI in a working directory.
type Git struct {
	workDir  string
	identity Identity
	binary   string
}

var _ Committer = (*Git)(nil)

// NewGit returns a Git for workDir. identity is applied by EnsureIdentity
// when the repository has no author configured; empty fields fall back to
// DefaultIdentity.
func NewGit(workDir string, identity Identity) *Git {
	def := DefaultIdentity()
	if identity.Name == "" {
		identity.Name = def.Name
	}
	if identity.Email == "" {
		identity.Email = def.Email
	}
	return &Git{workDir: workDir, identity: identity, binary: "git"}
}

// Available reports whether the git binary can be found.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// EnsureIdentity writes user.name and user.email to the repository config for
// whichever of them git cannot already resolve.
func (g *Git) EnsureIdentity(ctx context.Context) error {
	settings := []struct{ key, value string }{
		{"user.name", g.identity.Name},
		{"user.email", g.identity.Email},
	}

	for _, s := range settings {
		current, err := g.configValue(ctx, s.key)
		if err != nil {
			return err
		}
		if current != "" {
			continue
		}
		if _, err := g.run(ctx, nil, "config", "--local", s.key, s.value); err != nil {
			return err
		}
	}
	return nil
}

// configValue returns the resolved value of key, or "" if unset.
func (g *Git) configValue(ctx context.Context, key string) (string, error) {
	out, err := g.run(ctx, nil, "config", "--get", key)
	if err != nil {
		var exitErr *exec.ExitError
		// git config --get exits 1 for a missing key.
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Stage runs git add for path.
func (g *Git) Stage(ctx context.Context, path string) error {
	_, err := g.run(ctx, nil, "add", "--", path)
	return err
}

// Commit runs git commit, reading the message from stdin so multi-line
// messages survive intact.
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, strings.NewReader(message), "commit", "--quiet", "--file=-")
	return err
}

// Head returns the abbreviated hash of HEAD.
func (g *Git) Head(ctx context.Context) (string, error) {
	out, err := g.run(ctx, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Git) run(ctx context.Context, stdin *strings.Reader, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = g.workDir
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}
