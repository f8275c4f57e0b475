// Package vcs records applied fixes in version control.
package vcs

import "context"

// Committer is the version-control side of applying a fix. Implementations
// operate on a single working tree.
type Committer interface {
	// EnsureIdentity sets the commit author if the repository has none. It is
	// idempotent.
	EnsureIdentity(ctx context.Context) error

	// Stage adds the file at path to the next commit.
	Stage(ctx context.Context, path string) error

	// Commit records the staged changes with message.
	Commit(ctx context.Context, message string) error
}

// HeadReader is implemented by committers that can name the commit they
// just made.
type HeadReader interface {
	Head(ctx context.Context) (string, error)
}

// Identity is a commit author.
type Identity struct {
	Name  string `yaml:"name" toml:"name"`
	Email string `yaml:"email" toml:"email" validate:"omitempty,gitemail"`
}

// DefaultIdentity is used when the repository has no author configured.
func DefaultIdentity() Identity {
	return Identity{
		Name:  "github-actions[bot]",
		Email: "github-actions[bot]@users.noreply.github.com",
	}
}
