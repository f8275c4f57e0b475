package vcs_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifapply/pkg/vcs"
)

// initRepo creates an empty repository isolated from the user's git config.
func initRepo(t *testing.T) string {
	t.Helper()
	if !vcs.Available() {
		t.Skip("git not installed")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, "gitconfig"))
	for _, key := range []string{"GIT_AUTHOR_NAME", "GIT_AUTHOR_EMAIL", "GIT_COMMITTER_NAME", "GIT_COMMITTER_EMAIL", "EMAIL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	gitCmd(t, dir, "init", "--quiet")
	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

func TestGit_EnsureIdentity(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()

	git := vcs.NewGit(dir, vcs.Identity{Name: "Fixer"})
	require.NoError(t, git.EnsureIdentity(ctx))

	assert.Equal(t, "Fixer", gitCmd(t, dir, "config", "--local", "user.name"))
	assert.Equal(t, vcs.DefaultIdentity().Email, gitCmd(t, dir, "config", "--local", "user.email"))

	// An existing identity is kept.
	gitCmd(t, dir, "config", "--local", "user.name", "Someone Else")
	require.NoError(t, git.EnsureIdentity(ctx))
	assert.Equal(t, "Someone Else", gitCmd(t, dir, "config", "--local", "user.name"))
}

func TestGit_StageAndCommit(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()
	git := vcs.NewGit(dir, vcs.DefaultIdentity())
	require.NoError(t, git.EnsureIdentity(ctx))

	path := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))

	require.NoError(t, git.Stage(ctx, "app.py"))
	require.NoError(t, git.Commit(ctx, "Fix: py/rule - app.py\n\nLonger description.\n"))

	assert.Equal(t, "Fix: py/rule - app.py", gitCmd(t, dir, "log", "-1", "--format=%s"))
	assert.Equal(t, "Longer description.", gitCmd(t, dir, "log", "-1", "--format=%b"))
	assert.Equal(t, "github-actions[bot]", gitCmd(t, dir, "log", "-1", "--format=%an"))

	head, err := git.Head(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, head)
}

func TestGit_CommitNothingStaged(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()
	git := vcs.NewGit(dir, vcs.DefaultIdentity())
	require.NoError(t, git.EnsureIdentity(ctx))

	err := git.Commit(ctx, "empty")
	require.Error(t, err)

	var cmdErr *vcs.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "commit", cmdErr.Args[0])
}

func TestGit_StageMissingFile(t *testing.T) {
	dir := initRepo(t)

	err := vcs.NewGit(dir, vcs.Identity{}).Stage(context.Background(), "nope.txt")

	var cmdErr *vcs.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, err.Error(), "git add -- nope.txt")
	assert.NotEmpty(t, cmdErr.Stderr)
}

func TestGit_NotARepository(t *testing.T) {
	if !vcs.Available() {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	dir := t.TempDir()
	err := vcs.NewGit(dir, vcs.Identity{}).Stage(context.Background(), "x")
	require.Error(t, err)
}
