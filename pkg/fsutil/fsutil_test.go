package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/sarifapply/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.py")
		writeFile(t, path, "import os\n", 0o600)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "import os\n" {
			t.Errorf("content = %q", got)
		}
		if info.Path != path || info.Size != int64(len(got)) {
			t.Errorf("info = %+v", info)
		}
		if info.Mode.Perm() != 0o600 {
			t.Errorf("Mode = %o, want 600", info.Mode.Perm())
		}
		if info.Hash == [32]byte{} {
			t.Error("Hash should not be zero")
		}
	})

	t.Run("classifies failures", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		tests := []struct {
			name string
			path string
			want error
		}{
			{name: "missing", path: filepath.Join(dir, "nope.go"), want: fsutil.ErrNotFound},
			{name: "directory", path: dir, want: fsutil.ErrIsDirectory},
		}

		for _, tt := range tests {
			_, _, err := fsutil.ReadFile(context.Background(), tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
			}
		}
	})

	t.Run("honours cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "whatever")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.go")
		writeFile(t, path, "package a\n", 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil || modified {
			t.Errorf("CheckModified() = %v, %v; want false, nil", modified, err)
		}
	})

	t.Run("same size and mtime but different content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.go")
		writeFile(t, path, "package a\n", 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}

		writeFile(t, path, "package b\n", 0o644)
		if err := os.Chtimes(path, time.Now(), info.ModTime); err != nil {
			t.Fatal(err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.go")
		writeFile(t, path, "x", 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(ctx, nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("error = %v, want ErrNilFileInfo", err)
		}
	})
}
