package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/sarifapply/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{mode: fsutil.BackupModeSidecar, want: "/src/a.go.sarifapply.bak"},
		{mode: fsutil.BackupModeNone, want: ""},
		{mode: "unknown", want: "/src/a.go.sarifapply.bak"},
	}

	for _, tt := range tests {
		if got := fsutil.BackupPath("/src/a.go", tt.mode); got != tt.want {
			t.Errorf("BackupPath(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("disabled does nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.go")
		writeFile(t, path, "v1", 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}

		created, err := fsutil.CreateBackup(ctx, info, []byte("v1"), fsutil.DefaultBackupConfig())
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})

	t.Run("first backup wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.go")
		writeFile(t, path, "v1", 0o644)
		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}

		created, err := fsutil.CreateBackup(ctx, info, []byte("v1"), enabled)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}

		created, err = fsutil.CreateBackup(ctx, info, []byte("v2"), enabled)
		if err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "v1" {
			t.Errorf("backup = %q, want %q", got, "v1")
		}
	})
}
