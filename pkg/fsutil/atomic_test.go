package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/porytext/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		content  string
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{"new file", "", script, 0o644, 0o644},
		{"replaces existing", "old", script, 0o644, 0o644},
		{"restrictive mode", "", script, 0o600, 0o600},
		{"zero mode uses default", "", script, 0, fsutil.DefaultFileMode},
		{"empty content", "old", "", 0o644, 0o644},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "route101.pory")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o644))
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte(tt.content), tt.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got))

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, stat.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp files left behind")
		})
	}
}

func TestWriteAtomic_Errors(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "route101.pory")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte(script), 0o644))
		assert.NoFileExists(t, path)
	})

	t.Run("missing parent directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "missing", "route101.pory")

		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte(script), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.False(t, strings.HasPrefix(entry.Name(), "route101.pory"), "leftover %s", entry.Name())
		}
	})
}
