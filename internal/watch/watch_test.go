package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/porytext/internal/watch"
)

const waitTimeout = 5 * time.Second

func TestNew_NoRoots(t *testing.T) {
	t.Parallel()

	_, err := watch.New(watch.Options{})
	require.ErrorIs(t, err, watch.ErrNoRoots)
}

func TestNew_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := watch.New(watch.Options{Roots: []string{filepath.Join(t.TempDir(), "missing")}})
	require.Error(t, err)
}

func TestNew_WatchesSubdirectories(t *testing.T) {
	t.Parallel()

	dir := tempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "maps", "Town"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o755))

	w, err := watch.New(watch.Options{Roots: []string{dir}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	list := w.WatchList()
	assert.Contains(t, list, filepath.Join(dir, "maps", "Town"))
	assert.NotContains(t, list, filepath.Join(dir, ".git"))
}

func TestRun_ReportsChangedFiles(t *testing.T) {
	t.Parallel()

	dir := tempDir(t)
	changes := startWatcher(t, watch.Options{
		Roots:      []string{dir},
		Extensions: []string{".pory"},
		Debounce:   50 * time.Millisecond,
	})

	// Ignored by extension.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	target := filepath.Join(dir, "town.pory")
	require.NoError(t, os.WriteFile(target, []byte(`script A { msgbox("Hi") }`), 0o644))

	paths := waitForChange(t, changes)
	assert.Equal(t, []string{target}, paths)
}

func TestRun_NewDirectory(t *testing.T) {
	t.Parallel()

	dir := tempDir(t)
	changes := startWatcher(t, watch.Options{
		Roots:      []string{dir},
		Extensions: []string{".pory"},
		Debounce:   50 * time.Millisecond,
	})

	sub := filepath.Join(dir, "maps")
	require.NoError(t, os.Mkdir(sub, 0o755))

	target := filepath.Join(sub, "route.pory")
	// The new directory is registered asynchronously; keep writing until
	// the change is seen.
	deadline := time.After(waitTimeout)
	for {
		require.NoError(t, os.WriteFile(target, []byte("text"), 0o644))
		select {
		case paths := <-changes:
			assert.Contains(t, paths, target)
			return
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("no change reported for file in new directory")
		}
	}
}

func TestRun_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := tempDir(t)
	target := filepath.Join(dir, "script.inc")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))

	changes := startWatcher(t, watch.Options{
		Roots:      []string{target},
		Extensions: []string{".pory"},
		Debounce:   50 * time.Millisecond,
	})

	require.NoError(t, os.WriteFile(target, []byte("b"), 0o644))

	paths := waitForChange(t, changes)
	assert.Equal(t, []string{target}, paths)
}

func TestRun_ExplicitFileIgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := tempDir(t)
	target := filepath.Join(dir, "town.pory")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))

	changes := startWatcher(t, watch.Options{
		Roots:      []string{target},
		Extensions: []string{".pory"},
		Debounce:   50 * time.Millisecond,
	})

	// Same extension, same directory, but not a root.
	sibling := filepath.Join(dir, "route.pory")
	require.NoError(t, os.WriteFile(sibling, []byte("b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "maps"), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("c"), 0o644))

	paths := waitForChange(t, changes)
	assert.Equal(t, []string{target}, paths)
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	w, err := watch.New(watch.Options{Roots: []string{t.TempDir()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context, []string) error { return nil })
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitTimeout):
		t.Fatal("Run did not return after cancel")
	}
}

// startWatcher runs a watcher until the test ends and returns the batches it reports.
func startWatcher(t *testing.T, opts watch.Options) <-chan []string {
	t.Helper()

	w, err := watch.New(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = w.Run(ctx, func(ctx context.Context, paths []string) error {
			select {
			case changes <- paths:
			case <-ctx.Done():
			}
			return nil
		})
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})

	return changes
}

// tempDir returns a temporary directory with symlinks resolved, so paths
// match the names fsnotify reports.
func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func waitForChange(t *testing.T, changes <-chan []string) []string {
	t.Helper()

	select {
	case paths := <-changes:
		return paths
	case <-time.After(waitTimeout):
		t.Fatal("no change reported")
		return nil
	}
}
