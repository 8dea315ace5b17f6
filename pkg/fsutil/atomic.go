package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// DefaultFileMode applies when WriteAtomic is given mode 0.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a temp file and rename, so
// readers see the old or the new script and never a partial one. The result
// has permissions mode.Perm().
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// The rename keeps the temp file's permissions, which are 0600 for a
	// file that did not exist before.
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Mode().Perm() == mode.Perm() {
		return nil
	}
	if err := os.Chmod(path, mode.Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
