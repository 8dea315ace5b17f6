package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// walker holds the per-run state of a discovery.
type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	ignore     *gitignore.GitIgnore
}

// Discover finds Poryscript files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Files named explicitly are processed whatever their extension, but
// exclude globs and .gitignore still apply to them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
	}
	if !opts.IgnoreGitignore {
		w.ignore = loadGitignore(workDir)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !w.excluded(absPath, false) {
				add(absPath)
			}
			continue
		}

		discovered, err := w.walk(absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// loadGitignore compiles the .gitignore in dir. A missing or unreadable
// file means nothing is ignored.
func loadGitignore(dir string) *gitignore.GitIgnore {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ignore, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return ignore
}

// walk recursively walks root and returns matching files.
func (w *walker) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.excluded(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlinked root.
				subFiles, err := w.walk(realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if hasMatchingExtension(path, w.extensions) && !w.excluded(path, false) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// excluded reports whether path is matched by an exclude glob or .gitignore.
func (w *walker) excluded(path string, isDir bool) bool {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil || strings.HasPrefix(relPath, "..") {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)

	if matchesAnyGlob(relPath, w.opts.ExcludeGlobs) {
		return true
	}

	if w.ignore != nil {
		if isDir && w.ignore.MatchesPath(relPath+"/") {
			return true
		}
		if w.ignore.MatchesPath(relPath) {
			return true
		}
	}

	return false
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// matchesAnyGlob matches relPath, or its base name, against doublestar patterns.
// A pattern naming a directory also matches everything beneath it.
func matchesAnyGlob(relPath string, patterns []string) bool {
	base := relPath[strings.LastIndex(relPath, "/")+1:]

	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		if pattern == "" {
			continue
		}
		if match(pattern, relPath) || match(pattern, base) || match(pattern+"/**", relPath) {
			return true
		}
	}
	return false
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
