package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/porytext/pkg/runner"
)

// makeTree creates files (relative paths) under a new temp dir.
func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
	return dir
}

// relative strips dir from discovered paths.
func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"data/maps/PetalburgCity/scripts.pory": "",
		"data/maps/Route101/scripts.pory":      "",
		"data/maps/Route101/scripts.inc":       "",
		"data/scripts/Intro.PORY":              "",
		"build/gen/scripts.pory":               "",
		".cache/old.pory":                      "",
		"data/.hidden.pory":                    "",
		"README.md":                            "",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			want: []string{
				"build/gen/scripts.pory",
				"data/maps/PetalburgCity/scripts.pory",
				"data/maps/Route101/scripts.pory",
				"data/scripts/Intro.PORY",
			},
		},
		{
			name: "exclude directory glob",
			opts: runner.Options{ExcludeGlobs: []string{"build/**"}},
			want: []string{
				"data/maps/PetalburgCity/scripts.pory",
				"data/maps/Route101/scripts.pory",
				"data/scripts/Intro.PORY",
			},
		},
		{
			name: "exclude by name anywhere",
			opts: runner.Options{ExcludeGlobs: []string{"**/Route101"}},
			want: []string{
				"build/gen/scripts.pory",
				"data/maps/PetalburgCity/scripts.pory",
				"data/scripts/Intro.PORY",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".inc"}},
			want: []string{"data/maps/Route101/scripts.inc"},
		},
		{
			name: "subdirectory path",
			opts: runner.Options{Paths: []string{"data/maps"}},
			want: []string{
				"data/maps/PetalburgCity/scripts.pory",
				"data/maps/Route101/scripts.pory",
			},
		},
		{
			name: "explicit file with any extension",
			opts: runner.Options{Paths: []string{"README.md", "data/maps/Route101/scripts.pory", "data/maps"}},
			want: []string{
				"README.md",
				"data/maps/PetalburgCity/scripts.pory",
				"data/maps/Route101/scripts.pory",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := makeTree(t, tree)
			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relative(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_Gitignore(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		".gitignore":              "build/\n*.gen.pory\n",
		"build/scripts.pory":      "",
		"data/town.pory":          "",
		"data/town.gen.pory":      "",
		"data/maps/cave.gen.pory": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := relative(t, dir, files); !slices.Equal(got, []string{"data/town.pory"}) {
		t.Errorf("Discover() = %v", got)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IgnoreGitignore: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 4 {
		t.Errorf("IgnoreGitignore: got %d files, want 4", len(files))
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.pory": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"shared/common.pory": ""})
	target := filepath.Join(dir, "shared")
	link := filepath.Join(dir, "maps", "linked")
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	for _, follow := range []bool{false, true} {
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:     dir,
			Paths:          []string{"maps"},
			FollowSymlinks: follow,
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		want := 0
		if follow {
			want = 1
		}
		if len(files) != want {
			t.Errorf("FollowSymlinks=%v: got %v", follow, files)
		}
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !slices.Equal(got, []string{".pory"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
