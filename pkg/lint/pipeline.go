package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/fix"
	"github.com/yaklabco/porytext/pkg/fsutil"
)

// Pipeline failures. ProcessFile wraps the underlying error with one of
// these so callers can pick an exit code.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConvertFailure   = errors.New("convert failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of converting and checking one document.
// The embedded FileResult measures the content as it ends up, converted or
// not.
type PipelineResult struct {
	*FileResult

	Path string

	// OriginalInfo is the file state at read time. Nil for in-memory input.
	OriginalInfo *fsutil.FileInfo

	Conversions int

	// Modified means conversion changed the content; ModifiedContent holds
	// the new bytes.
	Modified        bool
	ModifiedContent []byte

	// Diff is set for modified content under dry-run.
	Diff *fix.Diff

	// Skipped means the file changed on disk after it was read, so the
	// conversion was discarded.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary describes the result in a few words for per-file status lines.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "converted (backup created)"
	case pr.Written:
		return "converted"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions selects what ProcessFile and ProcessContent do beyond
// measuring.
type PipelineOptions struct {
	// Convert rewrites calls in the Mode direction, limited to Lines.
	Convert bool
	Mode    dialogue.Mode
	Lines   LineRange

	// DryRun computes a diff instead of writing.
	DryRun bool

	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing. Otherwise only
	// size and mtime are compared.
	StrictRaceDetection bool
}

// DefaultPipelineOptions measures only, with hash-based race detection for
// callers that turn conversion on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// PipelineOptionsFromConfig derives measure-only options from cfg. Callers
// set Convert, Mode and Lines themselves.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg != nil {
		opts.DryRun = cfg.DryRun
		opts.Backup = BackupConfigFromConfig(cfg)
	}
	return opts
}

// BackupConfigFromConfig maps the backups section, honouring --no-backups.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.BackupsEnabled(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Pipeline reads, converts, measures and writes one file at a time. It is
// safe for concurrent use; each call works on its own copy of the file.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile converts and measures the file at path. Converted content is
// written back atomically unless DryRun is set, after making sure nothing
// else changed the file in the meantime and taking a backup if configured.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if result.Modified && !opts.DryRun {
		if err := p.commit(ctx, result, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ProcessContent converts and measures content without touching disk. path
// only labels diagnostics and diffs; stdin and clipboard input use it
// directly.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	result := &PipelineResult{Path: path}
	content := original

	if opts.Convert {
		out, count, err := p.convert(string(original), opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConvertFailure, path, err)
		}
		result.Conversions = count
		if out != string(original) {
			content = []byte(out)
			result.Modified = true
			result.ModifiedContent = content
		}
	}

	fileResult, err := p.Engine.CheckFile(ctx, path, content)
	if err != nil {
		return nil, err
	}
	result.FileResult = fileResult

	if result.Modified && opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}
	return result, nil
}

// convert runs a copy of the engine's converter so the shared one keeps its
// configured direction.
func (p *Pipeline) convert(doc string, opts PipelineOptions) (string, int, error) {
	conv := *p.Engine.Converter
	conv.Mode = opts.Mode
	return conv.Convert(doc, opts.Lines.Scope(doc))
}

// commit writes result.ModifiedContent over result.Path. A file that changed
// since it was read is left alone and the result marked skipped.
func (p *Pipeline) commit(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	check := fsutil.CheckModifiedQuick
	if opts.StrictRaceDetection {
		check = fsutil.CheckModified
	}

	changed, err := check(ctx, result.OriginalInfo)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, result.Path, opts.Backup)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
		if created {
			logging.FromContext(ctx).Debug("backup created",
				logging.FieldPath, result.Path,
				logging.FieldBackup, fsutil.BackupPath(result.Path, opts.Backup.Mode),
			)
		}
	}

	if err := fsutil.WriteAtomic(ctx, result.Path, result.ModifiedContent, result.OriginalInfo.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// categorizeError tags read errors with ErrFileNotFound or
// ErrPermissionDenied.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err carries one of the pipeline sentinels.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrConvertFailure, ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
