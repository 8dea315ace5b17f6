package logging

// Keys for structured log fields, shared so every command names the same
// thing the same way.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldBackup     = "backup"

	// Run settings.
	FieldMode     = "mode"
	FieldMaxWidth = "max_width"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"

	// Run totals.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"
	FieldConversions      = "conversions"

	// Per-file dialogue.
	FieldLines       = "lines"
	FieldDiagnostics = "diagnostics"
	FieldWidth       = "width"

	// File watching.
	FieldEvent = "event"

	// Build info.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
