package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/porytext/pkg/config"
)

// merge layers override onto a copy of base. Non-zero scalars and non-nil
// pointers and slices in override win; width tables merge key by key.
// Neither input is modified or aliased by the result.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Enabled != nil {
		enabled := *override.Enabled
		result.Enabled = &enabled
	}
	if override.MaxLineLength != 0 {
		result.MaxLineLength = override.MaxLineLength
	}
	if override.ValidColor != "" {
		result.ValidColor = override.ValidColor
	}
	if override.WarningColor != "" {
		result.WarningColor = override.WarningColor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans without a pointer can only be switched on by an override.
	if override.DryRun {
		result.DryRun = true
	}
	if override.Strict {
		result.Strict = true
	}
	if override.NoContext {
		result.NoContext = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Functions.Raw != "" {
		result.Functions.Raw = override.Functions.Raw
	}
	if override.Functions.Formatted != "" {
		result.Functions.Formatted = override.Functions.Formatted
	}
	if override.Functions.Validate != nil {
		result.Functions.Validate = slices.Clone(override.Functions.Validate)
	}

	result.Widths = mergeWidths(base.Widths, override.Widths)

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

// mergeWidths merges width overrides; override's entries win.
func mergeWidths(base, override map[string]int) map[string]int {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]int, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
