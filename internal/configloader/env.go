package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/porytext/pkg/config"
)

const envVarPrefix = "PORYTEXT_"

// ErrInvalidEnv is returned when a PORYTEXT_ variable cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envVar binds one PORYTEXT_ variable to the config field it overrides.
type envVar struct {
	suffix string
	field  string
	set    func(cfg *config.Config, raw string) error
}

//nolint:gochecknoglobals // read-only binding table
var envVars = []envVar{
	{"ENABLED", "enabled", boolEnv(func(c *config.Config, v bool) { c.Enabled = &v })},
	{"MAX_LINE_LENGTH", "max_line_length", intEnv(func(c *config.Config, v int) { c.MaxLineLength = v })},
	{"VALID_COLOR", "valid_color", stringEnv(func(c *config.Config, v string) { c.ValidColor = v })},
	{"WARNING_COLOR", "warning_color", stringEnv(func(c *config.Config, v string) { c.WarningColor = v })},
	{"RAW_FUNCTION", "functions.raw", stringEnv(func(c *config.Config, v string) { c.Functions.Raw = v })},
	{"FORMATTED_FUNCTION", "functions.formatted", stringEnv(func(c *config.Config, v string) { c.Functions.Formatted = v })},
	{"VALIDATE_FUNCTIONS", "functions.validate", listEnv(func(c *config.Config, v []string) { c.Functions.Validate = v })},
	{"EXTENSIONS", "extensions", listEnv(func(c *config.Config, v []string) { c.Extensions = v })},
	{"IGNORE", "ignore", listEnv(func(c *config.Config, v []string) { c.Ignore = v })},
	{"BACKUPS_ENABLED", "backups.enabled", boolEnv(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "backups.mode", stringEnv(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"NO_BACKUPS", "no_backups", boolEnv(func(c *config.Config, v bool) { c.NoBackups = v })},
	{"JOBS", "jobs", intEnv(func(c *config.Config, v int) { c.Jobs = v })},
	{"FORMAT", "format", stringEnv(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
}

// LoadFromEnv overrides cfg with any PORYTEXT_ variables that are set, for
// example PORYTEXT_MAX_LINE_LENGTH=216. Lists are comma-separated.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.Getenv)
}

func loadFromLookup(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	for _, ev := range envVars {
		raw := getenv(envVarPrefix + ev.suffix)
		if raw == "" {
			continue
		}
		if err := ev.set(cfg, raw); err != nil {
			errs = append(errs, fmt.Errorf("%w %s%s=%q: %w", ErrInvalidEnv, envVarPrefix, ev.suffix, raw, err))
		}
	}
	return errors.Join(errs...)
}

// GetEnvVarName returns the variable that overrides a config field, or ""
// when the field has none.
func GetEnvVarName(field string) string {
	for _, ev := range envVars {
		if ev.field == field {
			return envVarPrefix + ev.suffix
		}
	}
	return ""
}

func stringEnv(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, raw)
		return nil
	}
}

func boolEnv(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("want true, false, 1 or 0")
		}
		set(cfg, v)
		return nil
	}
}

func intEnv(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.New("want an integer")
		}
		set(cfg, v)
		return nil
	}
}

func listEnv(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		var items []string
		for item := range strings.SplitSeq(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		set(cfg, items)
		return nil
	}
}
