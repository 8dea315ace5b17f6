package dialogue

import (
	"regexp"
	"strings"
)

// substitution is one literal replacement applied by Normalize.
type substitution struct {
	from string
	to   string
}

// substitutions are applied in order. Later entries must never match the
// output of earlier ones.
//
//nolint:gochecknoglobals // Read-only lookup table.
var substitutions = []substitution{
	{`$`, "¥"},
	{`\e`, "é"},
	{`\.`, "…"},
	{`\au`, "{UP_ARROW}"},
	{`\ad`, "{DOWN_ARROW}"},
	{`\ar`, "{RIGHT_ARROW}"},
	{`\al`, "{LEFT_ARROW}"},
	{`\m`, "♂"},
	{`\f`, "♀"},
	{`\qo`, "“"},
	{`\qc`, "”"},
}

//nolint:gochecknoglobals // Compiled once.
var pausePattern = regexp.MustCompile(`\\h(\d+)`)

// Normalize expands the author shorthands used in raw text into the glyphs
// and placeholders the game's charmap understands. Line-break escape codes
// are left alone.
func Normalize(text string) string {
	for _, sub := range substitutions {
		text = strings.ReplaceAll(text, sub.from, sub.to)
	}
	return pausePattern.ReplaceAllString(text, "{PAUSE_$1}")
}
