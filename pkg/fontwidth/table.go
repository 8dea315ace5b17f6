// Package fontwidth estimates the on-screen pixel width of message-box text
// rendered with the default latin font of the Gen 3 engine.
package fontwidth

import (
	"maps"
	"slices"
	"strings"
)

// DefaultWidth is the width in pixels of any token missing from the table.
const DefaultWidth = 6

// builtinWidths holds the tokens whose width differs from DefaultWidth or
// that are worth listing explicitly.
//
//nolint:gochecknoglobals // Read-only lookup table.
var builtinWidths = map[string]int{
	" ": 3,

	"À": 6, "Á": 6, "Â": 6, "Ç": 6, "È": 6, "É": 6, "Ê": 6, "Ë": 6,
	"Ì": 6, "Î": 6, "Ï": 6, "Ò": 6, "Ó": 6, "Ô": 6, "Ù": 6, "Ú": 6,
	"Û": 6, "Ñ": 6, "ß": 6, "à": 6, "á": 6, "ç": 6, "è": 6, "é": 6,
	"ê": 6, "ë": 6, "ì": 6, "î": 6, "ï": 6, "ò": 6, "ó": 6, "ô": 6,
	"ù": 6, "ú": 6, "û": 6, "ñ": 6, "º": 6, "ª": 6,

	"Œ": 8, "œ": 8,

	// Placeholders are expanded at runtime; these are typical widths.
	"{PLAYER}":    48,
	"{RIVAL}":     42,
	"{STR_VAR_1}": 60,
	"{STR_VAR_2}": 60,
	"{STR_VAR_3}": 60,
	"{PKMN}":      30,
	"{POKEMON}":   48,
	"{LV}":        12,
}

// Table maps characters and placeholder tokens to pixel widths.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	widths       map[string]int
	defaultWidth int
}

//nolint:gochecknoglobals // Immutable process-wide default table.
var defaultTable = &Table{widths: builtinWidths, defaultWidth: DefaultWidth}

// Default returns the built-in width table.
func Default() *Table {
	return defaultTable
}

// NewTable returns the built-in table extended with overrides.
// Entries in overrides replace built-in entries with the same token.
func NewTable(overrides map[string]int) *Table {
	if len(overrides) == 0 {
		return defaultTable
	}

	widths := make(map[string]int, len(builtinWidths)+len(overrides))
	maps.Copy(widths, builtinWidths)
	maps.Copy(widths, overrides)

	return &Table{widths: widths, defaultWidth: DefaultWidth}
}

// WidthOf returns the width of a single token. Unknown tokens, including
// placeholders missing from the table, take the default width.
func (t *Table) WidthOf(token string) int {
	if w, ok := t.widths[token]; ok {
		return w
	}
	return t.defaultWidth
}

// Len returns the number of explicit entries in the table.
func (t *Table) Len() int {
	return len(t.widths)
}

// Placeholders returns the bracketed tokens of the table in sorted order.
func (t *Table) Placeholders() []string {
	var names []string
	for token := range t.widths {
		if strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}") {
			names = append(names, token)
		}
	}
	slices.Sort(names)
	return names
}

// WidthOf looks up token in the default table.
func WidthOf(token string) int {
	return defaultTable.WidthOf(token)
}
