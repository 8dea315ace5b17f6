// Package fix collects text replacements found during a read-only scan of a
// document and applies them to the unchanged source as one batch.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a document.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of source bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// EditBuilder accumulates edits for one document.
type EditBuilder struct {
	Edits []TextEdit
}

func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
// Replacing a range with identical text is recorded as well; use
// ReplaceIfChanged to skip no-op edits.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// ReplaceIfChanged adds an edit only when newText differs from the current
// content of [start, end). It reports whether an edit was added.
func (b *EditBuilder) ReplaceIfChanged(content string, start, end int, newText string) bool {
	if content[start:end] == newText {
		return false
	}
	b.ReplaceRange(start, end, newText)
	return true
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
