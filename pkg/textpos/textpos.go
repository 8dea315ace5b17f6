// Package textpos converts between Go byte offsets and the UTF-16 based
// positions used by editors.
package textpos

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count UTF-16 code units.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Index answers offset queries for one document.
type Index struct {
	content string
	lines   []lineInfo
}

type lineInfo struct {
	byteOffset  int // Byte offset of line start
	byteLen     int // Length in bytes, excluding the newline
	utf16Offset int // UTF-16 offset of line start
}

// New indexes content.
func New(content string) *Index {
	idx := &Index{content: content}

	lineStart := 0
	utf16Start := 0
	for i := 0; i < len(content); i++ {
		if content[i] != '\n' {
			continue
		}
		idx.lines = append(idx.lines, lineInfo{byteOffset: lineStart, byteLen: i - lineStart, utf16Offset: utf16Start})
		utf16Start += utf16Len(content[lineStart:i]) + 1
		lineStart = i + 1
	}
	idx.lines = append(idx.lines, lineInfo{
		byteOffset:  lineStart,
		byteLen:     len(content) - lineStart,
		utf16Offset: utf16Start,
	})

	return idx
}

// LineCount returns the number of lines. Content ending in a newline has an
// empty final line.
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// Line returns the content of the 1-based line, without its line break.
func (idx *Index) Line(line int) string {
	if line < 1 || line > len(idx.lines) {
		return ""
	}
	info := idx.lines[line-1]
	text := idx.content[info.byteOffset : info.byteOffset+info.byteLen]
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}
	return text
}

// LineStart returns the byte offset of the 1-based line.
func (idx *Index) LineStart(line int) int {
	switch {
	case line < 1:
		return 0
	case line > len(idx.lines):
		return len(idx.content)
	}
	return idx.lines[line-1].byteOffset
}

// UTF16Offset converts a byte offset to a UTF-16 code-unit offset.
// Offsets are clamped to the document.
func (idx *Index) UTF16Offset(byteOffset int) int {
	byteOffset = idx.clamp(byteOffset)
	info := idx.lines[idx.lineOf(byteOffset)]
	return info.utf16Offset + utf16Len(idx.content[info.byteOffset:byteOffset])
}

// ByteOffset converts a UTF-16 code-unit offset to a byte offset. An offset
// that falls inside a surrogate pair resolves to the start of that rune.
func (idx *Index) ByteOffset(utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}

	n := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].utf16Offset > utf16Offset
	}) - 1
	info := idx.lines[n]

	lineEnd := info.byteOffset + info.byteLen
	if n < len(idx.lines)-1 {
		lineEnd++ // include the newline
	}

	return info.byteOffset + utf16ToByte(idx.content[info.byteOffset:lineEnd], utf16Offset-info.utf16Offset)
}

// Position converts a byte offset to a 1-based line and UTF-16 column.
func (idx *Index) Position(byteOffset int) Position {
	byteOffset = idx.clamp(byteOffset)
	n := idx.lineOf(byteOffset)
	info := idx.lines[n]
	return Position{
		Line:   n + 1,
		Column: utf16Len(idx.content[info.byteOffset:byteOffset]) + 1,
	}
}

// Offset converts a 1-based line and UTF-16 column to a byte offset.
func (idx *Index) Offset(pos Position) int {
	if pos.Line < 1 {
		return 0
	}
	if pos.Line > len(idx.lines) {
		return len(idx.content)
	}
	info := idx.lines[pos.Line-1]
	line := idx.content[info.byteOffset : info.byteOffset+info.byteLen]
	return info.byteOffset + utf16ToByte(line, pos.Column-1)
}

func (idx *Index) clamp(byteOffset int) int {
	return min(max(byteOffset, 0), len(idx.content))
}

// lineOf returns the 0-based line containing byteOffset.
func (idx *Index) lineOf(byteOffset int) int {
	return sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].byteOffset > byteOffset
	}) - 1
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// utf16ToByte returns the byte offset in s of the given UTF-16 offset.
func utf16ToByte(s string, units int) int {
	count := 0
	for i := 0; i < len(s); {
		if count >= units {
			return i
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width := utf16.RuneLen(r)
		if count+width > units {
			return i
		}
		count += width
		i += size
	}
	return len(s)
}
