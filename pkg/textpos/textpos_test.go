package textpos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/porytext/pkg/textpos"
)

func TestUTF16Offset(t *testing.T) {
	t.Parallel()

	// "é" is 2 bytes/1 unit, "😀" is 4 bytes/2 units.
	content := "aé\n😀b\nc"
	idx := textpos.New(content)

	tests := []struct {
		name   string
		byteOf int
		want   int
	}{
		{"start", 0, 0},
		{"after ascii", 1, 1},
		{"after two-byte rune", 3, 2},
		{"start of second line", 4, 3},
		{"after emoji", 8, 5},
		{"start of third line", 10, 7},
		{"end", len(content), 8},
		{"clamped below", -5, 0},
		{"clamped above", 100, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, idx.UTF16Offset(tt.byteOf))
		})
	}
}

func TestByteOffsetRoundTrip(t *testing.T) {
	t.Parallel()

	content := "fmsgbox(\"Pokémon\n{PLAYER} 😀!\")\r\nend"
	idx := textpos.New(content)

	for offset := range len(content) + 1 {
		if offset < len(content) && !isRuneStart(content[offset]) {
			continue
		}
		assert.Equal(t, offset, idx.ByteOffset(idx.UTF16Offset(offset)), "offset %d", offset)
	}
}

func TestByteOffsetInsideSurrogatePair(t *testing.T) {
	t.Parallel()

	idx := textpos.New("a😀b")
	assert.Equal(t, 1, idx.ByteOffset(2))
	assert.Equal(t, 5, idx.ByteOffset(3))
	assert.Equal(t, 6, idx.ByteOffset(99))
}

func TestPosition(t *testing.T) {
	t.Parallel()

	content := "line one\r\n    msgbox(\"é😀x\")\n"
	idx := textpos.New(content)

	assert.Equal(t, 3, idx.LineCount())
	assert.Equal(t, "line one", idx.Line(1))
	assert.Equal(t, "    msgbox(\"é😀x\")", idx.Line(2))
	assert.Empty(t, idx.Line(3))
	assert.Empty(t, idx.Line(4))

	xOffset := len("line one\r\n    msgbox(\"é😀")
	pos := idx.Position(xOffset)
	assert.Equal(t, textpos.Position{Line: 2, Column: 16}, pos)
	assert.Equal(t, xOffset, idx.Offset(pos))

	assert.Equal(t, textpos.Position{Line: 1, Column: 1}, idx.Position(0))
	assert.Equal(t, 10, idx.LineStart(2))
	assert.Equal(t, 0, idx.Offset(textpos.Position{Line: 0, Column: 4}))
	assert.Equal(t, len(content), idx.Offset(textpos.Position{Line: 9, Column: 1}))
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
