package fontwidth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/porytext/pkg/fontwidth"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"placeholder", "{PLAYER}", 48},
		{"space", " ", 3},
		{"default width letter", "A", 6},
		{"accented letter", "é", 6},
		{"wide ligature", "Œ", 8},
		{"unknown placeholder takes default width", "{UNKNOWN}", 6},
		{"unmatched brace is a single character", "{abc", 24},
		{"brace spans to next closing brace", "{A{B}", 6},
		{"mixed", "Hi {RIVAL}!", 6 + 6 + 3 + 42 + 6},
		{"multibyte rune counts once", "♂", 6},
		{"astral rune counts once", "🎮", 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, fontwidth.Measure(tc.text))
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tokens := fontwidth.Tokenize("a{LV}é{")
	require.Len(t, tokens, 4)

	assert.Equal(t, fontwidth.Token{Text: "a", Start: 0, End: 1}, tokens[0])
	assert.Equal(t, fontwidth.Token{Text: "{LV}", Start: 1, End: 5}, tokens[1])
	assert.Equal(t, fontwidth.Token{Text: "é", Start: 5, End: 7}, tokens[2])
	assert.Equal(t, fontwidth.Token{Text: "{", Start: 7, End: 8}, tokens[3])

	assert.Nil(t, fontwidth.Tokenize(""))

	astral := fontwidth.Tokenize("🎮!")
	require.Len(t, astral, 2)
	assert.Equal(t, fontwidth.Token{Text: "🎮", Start: 0, End: 4}, astral[0])
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("empty text yields no spans", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, fontwidth.Classify("", 10))
	})

	t.Run("limit equal to total fits entirely", func(t *testing.T) {
		t.Parallel()

		text := "Hello {PLAYER}!"
		total := fontwidth.Measure(text)
		spans := fontwidth.Classify(text, total)

		require.Len(t, spans, 1)
		assert.Equal(t, fontwidth.Span{Start: 0, End: len(text), Width: total, Class: fontwidth.Fits}, spans[0])
	})

	t.Run("limit one below total overflows", func(t *testing.T) {
		t.Parallel()

		text := "Hello {PLAYER}!"
		spans := fontwidth.Classify(text, fontwidth.Measure(text)-1)

		require.Len(t, spans, 2)
		assert.True(t, fontwidth.Overflowing(spans))
		assert.Equal(t, fontwidth.Overflows, spans[1].Class)
		assert.Equal(t, len(text)-1, spans[1].Start)
		assert.Equal(t, 6, spans[1].Width)
	})

	t.Run("overflow persists to the end", func(t *testing.T) {
		t.Parallel()

		// "AAAA" is 24px; with a 12px limit the third A overflows and the
		// fourth stays overflowing.
		spans := fontwidth.Classify("AAAA", 12)

		require.Len(t, spans, 2)
		assert.Equal(t, fontwidth.Span{Start: 0, End: 2, Width: 12, Class: fontwidth.Fits}, spans[0])
		assert.Equal(t, fontwidth.Span{Start: 2, End: 4, Width: 12, Class: fontwidth.Overflows}, spans[1])
	})

	t.Run("first token overflowing yields a single overflow span", func(t *testing.T) {
		t.Parallel()

		spans := fontwidth.Classify("{PLAYER}A", 10)

		require.Len(t, spans, 1)
		assert.Equal(t, fontwidth.Overflows, spans[0].Class)
		assert.Equal(t, 54, spans[0].Width)
	})
}

func TestOffset(t *testing.T) {
	t.Parallel()

	spans := fontwidth.Offset([]fontwidth.Span{{Start: 0, End: 3, Width: 18}}, 10)
	require.Len(t, spans, 1)
	assert.Equal(t, 10, spans[0].Start)
	assert.Equal(t, 13, spans[0].End)
	assert.Nil(t, fontwidth.Offset(nil, 5))
}

func TestClassString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fits", fontwidth.Fits.String())
	assert.Equal(t, "overflows", fontwidth.Overflows.String())
}
