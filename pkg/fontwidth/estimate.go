package fontwidth

import (
	"strings"
	"unicode/utf8"
)

// Token is one measurable unit of text: a single character or a complete
// {PLACEHOLDER}. Start and End are byte offsets into the tokenized text.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits text into tokens, left to right. A '{' starts a placeholder
// that runs through the next '}'; when there is no closing brace the '{' is an
// ordinary character.
//
// A character is a whole rune, so one outside the Basic Multilingual Plane is
// a single token and is measured once even though it takes two UTF-16 code
// units.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	tokens := make([]Token, 0, len(text))
	for pos := 0; pos < len(text); {
		end := nextTokenEnd(text, pos)
		tokens = append(tokens, Token{Text: text[pos:end], Start: pos, End: end})
		pos = end
	}
	return tokens
}

// nextTokenEnd returns the end offset of the token starting at pos.
func nextTokenEnd(text string, pos int) int {
	if text[pos] == '{' {
		if closing := strings.IndexByte(text[pos:], '}'); closing >= 0 {
			return pos + closing + 1
		}
	}
	_, size := utf8.DecodeRuneInString(text[pos:])
	return pos + size
}

// Measure returns the total pixel width of text.
func (t *Table) Measure(text string) int {
	total := 0
	for pos := 0; pos < len(text); {
		end := nextTokenEnd(text, pos)
		total += t.WidthOf(text[pos:end])
		pos = end
	}
	return total
}

// Measure returns the width of text using the default table.
func Measure(text string) int {
	return defaultTable.Measure(text)
}

// Class tells whether a span fits in the text box.
type Class int

const (
	// Fits marks text whose cumulative width stays within the limit.
	Fits Class = iota

	// Overflows marks text from the first token that crosses the limit onward.
	Overflows
)

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case Fits:
		return "fits"
	case Overflows:
		return "overflows"
	default:
		return "unknown"
	}
}

// Span is a contiguous range of text with a single classification.
// Width is the summed width of the span's own tokens.
type Span struct {
	Start int
	End   int
	Width int
	Class Class
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Classify segments text into at most two spans: the longest prefix whose
// running width stays within limit, then everything after it. Once the
// running width passes limit the rest of the text overflows; widths are
// never negative so the running total cannot drop back under the limit.
func (t *Table) Classify(text string, limit int) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	current := Span{Class: Fits}
	total := 0

	for pos := 0; pos < len(text); {
		end := nextTokenEnd(text, pos)
		width := t.WidthOf(text[pos:end])
		total += width

		if current.Class == Fits && total > limit {
			if current.End > current.Start {
				spans = append(spans, current)
			}
			current = Span{Start: pos, End: pos, Class: Overflows}
		}

		current.End = end
		current.Width += width
		pos = end
	}

	return append(spans, current)
}

// Classify segments text using the default table.
func Classify(text string, limit int) []Span {
	return defaultTable.Classify(text, limit)
}

// Offset returns a copy of spans shifted by base bytes.
func Offset(spans []Span, base int) []Span {
	if len(spans) == 0 {
		return nil
	}
	out := make([]Span, len(spans))
	for i, s := range spans {
		s.Start += base
		s.End += base
		out[i] = s
	}
	return out
}

// Overflowing reports whether any span overflows.
func Overflowing(spans []Span) bool {
	for _, s := range spans {
		if s.Class == Overflows {
			return true
		}
	}
	return false
}
