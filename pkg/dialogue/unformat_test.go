package dialogue_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/porytext/pkg/dialogue"
)

func TestUnformatBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		opts dialogue.UnformatOptions
		want string
	}{
		{
			name: "escape codes to newlines",
			in:   `msgbox("Line1\nLine2\p""MoreLine")`,
			want: "fmsgbox(\"Line1\nLine2\n\nMoreLine\")",
		},
		{
			name: "multi-line formatted call",
			in:   "msgbox(\"Hello\\p\"\n    \"World\")",
			want: "fmsgbox(\"Hello\n\nWorld\")",
		},
		{
			name: "indent applied to non-empty continuation lines",
			in:   "    msgbox(\"A\\n\"\n        \"B\\p\"\n        \"C\")",
			want: "    fmsgbox(\"A\n    B\n\n    C\")",
		},
		{
			name: "trailing args preserved",
			in:   "msgbox(\"A\\n\"\n    \"B\", MSGBOX_AUTOCLOSE)",
			want: "fmsgbox(\"A\nB\", MSGBOX_AUTOCLOSE)",
		},
		{
			name: "single plain literal untouched",
			in:   `msgbox("Just one line")`,
			want: `msgbox("Just one line")`,
		},
		{
			name: "single literal with escape code is formatted",
			in:   `msgbox("One\nTwo")`,
			want: "fmsgbox(\"One\nTwo\")",
		},
		{
			name: "custom raw name and CRLF",
			in:   "msgbox(\"A\\n\"\r\n    \"B\")",
			opts: dialogue.UnformatOptions{Name: "rawbox", EOL: "\r\n"},
			want: "rawbox(\"A\r\nB\")",
		},
		{
			name: "text after the call is kept",
			in:   "msgbox(\"A\\n\" \"B\")\nend",
			want: "fmsgbox(\"A\nB\")\nend",
		},
		{
			name: "not a call",
			in:   `"A\n" "B"`,
			want: `"A\n" "B"`,
		},
		{
			name: "unterminated call",
			in:   `msgbox("A\n" "B"`,
			want: `msgbox("A\n" "B"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dialogue.UnformatBlock(tt.in, tt.opts))
		})
	}
}

func TestIsFormatted(t *testing.T) {
	t.Parallel()

	assert.False(t, dialogue.IsFormatted(`"Hello"`))
	assert.False(t, dialogue.IsFormatted(`"Hello", MSGBOX_DEFAULT`))
	assert.True(t, dialogue.IsFormatted(`"A" "B"`))
	assert.True(t, dialogue.IsFormatted(`"A\lB"`))
}

func TestRoundTripRawToFormattedToRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single paragraph", "One\nTwo\nThree", "One\nTwo\nThree"},
		{"two paragraphs", "One\nTwo\n\nThree", "One\nTwo\n\nThree"},
		{"whitespace trimmed", "  One  \n\n\tTwo", "One\n\nTwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			formatted := dialogue.FormatBlock(tt.raw, dialogue.FormatOptions{})
			got := dialogue.UnformatBlock(formatted, dialogue.UnformatOptions{})
			assert.Equal(t, `fmsgbox("`+tt.want+`")`, got)
		})
	}
}

func TestRoundTripFormattedToRawToFormatted(t *testing.T) {
	t.Parallel()

	formatted := strings.Join([]string{
		`  msgbox("Welcome to the\n"`,
		`      "world of POKéMON!\p"`,
		`      "My name is BIRCH.\n"`,
		`      "People call me the\l"`,
		`      "POKéMON PROF.")`,
	}, "\n")

	raw := dialogue.UnformatBlock(formatted, dialogue.UnformatOptions{})
	sites := dialogue.NewLocator("fmsgbox").Locate(raw)
	if assert.Len(t, sites, 1) {
		assert.Equal(t, formatted, dialogue.FormatCall(sites[0], dialogue.FormatOptions{}))
	}
}
