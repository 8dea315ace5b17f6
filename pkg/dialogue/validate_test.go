package dialogue_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/fontwidth"
)

func TestValidatorFormattedText(t *testing.T) {
	t.Parallel()

	doc := `msgbox("AAAA\nAAAAAA\p")`
	v := dialogue.NewValidator(nil, 30)

	lines := v.Validate(doc)
	require.Len(t, lines, 2)

	assert.Equal(t, "AAAA", doc[lines[0].Start:lines[0].End])
	assert.Equal(t, 24, lines[0].Width)
	assert.False(t, lines[0].Overflows())

	assert.Equal(t, "AAAAAA", doc[lines[1].Start:lines[1].End])
	assert.Equal(t, 36, lines[1].Width)
	assert.True(t, lines[1].Overflows())

	spans := lines[1].Spans
	require.Len(t, spans, 2)
	assert.Equal(t, fontwidth.Fits, spans[0].Class)
	assert.Equal(t, lines[1].Start+5, spans[1].Start)
	assert.Equal(t, fontwidth.Overflows, spans[1].Class)
}

func TestValidatorRawText(t *testing.T) {
	t.Parallel()

	doc := "fmsgbox(\"  first  \r\n\n    {PLAYER}\")"
	lines := dialogue.NewValidator(nil, 0).Validate(doc)
	require.Len(t, lines, 2)

	assert.Equal(t, "first", doc[lines[0].Start:lines[0].End])
	assert.Equal(t, "{PLAYER}", doc[lines[1].Start:lines[1].End])
	assert.Equal(t, 48, lines[1].Width)
}

func TestValidatorSkipsEmptyLiterals(t *testing.T) {
	t.Parallel()

	lines := dialogue.NewValidator(nil, 0).Validate(`msgbox("") format("\n\p")`)
	assert.Empty(t, lines)
}

func TestValidatorNames(t *testing.T) {
	t.Parallel()

	doc := `msgbox("one") speech("two")`

	assert.Len(t, dialogue.NewValidator(nil, 0).Validate(doc), 1)
	assert.Len(t, dialogue.NewValidator(nil, 0, "speech").Validate(doc), 1)
	assert.Len(t, dialogue.NewValidator(nil, 0, "speech", "msgbox").Validate(doc), 2)
}

func TestValidatorCustomTable(t *testing.T) {
	t.Parallel()

	table := fontwidth.NewTable(map[string]int{"W": 10})
	v := dialogue.NewValidator(table, 25)
	assert.Equal(t, 25, v.MaxWidth())

	lines := v.Validate(`msgbox("WWW")`)
	require.Len(t, lines, 1)
	spans := lines[0].Spans
	require.Len(t, spans, 2)
	assert.Equal(t, 20, spans[0].Width)
	assert.Equal(t, 10, spans[1].Width)
	assert.Equal(t, fontwidth.Overflows, spans[1].Class)
}

func TestValidatorOffsetsAcrossLiterals(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		`msgbox("Hello\n"`,
		`    "{RIVAL} is here\l"`,
		`    "Bye")`,
	}, "\n")

	lines := dialogue.NewValidator(nil, 0).Validate(doc)
	require.Len(t, lines, 3)

	want := []string{"Hello", "{RIVAL} is here", "Bye"}
	for i, line := range lines {
		assert.Equal(t, want[i], doc[line.Start:line.End])
	}
}
