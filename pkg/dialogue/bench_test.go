package dialogue_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/porytext/pkg/dialogue"
)

func BenchmarkConvert(b *testing.B) {
	raw := strings.Repeat(rawScript, 200)
	formatted := strings.Repeat(formattedScript, 200)

	b.Run("format", func(b *testing.B) {
		conv := &dialogue.Converter{Mode: dialogue.Format}
		b.ReportAllocs()
		for b.Loop() {
			if _, _, err := conv.Convert(raw, dialogue.WholeDocument(raw)); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("unformat", func(b *testing.B) {
		conv := &dialogue.Converter{Mode: dialogue.Unformat}
		b.ReportAllocs()
		for b.Loop() {
			if _, _, err := conv.Convert(formatted, dialogue.WholeDocument(formatted)); err != nil {
				b.Fatal(err)
			}
		}
	})
}
