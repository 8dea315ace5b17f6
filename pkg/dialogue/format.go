package dialogue

import (
	"regexp"
	"strings"
)

// ContinuationIndent is added to the call's indentation for every literal
// after the first.
const ContinuationIndent = "    "

//nolint:gochecknoglobals // Compiled once.
var lineBreakPattern = regexp.MustCompile(`\r?\n`)

// FormatOptions controls how a raw block is written as a call expression.
type FormatOptions struct {
	// Indent is the indentation of the call itself.
	Indent string

	// Name is the function to emit. Defaults to DefaultFormattedName.
	Name string

	// TrailingArgs is appended after the last literal, e.g. ", MSGBOX_AUTOCLOSE".
	TrailingArgs string

	// EOL separates the emitted literals. Defaults to "\n".
	EOL string
}

func (o FormatOptions) withDefaults() FormatOptions {
	if o.Name == "" {
		o.Name = DefaultFormattedName
	}
	if o.EOL == "" {
		o.EOL = "\n"
	}
	return o
}

// FormatLines converts raw text into the quoted, escape-coded literals of a
// formatted call. Each non-blank line becomes one literal. The code ending a
// literal is chosen by looking at the next source line: a blank line gives
// \p and starts a new paragraph, a content line gives \n for the first line
// of a paragraph and \l otherwise, and the final line gets no code.
func FormatLines(raw string) []string {
	lines := lineBreakPattern.Split(Normalize(raw), -1)

	var literals []string
	startOfParagraph := true

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		code := ""
		if i < len(lines)-1 {
			if strings.TrimSpace(lines[i+1]) == "" {
				code = EscapeParagraph
				i++
				startOfParagraph = true
			} else {
				if startOfParagraph {
					code = EscapeNewline
				} else {
					code = EscapeLine
				}
				startOfParagraph = false
			}
		}

		literals = append(literals, `"`+line+code+`"`)
	}

	return literals
}

// FormatBlock converts raw text into a complete formatted call expression.
// Raw text without any content yields a call with a single empty literal.
func FormatBlock(raw string, opts FormatOptions) string {
	opts = opts.withDefaults()

	literals := FormatLines(raw)
	if len(literals) == 0 {
		literals = []string{`""`}
	}

	var out strings.Builder
	out.WriteString(opts.Indent)
	out.WriteString(opts.Name)
	out.WriteByte('(')
	out.WriteString(literals[0])

	for _, literal := range literals[1:] {
		out.WriteString(opts.EOL)
		out.WriteString(opts.Indent)
		out.WriteString(ContinuationIndent)
		out.WriteString(literal)
	}

	out.WriteString(opts.TrailingArgs)
	out.WriteByte(')')

	return out.String()
}

// FormatCall formats a located raw call site. The literals of the call are
// joined before formatting.
func FormatCall(site CallSite, opts FormatOptions) string {
	opts.Indent = site.Indent
	opts.TrailingArgs = site.TrailingArgs
	return FormatBlock(strings.Join(site.Texts(), ""), opts)
}
