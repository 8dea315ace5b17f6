package dialogue

import "strings"

// UnformatOptions controls how a formatted call is written back as raw text.
type UnformatOptions struct {
	// Name is the raw function to emit. Defaults to DefaultRawName.
	Name string

	// EOL is the line break written into the raw literal. Defaults to "\n".
	EOL string
}

func (o UnformatOptions) withDefaults() UnformatOptions {
	if o.Name == "" {
		o.Name = DefaultRawName
	}
	if o.EOL == "" {
		o.EOL = "\n"
	}
	return o
}

//nolint:gochecknoglobals // Read-only lookup table.
var escapeToRaw = strings.NewReplacer(
	EscapeNewline, "\n",
	EscapeLine, "\n",
	EscapeParagraph, "\n\n",
)

// IsFormatted reports whether a call's argument list holds formatted text:
// more than two double quotes, or an escape code.
func IsFormatted(args string) bool {
	return strings.Count(args, `"`) > 2 || HasEscapeCodes(args)
}

// UnformatCall rewrites a located call as a raw call. The second result is
// false when the call is not formatted and was left alone.
func UnformatCall(site CallSite, opts UnformatOptions) (string, bool) {
	if !IsFormatted(site.Args) {
		return "", false
	}
	opts = opts.withDefaults()

	body := escapeToRaw.Replace(strings.Join(site.Texts(), ""))
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = site.Indent + lines[i]
		}
	}

	return site.Indent + opts.Name + `("` + strings.Join(lines, opts.EOL) + `"` + site.TrailingArgs + ")", true
}

// UnformatBlock rewrites the call expression at the start of callText as a
// raw call. Leading spaces and tabs are taken as the call's indentation. The
// input is returned unchanged when it does not start with a call holding
// formatted text.
func UnformatBlock(callText string, opts UnformatOptions) string {
	indent := len(callText) - len(strings.TrimLeft(callText, " \t"))

	open := strings.IndexByte(callText, '(')
	if open <= indent {
		return callText
	}

	name := strings.TrimSpace(callText[indent:open])
	site, ok := parseCall(callText, 0, open+1, callText[:indent], name)
	if !ok || name == "" || strings.ContainsAny(name, " \t\r\n\"") {
		return callText
	}

	unformatted, ok := UnformatCall(site, opts)
	if !ok {
		return callText
	}

	return unformatted + callText[site.End:]
}
