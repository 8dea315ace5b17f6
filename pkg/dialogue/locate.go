package dialogue

import (
	"regexp"
	"sort"
	"strings"
)

// Locator finds call sites of a fixed set of function names.
type Locator struct {
	pattern *regexp.Regexp
}

// NewLocator returns a Locator for the given function names.
// Empty names are ignored; with no names the Locator matches nothing.
func NewLocator(names ...string) *Locator {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			quoted = append(quoted, regexp.QuoteMeta(name))
		}
	}
	if len(quoted) == 0 {
		return &Locator{}
	}

	// Longest first so that a name never shadows a longer one sharing its prefix.
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })

	return &Locator{
		pattern: regexp.MustCompile(`([ \t]*)\b(` + strings.Join(quoted, "|") + `)\s*\(`),
	}
}

// Locate returns every call site in doc, in document order. Calls without a
// string literal or without a closing parenthesis are skipped.
func (l *Locator) Locate(doc string) []CallSite {
	if l.pattern == nil {
		return nil
	}

	var sites []CallSite
	for pos := 0; pos < len(doc); {
		loc := l.pattern.FindStringSubmatchIndex(doc[pos:])
		if loc == nil {
			break
		}

		start := pos + loc[0]
		openEnd := pos + loc[1]

		site, ok := parseCall(doc, start, openEnd, doc[pos+loc[2]:pos+loc[3]], doc[pos+loc[4]:pos+loc[5]])
		if !ok {
			pos = openEnd
			continue
		}

		sites = append(sites, site)
		pos = site.End
	}

	return sites
}

// LocateCallSites finds calls of the default validation names.
func LocateCallSites(doc string) []CallSite {
	return NewLocator(DefaultValidateNames()...).Locate(doc)
}

// parseCall scans the argument list that begins at argsStart, up to the
// first ')' outside a string literal.
func parseCall(doc string, start, argsStart int, indent, name string) (CallSite, bool) {
	var segments []Segment
	inQuote := false
	quoteStart := 0
	lastQuoteEnd := argsStart

	for i := argsStart; i < len(doc); i++ {
		switch c := doc[i]; {
		case c == '"' && !inQuote:
			inQuote = true
			quoteStart = i + 1
		case c == '"':
			inQuote = false
			segments = append(segments, Segment{Text: doc[quoteStart:i], Start: quoteStart, End: i})
			lastQuoteEnd = i + 1
		case c == ')' && !inQuote:
			if len(segments) == 0 {
				return CallSite{}, false
			}
			return CallSite{
				Start:        start,
				End:          i + 1,
				Indent:       indent,
				Name:         name,
				Args:         doc[argsStart:i],
				Segments:     segments,
				TrailingArgs: trailingArgs(doc[lastQuoteEnd:i]),
			}, true
		}
	}

	return CallSite{}, false
}

// trailingArgs keeps the comma-introduced remainder of an argument list.
func trailingArgs(rest string) string {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ",") {
		return ""
	}
	return rest
}
