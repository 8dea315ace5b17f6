package lint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/textpos"
)

// ErrInvalidLineRange is returned for a malformed --lines value.
var ErrInvalidLineRange = errors.New("invalid line range")

// LineRange selects lines First through Last, 1-based and inclusive.
// The zero value selects the whole document.
type LineRange struct {
	First int
	Last  int
}

// ParseLineRange parses "a:b", "a:" or ":b". A missing bound is open.
func ParseLineRange(s string) (LineRange, error) {
	first, last, ok := strings.Cut(s, ":")
	if !ok {
		return LineRange{}, fmt.Errorf("%w %q: expected first:last", ErrInvalidLineRange, s)
	}

	var r LineRange
	var err error
	if first != "" {
		if r.First, err = strconv.Atoi(first); err != nil || r.First < 1 {
			return LineRange{}, fmt.Errorf("%w %q: bad first line", ErrInvalidLineRange, s)
		}
	}
	if last != "" {
		if r.Last, err = strconv.Atoi(last); err != nil || r.Last < 1 {
			return LineRange{}, fmt.Errorf("%w %q: bad last line", ErrInvalidLineRange, s)
		}
	}
	if r.First > 0 && r.Last > 0 && r.Last < r.First {
		return LineRange{}, fmt.Errorf("%w %q: last line before first", ErrInvalidLineRange, s)
	}

	return r, nil
}

// IsZero reports whether the range selects the whole document.
func (r LineRange) IsZero() bool {
	return r.First <= 0 && r.Last <= 0
}

// Scope converts the range to byte offsets of doc.
func (r LineRange) Scope(doc string) dialogue.Range {
	if r.IsZero() {
		return dialogue.WholeDocument(doc)
	}

	idx := textpos.New(doc)
	scope := dialogue.Range{Start: idx.LineStart(r.First), End: len(doc)}
	if r.Last > 0 && r.Last < idx.LineCount() {
		scope.End = idx.LineStart(r.Last + 1)
	}
	return scope
}

// String returns the range in the form accepted by ParseLineRange.
func (r LineRange) String() string {
	var b strings.Builder
	if r.First > 0 {
		b.WriteString(strconv.Itoa(r.First))
	}
	b.WriteByte(':')
	if r.Last > 0 {
		b.WriteString(strconv.Itoa(r.Last))
	}
	return b.String()
}
