// Package splice implements the byte-splice engine (C8): given a source
// string and a set of non-overlapping byte-range replacements, it emits
// the edited source without violating UTF-8 character boundaries.
package splice

import (
	"sort"
	"unicode/utf8"

	"github.com/oxhq/skim/skimerr"
)

// Edit is a half-open byte range [Start, End) paired with its replacement.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// Apply sorts edits by Start, skips any edit nested inside an
// already-emitted replacement (the mechanism by which nested callable
// bodies are handled, per spec §4.8/§9), validates UTF-8 boundaries, and
// splices the replacements into source.
func Apply(source string, edits []Edit) (string, error) {
	for _, e := range edits {
		if e.End < e.Start || e.End > len(source) {
			return "", skimerr.NewParseError("invalid splice range [%d, %d) for source of length %d", e.Start, e.End, len(source))
		}
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]byte, 0, len(source)+20*len(sorted))
	lastPos := 0

	for _, e := range sorted {
		if e.Start < lastPos {
			// Nested inside an already-emitted replacement; discard.
			continue
		}
		if !utf8.RuneStart(byteAt(source, e.Start)) && e.Start != len(source) {
			return "", skimerr.NewParseError("Invalid UTF-8 boundary at range [%d, %d)", e.Start, e.End)
		}
		if !utf8.RuneStart(byteAt(source, e.End)) && e.End != len(source) {
			return "", skimerr.NewParseError("Invalid UTF-8 boundary at range [%d, %d)", e.Start, e.End)
		}
		out = append(out, source[lastPos:e.Start]...)
		out = append(out, e.Replacement...)
		lastPos = e.End
	}

	if !utf8.RuneStart(byteAt(source, lastPos)) && lastPos != len(source) {
		return "", skimerr.NewParseError("Invalid UTF-8 boundary at offset %d", lastPos)
	}
	out = append(out, source[lastPos:]...)

	return string(out), nil
}

// byteAt returns the byte at index i, or 0 (a valid rune-start byte) when i
// is exactly len(s), the one-past-the-end position every range endpoint at
// the source's length must be allowed to land on.
func byteAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}
