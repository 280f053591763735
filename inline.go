package presenter

import "strings"

// Run is a span of text with uniform inline formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

func (r Run) Plain() bool {
	return !r.Bold && !r.Italic && !r.Code
}

// ParseInline splits text into formatted runs. At each position it tries,
// in order, **bold**, `code`, *italic* and _italic_; the markers are
// stripped from the run text. Bold and code spans do not cross a newline.
// A single * or _ only opens italic when it is not part of a doubled
// marker. Anything that does not close is kept as plain text, and text
// without markers yields exactly one plain run.
func ParseInline(text string) []Run {
	var runs []Run
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if run, end, ok := matchInline(text, i); ok {
			flushPlain()
			runs = append(runs, run)
			i = end
			continue
		}
		plain.WriteByte(text[i])
		i++
	}
	flushPlain()

	if len(runs) == 0 {
		runs = append(runs, Run{Text: text})
	}
	return runs
}

// matchInline tries every inline form at position i and returns the run and
// the index just past its closing marker.
func matchInline(text string, i int) (Run, int, bool) {
	switch text[i] {
	case '*':
		if strings.HasPrefix(text[i:], "**") {
			if end := closingOnLine(text, i+2, "**"); end >= 0 {
				return Run{Text: text[i+2 : end], Bold: true}, end + 2, true
			}
		}
		if end, ok := singleMarker(text, i, '*'); ok {
			return Run{Text: text[i+1 : end], Italic: true}, end + 1, true
		}
	case '`':
		if end := closingOnLine(text, i+1, "`"); end >= 0 {
			return Run{Text: text[i+1 : end], Code: true}, end + 1, true
		}
	case '_':
		if end, ok := singleMarker(text, i, '_'); ok {
			return Run{Text: text[i+1 : end], Italic: true}, end + 1, true
		}
	}
	return Run{}, 0, false
}

// closingOnLine finds the first occurrence of marker at or after start,
// provided no newline comes first. It returns -1 when there is none.
func closingOnLine(text string, start int, marker string) int {
	rest := text[start:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	idx := strings.Index(rest, marker)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// singleMarker matches a lone marker at i: the byte before and after it must
// not be the marker, and the span runs to the next marker byte.
func singleMarker(text string, i int, marker byte) (int, bool) {
	if i > 0 && text[i-1] == marker {
		return 0, false
	}
	if i+1 >= len(text) || text[i+1] == marker {
		return 0, false
	}
	idx := strings.IndexByte(text[i+1:], marker)
	if idx < 0 {
		return 0, false
	}
	return i + 1 + idx, true
}

// PlainText drops all inline markers from text.
func PlainText(text string) string {
	var b strings.Builder
	for _, r := range ParseInline(text) {
		b.WriteString(r.Text)
	}
	return b.String()
}
