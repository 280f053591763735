package presenter

import (
	"errors"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	commentPattern     = regexp.MustCompile(`(?s)<!--\s*(.*?)\s*-->`)
	imagePattern       = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)`)
	orderedItemPattern = regexp.MustCompile(`^\d+\.\s+(.*)`)
	orderedMarker      = regexp.MustCompile(`^\d+\.\s+`)
)

const codeFence = "```"

// scanLine is one physical line of a slide.
type scanLine struct {
	raw     string
	trimmed string
}

type codeBuffer struct {
	language string
	lines    []string
}

// scanState is the mutable context threaded through the line rules.
type scanState struct {
	slide     *Slide
	paragraph []string
	list      *List
	code      *codeBuffer
}

func (st *scanState) flushParagraph() {
	if len(st.paragraph) == 0 {
		return
	}
	st.slide.Body = append(st.slide.Body, &Content{
		Text: strings.Join(st.paragraph, " "),
		Type: ContentText,
	})
	st.paragraph = nil
}

func (st *scanState) flushList() {
	if st.list == nil {
		return
	}
	if len(st.list.Items) > 0 {
		st.slide.Body = append(st.slide.Body, st.list)
	}
	st.list = nil
}

func (st *scanState) flush() {
	st.flushParagraph()
	st.flushList()
}

func (st *scanState) closeCode() {
	st.slide.CodeBlocks = append(st.slide.CodeBlocks, CodeBlock{
		Language: st.code.language,
		Code:     strings.Join(st.code.lines, "\n"),
	})
	st.slide.Body = append(st.slide.Body, &CodeBlockRef{Index: len(st.slide.CodeBlocks) - 1})
	st.code = nil
}

// scanRule pairs a line predicate with its transition. apply returns how
// many lines it consumed, starting at lines[i].
type scanRule struct {
	name    string
	matches func(st *scanState, ln scanLine) bool
	apply   func(st *scanState, lines []string, i int) int
}

// scanRules are tried top to bottom; the first match handles the line.
// Lines inside an open fence are opaque to every rule but the fence itself.
var scanRules = []scanRule{
	{
		name: "code fence",
		matches: func(_ *scanState, ln scanLine) bool {
			return strings.HasPrefix(ln.trimmed, codeFence)
		},
		apply: applyCodeFence,
	},
	{
		name: "code line",
		matches: func(st *scanState, _ scanLine) bool {
			return st.code != nil
		},
		apply: func(st *scanState, lines []string, i int) int {
			st.code.lines = append(st.code.lines, lines[i])
			return 1
		},
	},
	{
		name: "blank",
		matches: func(_ *scanState, ln scanLine) bool {
			return ln.trimmed == ""
		},
		apply: applyBlank,
	},
	{
		name: "table",
		matches: func(_ *scanState, ln scanLine) bool {
			return isTableLine(ln.trimmed)
		},
		apply: applyTable,
	},
	{
		name: "heading",
		matches: func(_ *scanState, ln scanLine) bool {
			level := headingLevel(ln.trimmed)
			return level == 1 || level == 2
		},
		apply: func(st *scanState, lines []string, i int) int {
			st.flush()
			trimmed := strings.TrimSpace(lines[i])
			st.slide.Title = strings.TrimSpace(trimmed[headingLevel(trimmed)+1:])
			return 1
		},
	},
	{
		name: "sub-heading",
		matches: func(_ *scanState, ln scanLine) bool {
			return headingLevel(ln.trimmed) >= 3
		},
		apply: applySubHeading,
	},
	{
		name: "image",
		matches: func(_ *scanState, ln scanLine) bool {
			return strings.HasPrefix(ln.trimmed, "![")
		},
		apply: func(st *scanState, lines []string, i int) int {
			st.flush()
			if m := imagePattern.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
				st.slide.Images = append(st.slide.Images, ImageRef{Alt: m[1], Path: m[2]})
			}
			return 1
		},
	},
	{
		name: "list item",
		matches: func(_ *scanState, ln scanLine) bool {
			return IsListItem(ln.trimmed)
		},
		apply: applyListItem,
	},
	{
		name: "list continuation",
		matches: func(st *scanState, ln scanLine) bool {
			return st.list != nil && len(st.list.Items) > 0 &&
				(strings.HasPrefix(ln.raw, " ") || strings.HasPrefix(ln.raw, "\t"))
		},
		apply: func(st *scanState, lines []string, i int) int {
			last := len(st.list.Items) - 1
			st.list.Items[last] += " " + strings.TrimSpace(lines[i])
			return 1
		},
	},
	{
		name: "paragraph",
		matches: func(_ *scanState, _ scanLine) bool {
			return true
		},
		apply: func(st *scanState, lines []string, i int) int {
			st.flushList()
			trimmed := strings.TrimSpace(lines[i])
			// Stray '#' lines (no space after the marks) are dropped.
			if !strings.HasPrefix(trimmed, "#") {
				st.paragraph = append(st.paragraph, trimmed)
			}
			return 1
		},
	},
}

func applyCodeFence(st *scanState, lines []string, i int) int {
	st.flushParagraph()
	if st.code != nil {
		st.closeCode()
		return 1
	}
	st.flushList()
	trimmed := strings.TrimSpace(lines[i])
	st.code = &codeBuffer{language: strings.TrimSpace(trimmed[len(codeFence):])}
	return 1
}

// applyBlank ends the paragraph. The list stays open when the next
// non-blank line is another item, so loose lists are kept together.
func applyBlank(st *scanState, lines []string, i int) int {
	st.flushParagraph()
	next, ok := peekNonBlank(lines, i+1)
	if !ok || !IsListItem(next) {
		st.flushList()
	}
	return 1
}

// applyTable collects the run of table lines starting at i and parses it.
// A run without a separator row is folded back into the paragraph.
func applyTable(st *scanState, lines []string, i int) int {
	st.flush()

	end := i + 1
	for end < len(lines) && isTableLine(strings.TrimSpace(lines[end])) {
		end++
	}
	block := lines[i:end]

	table, err := ParseTable(block)
	var parseErr *TableParseError
	switch {
	case err == nil:
		st.slide.Body = append(st.slide.Body, table)
	case errors.As(err, &parseErr):
		logger.WithFields(logrus.Fields{"lines": len(block), "reason": parseErr.Reason}).
			Debug("pipe lines are not a table, keeping them as text")
		for _, line := range block {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				st.paragraph = append(st.paragraph, trimmed)
			}
		}
	}
	return len(block)
}

// applySubHeading adds a level 3-6 heading to the body, or promotes it to
// the title when the slide has none yet.
func applySubHeading(st *scanState, lines []string, i int) int {
	st.flush()
	trimmed := strings.TrimSpace(lines[i])
	level := headingLevel(trimmed)
	text := strings.TrimSpace(trimmed[level+1:])
	if st.slide.Title == "" {
		st.slide.Title = text
		return 1
	}
	st.slide.Body = append(st.slide.Body, &Content{
		Text: text,
		Type: ContentType("h" + string(rune('0'+level))),
	})
	return 1
}

func applyListItem(st *scanState, lines []string, i int) int {
	st.flushParagraph()
	trimmed := strings.TrimSpace(lines[i])
	if st.list == nil {
		st.list = &List{Ordered: orderedMarker.MatchString(trimmed)}
	}
	st.list.Items = append(st.list.Items, listItemText(trimmed))
	return 1
}

// peekNonBlank returns the first non-blank line at or after from, trimmed.
func peekNonBlank(lines []string, from int) (string, bool) {
	for _, line := range lines[min(from, len(lines)):] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

// headingLevel returns 1-6 for a line that starts with that many '#'
// followed by a space, 0 otherwise.
func headingLevel(trimmed string) int {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(trimmed) || trimmed[level] != ' ' {
		return 0
	}
	return level
}

// IsListItem reports whether a trimmed line starts with "- ", "* " or a
// number followed by a dot and whitespace.
func IsListItem(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") ||
		strings.HasPrefix(trimmed, "* ") ||
		orderedMarker.MatchString(trimmed)
}

func listItemText(trimmed string) string {
	if m := orderedItemPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return strings.TrimSpace(trimmed[2:])
	}
	return trimmed
}

// ExtractSpeakerNotes pulls every HTML comment out of text. It returns the
// text without comments and the non-empty comment bodies joined by a blank
// line. The first "-->" closes a comment, nested or not.
func ExtractSpeakerNotes(text string) (clean, notes string) {
	var collected []string
	for _, m := range commentPattern.FindAllStringSubmatch(text, -1) {
		if note := strings.TrimSpace(m[1]); note != "" {
			collected = append(collected, note)
		}
	}
	return commentPattern.ReplaceAllString(text, ""), strings.Join(collected, "\n\n")
}

// ParseSlide parses one slide's markdown.
func ParseSlide(text string) *Slide {
	clean, notes := ExtractSpeakerNotes(text)
	st := &scanState{
		slide: &Slide{SpeakerNotes: notes},
	}

	lines := strings.Split(clean, "\n")
	for i := 0; i < len(lines); {
		ln := scanLine{raw: lines[i], trimmed: strings.TrimSpace(lines[i])}
		for _, rule := range scanRules {
			if rule.matches(st, ln) {
				i += rule.apply(st, lines, i)
				break
			}
		}
	}

	st.flush()
	if st.code != nil {
		logger.WithField("language", st.code.language).
			Warn("unclosed code block at end of slide, keeping it without a closing fence")
		st.closeCode()
	}
	return st.slide
}
