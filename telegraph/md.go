package telegraph

import (
	"regexp"
	"sort"
	"strings"
)

// FromMarkdown compiles article markdown into a Telegraph content tree.
// Only the subset Readeck emits is handled: headings, bullet lists,
// paragraphs, and the inline spans of parseInline. Telegraph pages only
// render h3 and h4, so "# " maps to h3 and "## " to the smaller h4;
// "### " is demoted to a bold paragraph.
func FromMarkdown(md string) []Node {
	var nodes []Node
	var items []Node // open bullet group

	flush := func() {
		if len(items) > 0 {
			nodes = append(nodes, Element{Tag: "ul", Children: items})
			items = nil
		}
	}

	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()

		case strings.HasPrefix(line, "- "):
			item := parseInline(strings.TrimSpace(line[2:]), true)
			items = append(items, elem("li", elem("p", item...)))

		case strings.HasPrefix(line, "### "):
			flush()
			rest := parseInline(strings.TrimSpace(line[4:]), true)
			nodes = append(nodes, elem("p", elem("strong", rest...)))

		case strings.HasPrefix(line, "## "):
			flush()
			nodes = append(nodes, Element{Tag: "h4", Children: parseInline(strings.TrimSpace(line[3:]), true)})

		case strings.HasPrefix(line, "# "):
			flush()
			nodes = append(nodes, Element{Tag: "h3", Children: parseInline(strings.TrimSpace(line[2:]), true)})

		default:
			flush()
			nodes = append(nodes, Element{Tag: "p", Children: parseInline(line, true)})
		}
	}
	flush()

	return nodes
}

type spanKind int

const (
	spanBoldItalic spanKind = iota
	spanBold
	spanItalic
	spanStrike
	spanCode
	spanLink
)

// Patterns are listed in tie-break order: when two spans start at the
// same position, the longer marker run wins (*** beats ** beats *).
var inlinePatterns = []struct {
	kind spanKind
	re   *regexp.Regexp
}{
	{spanBoldItalic, regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)},
	{spanBold, regexp.MustCompile(`\*\*(.+?)\*\*`)},
	{spanItalic, regexp.MustCompile(`\*(.+?)\*`)},
	{spanItalic, regexp.MustCompile(`_(.+?)_`)},
	{spanStrike, regexp.MustCompile(`~~(.+?)~~`)},
	{spanCode, regexp.MustCompile("`(.+?)`")},
	{spanLink, regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)},
}

type span struct {
	start, end int
	prio       int
	kind       spanKind
	text       string
	href       string
}

// parseInline scans one line of markdown into text leaves and inline
// elements. Each pattern is matched independently across the whole line
// (non-overlapping within a pattern), candidates are ordered by start
// position, and any candidate overlapping an earlier one is dropped as
// literal text. Unterminated markup never matches and passes through
// verbatim. Link text is parsed recursively, with links themselves
// disallowed inside it; code span content is taken verbatim.
func parseInline(line string, allowLink bool) []Node {
	var spans []span
	for prio, p := range inlinePatterns {
		if p.kind == spanLink && !allowLink {
			continue
		}
		for _, m := range p.re.FindAllStringSubmatchIndex(line, -1) {
			s := span{
				start: m[0],
				end:   m[1],
				prio:  prio,
				kind:  p.kind,
				text:  line[m[2]:m[3]],
			}
			if p.kind == spanLink {
				s.href = line[m[4]:m[5]]
			}
			spans = append(spans, s)
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].prio < spans[j].prio
	})

	var nodes []Node
	pos := 0
	for _, s := range spans {
		if s.start < pos {
			continue
		}
		if s.start > pos {
			nodes = append(nodes, Text(line[pos:s.start]))
		}

		switch s.kind {
		case spanBoldItalic:
			nodes = append(nodes, elem("em", elem("strong", Text(s.text))))
		case spanBold:
			nodes = append(nodes, elem("strong", Text(s.text)))
		case spanItalic:
			nodes = append(nodes, elem("em", Text(s.text)))
		case spanStrike:
			nodes = append(nodes, elem("del", Text(s.text)))
		case spanCode:
			nodes = append(nodes, elem("code", Text(s.text)))
		case spanLink:
			nodes = append(nodes, link(s.href, parseInline(s.text, false)))
		}
		pos = s.end
	}

	if pos < len(line) {
		nodes = append(nodes, Text(line[pos:]))
	}
	return nodes
}
