package plan

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// RenderMarkdown converts the constrained markup the coaching model
// produces into text blocks, one per input line. Supported per line:
// **bold** spans (non-greedy, any number of pairs) and "- " / "* "
// bullet markers, which become a bullet glyph. Nothing else: no nested
// emphasis, no escaping of literal asterisks, no list nesting. Empty
// input yields no blocks.
func RenderMarkdown(text string) []Block {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")

		var prefix string
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			prefix = "• "
			line = trimmed[2:]
		}

		spans := boldSpans(line)
		if prefix != "" {
			spans = append([]Span{{Text: prefix}}, spans...)
		}
		blocks = append(blocks, Block{Kind: BlockText, Spans: spans})
	}

	return blocks
}

// boldSpans splits a line into plain and bold spans around **...** pairs.
func boldSpans(line string) []Span {
	matches := boldPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		if line == "" {
			return nil
		}
		return []Span{{Text: line}}
	}

	var spans []Span
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			spans = append(spans, Span{Text: line[pos:m[0]]})
		}
		spans = append(spans, Span{Text: line[m[2]:m[3]], Bold: true})
		pos = m[1]
	}
	if pos < len(line) {
		spans = append(spans, Span{Text: line[pos:]})
	}
	return spans
}
