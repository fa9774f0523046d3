package mdparser

import (
	"strings"
)

// quoteLevel returns the number of leading '>' of the trimmed line and the
// text after them.
func quoteLevel(line string) (int, string) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '>' {
		level++
	}
	return level, strings.TrimSpace(trimmed[level:])
}

func (p *Parser) endsBlockquote(line string, level int) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, p.cfg.CodeFencePattern) {
		return true
	}
	if isListLine(line) || isTableRow(line) {
		return true
	}
	l, _ := quoteLevel(line)
	return l != level
}

// parseBlockquote joins consecutive lines of the same nesting level with a
// space. A change of level starts a new blockquote.
func (p *Parser) parseBlockquote(i int) (Node, int, error) {
	level, text := quoteLevel(p.lines[i])
	if level == 0 {
		return nil, 0, malformed(i+1, "Expected blockquote line")
	}

	var parts []string
	if text != "" {
		parts = append(parts, text)
	}
	j := i + 1
	for ; j < len(p.lines) && !p.endsBlockquote(p.lines[j], level); j++ {
		if _, text := quoteLevel(p.lines[j]); text != "" {
			parts = append(parts, text)
		}
	}

	joined := strings.Join(parts, " ")
	content := []Inline{}
	if joined != "" {
		var err error
		if content, err = p.inline.parse(joined); err != nil {
			return nil, 0, err
		}
	}

	return Blockquote{Level: level, Content: content}, j, nil
}
