package mdparser

import (
	"context"
	"strings"
)

// parseHeading returns nil when the line is not a heading: a run of '#'
// with nothing after it. Too many '#' is an error, reported with the level
// capped at one above the maximum.
func (p *Parser) parseHeading(i int) (*Heading, error) {
	trimmed := strings.TrimSpace(p.lines[i])
	limit := p.cfg.MaxHeadingLevel

	level := 0
	for level < len(trimmed) && trimmed[level] == '#' && level <= limit {
		level++
	}
	if level == 0 {
		return nil, nil
	}
	if level > limit {
		return nil, &ParseError{Kind: ErrInvalidHeadingLevel, Span: Span{Line: i + 1}, Level: level, Max: limit}
	}

	text := strings.TrimSpace(trimmed[level:])
	if text == "" {
		return nil, nil
	}
	content, err := p.inline.parse(text)
	if err != nil {
		return nil, err
	}
	return &Heading{Level: level, Content: content}, nil
}

// parseCodeBlock reads a fenced block. The body is kept verbatim up to a
// line that is exactly the fence once trimmed.
func (p *Parser) parseCodeBlock(ctx context.Context, i int) (Node, int, error) {
	fence := p.cfg.CodeFencePattern
	opening := strings.TrimSpace(p.lines[i])
	if !strings.HasPrefix(opening, fence) {
		return nil, 0, malformed(i+1, "Expected code fence")
	}
	lang := strings.TrimSpace(opening[len(fence):])

	var body []string
	for j := i + 1; j < len(p.lines); j++ {
		if strings.TrimSpace(p.lines[j]) != fence {
			body = append(body, p.lines[j])
			continue
		}

		code := strings.Join(body, "\n")
		if lang != "" && strings.EqualFold(lang, p.cfg.MermaidLanguage) {
			return p.mermaidDiagram(ctx, code, i+1), j + 1, nil
		}
		return CodeBlock{Lang: lang, Code: code}, j + 1, nil
	}

	return nil, 0, &ParseError{Kind: ErrUnclosedCodeBlock, Span: Span{Line: i + 1}}
}

// isHorizontalRule reports whether the line starts with a run of three or
// more of the same '-' or '*'. Whitespace may separate markers after the run.
func isHorizontalRule(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 || (trimmed[0] != '-' && trimmed[0] != '*') {
		return false
	}
	marker := trimmed[0]
	run := 0
	for run < len(trimmed) && trimmed[run] == marker {
		run++
	}
	if run < 3 {
		return false
	}
	for i := run; i < len(trimmed); i++ {
		switch trimmed[i] {
		case marker, ' ', '\t':
		default:
			return false
		}
	}
	return true
}

func (p *Parser) endsParagraph(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "",
		strings.HasPrefix(trimmed, "#"),
		strings.HasPrefix(trimmed, p.cfg.CodeFencePattern),
		strings.HasPrefix(trimmed, ">"):
		return true
	}
	return isListLine(line) || isTableRow(line)
}

// parseParagraph joins lines with a space until a line that starts another
// block. The first line is always taken, whatever it looks like.
func (p *Parser) parseParagraph(i int) (Node, int, error) {
	parts := []string{strings.TrimSpace(p.lines[i])}
	j := i + 1
	for ; j < len(p.lines) && !p.endsParagraph(p.lines[j]); j++ {
		parts = append(parts, strings.TrimSpace(p.lines[j]))
	}

	content, err := p.inline.parse(strings.Join(parts, " "))
	if err != nil {
		return nil, 0, err
	}
	return Paragraph{Content: content}, j, nil
}
