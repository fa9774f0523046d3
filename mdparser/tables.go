package mdparser

import (
	"strings"
)

// isTableRow reports whether the trimmed line starts with '|' and has at
// least one more '|'.
func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed[1:], "|")
}

// separatorCells returns the non-empty cells of a separator row, or false if
// the line is not a separator. A valid cell is three or more '-' with an
// optional ':' on either side.
func separatorCells(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return nil, false
	}

	var cells []string
	for _, part := range strings.Split(trimmed, "|")[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dashes := strings.TrimSuffix(strings.TrimPrefix(part, ":"), ":")
		if len(dashes) < 3 || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		cells = append(cells, part)
	}
	return cells, len(cells) > 0
}

func isSeparatorRow(line string) bool {
	_, ok := separatorCells(line)
	return ok
}

func cellAlignment(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	case left:
		return AlignLeft
	}
	return AlignNone
}

// splitRow splits a row on '|', dropping the empty segments produced by a
// leading or trailing pipe. Empty cells produce empty content.
func (p *Parser) splitRow(line string) ([][]Inline, error) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	row := make([][]Inline, 0, len(parts))
	for _, part := range parts {
		text := strings.TrimSpace(part)
		if text == "" {
			row = append(row, []Inline{})
			continue
		}
		cell, err := p.inline.parse(text)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
	}
	return row, nil
}

func (p *Parser) endsTable(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, p.cfg.CodeFencePattern) {
		return true
	}
	return isListLine(line) || !isTableRow(line)
}

func (p *Parser) parseTable(i int) (Node, int, error) {
	if !isTableRow(p.lines[i]) {
		return nil, 0, malformed(i+1, "Expected table row")
	}
	headers, err := p.splitRow(p.lines[i])
	if err != nil {
		return nil, 0, err
	}

	if i+1 >= len(p.lines) {
		return nil, 0, malformed(i+2, "Expected table separator row")
	}
	sep, ok := separatorCells(p.lines[i+1])
	if !ok {
		return nil, 0, malformed(i+2, "Expected table separator row")
	}
	alignments := make([]Alignment, 0, len(sep))
	for _, cell := range sep {
		alignments = append(alignments, cellAlignment(cell))
	}

	table := Table{Headers: headers, Rows: [][][]Inline{}, Alignments: alignments}

	j := i + 2
	for ; j < len(p.lines) && !p.endsTable(p.lines[j]); j++ {
		row, err := p.splitRow(p.lines[j])
		if err != nil {
			return nil, 0, err
		}
		table.Rows = append(table.Rows, row)
	}

	return table, j, nil
}
