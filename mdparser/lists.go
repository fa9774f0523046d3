package mdparser

import (
	"strings"
)

// listLine is a classified list item line.
type listLine struct {
	depth   int
	content string
	checked *bool
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// detectUnorderedItem recognizes "-", "*" or "+" followed by a space as the
// first non-space characters of the line. Two leading spaces make one level.
func detectUnorderedItem(line string) (listLine, bool) {
	spaces := leadingSpaces(line)
	rest := line[spaces:]
	if len(rest) < 2 || rest[1] != ' ' {
		return listLine{}, false
	}
	switch rest[0] {
	case '-', '*', '+':
	default:
		return listLine{}, false
	}

	item := listLine{depth: spaces / 2}
	item.checked, item.content = taskState(rest[2:])
	return item, true
}

// taskState splits "[ ] text", "[x] text" or "[X] text" into the task state
// and the text. Other input is returned trimmed with a nil state.
func taskState(s string) (*bool, string) {
	if len(s) < 3 || (len(s) > 3 && s[3] != ' ') {
		return nil, strings.TrimSpace(s)
	}
	var state bool
	switch s[:3] {
	case "[ ]":
	case "[x]", "[X]":
		state = true
	default:
		return nil, strings.TrimSpace(s)
	}
	return &state, strings.TrimSpace(s[3:])
}

// detectOrderedItem recognizes one or more digits, a '.' and a space as the
// first non-space characters of the line.
func detectOrderedItem(line string) (listLine, bool) {
	spaces := leadingSpaces(line)
	rest := line[spaces:]

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+2 > len(rest) || rest[digits] != '.' || rest[digits+1] != ' ' {
		return listLine{}, false
	}

	return listLine{depth: spaces / 2, content: strings.TrimSpace(rest[digits+2:])}, true
}

func isListLine(line string) bool {
	if _, ok := detectUnorderedItem(line); ok {
		return true
	}
	_, ok := detectOrderedItem(line)
	return ok
}

// isContinuation reports whether line extends the text of the previous list
// item: indented, not blank, and not starting another block.
func (p *Parser) isContinuation(line string) bool {
	if leadingSpaces(line) == 0 {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || isListLine(line) {
		return false
	}
	return !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, p.cfg.CodeFencePattern)
}

// listBuilder rebuilds the item tree from a flat run of lines. last holds the
// index of the most recent item at each depth; last[:d] is therefore the
// index path from the top level to the parent of a new item at depth d, and
// the whole slice is the path to the most recently added item.
type listBuilder struct {
	items []ListItem
	last  []int
}

// at walks an index path and returns the item it designates.
func (b *listBuilder) at(path []int) *ListItem {
	item := &b.items[path[0]]
	for _, idx := range path[1:] {
		item = &item.Children[idx]
	}
	return item
}

// add places item at depth d. An item whose parent depth was never seen is
// promoted to the top level.
func (b *listBuilder) add(d int, item ListItem) {
	if len(b.last) > d+1 {
		b.last = b.last[:d+1]
	}

	if d == 0 || len(b.last) < d {
		b.items = append(b.items, item)
		b.last = []int{len(b.items) - 1}
		return
	}

	parent := b.at(b.last[:d])
	parent.Children = append(parent.Children, item)
	b.last = append(b.last[:d], len(parent.Children)-1)
}

// hasParent reports whether an item at depth d would be nested.
func (b *listBuilder) hasParent(d int) bool {
	return d > 0 && len(b.last) >= d
}

// extend appends continuation text to the most recently added item.
func (b *listBuilder) extend(content []Inline) {
	if len(b.last) == 0 || len(content) == 0 {
		return
	}
	item := b.at(b.last)
	if len(item.Content) > 0 {
		item.Content = append(item.Content, Text{Content: " "})
	}
	item.Content = append(item.Content, content...)
}

func (p *Parser) listItem(l listLine) (ListItem, error) {
	content, err := p.inline.parse(l.content)
	if err != nil {
		return ListItem{}, err
	}
	return ListItem{Content: content, Checked: l.checked}, nil
}

// continuation handles a line that is not an item of the current list. It
// reports whether the line was absorbed as continuation text.
func (p *Parser) continuation(b *listBuilder, line string) (bool, error) {
	if !p.isContinuation(line) {
		return false, nil
	}
	content, err := p.inline.parse(strings.TrimSpace(line))
	if err != nil {
		return false, err
	}
	b.extend(content)
	return true, nil
}

func (p *Parser) parseUnorderedList(i int) (Node, int, error) {
	if _, ok := detectUnorderedItem(p.lines[i]); !ok {
		return nil, 0, malformed(i+1, "Expected unordered list item")
	}

	b := &listBuilder{}
	j := i
	for ; j < len(p.lines); j++ {
		line := p.lines[j]
		if strings.TrimSpace(line) == "" {
			break
		}

		if l, ok := detectUnorderedItem(line); ok {
			item, err := p.listItem(l)
			if err != nil {
				return nil, 0, err
			}
			b.add(l.depth, item)
			continue
		}

		ok, err := p.continuation(b, line)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}
	}

	return UnorderedList{Items: b.items}, j, nil
}

// parseOrderedList also accepts unordered items nested under an ordered
// item. An unordered item with nothing to nest under ends the list.
func (p *Parser) parseOrderedList(i int) (Node, int, error) {
	if _, ok := detectOrderedItem(p.lines[i]); !ok {
		return nil, 0, malformed(i+1, "Expected ordered list item")
	}

	b := &listBuilder{}
	j := i
	for ; j < len(p.lines); j++ {
		line := p.lines[j]
		if strings.TrimSpace(line) == "" {
			break
		}

		l, ok := detectOrderedItem(line)
		if !ok {
			l, ok = detectUnorderedItem(line)
			if ok && !b.hasParent(l.depth) {
				break
			}
		}
		if ok {
			item, err := p.listItem(l)
			if err != nil {
				return nil, 0, err
			}
			b.add(l.depth, item)
			continue
		}

		absorbed, err := p.continuation(b, line)
		if err != nil {
			return nil, 0, err
		}
		if !absorbed {
			break
		}
	}

	return OrderedList{Items: b.items}, j, nil
}
