package mdparser

import (
	"encoding/json"
)

// The JSON form tags every variant with a "type" (nodes, inlines) or
// "status" (validation) discriminant. Empty sequences are written as [] so
// consumers never have to handle null content.

func nonNil(content []Inline) []Inline {
	if content == nil {
		return []Inline{}
	}
	return content
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}{TextInline.String(), t.Content})
}

func (b Bold) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Content []Inline `json:"content"`
	}{BoldInline.String(), nonNil(b.Content)})
}

func (i Italic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Content []Inline `json:"content"`
	}{ItalicInline.String(), nonNil(i.Content)})
}

func (s Strikethrough) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Content []Inline `json:"content"`
	}{StrikethroughInline.String(), nonNil(s.Content)})
}

func (c Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}{CodeInline.String(), c.Content})
}

func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string   `json:"type"`
		Text []Inline `json:"text"`
		URL  string   `json:"url"`
	}{LinkInline.String(), nonNil(l.Text), l.URL})
}

func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Alt  string `json:"alt"`
		URL  string `json:"url"`
	}{ImageInline.String(), i.Alt, i.URL})
}

func (li ListItem) MarshalJSON() ([]byte, error) {
	children := li.Children
	if children == nil {
		children = []ListItem{}
	}
	return json.Marshal(struct {
		Content  []Inline   `json:"content"`
		Children []ListItem `json:"children"`
		Checked  *bool      `json:"checked,omitempty"`
	}{nonNil(li.Content), children, li.Checked})
}

func (a Alignment) MarshalJSON() ([]byte, error) {
	if a == AlignNone {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

func (v ValidationStatus) MarshalJSON() ([]byte, error) {
	if v.State == Invalid {
		errs := v.Errors
		if errs == nil {
			errs = []string{}
		}
		return json.Marshal(struct {
			Status string   `json:"status"`
			Errors []string `json:"errors"`
		}{v.State.String(), errs})
	}
	return json.Marshal(struct {
		Status string `json:"status"`
	}{v.State.String()})
}

func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Level   int      `json:"level"`
		Content []Inline `json:"content"`
	}{HeadingNode.String(), h.Level, nonNil(h.Content)})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Content []Inline `json:"content"`
	}{ParagraphNode.String(), nonNil(p.Content)})
}

func listJSON(kind NodeKind, items []ListItem) ([]byte, error) {
	if items == nil {
		items = []ListItem{}
	}
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Items []ListItem `json:"items"`
	}{kind.String(), items})
}

func (l UnorderedList) MarshalJSON() ([]byte, error) {
	return listJSON(UnorderedListNode, l.Items)
}

func (l OrderedList) MarshalJSON() ([]byte, error) {
	return listJSON(OrderedListNode, l.Items)
}

func (c CodeBlock) MarshalJSON() ([]byte, error) {
	var lang *string
	if c.Lang != "" {
		lang = &c.Lang
	}
	return json.Marshal(struct {
		Type string  `json:"type"`
		Lang *string `json:"lang"`
		Code string  `json:"code"`
	}{CodeBlockNode.String(), lang, c.Code})
}

func (m MermaidDiagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type             string           `json:"type"`
		Diagram          string           `json:"diagram"`
		Config           *MermaidConfig   `json:"config,omitempty"`
		ValidationStatus ValidationStatus `json:"validation_status"`
		Warnings         []string         `json:"warnings,omitempty"`
	}{MermaidDiagramNode.String(), m.Diagram, m.Config, m.Validation, m.Warnings})
}

func cells(row [][]Inline) [][]Inline {
	out := make([][]Inline, 0, len(row))
	for _, cell := range row {
		out = append(out, nonNil(cell))
	}
	return out
}

func (t Table) MarshalJSON() ([]byte, error) {
	headers := cells(t.Headers)
	rows := make([][][]Inline, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, cells(row))
	}
	alignments := t.Alignments
	if alignments == nil {
		alignments = []Alignment{}
	}
	return json.Marshal(struct {
		Type       string       `json:"type"`
		Headers    [][]Inline   `json:"headers"`
		Rows       [][][]Inline `json:"rows"`
		Alignments []Alignment  `json:"alignments"`
	}{TableNode.String(), headers, rows, alignments})
}

func (b Blockquote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Level   int      `json:"level"`
		Content []Inline `json:"content"`
	}{BlockquoteNode.String(), b.Level, nonNil(b.Content)})
}

func (HorizontalRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{HorizontalRuleNode.String()})
}

// MarshalNodes encodes a document as an indented JSON array.
func MarshalNodes(nodes []Node) ([]byte, error) {
	if nodes == nil {
		nodes = []Node{}
	}
	out, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return nil, &ParseError{Kind: ErrSerialization, Msg: err.Error(), Err: err}
	}
	return out, nil
}
