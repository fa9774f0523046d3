package mdparser

import (
	"strconv"
	"strings"
)

// A NodeKind identifies the concrete type of a block Node.
type NodeKind uint32

const (
	HeadingNode NodeKind = iota + 1
	ParagraphNode
	UnorderedListNode
	OrderedListNode
	CodeBlockNode
	MermaidDiagramNode
	TableNode
	BlockquoteNode
	HorizontalRuleNode
)

// String returns the name used as the "type" tag in the JSON form.
func (k NodeKind) String() string {
	switch k {
	case HeadingNode:
		return "heading"
	case ParagraphNode:
		return "paragraph"
	case UnorderedListNode:
		return "unordered_list"
	case OrderedListNode:
		return "ordered_list"
	case CodeBlockNode:
		return "code_block"
	case MermaidDiagramNode:
		return "mermaid_diagram"
	case TableNode:
		return "table"
	case BlockquoteNode:
		return "blockquote"
	case HorizontalRuleNode:
		return "horizontal_rule"
	}
	return "invalid node (" + strconv.Itoa(int(k)) + ")"
}

// Node is a top-level unit of a parsed document.
type Node interface {
	Kind() NodeKind
}

// An InlineKind identifies the concrete type of an Inline element.
type InlineKind uint32

const (
	TextInline InlineKind = iota + 1
	BoldInline
	ItalicInline
	StrikethroughInline
	CodeInline
	LinkInline
	ImageInline
)

func (k InlineKind) String() string {
	switch k {
	case TextInline:
		return "text"
	case BoldInline:
		return "bold"
	case ItalicInline:
		return "italic"
	case StrikethroughInline:
		return "strikethrough"
	case CodeInline:
		return "code"
	case LinkInline:
		return "link"
	case ImageInline:
		return "image"
	}
	return "invalid inline (" + strconv.Itoa(int(k)) + ")"
}

// Inline is a span-level element inside the content of a block.
type Inline interface {
	Kind() InlineKind
}

type Text struct {
	Content string
}

type Bold struct {
	Content []Inline
}

type Italic struct {
	Content []Inline
}

type Strikethrough struct {
	Content []Inline
}

// Code is an inline code span. Its content is never parsed for markup.
type Code struct {
	Content string
}

type Link struct {
	Text []Inline
	URL  string
}

type Image struct {
	Alt string
	URL string
}

func (Text) Kind() InlineKind          { return TextInline }
func (Bold) Kind() InlineKind          { return BoldInline }
func (Italic) Kind() InlineKind        { return ItalicInline }
func (Strikethrough) Kind() InlineKind { return StrikethroughInline }
func (Code) Kind() InlineKind          { return CodeInline }
func (Link) Kind() InlineKind          { return LinkInline }
func (Image) Kind() InlineKind         { return ImageInline }

// PlainText returns the text of a sequence of inlines with all markup removed.
// Images contribute their alt text.
func PlainText(content []Inline) string {
	var sb strings.Builder
	writePlain(&sb, content)
	return sb.String()
}

func writePlain(sb *strings.Builder, content []Inline) {
	for _, in := range content {
		switch v := in.(type) {
		case Text:
			sb.WriteString(v.Content)
		case Code:
			sb.WriteString(v.Content)
		case Image:
			sb.WriteString(v.Alt)
		case Bold:
			writePlain(sb, v.Content)
		case Italic:
			writePlain(sb, v.Content)
		case Strikethrough:
			writePlain(sb, v.Content)
		case Link:
			writePlain(sb, v.Text)
		}
	}
}

// ListItem is an entry of an ordered or unordered list. Checked is nil for
// plain items and points to the task state for task items.
type ListItem struct {
	Content  []Inline
	Children []ListItem
	Checked  *bool
}

// IsTask reports whether the item was written with task syntax.
func (li ListItem) IsTask() bool {
	return li.Checked != nil
}

// Alignment of a table column. AlignNone means no explicit marker.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

// ValidationState is the outcome of checking a Mermaid diagram.
type ValidationState int

const (
	NotValidated ValidationState = iota
	Valid
	Invalid
)

func (s ValidationState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "notvalidated"
}

// ValidationStatus carries the state of a Mermaid diagram check. Errors is
// only populated when State is Invalid.
type ValidationStatus struct {
	State  ValidationState
	Errors []string
}

// MermaidConfig holds rendering settings for one diagram. Empty strings and a
// nil map mean the field was not set.
type MermaidConfig struct {
	Theme          string            `json:"theme,omitempty"`
	FontSize       string            `json:"font_size,omitempty"`
	FontFamily     string            `json:"font_family,omitempty"`
	ThemeVariables map[string]string `json:"theme_variables,omitempty"`
}

func (c *MermaidConfig) isEmpty() bool {
	return c.Theme == "" && c.FontSize == "" && c.FontFamily == "" && len(c.ThemeVariables) == 0
}

type Heading struct {
	Level   int
	Content []Inline
}

// Text returns the heading content without markup.
func (h Heading) Text() string {
	return PlainText(h.Content)
}

type Paragraph struct {
	Content []Inline
}

type UnorderedList struct {
	Items []ListItem
}

type OrderedList struct {
	Items []ListItem
}

// CodeBlock is a fenced block. Lang is empty when the fence has no tag.
type CodeBlock struct {
	Lang string
	Code string
}

// MermaidDiagram is a fenced block tagged with the Mermaid language.
// Diagram has any init directive removed. Warnings are the non-fatal findings
// of validation.
type MermaidDiagram struct {
	Diagram    string
	Config     *MermaidConfig
	Validation ValidationStatus
	Warnings   []string
}

// Table holds header cells, body rows and one alignment per separator cell.
type Table struct {
	Headers    [][]Inline
	Rows       [][][]Inline
	Alignments []Alignment
}

type Blockquote struct {
	Level   int
	Content []Inline
}

type HorizontalRule struct{}

func (Heading) Kind() NodeKind        { return HeadingNode }
func (Paragraph) Kind() NodeKind      { return ParagraphNode }
func (UnorderedList) Kind() NodeKind  { return UnorderedListNode }
func (OrderedList) Kind() NodeKind    { return OrderedListNode }
func (CodeBlock) Kind() NodeKind      { return CodeBlockNode }
func (MermaidDiagram) Kind() NodeKind { return MermaidDiagramNode }
func (Table) Kind() NodeKind          { return TableNode }
func (Blockquote) Kind() NodeKind     { return BlockquoteNode }
func (HorizontalRule) Kind() NodeKind { return HorizontalRuleNode }
