package mdparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockquotes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Node
	}{
		{
			name: "simple",
			src:  "> This is a simple blockquote.",
			want: []Node{Blockquote{Level: 1, Content: []Inline{Text{"This is a simple blockquote."}}}},
		},
		{
			name: "multiline",
			src:  "> First line.\n> Second line.\n>Third.",
			want: []Node{Blockquote{Level: 1, Content: []Inline{Text{"First line. Second line. Third."}}}},
		},
		{
			name: "inline formatting",
			src:  "> **bold** and [Rust](https://rust-lang.org)",
			want: []Node{Blockquote{Level: 1, Content: []Inline{
				Bold{[]Inline{Text{"bold"}}},
				Text{" and "},
				Link{Text: []Inline{Text{"Rust"}}, URL: "https://rust-lang.org"},
			}}},
		},
		{
			name: "nested levels",
			src:  ">>> deep",
			want: []Node{Blockquote{Level: 3, Content: []Inline{Text{"deep"}}}},
		},
		{
			name: "level change starts a new blockquote",
			src:  "> First level.\n>> Second level.\n> Back.",
			want: []Node{
				Blockquote{Level: 1, Content: []Inline{Text{"First level."}}},
				Blockquote{Level: 2, Content: []Inline{Text{"Second level."}}},
				Blockquote{Level: 1, Content: []Inline{Text{"Back."}}},
			},
		},
		{
			name: "blank line separates",
			src:  "> one\n\n> two",
			want: []Node{
				Blockquote{Level: 1, Content: []Inline{Text{"one"}}},
				Blockquote{Level: 1, Content: []Inline{Text{"two"}}},
			},
		},
		{
			name: "empty quote lines",
			src:  ">\n> text\n>",
			want: []Node{Blockquote{Level: 1, Content: []Inline{Text{"text"}}}},
		},
		{
			name: "only markers",
			src:  ">>",
			want: []Node{Blockquote{Level: 2, Content: []Inline{}}},
		},
		{
			name: "indented marker",
			src:  "   > indented",
			want: []Node{Blockquote{Level: 1, Content: []Inline{Text{"indented"}}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.src))
		})
	}
}

func TestBlockquoteBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []NodeKind
	}{
		{"paragraph", "> quote\n\nparagraph", []NodeKind{BlockquoteNode, ParagraphNode}},
		{"heading", "> quote\n# Heading", []NodeKind{BlockquoteNode, HeadingNode}},
		{"list", "> quote\n- item", []NodeKind{BlockquoteNode, UnorderedListNode}},
		{"fence", "> quote\n```\nx\n```", []NodeKind{BlockquoteNode, CodeBlockNode}},
		{"plain line", "> quote\nlazy", []NodeKind{BlockquoteNode, ParagraphNode}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []NodeKind
			for _, n := range mustParse(t, tt.src) {
				kinds = append(kinds, n.Kind())
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestParseBlockquoteWithoutPrecondition(t *testing.T) {
	p, err := NewParser(DefaultParserConfig())
	require.NoError(t, err)

	p.lines = []string{"", "no quote"}
	_, _, err = p.parseBlockquote(1)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrMalformedMarkdown, pe.Kind)
	assert.Equal(t, Span{Line: 2}, pe.Span)
	assert.Equal(t, "Expected blockquote line", pe.Msg)
}
