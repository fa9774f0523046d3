package mdparser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeJSON(t *testing.T) {
	yes := true
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "heading",
			node: Heading{Level: 2, Content: []Inline{Text{"Hi "}, Bold{[]Inline{Text{"there"}}}}},
			want: `{"type":"heading","level":2,"content":[{"type":"text","content":"Hi "},{"type":"bold","content":[{"type":"text","content":"there"}]}]}`,
		},
		{
			name: "paragraph with every inline",
			node: Paragraph{Content: []Inline{
				Italic{[]Inline{Text{"i"}}},
				Strikethrough{[]Inline{Text{"s"}}},
				Code{"c"},
				Link{Text: []Inline{Text{"l"}}, URL: "u"},
				Image{Alt: "a", URL: "p.png"},
			}},
			want: `{"type":"paragraph","content":[
				{"type":"italic","content":[{"type":"text","content":"i"}]},
				{"type":"strikethrough","content":[{"type":"text","content":"s"}]},
				{"type":"code","content":"c"},
				{"type":"link","text":[{"type":"text","content":"l"}],"url":"u"},
				{"type":"image","alt":"a","url":"p.png"}]}`,
		},
		{
			name: "empty paragraph",
			node: Paragraph{},
			want: `{"type":"paragraph","content":[]}`,
		},
		{
			name: "list items",
			node: UnorderedList{Items: []ListItem{
				{Content: []Inline{Text{"plain"}}},
				{Content: []Inline{Text{"done"}}, Checked: &yes, Children: []ListItem{{}}},
			}},
			want: `{"type":"unordered_list","items":[
				{"content":[{"type":"text","content":"plain"}],"children":[]},
				{"content":[{"type":"text","content":"done"}],"children":[{"content":[],"children":[]}],"checked":true}]}`,
		},
		{
			name: "ordered list",
			node: OrderedList{},
			want: `{"type":"ordered_list","items":[]}`,
		},
		{
			name: "code block without language",
			node: CodeBlock{Code: "x"},
			want: `{"type":"code_block","lang":null,"code":"x"}`,
		},
		{
			name: "code block with language",
			node: CodeBlock{Lang: "go", Code: "x"},
			want: `{"type":"code_block","lang":"go","code":"x"}`,
		},
		{
			name: "table",
			node: Table{
				Headers:    [][]Inline{{Text{"A"}}, nil},
				Rows:       [][][]Inline{{{Text{"1"}}, {}}},
				Alignments: []Alignment{AlignNone, AlignCenter},
			},
			want: `{"type":"table",
				"headers":[[{"type":"text","content":"A"}],[]],
				"rows":[[[{"type":"text","content":"1"}],[]]],
				"alignments":[null,"center"]}`,
		},
		{
			name: "blockquote",
			node: Blockquote{Level: 2, Content: []Inline{Text{"q"}}},
			want: `{"type":"blockquote","level":2,"content":[{"type":"text","content":"q"}]}`,
		},
		{
			name: "horizontal rule",
			node: HorizontalRule{},
			want: `{"type":"horizontal_rule"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.node)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestMermaidJSON(t *testing.T) {
	m := MermaidDiagram{
		Diagram: "graph TD",
		Config: &MermaidConfig{
			Theme:          "dark",
			FontSize:       "16px",
			ThemeVariables: map[string]string{"fontFamily": "arial"},
		},
		Validation: ValidationStatus{State: Valid},
		Warnings:   []string{"w"},
	}
	got, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type":"mermaid_diagram",
		"diagram":"graph TD",
		"config":{"theme":"dark","font_size":"16px","theme_variables":{"fontFamily":"arial"}},
		"validation_status":{"status":"valid"},
		"warnings":["w"]}`, string(got))

	got, err = json.Marshal(MermaidDiagram{Diagram: "x", Validation: ValidationStatus{State: Invalid}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"mermaid_diagram","diagram":"x","validation_status":{"status":"invalid","errors":[]}}`, string(got))
}

func TestValidationStatusJSON(t *testing.T) {
	tests := []struct {
		status ValidationStatus
		want   string
	}{
		{ValidationStatus{State: NotValidated}, `{"status":"notvalidated"}`},
		{ValidationStatus{State: Valid}, `{"status":"valid"}`},
		{ValidationStatus{State: Invalid, Errors: []string{"a", "b"}}, `{"status":"invalid","errors":["a","b"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.status.State.String(), func(t *testing.T) {
			got, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestMarshalNodes(t *testing.T) {
	out, err := MarshalNodes(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	p := defaultParser(t)
	_, err = p.Parse("# T\n\n---")
	require.NoError(t, err)
	out, err = p.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "type": "heading",
    "level": 1,
    "content": [
      {
        "type": "text",
        "content": "T"
      }
    ]
  },
  {
    "type": "horizontal_rule"
  }
]`, string(out))
}
