// Package render turns a parsed document into HTML.
package render

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hesusruiz/mdparser/mdparser"
	"github.com/hesusruiz/mdparser/sliceedit"
	"go.uber.org/zap"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// TitlePlaceholder in the header template is replaced by the document title.
const TitlePlaceholder = "{{title}}"

// DefaultTitle is used when the document has no heading.
const DefaultTitle = "Document"

type Config struct {
	// Template files. A path that does not exist falls back to the
	// embedded default.
	HeaderPath    string
	BodyStartPath string
	FooterPath    string
	StylesPath    string

	// CodeStyle is the chroma style name used for highlighting
	CodeStyle     string
	HighlightCode bool

	// RenderD2 compiles d2 code blocks into inline SVG
	RenderD2 bool
}

func DefaultConfig() Config {
	return Config{
		HeaderPath:    "assets/html_header.html",
		BodyStartPath: "assets/html_body_start.html",
		FooterPath:    "assets/html_footer.html",
		StylesPath:    "assets/styles.css",
		CodeStyle:     "github",
		HighlightCode: true,
		RenderD2:      true,
	}
}

type Renderer struct {
	cfg Config
	log *zap.SugaredLogger
	ctx context.Context

	hl    *highlighter
	ruler *textmeasure.Ruler
}

// An Option customizes a Renderer.
type Option func(*Renderer)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithContext bounds the compilation of d2 diagrams.
func WithContext(ctx context.Context) Option {
	return func(r *Renderer) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

func New(cfg Config, opts ...Option) *Renderer {
	r := &Renderer{
		cfg: cfg,
		log: zap.NewNop().Sugar(),
		ctx: context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.HighlightCode {
		r.hl = newHighlighter(cfg.CodeStyle)
	}
	return r
}

// Fragment renders the nodes, each followed by a newline.
func (r *Renderer) Fragment(nodes []mdparser.Node) []byte {
	br := &ByteRenderer{}
	for _, n := range nodes {
		r.renderNode(br, n)
		br.Renderln()
	}
	return br.Bytes()
}

// Document renders a complete HTML page: header, inline styles, body start,
// the rendered nodes and footer.
func (r *Renderer) Document(nodes []mdparser.Node) ([]byte, error) {
	t, err := r.loadTemplates()
	if err != nil {
		return nil, err
	}

	header := sliceedit.NewBuffer(t.header)
	header.ReplaceAllString(TitlePlaceholder, escape(Title(nodes)))

	br := &ByteRenderer{}
	br.Render(header.Bytes())
	br.Render("<style>\n", t.styles, "\n</style>")
	br.Render(t.bodyStart)
	br.Render(r.Fragment(nodes))
	br.Render(t.footer)
	return br.Bytes(), nil
}

// Title returns the text of the first heading, or DefaultTitle.
func Title(nodes []mdparser.Node) string {
	for _, n := range nodes {
		if h, ok := n.(mdparser.Heading); ok {
			return h.Text()
		}
	}
	return DefaultTitle
}

func (r *Renderer) renderNode(br *ByteRenderer, node mdparser.Node) {
	switch n := node.(type) {
	case mdparser.Heading:
		br.Render("<h", n.Level, ">")
		renderInlines(br, n.Content)
		br.Render("</h", n.Level, ">")

	case mdparser.Paragraph:
		br.Render("<p>")
		renderInlines(br, n.Content)
		br.Render("</p>")

	case mdparser.UnorderedList:
		br.Render("<ul>")
		renderItems(br, n.Items)
		br.Render("</ul>")

	case mdparser.OrderedList:
		br.Render("<ol>")
		renderItems(br, n.Items)
		br.Render("</ol>")

	case mdparser.CodeBlock:
		r.renderCodeBlock(br, n)

	case mdparser.MermaidDiagram:
		renderMermaid(br, n)

	case mdparser.Table:
		renderTable(br, n)

	case mdparser.Blockquote:
		br.Render(strings.Repeat("<blockquote>", n.Level))
		renderInlines(br, n.Content)
		br.Render(strings.Repeat("</blockquote>", n.Level))

	case mdparser.HorizontalRule:
		br.Render("<hr>")

	default:
		r.log.Warnw("unknown node", "kind", node.Kind().String())
	}
}

func renderInlines(br *ByteRenderer, content []mdparser.Inline) {
	for _, in := range content {
		switch v := in.(type) {
		case mdparser.Text:
			br.Escaped(v.Content)
		case mdparser.Bold:
			br.Render("<strong>")
			renderInlines(br, v.Content)
			br.Render("</strong>")
		case mdparser.Italic:
			br.Render("<em>")
			renderInlines(br, v.Content)
			br.Render("</em>")
		case mdparser.Strikethrough:
			br.Render("<del>")
			renderInlines(br, v.Content)
			br.Render("</del>")
		case mdparser.Code:
			br.Render("<code>")
			br.Escaped(v.Content)
			br.Render("</code>")
		case mdparser.Link:
			br.Render(`<a href="`, escape(v.URL), `">`)
			renderInlines(br, v.Text)
			br.Render("</a>")
		case mdparser.Image:
			br.Render(`<img src="`, escape(v.URL), `" alt="`, escape(v.Alt), `" />`)
		}
	}
}

// renderItems writes the li elements of a list. Children are always a
// nested unordered list.
func renderItems(br *ByteRenderer, items []mdparser.ListItem) {
	for _, item := range items {
		br.Render("<li>")
		if item.IsTask() {
			if *item.Checked {
				br.Render(`<input type="checkbox" disabled checked> `)
			} else {
				br.Render(`<input type="checkbox" disabled> `)
			}
		}
		renderInlines(br, item.Content)
		if len(item.Children) > 0 {
			br.Render("<ul>")
			renderItems(br, item.Children)
			br.Render("</ul>")
		}
		br.Render("</li>")
	}
}

func (r *Renderer) renderCodeBlock(br *ByteRenderer, n mdparser.CodeBlock) {
	if r.cfg.RenderD2 && strings.EqualFold(n.Lang, D2Language) {
		svg, err := r.d2SVG(r.ctx, n.Code)
		if err == nil {
			br.Render(`<figure class="d2">`, svg, "</figure>")
			return
		}
		r.log.Warnw("d2 diagram rendered as code", "error", err)
	}

	br.Render("<pre><code")
	if n.Lang != "" {
		br.Render(` class="language-`, escape(n.Lang), `"`)
	}
	br.Render(">")

	if r.hl != nil {
		if out, ok := r.hl.highlight(n.Lang, n.Code); ok {
			br.Render(out, "</code></pre>")
			return
		}
	}

	br.Escaped(n.Code)
	br.Render("</code></pre>")
}

func renderMermaid(br *ByteRenderer, n mdparser.MermaidDiagram) {
	if n.Validation.State == mdparser.Invalid {
		br.Renderln("<!-- Mermaid validation errors:")
		for _, e := range n.Validation.Errors {
			br.Renderln("  - ", escape(e))
		}
		br.Renderln("-->")
	}
	if len(n.Warnings) > 0 {
		br.Renderln("<!-- Mermaid validation warnings:")
		for _, w := range n.Warnings {
			br.Renderln("  - ", escape(w))
		}
		br.Renderln("-->")
	}

	br.Render(`<div class="mermaid"`)
	if cfg := n.Config; cfg != nil {
		if data, err := json.Marshal(cfg); err == nil {
			br.Render(` data-mermaid-config="`, escape(string(data)), `"`)
		}
		if cfg.Theme != "" {
			br.Render(` data-mermaid-theme="`, escape(cfg.Theme), `"`)
		}
		if cfg.FontSize != "" {
			br.Render(` data-mermaid-font-size="`, escape(cfg.FontSize), `"`)
		}
		if cfg.FontFamily != "" {
			br.Render(` data-mermaid-font-family="`, escape(cfg.FontFamily), `"`)
		}
	}
	switch n.Validation.State {
	case mdparser.Valid:
		br.Render(` data-mermaid-valid="true"`)
	case mdparser.Invalid:
		br.Render(` data-mermaid-valid="false"`)
	}
	br.Render(">")
	br.Escaped(n.Diagram)
	br.Render("</div>")
}

func alignStyle(alignments []mdparser.Alignment, i int) string {
	if i >= len(alignments) || alignments[i] == mdparser.AlignNone {
		return ""
	}
	return ` style="text-align: ` + alignments[i].String() + `;"`
}

func renderTable(br *ByteRenderer, t mdparser.Table) {
	br.Renderln("<table>")
	br.Renderln("<thead>")
	br.Render("<tr>")
	for i, cell := range t.Headers {
		br.Render("<th", alignStyle(t.Alignments, i), ">")
		renderInlines(br, cell)
		br.Render("</th>")
	}
	br.Renderln("</tr>")
	br.Renderln("</thead>")

	br.Render("<tbody>")
	for _, row := range t.Rows {
		br.Render("<tr>")
		for i, cell := range row {
			br.Render("<td", alignStyle(t.Alignments, i), ">")
			renderInlines(br, cell)
			br.Render("</td>")
		}
		br.Render("</tr>")
	}
	br.Renderln("</tbody>")
	br.Render("</table>")
}
