package render

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlighter colors code with chroma. The output has no surrounding pre
// element so it can be placed inside the regular code block markup.
type highlighter struct {
	style     *chroma.Style
	formatter *hlhtml.Formatter
}

func newHighlighter(styleName string) *highlighter {
	return &highlighter{
		style:     styles.Get(styleName),
		formatter: hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true)),
	}
}

// highlight returns false when chroma has no lexer for lang.
func (h *highlighter) highlight(lang, code string) ([]byte, bool) {
	if lang == "" {
		return nil, false
	}
	l := lexers.Get(lang)
	if l == nil {
		return nil, false
	}
	l = chroma.Coalesce(l)

	it, err := l.Tokenise(nil, code)
	if err != nil {
		return nil, false
	}

	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, it); err != nil {
		return nil, false
	}
	return out.Bytes(), true
}
