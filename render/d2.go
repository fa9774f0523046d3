package render

import (
	"context"

	"github.com/pkg/errors"
	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// D2Language is the code block tag compiled to an inline SVG.
const D2Language = "d2"

func dagreLayout(ctx context.Context, g *d2graph.Graph) error {
	return d2dagrelayout.Layout(ctx, g, nil)
}

// d2SVG compiles a D2 description into an SVG image.
func (r *Renderer) d2SVG(ctx context.Context, src string) ([]byte, error) {
	if r.ruler == nil {
		ruler, err := textmeasure.NewRuler()
		if err != nil {
			return nil, errors.Wrap(err, "creating d2 ruler")
		}
		r.ruler = ruler
	}

	diagram, _, err := d2lib.Compile(ctx, src, &d2lib.CompileOptions{
		Layout: dagreLayout,
		Ruler:  r.ruler,
	})
	if err != nil {
		return nil, errors.Wrap(err, "compiling d2 diagram")
	}

	svg, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "rendering d2 diagram")
	}
	return svg, nil
}
