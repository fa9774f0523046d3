package render

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/pkg/errors"
)

//go:embed assets
var assets embed.FS

// templates are the fixed parts of an HTML document.
type templates struct {
	header    []byte
	bodyStart []byte
	footer    []byte
	styles    []byte
}

// loadTemplate reads the file at filename. When filename is empty or does
// not exist, the embedded asset is used instead.
func loadTemplate(filename, asset string) ([]byte, error) {
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "reading template %s", filename)
		}
	}

	data, err := assets.ReadFile(path.Join("assets", asset))
	if err != nil {
		return nil, errors.Wrapf(err, "reading embedded template %s", asset)
	}
	return data, nil
}

func (r *Renderer) loadTemplates() (*templates, error) {
	var t templates
	var err error

	if t.header, err = loadTemplate(r.cfg.HeaderPath, "html_header.html"); err != nil {
		return nil, err
	}
	if t.bodyStart, err = loadTemplate(r.cfg.BodyStartPath, "html_body_start.html"); err != nil {
		return nil, err
	}
	if t.footer, err = loadTemplate(r.cfg.FooterPath, "html_footer.html"); err != nil {
		return nil, err
	}
	if t.styles, err = loadTemplate(r.cfg.StylesPath, "styles.css"); err != nil {
		return nil, err
	}
	return &t, nil
}
