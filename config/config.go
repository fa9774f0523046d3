// Package config loads the YAML configuration of the parser, the renderer
// and the output writer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hesusruiz/mdparser/mdparser"
	"github.com/hesusruiz/mdparser/output"
	"github.com/hesusruiz/mdparser/render"
	"github.com/hesusruiz/vcutils/yaml"
	"github.com/pkg/errors"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "mdparser.yaml"

type Config struct {
	Parser   mdparser.ParserConfig
	Renderer render.Config
	Output   output.Config
}

func Default() Config {
	return Config{
		Parser:   mdparser.DefaultParserConfig(),
		Renderer: render.DefaultConfig(),
		Output:   output.DefaultConfig(),
	}
}

// Load reads the configuration file. Keys absent from the file keep their
// default value.
func Load(filename string) (Config, error) {
	y, err := yaml.ParseYamlFile(filename)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config file %s", filename)
	}
	return fromYAML(y)
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(filename string) (Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(filename)
}

// Parse reads the configuration from YAML text.
func Parse(data string) (Config, error) {
	y, err := yaml.ParseYaml(data)
	if err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	return fromYAML(y)
}

func fromYAML(y *yaml.YAML) (Config, error) {
	c := Default()
	r := reader{y: y}

	p := &c.Parser
	p.MaxHeadingLevel = r.getInt("parser.max_heading_level", p.MaxHeadingLevel)
	p.CodeFencePattern = r.getString("parser.code_fence_pattern", p.CodeFencePattern)
	p.CodeFenceLength = r.getInt("parser.code_fence_length", len(p.CodeFencePattern))
	p.MermaidLanguage = r.getString("parser.mermaid_language", p.MermaidLanguage)

	m := &c.Parser.Mermaid
	m.DefaultTheme = r.getString("parser.mermaid.default_theme", m.DefaultTheme)
	m.DefaultFontSize = r.getString("parser.mermaid.default_font_size", m.DefaultFontSize)
	m.DefaultFontFamily = r.getString("parser.mermaid.default_font_family", m.DefaultFontFamily)
	m.ValidateSyntax = r.getBool("parser.mermaid.validate_syntax", m.ValidateSyntax)
	m.UseCLIValidation = r.getBool("parser.mermaid.use_cli_validation", m.UseCLIValidation)
	m.CLITimeout = r.getDuration("parser.mermaid.cli_timeout", m.CLITimeout)

	rc := &c.Renderer
	rc.HeaderPath = r.getString("renderer.html_header_path", rc.HeaderPath)
	rc.FooterPath = r.getString("renderer.html_footer_path", rc.FooterPath)
	rc.BodyStartPath = r.getString("renderer.html_body_start_path", rc.BodyStartPath)
	rc.StylesPath = r.getString("renderer.styles_css_path", rc.StylesPath)
	rc.CodeStyle = r.getString("renderer.code_style", rc.CodeStyle)
	rc.HighlightCode = r.getBool("renderer.highlight_code", rc.HighlightCode)
	rc.RenderD2 = r.getBool("renderer.render_d2", rc.RenderD2)

	o := &c.Output
	o.Directory = r.getString("output.directory", o.Directory)
	o.ASTFilename = r.getString("output.ast_debug_filename", o.ASTFilename)
	o.JSONFilename = r.getString("output.ast_json_filename", o.JSONFilename)
	o.HTMLFilename = r.getString("output.html_filename", o.HTMLFilename)
	o.EnableAST = r.getBool("output.enable_ast_debug", o.EnableAST)
	o.EnableJSON = r.getBool("output.enable_ast_json", o.EnableJSON)
	o.EnableHTML = r.getBool("output.enable_html", o.EnableHTML)

	if r.err != nil {
		return Config{}, r.err
	}
	if err := c.Parser.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid parser config")
	}
	if c.Output.Directory == "" {
		return Config{}, errors.New("output directory cannot be empty")
	}
	return c, nil
}

// reader converts scalar values found at dotted paths. The first conversion
// error is kept and later reads become no-ops.
type reader struct {
	y   *yaml.YAML
	err error
}

func (r *reader) getString(path, def string) string {
	s := r.raw(path)
	if s == "" {
		return def
	}
	return s
}

// raw returns the scalar at path in text form, or "" when the key is
// absent. Integers decode as uint64 or int64, so they are formatted here
// rather than through y.String.
func (r *reader) raw(path string) string {
	if r.err != nil {
		return ""
	}
	n, err := r.y.Get(path)
	if err != nil {
		return ""
	}
	switch v := n.Data().(type) {
	case nil:
		return ""
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		r.err = errors.Errorf("%s: expected a scalar value, got %T", path, v)
		return ""
	}
}

func (r *reader) getInt(path string, def int) int {
	s := r.raw(path)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.err = errors.Errorf("%s: %q is not an integer", path, s)
		return def
	}
	return n
}

func (r *reader) getBool(path string, def bool) bool {
	s := r.raw(path)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		r.err = errors.Errorf("%s: %q is not a boolean", path, s)
		return def
	}
	return b
}

// getDuration accepts a Go duration string or a number of seconds.
func (r *reader) getDuration(path string, def time.Duration) time.Duration {
	s := r.raw(path)
	if s == "" {
		return def
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		r.err = errors.Errorf("%s: %q is not a duration", path, s)
		return def
	}
	return d
}
