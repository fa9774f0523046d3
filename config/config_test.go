package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
parser:
  max_heading_level: 4
  code_fence_pattern: "~~~~"
  mermaid:
    default_theme: dark
    validate_syntax: false
    use_cli_validation: true
    cli_timeout: 30s
renderer:
  code_style: monokai
  render_d2: false
output:
  directory: build
  html_filename: index.html
  enable_ast_debug: false
`

func TestParse(t *testing.T) {
	c, err := Parse(sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Parser.MaxHeadingLevel)
	assert.Equal(t, "~~~~", c.Parser.CodeFencePattern)
	assert.Equal(t, 4, c.Parser.CodeFenceLength)
	assert.Equal(t, "mermaid", c.Parser.MermaidLanguage)

	assert.Equal(t, "dark", c.Parser.Mermaid.DefaultTheme)
	assert.Equal(t, "16px", c.Parser.Mermaid.DefaultFontSize)
	assert.False(t, c.Parser.Mermaid.ValidateSyntax)
	assert.True(t, c.Parser.Mermaid.UseCLIValidation)
	assert.Equal(t, 30*time.Second, c.Parser.Mermaid.CLITimeout)

	assert.Equal(t, "monokai", c.Renderer.CodeStyle)
	assert.True(t, c.Renderer.HighlightCode)
	assert.False(t, c.Renderer.RenderD2)
	assert.Equal(t, "assets/html_header.html", c.Renderer.HeaderPath)

	assert.Equal(t, "build", c.Output.Directory)
	assert.Equal(t, "index.html", c.Output.HTMLFilename)
	assert.Equal(t, "ast.json", c.Output.JSONFilename)
	assert.False(t, c.Output.EnableAST)
	assert.True(t, c.Output.EnableJSON)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{"heading level out of range", "parser:\n  max_heading_level: 9\n", "invalid parser config: max_heading_level must be between 1 and 6, got 9"},
		{"not an integer", "parser:\n  max_heading_level: six\n", `parser.max_heading_level: "six" is not an integer`},
		{"not a boolean", "output:\n  enable_html: maybe\n", `output.enable_html: "maybe" is not a boolean`},
		{"not a duration", "parser:\n  mermaid:\n    cli_timeout: soon\n", `parser.mermaid.cli_timeout: "soon" is not a duration`},
		{"fence length mismatch", "parser:\n  code_fence_length: 5\n", "invalid parser config: code_fence_pattern \"```\" does not have length 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.yaml)
			require.Error(t, err)
			assert.EqualError(t, err, tt.errMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "mdparser.yaml")
	require.NoError(t, os.WriteFile(name, []byte(sampleConfig), 0664))

	c, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "build", c.Output.Directory)

	c, err = LoadOrDefault(name)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Parser.MaxHeadingLevel)
}

func TestLoadMissingFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := Load(name)
	assert.Error(t, err)

	c, err := LoadOrDefault(name)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseNumericValues(t *testing.T) {
	c, err := Parse("parser:\n  max_heading_level: 3\n  mermaid:\n    cli_timeout: 30\n")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Parser.MaxHeadingLevel)
	assert.Equal(t, 30*time.Second, c.Parser.Mermaid.CLITimeout)

	_, err = Parse("parser:\n  code_fence_length: [3]\n")
	assert.EqualError(t, err, "parser.code_fence_length: expected a scalar value, got []interface {}")
}
