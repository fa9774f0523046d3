package mdparser

import (
	"time"

	"github.com/pkg/errors"
)

// ParserConfig controls block recognition and Mermaid handling.
type ParserConfig struct {
	MaxHeadingLevel  int
	CodeFenceLength  int
	CodeFencePattern string
	MermaidLanguage  string
	Mermaid          MermaidParserConfig
}

// MermaidParserConfig holds the defaults merged under inline diagram
// directives, plus the validation switches.
type MermaidParserConfig struct {
	DefaultTheme      string
	DefaultFontSize   string
	DefaultFontFamily string
	ValidateSyntax    bool
	UseCLIValidation  bool

	// CLITimeout bounds one run of the external validator
	CLITimeout time.Duration
}

// DefaultParserConfig returns the configuration used when none is given.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		MaxHeadingLevel:  6,
		CodeFenceLength:  3,
		CodeFencePattern: "```",
		MermaidLanguage:  "mermaid",
		Mermaid:          DefaultMermaidParserConfig(),
	}
}

func DefaultMermaidParserConfig() MermaidParserConfig {
	return MermaidParserConfig{
		DefaultTheme:      "default",
		DefaultFontSize:   "16px",
		DefaultFontFamily: "trebuchet ms, verdana, arial",
		ValidateSyntax:    true,
		UseCLIValidation:  false,
		CLITimeout:        10 * time.Second,
	}
}

// Defaults returns the Mermaid defaults as a config value.
func (m MermaidParserConfig) Defaults() MermaidConfig {
	return MermaidConfig{
		Theme:      m.DefaultTheme,
		FontSize:   m.DefaultFontSize,
		FontFamily: m.DefaultFontFamily,
	}
}

// Validate checks that the configuration can drive a parse.
func (c ParserConfig) Validate() error {
	if c.MaxHeadingLevel < 1 || c.MaxHeadingLevel > 6 {
		return errors.Errorf("max_heading_level must be between 1 and 6, got %d", c.MaxHeadingLevel)
	}
	if c.CodeFenceLength < 1 {
		return errors.Errorf("code_fence_length must be at least 1, got %d", c.CodeFenceLength)
	}
	if c.CodeFencePattern == "" {
		return errors.New("code_fence_pattern cannot be empty")
	}
	if len(c.CodeFencePattern) != c.CodeFenceLength {
		return errors.Errorf("code_fence_pattern %q does not have length %d", c.CodeFencePattern, c.CodeFenceLength)
	}
	if c.MermaidLanguage == "" {
		return errors.New("mermaid_language cannot be empty")
	}
	if c.Mermaid.CLITimeout < 0 {
		return errors.Errorf("mermaid cli timeout cannot be negative, got %v", c.Mermaid.CLITimeout)
	}
	return nil
}
