package mdparser

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type Parser struct {
	// cfg is validated when the parser is built
	cfg ParserConfig

	// inline holds the compiled span-level patterns
	inline *inlineMatcher

	// validator is the external Mermaid check, used only when enabled in cfg
	validator MermaidValidator

	log *zap.SugaredLogger

	// lines are the physical lines of the source being parsed.
	// Block parsers receive an index into it and return the index of the
	// first line they did not consume.
	lines []string

	// nodes is the result of the last successful parse
	nodes []Node

	// warnings collects non-fatal problems. It is reset on every parse.
	warnings []string
}

// An Option customizes a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for tracing block dispatch.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMermaidValidator replaces the external Mermaid validator.
func WithMermaidValidator(v MermaidValidator) Option {
	return func(p *Parser) {
		p.validator = v
	}
}

// NewParser builds a parser for cfg. It fails if the configuration is not
// valid or the inline patterns cannot be compiled.
func NewParser(cfg ParserConfig, opts ...Option) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := newInlineMatcher()
	if err != nil {
		return nil, err
	}

	p := &Parser{
		cfg:    cfg,
		inline: m,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.validator == nil && cfg.Mermaid.UseCLIValidation {
		p.validator = NewMermaidCLI("mmdc", cfg.Mermaid.CLITimeout)
	}

	return p, nil
}

// Parse is a shortcut to build a parser for cfg and parse source with it.
func Parse(source string, cfg ParserConfig) ([]Node, []string, error) {
	p, err := NewParser(cfg)
	if err != nil {
		return nil, nil, err
	}
	nodes, err := p.Parse(source)
	return nodes, p.Warnings(), err
}

// Parse parses source into a sequence of nodes.
func (p *Parser) Parse(source string) ([]Node, error) {
	return p.ParseContext(context.Background(), source)
}

// ParseContext is Parse with a context bounding the external Mermaid
// validator. A structural error stops the parse and no nodes are returned.
func (p *Parser) ParseContext(ctx context.Context, source string) ([]Node, error) {
	p.lines = splitLines(source)
	p.nodes = nil
	p.warnings = nil
	defer func() { p.lines = nil }()

	nodes := []Node{}

	i := 0
	for i < len(p.lines) {
		if strings.TrimSpace(p.lines[i]) == "" {
			i++
			continue
		}

		node, next, err := p.parseBlock(ctx, i)
		if err != nil {
			p.log.Debugw("parse failed", "line", i+1, "error", err)
			return nil, err
		}
		if next <= i {
			return nil, malformed(i+1, "block parser did not advance")
		}

		p.log.Debugw("block", "kind", node.Kind().String(), "line", i+1, "lines", next-i)
		nodes = append(nodes, node)
		i = next
	}

	p.nodes = nodes
	return nodes, nil
}

// parseBlock tries each block kind in a fixed order. The order decides the
// outcome for lines that fit more than one kind.
func (p *Parser) parseBlock(ctx context.Context, i int) (Node, int, error) {
	line := p.lines[i]
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, p.cfg.CodeFencePattern) {
		return p.parseCodeBlock(ctx, i)
	}

	if strings.HasPrefix(trimmed, "#") {
		h, err := p.parseHeading(i)
		if err != nil {
			return nil, 0, err
		}
		if h != nil {
			return *h, i + 1, nil
		}
	}

	if _, ok := detectOrderedItem(line); ok {
		return p.parseOrderedList(i)
	}

	if _, ok := detectUnorderedItem(line); ok {
		return p.parseUnorderedList(i)
	}

	if isTableRow(line) && i+1 < len(p.lines) && isSeparatorRow(p.lines[i+1]) {
		return p.parseTable(i)
	}

	if strings.HasPrefix(trimmed, ">") {
		return p.parseBlockquote(i)
	}

	if isHorizontalRule(line) {
		return HorizontalRule{}, i + 1, nil
	}

	return p.parseParagraph(i)
}

// Warnings returns the non-fatal problems found by the last parse.
func (p *Parser) Warnings() []string {
	return p.warnings
}

// Nodes returns the result of the last successful parse.
func (p *Parser) Nodes() []Node {
	return p.nodes
}

// Config returns the configuration the parser was built with.
func (p *Parser) Config() ParserConfig {
	return p.cfg
}

// ToJSON encodes the result of the last successful parse.
func (p *Parser) ToJSON() ([]byte, error) {
	return MarshalNodes(p.nodes)
}

// ParseInline parses text with the parser's inline matcher.
func (p *Parser) ParseInline(text string) ([]Inline, error) {
	return p.inline.parse(text)
}

// splitLines splits on '\n', dropping a trailing '\r' from each line. A
// final newline does not produce an extra empty line.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
