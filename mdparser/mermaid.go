package mdparser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hesusruiz/mdparser/sliceedit"
	"github.com/pkg/errors"
)

// DiagramTypes are the keywords accepted at the start of a Mermaid body.
var DiagramTypes = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"classDiagram",
	"stateDiagram",
	"stateDiagram-v2",
	"erDiagram",
	"journey",
	"gantt",
	"pie",
	"requirementDiagram",
	"gitgraph",
	"mindmap",
	"timeline",
	"C4Context",
	"C4Container",
	"C4Component",
}

const (
	directiveStart = "%%{"
	directiveEnd   = "}%%"
)

var (
	reThemeVariables = regexp.MustCompile(`['"]?themeVariables['"]?\s*:\s*`)
	reArrow          = regexp.MustCompile(`-->|==>|---`)
)

// ParseFrontmatter looks for an init directive in the first two lines of a
// diagram body. When one with recognizable settings is found, its line is
// removed and the rest of the body is returned trimmed. Otherwise the body
// is returned unchanged with a nil config.
func ParseFrontmatter(body string) (*MermaidConfig, string) {
	offset := 0
	for n := 0; n < 2 && offset <= len(body); n++ {
		end := strings.IndexByte(body[offset:], '\n')
		next := offset + end + 1
		if end < 0 {
			end = len(body) - offset
			next = len(body)
		}
		line := strings.TrimSpace(strings.TrimSuffix(body[offset:offset+end], "\r"))

		if strings.HasPrefix(line, directiveStart) {
			if pos := strings.Index(line, directiveEnd); pos >= 0 {
				if cfg := parseDirective(line[:pos+len(directiveEnd)]); cfg != nil {
					buf := sliceedit.NewBuffer([]byte(body))
					buf.Delete(offset, next)
					return cfg, strings.TrimSpace(buf.String())
				}
			}
		}

		if next >= len(body) {
			break
		}
		offset = next
	}
	return nil, body
}

// parseDirective reads "%%{init: {...}}%%". Values are matched leniently and
// may use single or double quotes.
func parseDirective(directive string) *MermaidConfig {
	content := strings.TrimSuffix(strings.TrimPrefix(directive, directiveStart), directiveEnd)
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "init:") {
		return nil
	}
	init := strings.TrimSpace(strings.TrimPrefix(content, "init:"))

	cfg := &MermaidConfig{}
	cfg.Theme = extractString(init, "theme")

	// Only the font settings are taken from themeVariables.
	if loc := reThemeVariables.FindStringIndex(init); loc != nil {
		rest := init[loc[1]:]
		if obj, ok := extractObject(rest); ok {
			rest = obj
		}
		vars := map[string]string{}
		for _, key := range []string{"fontSize", "fontFamily"} {
			if v := extractString(rest, key); v != "" {
				vars[key] = v
			}
		}
		cfg.FontSize = vars["fontSize"]
		cfg.FontFamily = vars["fontFamily"]
		if len(vars) > 0 {
			cfg.ThemeVariables = vars
		}
	}

	if cfg.isEmpty() {
		return nil
	}
	return cfg
}

// extractString finds the string value of key, trying a single quoted key,
// then a double quoted key, then a bare key.
func extractString(content, key string) string {
	k := regexp.QuoteMeta(key)
	for _, expr := range []string{
		`'` + k + `'\s*:\s*'([^']+)'`,
		`"` + k + `"\s*:\s*"([^"]+)"`,
		k + `['"]?\s*:\s*['"]([^'"]+)['"]`,
	} {
		if m := regexp.MustCompile(expr).FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractObject returns the text between the opening brace at the start of
// content and its matching closing brace.
func extractObject(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}
	depth := 0
	for i, c := range trimmed {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return trimmed[1:i], true
			}
		}
	}
	return "", false
}

// MergeConfig lays an inline directive over the configured defaults. Theme
// variables come only from the directive.
func MergeConfig(defaults MermaidParserConfig, inline *MermaidConfig) MermaidConfig {
	merged := defaults.Defaults()
	if inline == nil {
		return merged
	}
	if inline.Theme != "" {
		merged.Theme = inline.Theme
	}
	if inline.FontSize != "" {
		merged.FontSize = inline.FontSize
	}
	if inline.FontFamily != "" {
		merged.FontFamily = inline.FontFamily
	}
	merged.ThemeVariables = inline.ThemeVariables
	return merged
}

// ValidateSyntax runs heuristic checks on a diagram body. Errors make the
// diagram Invalid; warnings never do. A nil validator skips the external
// check.
func ValidateSyntax(ctx context.Context, body string, validator MermaidValidator) (ValidationStatus, []string) {
	var errs, warnings []string

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ValidationStatus{State: Invalid, Errors: []string{"Mermaid diagram is empty"}}, warnings
	}

	if !hasDiagramType(trimmed) {
		errs = append(errs, "Invalid or missing diagram type. Expected one of: "+strings.Join(DiagramTypes, ", "))
	}

	errs = append(errs, bracketErrors(trimmed)...)

	// Arrows are checked against the whole body, so only one at its very
	// start or end is reported.
	for _, loc := range reArrow.FindAllStringIndex(trimmed, -1) {
		if strings.TrimSpace(trimmed[:loc[0]]) == "" || strings.TrimSpace(trimmed[loc[1]:]) == "" {
			warnings = append(warnings, "Arrow may be missing node on one side")
		}
	}

	if validator != nil {
		if err := validator.Validate(ctx, trimmed); err != nil {
			if errors.Is(err, ErrValidatorUnavailable) {
				warnings = append(warnings, "Mermaid CLI not available, using basic validation only")
			} else {
				errs = append(errs, "Mermaid CLI validation failed: "+err.Error())
			}
		}
	}

	if len(errs) == 0 {
		return ValidationStatus{State: Valid}, warnings
	}
	return ValidationStatus{State: Invalid, Errors: errs}, warnings
}

func hasDiagramType(trimmed string) bool {
	first := trimmed
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	first = strings.TrimSpace(first)
	for _, t := range DiagramTypes {
		if strings.HasPrefix(first, t) {
			return true
		}
	}
	return false
}

// bracketErrors checks (), [] and {} balance. The scan stops at the first
// closing bracket without an opener; openers left at that point are reported
// as well.
func bracketErrors(s string) []string {
	var errs []string
	var paren, bracket, brace int

scan:
	for _, c := range s {
		switch c {
		case '(':
			paren++
		case ')':
			if paren--; paren < 0 {
				errs = append(errs, "Unmatched closing parenthesis")
				break scan
			}
		case '[':
			bracket++
		case ']':
			if bracket--; bracket < 0 {
				errs = append(errs, "Unmatched closing bracket")
				break scan
			}
		case '{':
			brace++
		case '}':
			if brace--; brace < 0 {
				errs = append(errs, "Unmatched closing brace")
				break scan
			}
		}
	}

	if paren > 0 {
		errs = append(errs, fmt.Sprintf("%d unmatched opening parenthesis(es)", paren))
	}
	if bracket > 0 {
		errs = append(errs, fmt.Sprintf("%d unmatched opening bracket(s)", bracket))
	}
	if brace > 0 {
		errs = append(errs, fmt.Sprintf("%d unmatched opening brace(s)", brace))
	}
	return errs
}

// mermaidDiagram builds the node for a fenced Mermaid body. Validation
// problems are recorded on the node and as parser warnings.
func (p *Parser) mermaidDiagram(ctx context.Context, body string, line int) MermaidDiagram {
	inline, diagram := ParseFrontmatter(body)
	config := MergeConfig(p.cfg.Mermaid, inline)

	node := MermaidDiagram{Diagram: diagram, Config: &config}
	if !p.cfg.Mermaid.ValidateSyntax {
		node.Validation = ValidationStatus{State: NotValidated}
		return node
	}

	var validator MermaidValidator
	if p.cfg.Mermaid.UseCLIValidation {
		validator = p.validator
	}
	node.Validation, node.Warnings = ValidateSyntax(ctx, diagram, validator)

	for _, w := range node.Warnings {
		p.warnings = append(p.warnings, "Mermaid diagram validation warning: "+w)
	}
	for _, e := range node.Validation.Errors {
		p.warnings = append(p.warnings, "Mermaid diagram validation error: "+e)
	}

	p.log.Infow("mermaid diagram validated",
		"line", line,
		"status", node.Validation.State.String(),
		"errors", len(node.Validation.Errors),
		"warnings", len(node.Warnings),
	)
	return node
}
