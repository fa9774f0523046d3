package mdparser

import (
	"regexp"

	"github.com/pkg/errors"
)

// The inline patterns, in the order used to break ties between matches that
// start at the same offset. Image must precede link so that the leading '!'
// is not left behind as text. Bold must precede italic.
var inlineSources = []struct {
	kind   InlineKind
	expr   string
	groups int
}{
	{ImageInline, `!\[([^\]]*)\]\(([^)]+)\)`, 2},
	{LinkInline, `\[([^\]]+)\]\(([^)]+)\)`, 2},
	{CodeInline, "`([^`]+)`", 1},
	{StrikethroughInline, `~~([^~]+?)~~`, 1},
	{BoldInline, `\*\*((?:[^*]|\*[^*])+?)\*\*`, 1},
	{ItalicInline, `\*((?:[^*]|\*\*)+)\*`, 1},
}

type inlinePattern struct {
	kind InlineKind
	re   *regexp.Regexp
}

// locate returns the submatch indices of the first acceptable match in text.
// An italic candidate touching another '*' belongs to a bold delimiter, so
// the search resumes one byte after its start.
func (p *inlinePattern) locate(text string) []int {
	if p.kind != ItalicInline {
		return p.re.FindStringSubmatchIndex(text)
	}

	for off := 0; off < len(text); {
		loc := p.re.FindStringSubmatchIndex(text[off:])
		if loc == nil {
			return nil
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += off
			}
		}
		start, end := loc[0], loc[1]
		if (start > 0 && text[start-1] == '*') || (end < len(text) && text[end] == '*') {
			off = start + 1
			continue
		}
		return loc
	}
	return nil
}

// inlineMatcher tokenizes span-level markup. It holds only compiled patterns
// and is safe for concurrent use.
type inlineMatcher struct {
	patterns []inlinePattern
}

func newInlineMatcher() (*inlineMatcher, error) {
	m := &inlineMatcher{}
	for _, src := range inlineSources {
		re, err := regexp.Compile(src.expr)
		if err != nil {
			return nil, &ParseError{
				Kind: ErrRegexCompilation,
				Msg:  src.kind.String() + " pattern",
				Err:  errors.Wrapf(err, "compiling %s pattern", src.kind),
			}
		}
		if re.NumSubexp() != src.groups {
			return nil, &ParseError{
				Kind: ErrInvalidCapture,
				Msg:  errors.Errorf("%s pattern has %d groups, want %d", src.kind, re.NumSubexp(), src.groups).Error(),
			}
		}
		m.patterns = append(m.patterns, inlinePattern{kind: src.kind, re: re})
	}
	return m, nil
}

var defaultMatcher, defaultMatcherErr = newInlineMatcher()

// ParseInline splits text into inline elements. Unmatched markup is kept as
// literal text, and a non-empty input never produces an empty result.
func ParseInline(text string) ([]Inline, error) {
	if defaultMatcherErr != nil {
		return nil, defaultMatcherErr
	}
	return defaultMatcher.parse(text)
}

// earliest finds the match with the lowest start offset. On equal offsets
// the pattern listed first wins.
func (m *inlineMatcher) earliest(text string) (*inlinePattern, []int) {
	var best *inlinePattern
	var bestLoc []int
	for i := range m.patterns {
		loc := m.patterns[i].locate(text)
		if loc == nil {
			continue
		}
		if best == nil || loc[0] < bestLoc[0] {
			best, bestLoc = &m.patterns[i], loc
		}
	}
	return best, bestLoc
}

func (m *inlineMatcher) parse(text string) ([]Inline, error) {
	var out []Inline

	remaining := text
	for len(remaining) > 0 {
		p, loc := m.earliest(remaining)
		if p == nil {
			out = append(out, Text{Content: remaining})
			break
		}
		if loc[1] <= loc[0] {
			return nil, &ParseError{Kind: ErrInvalidCapture, Msg: "empty " + p.kind.String() + " match"}
		}

		if loc[0] > 0 {
			out = append(out, Text{Content: remaining[:loc[0]]})
		}

		in, err := m.build(p.kind, remaining, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, in)

		remaining = remaining[loc[1]:]
	}

	if len(out) == 0 && len(text) > 0 {
		out = []Inline{Text{Content: text}}
	}
	return out, nil
}

func capture(kind InlineKind, s string, loc []int, n int) (string, error) {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return "", &ParseError{Kind: ErrInvalidCapture, Msg: errors.Errorf("%s match is missing group %d", kind, n).Error()}
	}
	return s[loc[2*n]:loc[2*n+1]], nil
}

func (m *inlineMatcher) build(kind InlineKind, s string, loc []int) (Inline, error) {
	first, err := capture(kind, s, loc, 1)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ImageInline:
		url, err := capture(kind, s, loc, 2)
		if err != nil {
			return nil, err
		}
		return Image{Alt: first, URL: url}, nil

	case LinkInline:
		url, err := capture(kind, s, loc, 2)
		if err != nil {
			return nil, err
		}
		text, err := m.parse(first)
		if err != nil {
			return nil, err
		}
		return Link{Text: text, URL: url}, nil

	case CodeInline:
		return Code{Content: first}, nil
	}

	content, err := m.parse(first)
	if err != nil {
		return nil, err
	}
	switch kind {
	case StrikethroughInline:
		return Strikethrough{Content: content}, nil
	case BoldInline:
		return Bold{Content: content}, nil
	case ItalicInline:
		return Italic{Content: content}, nil
	}
	return nil, &ParseError{Kind: ErrInvalidCapture, Msg: "unexpected inline kind " + kind.String()}
}
