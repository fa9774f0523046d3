package mdparser

import (
	"fmt"
	"strconv"
)

// Span locates an error in the source. Line is 1-based; Column is 1-based
// when known and 0 otherwise.
type Span struct {
	Line   int
	Column int
}

func (s Span) String() string {
	if s.Column > 0 {
		return "line " + strconv.Itoa(s.Line) + ", column " + strconv.Itoa(s.Column)
	}
	return "line " + strconv.Itoa(s.Line)
}

// ErrorKind classifies a ParseError. The kinds are themselves errors so they
// can be used as targets of errors.Is.
type ErrorKind int

const (
	ErrRegexCompilation ErrorKind = iota + 1
	ErrInvalidCapture
	ErrSerialization
	ErrInvalidHeadingLevel
	ErrUnclosedCodeBlock
	ErrMalformedMarkdown
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrRegexCompilation:
		return "regex compilation error"
	case ErrInvalidCapture:
		return "invalid capture error"
	case ErrSerialization:
		return "serialization error"
	case ErrInvalidHeadingLevel:
		return "invalid heading level"
	case ErrUnclosedCodeBlock:
		return "unclosed code block"
	case ErrMalformedMarkdown:
		return "malformed markdown"
	}
	return "unknown parse error (" + strconv.Itoa(int(k)) + ")"
}

// ParseError is returned by the parser. The structural kinds (heading level,
// unclosed code block, malformed markdown) carry a Span and stop the parse.
type ParseError struct {
	Kind ErrorKind
	Span Span

	// Level and Max are only set for ErrInvalidHeadingLevel
	Level int
	Max   int

	Msg string
	Err error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrInvalidHeadingLevel:
		return fmt.Sprintf("%s: invalid heading level %d (max %d)", e.Span, e.Level, e.Max)
	case ErrUnclosedCodeBlock:
		return fmt.Sprintf("%s: unclosed code block", e.Span)
	case ErrMalformedMarkdown:
		return fmt.Sprintf("%s: malformed markdown: %s", e.Span, e.Msg)
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches an ErrorKind target against the kind of the error.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && e.Kind == k
}

func malformed(line int, msg string) *ParseError {
	return &ParseError{Kind: ErrMalformedMarkdown, Span: Span{Line: line}, Msg: msg}
}
