package mdparser

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSpanString(t *testing.T) {
	assert.Equal(t, "line 4", Span{Line: 4}.String())
	assert.Equal(t, "line 4, column 2", Span{Line: 4, Column: 2}.String())
}

func TestParseErrorMessages(t *testing.T) {
	cause := fmt.Errorf("bad escape")
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Kind: ErrInvalidHeadingLevel, Span: Span{Line: 2}, Level: 7, Max: 6}, "line 2: invalid heading level 7 (max 6)"},
		{&ParseError{Kind: ErrUnclosedCodeBlock, Span: Span{Line: 9}}, "line 9: unclosed code block"},
		{malformed(3, "Expected table row"), "line 3: malformed markdown: Expected table row"},
		{&ParseError{Kind: ErrRegexCompilation, Msg: "bold", Err: cause}, "regex compilation error: bold"},
		{&ParseError{Kind: ErrInvalidCapture}, "invalid capture error"},
		{&ParseError{Kind: ErrSerialization, Msg: "unsupported value"}, "serialization error: unsupported value"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestParseErrorMatching(t *testing.T) {
	cause := fmt.Errorf("bad escape")
	var err error = errors.Wrap(&ParseError{Kind: ErrRegexCompilation, Err: cause}, "compiling")

	assert.True(t, errors.Is(err, ErrRegexCompilation))
	assert.False(t, errors.Is(err, ErrSerialization))
	assert.True(t, errors.Is(err, cause))

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrRegexCompilation, pe.Kind)

	assert.Equal(t, "unknown parse error (42)", ErrorKind(42).Error())
}
