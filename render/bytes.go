package render

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteRenderer accumulates rendered output.
type ByteRenderer struct {
	buf []byte
}

// Render appends the text form of each argument.
func (br *ByteRenderer) Render(texts ...any) {
	for _, text := range texts {
		switch v := text.(type) {
		case string:
			br.buf = append(br.buf, v...)
		case []byte:
			br.buf = append(br.buf, v...)
		case byte:
			br.buf = append(br.buf, v)
		case int:
			br.buf = strconv.AppendInt(br.buf, int64(v), 10)
		default:
			br.buf = fmt.Append(br.buf, v)
		}
	}
}

// Renderln is Render followed by a newline.
func (br *ByteRenderer) Renderln(texts ...any) {
	br.Render(texts...)
	br.buf = append(br.buf, '\n')
}

// Escaped appends s with HTML special characters replaced.
func (br *ByteRenderer) Escaped(s string) {
	br.buf = append(br.buf, escape(s)...)
}

func (br *ByteRenderer) Len() int {
	return len(br.buf)
}

func (br *ByteRenderer) Bytes() []byte {
	return br.buf
}

func (br *ByteRenderer) String() string {
	return string(br.buf)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
