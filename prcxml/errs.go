package prcxml

import (
	"fmt"
	"strings"

	"github.com/ultimate-research/prc-rs/ir"
)

// ParseError reports malformed text, the path of the element being read and
// its line.
type ParseError struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ir.ErrMalformedText
}

// Excerpt returns the line of src the error refers to, numbered, with a caret
// under the reported column.
func (e *ParseError) Excerpt(src []byte) string {
	lines := strings.Split(string(src), "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}
	ln := strings.TrimRight(lines[e.Line-1], "\r")
	prefix := fmt.Sprintf("%d: ", e.Line)
	col := max(e.Col, 1)
	col = min(col, len(ln)+1)
	return prefix + ln + "\n" + strings.Repeat(" ", len(prefix)+col-1) + "^\n"
}
