package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError reports malformed TOML text.
type ParseError struct {
	// Line and Column are 1-based; Column counts characters.
	Line    int
	Column  int
	Offset  int
	Message string
	Input   string
}

func newParseError(input string, offset int, msg string) *ParseError {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return &ParseError{
		Line:    line,
		Column:  utf8.RuneCountInString(before[lineStart:]) + 1,
		Offset:  offset,
		Message: msg,
		Input:   input,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml:%d:%d: %s", e.Line, e.Column, e.Message)
}

// Snippet returns the offending line with a caret under the error column.
func (e *ParseError) Snippet() string {
	lines := strings.Split(e.Input, "\n")
	if e.Line-1 >= len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[e.Line-1], "\r")
	return line + "\n" + strings.Repeat(" ", e.Column-1) + "^"
}
