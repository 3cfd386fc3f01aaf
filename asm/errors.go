package asm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorLabel
	ErrorOperand
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorSyntax:
		return "syntax error"
	case ErrorLabel:
		return "label error"
	case ErrorOperand:
		return "operand error"
	}
	return "unknown error"
}

// Error is an assembly error located in the source.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     lexer.Position
	Source  string
	Help    string
	Snippet string // underlined after the caret
}

func (e *Error) Error() string {
	return formatError(e)
}

// formatError renders the error with the offending line and its neighbours.
func formatError(err *Error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n", err.Kind, err.Message)

	lines := strings.Split(err.Source, "\n")
	if err.Pos.Line > 0 && err.Pos.Line <= len(lines) {
		lineNum := err.Pos.Line
		line := lines[lineNum-1]

		fmt.Fprintf(&b, "--> %s:%d:%d\n", err.Pos.Filename, err.Pos.Line, err.Pos.Column)

		if lineNum > 1 {
			fmt.Fprintf(&b, "%4d | %s\n", lineNum-1, lines[lineNum-2])
		}
		fmt.Fprintf(&b, "%4d | %s\n", lineNum, line)

		col := err.Pos.Column
		if col < 1 {
			col = 1
		}
		pointer := strings.Repeat(" ", col-1) + "^"
		if n := utf8.RuneCountInString(err.Snippet); n > 1 {
			pointer += strings.Repeat("~", n-1)
		}
		fmt.Fprintf(&b, "     | %s\n", pointer)

		if lineNum < len(lines) && lines[lineNum] != "" {
			fmt.Fprintf(&b, "%4d | %s\n", lineNum+1, lines[lineNum])
		}
	}

	if err.Help != "" {
		fmt.Fprintf(&b, "\nhelp: %s\n", err.Help)
	}

	return b.String()
}

func NewSyntaxError(pos lexer.Position, source, message, help string) error {
	return &Error{
		Kind:    ErrorSyntax,
		Message: message,
		Pos:     pos,
		Source:  source,
		Help:    help,
	}
}

func newLabelError(pos lexer.Position, source, label, message, help string) error {
	return &Error{
		Kind:    ErrorLabel,
		Message: message,
		Pos:     pos,
		Source:  source,
		Help:    help,
		Snippet: label,
	}
}

func newOperandError(pos lexer.Position, source, message, help string) error {
	return &Error{
		Kind:    ErrorOperand,
		Message: message,
		Pos:     pos,
		Source:  source,
		Help:    help,
	}
}
