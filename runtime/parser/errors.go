package parser

import (
	"fmt"
	"strings"

	"github.com/pddl-lang/pddl/runtime/lexer"
)

// BracketError describes one offending close bracket for user display.
// These are recovered diagnostics, not failures: the tree was still built.
type BracketError struct {
	Token    lexer.Token
	Position lexer.Position
	Source   []byte
}

// BracketErrors resolves the tree's offending tokens against a line index
// for display.
func (t *SyntaxTree) BracketErrors(ix *lexer.LineIndex) []BracketError {
	var out []BracketError
	for _, tok := range t.Offending {
		out = append(out, BracketError{
			Token:    tok,
			Position: ix.PositionAt(tok.Start),
			Source:   t.Source,
		})
	}
	return out
}

// Error returns the formatted message with line/column and a code snippet.
func (e BracketError) Error() string {
	msg := "unmatched ')' - no open bracket to close"
	if snippet := e.createCodeSnippet(); snippet != "" {
		return msg + "\n" + snippet
	}
	return msg
}

// createCodeSnippet renders the error location in Rust/Clang style:
//
//	  --> 5:13
//	   |
//	 5 | (goal (at robot depot)))
//	   |                        ^
func (e BracketError) createCodeSnippet() string {
	if len(e.Source) == 0 || e.Position.Line == 0 {
		return ""
	}

	lines := strings.Split(string(e.Source), "\n")
	if e.Position.Line > len(lines) {
		return ""
	}

	lineContent := lines[e.Position.Line-1]

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %d:%d\n", e.Position.Line, e.Position.Column))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", e.Position.Line, lineContent))
	snippet.WriteString("   | ")
	if e.Position.Column > 0 && e.Position.Column <= len(lineContent)+1 {
		snippet.WriteString(strings.Repeat(" ", e.Position.Column-1) + "^")
	}

	return snippet.String()
}
