package lexer

import (
	"fmt"
	"strings"

	"github.com/metaphox/rots-lang/ast"
)

// Error reports the invalid lexemes found in one file.
type Error struct {
	Tokens []ast.Token
}

// Error renders one block per invalid token:
//
//	error: invalid token `@@`
//		--> main.rots:3:7
func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Tokens))
	for _, tok := range e.Tokens {
		lines = append(lines, fmt.Sprintf("error: %s\n\t--> %s", Message(tok), tok.Pos()))
	}
	return strings.Join(lines, "\n")
}

// Message describes an invalid token without severity or location.
func Message(tok ast.Token) string {
	return fmt.Sprintf("invalid token `%s`", tok.Text)
}
