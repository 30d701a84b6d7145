package token

import (
	"fmt"
)

// Kind is the lexical class of a token.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_MNEMONIC  = Kind(0) // mnemonic
	KIND_REGISTER  = Kind(1) // register
	KIND_NUMBER    = Kind(2) // number
	KIND_LABEL_DEF = Kind(3) // label definition
	KIND_LABEL_REF = Kind(4) // label reference
	KIND_COMMA     = Kind(5) // comma
	KIND_NEWLINE   = Kind(6) // newline
	KIND_EOF       = Kind(7) // end of input
)

// Pos is a source position. Lines and columns count from 1.
type Pos struct {
	Line   int
	Column int
}

func (pos Pos) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// Token is a single lexical unit. Immutable once produced by the lexer.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Pos
}

func (tok Token) String() string {
	return fmt.Sprintf("%v %v '%v'", tok.Pos, tok.Kind, tok.Lexeme)
}
