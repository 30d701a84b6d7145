package asm

import (
	"log"
	"strings"

	"github.com/csm-lang/csm/token"
)

// Lexer scans normalized source text into a token stream.
type Lexer struct {
	Verbose bool

	source []rune
	index  int
	pos    token.Pos

	tokens    []token.Token
	lineEmpty bool // No statement tokens emitted yet on the current line.
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\r' || c == '\f'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentBegin(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c rune) bool {
	return isIdentBegin(c) || isDigit(c)
}

// isRegister reports whether an upper-cased identifier is the reserved
// register form R<digits>.
func isRegister(ident string) bool {
	if len(ident) < 2 || ident[0] != 'R' {
		return false
	}
	for _, c := range ident[1:] {
		if !isDigit(c) {
			return false
		}
	}
	return true
}

func (lex *Lexer) peek() (c rune, ok bool) {
	if lex.index >= len(lex.source) {
		return
	}
	return lex.source[lex.index], true
}

func (lex *Lexer) advance() {
	if lex.source[lex.index] == '\n' {
		lex.pos.Line += 1
		lex.pos.Column = 1
	} else {
		lex.pos.Column += 1
	}
	lex.index += 1
}

func (lex *Lexer) emit(kind token.Kind, lexeme string, pos token.Pos) {
	tok := token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
	if lex.Verbose {
		log.Printf("lex: %v", tok)
	}
	lex.tokens = append(lex.tokens, tok)
	if kind != token.KIND_NEWLINE {
		lex.lineEmpty = false
	}
}

// endLine emits a NEWLINE only when the line carried statement tokens, so
// blank and comment-only lines yield nothing.
func (lex *Lexer) endLine(pos token.Pos) {
	if !lex.lineEmpty {
		lex.emit(token.KIND_NEWLINE, "\n", pos)
	}
	lex.lineEmpty = true
}

// scanIdent reads an identifier and classifies it: a trailing ':' marks a
// label definition; the first identifier of a line is the mnemonic; bare
// identifiers elsewhere are label references.
func (lex *Lexer) scanIdent() {
	pos := lex.pos
	lower := lex.index

	for c, ok := lex.peek(); ok && isIdent(c); c, ok = lex.peek() {
		lex.advance()
	}

	// Mnemonics and labels are case-insensitive.
	ident := strings.ToUpper(string(lex.source[lower:lex.index]))

	if c, ok := lex.peek(); ok && c == ':' {
		lex.advance()
		lex.emit(token.KIND_LABEL_DEF, ident, pos)
		return
	}

	switch {
	case isRegister(ident):
		lex.emit(token.KIND_REGISTER, ident, pos)
	case lex.lineEmpty || lex.tokens[len(lex.tokens)-1].Kind == token.KIND_LABEL_DEF:
		lex.emit(token.KIND_MNEMONIC, ident, pos)
	default:
		lex.emit(token.KIND_LABEL_REF, ident, pos)
	}
}

// scanNumber reads a numeric literal: optional sign, then decimal,
// hexadecimal (0x), octal (0o), or binary (0b) digits.
func (lex *Lexer) scanNumber() (err error) {
	pos := lex.pos
	lower := lex.index

	if c, _ := lex.peek(); c == '+' || c == '-' {
		lex.advance()
	}

	digits := "0123456789"
	if c, ok := lex.peek(); ok && c == '0' {
		lex.advance()
		if c, ok = lex.peek(); ok {
			switch c {
			case 'x', 'X':
				lex.advance()
				digits = "0123456789abcdefABCDEF"
			case 'o', 'O':
				lex.advance()
				digits = "01234567"
			case 'b', 'B':
				lex.advance()
				digits = "01"
			}
		}
	}

	for c, ok := lex.peek(); ok && (isDigit(c) || isIdent(c)); c, ok = lex.peek() {
		if !strings.ContainsRune(digits, c) {
			err = &ErrLexical{Pos: lex.pos, Char: c}
			return
		}
		lex.advance()
	}

	lex.emit(token.KIND_NUMBER, string(lex.source[lower:lex.index]), pos)

	return
}

// Lex scans the source text left to right in a single pass and returns the
// token stream, terminated by an EOF token.
func (lex *Lexer) Lex(source string) (tokens []token.Token, err error) {
	lex.source = []rune(source)
	lex.index = 0
	lex.pos = token.Pos{Line: 1, Column: 1}
	lex.tokens = nil
	lex.lineEmpty = true

	for {
		c, ok := lex.peek()
		if !ok {
			break
		}

		switch {
		case c == '\n':
			lex.endLine(lex.pos)
			lex.advance()
		case isSpace(c):
			lex.advance()
		case c == ';':
			// Comment to end of line, discarded.
			for c, ok := lex.peek(); ok && c != '\n'; c, ok = lex.peek() {
				lex.advance()
			}
		case c == ',':
			lex.emit(token.KIND_COMMA, ",", lex.pos)
			lex.advance()
		case isIdentBegin(c):
			lex.scanIdent()
		case isDigit(c) || c == '+' || c == '-':
			err = lex.scanNumber()
			if err != nil {
				return
			}
		default:
			err = &ErrLexical{Pos: lex.pos, Char: c}
			return
		}
	}

	lex.endLine(lex.pos)
	lex.emit(token.KIND_EOF, "", lex.pos)

	tokens = lex.tokens

	return
}
