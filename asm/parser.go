package asm

import (
	"log"
	"strconv"

	"github.com/csm-lang/csm/token"
)

// Parser consumes a token stream and produces an ordered statement list.
// Each logical line must match:
//
//	[LABEL_DEF] MNEMONIC [operand (',' operand)*] NEWLINE
//
// The parser accepts any syntactically well-formed statement, including
// unknown mnemonics; validation is the semantic analyzer's job.
type Parser struct {
	Verbose bool

	tokens []token.Token
	index  int
}

func (par *Parser) peek() token.Token {
	return par.tokens[par.index]
}

func (par *Parser) next() (tok token.Token) {
	tok = par.tokens[par.index]
	if par.peek().Kind != token.KIND_EOF {
		par.index += 1
	}
	return
}

// operand classifies a single operand token into its Operand variant.
func (par *Parser) operand() (op Operand, err error) {
	tok := par.next()

	switch tok.Kind {
	case token.KIND_REGISTER:
		index, _err := strconv.ParseInt(tok.Lexeme[1:], 10, 64)
		if _err != nil {
			err = &ErrNumber{Pos: tok.Pos, Lexeme: tok.Lexeme}
			return
		}
		op = Operand{Kind: OPERAND_REGISTER, Value: index, Pos: tok.Pos}
	case token.KIND_NUMBER:
		value, _err := strconv.ParseInt(tok.Lexeme, 0, 64)
		if _err != nil {
			err = &ErrNumber{Pos: tok.Pos, Lexeme: tok.Lexeme}
			return
		}
		op = Operand{Kind: OPERAND_IMMEDIATE, Value: value, Pos: tok.Pos}
	case token.KIND_LABEL_REF:
		op = Operand{Kind: OPERAND_LABEL, Name: tok.Lexeme, Pos: tok.Pos}
	default:
		err = &ErrSyntax{Pos: tok.Pos, Expected: f("an operand"), Found: tok}
	}

	return
}

// statement parses one logical line. The leading token has already been
// confirmed to not be NEWLINE or EOF.
func (par *Parser) statement() (stmt Statement, err error) {
	if par.peek().Kind == token.KIND_LABEL_DEF {
		tok := par.next()
		stmt.Label = tok.Lexeme
		stmt.LabelPos = tok.Pos
	}

	tok := par.next()
	if tok.Kind != token.KIND_MNEMONIC {
		err = &ErrSyntax{Pos: tok.Pos, Expected: f("a mnemonic"), Found: tok}
		return
	}
	stmt.Mnemonic = tok.Lexeme
	stmt.Pos = tok.Pos

	if par.peek().Kind == token.KIND_NEWLINE {
		par.next()
		return
	}

	for {
		var op Operand
		op, err = par.operand()
		if err != nil {
			return
		}
		stmt.Operands = append(stmt.Operands, op)

		tok = par.next()
		switch tok.Kind {
		case token.KIND_NEWLINE:
			return
		case token.KIND_COMMA:
			// next operand
		default:
			err = &ErrSyntax{Pos: tok.Pos, Expected: f("',' or end of line"), Found: tok}
			return
		}
	}
}

// Parse consumes the whole token stream and returns the statement list.
func (par *Parser) Parse(tokens []token.Token) (stmts []Statement, err error) {
	par.tokens = tokens
	par.index = 0

	for par.peek().Kind != token.KIND_EOF {
		if par.peek().Kind == token.KIND_NEWLINE {
			par.next()
			continue
		}

		var stmt Statement
		stmt, err = par.statement()
		if err != nil {
			return
		}

		if par.Verbose {
			log.Printf("parse: %v %v %v", stmt.Pos, stmt.Mnemonic, stmt.Operands)
		}

		stmts = append(stmts, stmt)
	}

	return
}
