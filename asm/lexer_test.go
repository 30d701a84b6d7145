package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csm-lang/csm/token"
)

func lexKinds(tokens []token.Token) (kinds []token.Kind) {
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return
}

func TestLexerStatement(t *testing.T) {
	assert := assert.New(t)

	lex := &Lexer{}
	tokens, err := lex.Lex("loop: add R1, 5\n")
	assert.NoError(err)

	assert.Equal([]token.Kind{
		token.KIND_LABEL_DEF,
		token.KIND_MNEMONIC,
		token.KIND_REGISTER,
		token.KIND_COMMA,
		token.KIND_NUMBER,
		token.KIND_NEWLINE,
		token.KIND_EOF,
	}, lexKinds(tokens))

	// Identifiers are upper-cased; numbers are kept verbatim.
	assert.Equal("LOOP", tokens[0].Lexeme)
	assert.Equal("ADD", tokens[1].Lexeme)
	assert.Equal("R1", tokens[2].Lexeme)
	assert.Equal("5", tokens[4].Lexeme)

	assert.Equal(token.Pos{Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(token.Pos{Line: 1, Column: 7}, tokens[1].Pos)
	assert.Equal(token.Pos{Line: 1, Column: 11}, tokens[2].Pos)
}

func TestLexerBlankLines(t *testing.T) {
	assert := assert.New(t)

	lex := &Lexer{}
	tokens, err := lex.Lex("\n; comment only\n\nHLT\n")
	assert.NoError(err)

	// Blank and comment-only lines produce no tokens at all.
	assert.Equal([]token.Kind{
		token.KIND_MNEMONIC,
		token.KIND_NEWLINE,
		token.KIND_EOF,
	}, lexKinds(tokens))
	assert.Equal(token.Pos{Line: 4, Column: 1}, tokens[0].Pos)
}

func TestLexerLabelRef(t *testing.T) {
	assert := assert.New(t)

	lex := &Lexer{}
	tokens, err := lex.Lex("JMP loop\n")
	assert.NoError(err)

	assert.Equal(token.KIND_MNEMONIC, tokens[0].Kind)
	assert.Equal(token.KIND_LABEL_REF, tokens[1].Kind)
	assert.Equal("LOOP", tokens[1].Lexeme)
}

func TestLexerNumberBases(t *testing.T) {
	assert := assert.New(t)

	for _, lexeme := range []string{"42", "-7", "+9", "0x1F", "0o17", "0b101"} {
		lex := &Lexer{}
		tokens, err := lex.Lex("DAT " + lexeme + "\n")
		assert.NoError(err, lexeme)
		assert.Equal(token.KIND_NUMBER, tokens[1].Kind, lexeme)
		assert.Equal(lexeme, tokens[1].Lexeme, lexeme)
	}
}

func TestLexerErrLexical(t *testing.T) {
	assert := assert.New(t)

	for source, pos := range map[string]token.Pos{
		"MOV R1, #5\n":   {Line: 1, Column: 9},
		"NOP\nADD R1?\n": {Line: 2, Column: 7},
		"DAT 0x12G4\n":   {Line: 1, Column: 9},
		"DAT 0b102\n":    {Line: 1, Column: 9},
	} {
		lex := &Lexer{}
		_, err := lex.Lex(source)
		var lexErr *ErrLexical
		assert.ErrorAs(err, &lexErr, source)
		assert.Equal(pos, lexErr.Pos, source)
	}
}
