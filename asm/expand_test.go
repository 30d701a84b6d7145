package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csm-lang/csm/token"
)

func TestExpanderDirective(t *testing.T) {
	assert := assert.New(t)

	ex := NewExpander()
	assert.Equal(DefaultConfig(), ex.Config)

	assert.NoError(ex.Directive("!MEMORY=64"))
	assert.Equal(64, ex.Config.Memory)

	assert.NoError(ex.Directive("registers = 4"))
	assert.Equal(4, ex.Config.Registers)

	assert.NoError(ex.Directive("!LIMIT=1000"))
	assert.Equal(1000, ex.Config.Limit)

	assert.NoError(ex.Directive("!CLOCK=250"))
	assert.Equal(250, ex.Config.Clock)
}

func TestExpanderDirectiveErr(t *testing.T) {
	assert := assert.New(t)

	for directive, want := range map[string]error{
		"!BOGUS=1":     ErrOptionUnknown,
		"!MEMORY":      ErrOptionSyntax,
		"!MEMORY=abc":  ErrOptionValue,
		"!MEMORY=-64":  ErrOptionValue,
		"!MEMORY=4":    ErrOptionBounds,
		"!REGISTERS=2": ErrOptionBounds,
		"!CLOCK=99999": ErrOptionBounds,
	} {
		ex := NewExpander()
		err := ex.Directive(directive)
		assert.ErrorIs(err, want, directive)
	}
}

func TestExpanderExpand(t *testing.T) {
	assert := assert.New(t)

	ex := NewExpander()
	source, err := ex.Expand(strings.NewReader(
		"!MEMORY=64\n" +
			"MOV R1, $(MEMORY - 1)\n" +
			"NOP ; keeps $(MEMORY) verbatim\n"))
	assert.NoError(err)
	assert.Equal(64, ex.Config.Memory)

	// Directive lines are blanked, not removed, so positions survive.
	assert.Equal("\nMOV R1, 63\nNOP ; keeps $(MEMORY) verbatim\n", source)
}

func TestExpanderExpandErr(t *testing.T) {
	assert := assert.New(t)

	ex := NewExpander()
	_, err := ex.Expand(strings.NewReader("NOP\n!BOGUS=1\n"))
	var dErr *ErrDirective
	assert.ErrorAs(err, &dErr)
	assert.Equal(2, dErr.Pos.Line)
	assert.ErrorIs(err, ErrOptionUnknown)

	ex = NewExpander()
	_, err = ex.Expand(strings.NewReader("MOV R1, $(1 // 0)\n"))
	var eErr *ErrExpression
	assert.ErrorAs(err, &eErr)
	assert.Equal(1, eErr.Pos.Line)
	assert.True(errors.Unwrap(err) != nil)
}

func TestExpanderExprErrColumn(t *testing.T) {
	assert := assert.New(t)

	// The reported column is that of the failing expression itself, even
	// when an earlier expression expands fine or the same text appears in
	// the trailing comment.
	ex := NewExpander()
	_, err := ex.Expand(strings.NewReader("DAT $(1+1), $(x) ; about $(x)\n"))
	var eErr *ErrExpression
	assert.ErrorAs(err, &eErr)
	assert.Equal("x", eErr.Expr)
	assert.Equal(token.Pos{Line: 1, Column: 13}, eErr.Pos)
}
