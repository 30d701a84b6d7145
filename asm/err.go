package asm

import (
	"errors"

	"github.com/csm-lang/csm/token"
	"github.com/csm-lang/csm/translate"
)

var f = translate.From

var (
	// Directive errors
	ErrOptionUnknown = errors.New(f("unknown configuration option"))
	ErrOptionValue   = errors.New(f("configuration value must be an unsigned integer"))
	ErrOptionBounds  = errors.New(f("configuration value out of bounds"))
	ErrOptionSyntax  = errors.New(f("expected !OPTION=VALUE"))
)

// ErrDirective reports an invalid '!' configuration directive.
type ErrDirective struct {
	Pos       token.Pos
	Directive string
	Err       error
}

func (err *ErrDirective) Error() string {
	return f("%v: directive error: '%v' %v", err.Pos, err.Directive, err.Err)
}

func (err *ErrDirective) Unwrap() error {
	return err.Err
}

// ErrExpression reports a compile-time $() expression that failed to evaluate.
type ErrExpression struct {
	Pos  token.Pos
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("%v: expression error: $(%v) %v", err.Pos, err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}

// ErrLexical reports an unrecognized character in the source text.
type ErrLexical struct {
	Pos  token.Pos
	Char rune
}

func (err *ErrLexical) Error() string {
	return f("%v: lexical error: unrecognized character %q", err.Pos, err.Char)
}

// ErrSyntax reports a statement that deviates from the line grammar.
type ErrSyntax struct {
	Pos      token.Pos
	Expected string
	Found    token.Token
}

func (err *ErrSyntax) Error() string {
	return f("%v: syntax error: expected %v, found %v '%v'",
		err.Pos, err.Expected, err.Found.Kind, err.Found.Lexeme)
}

// ErrNumber reports a numeric literal that cannot be read as a value.
type ErrNumber struct {
	Pos    token.Pos
	Lexeme string
}

func (err *ErrNumber) Error() string {
	return f("%v: syntax error: '%v' is not a number", err.Pos, err.Lexeme)
}

// ErrUnknownMnemonic reports a statement whose mnemonic is absent from the
// architecture table.
type ErrUnknownMnemonic struct {
	Pos token.Pos
	Err error
}

func (err *ErrUnknownMnemonic) Error() string {
	return f("%v: semantic error: %v", err.Pos, err.Err)
}

func (err *ErrUnknownMnemonic) Unwrap() error {
	return err.Err
}

// ErrOperandCount reports a statement with the wrong number of operands.
type ErrOperandCount struct {
	Pos      token.Pos
	Mnemonic string
	Want     int
	Got      int
}

func (err *ErrOperandCount) Error() string {
	return f("%v: semantic error: %v takes %v operand(s), found %v",
		err.Pos, err.Mnemonic, err.Want, err.Got)
}

// ErrOperandMismatch reports an operand whose kind does not match the
// architecture table entry.
type ErrOperandMismatch struct {
	Pos      token.Pos
	Index    int
	Expected string
	Found    string
}

func (err *ErrOperandMismatch) Error() string {
	return f("%v: semantic error: operand %v must be %v, found %v",
		err.Pos, err.Index+1, err.Expected, err.Found)
}

// ErrRegisterRange reports a register index beyond the configured bank.
type ErrRegisterRange struct {
	Pos   token.Pos
	Index int64
	Count int
}

func (err *ErrRegisterRange) Error() string {
	return f("%v: semantic error: register R%v out of range (0..R%v)",
		err.Pos, err.Index, err.Count-1)
}

// ErrDuplicateLabel reports a label defined more than once.
type ErrDuplicateLabel struct {
	Pos   token.Pos
	Name  string
	Prior token.Pos
}

func (err *ErrDuplicateLabel) Error() string {
	return f("%v: semantic error: duplicate label '%v' (first defined at %v)",
		err.Pos, err.Name, err.Prior)
}

// ErrUndefinedLabel reports a reference to a label never defined.
type ErrUndefinedLabel struct {
	Pos  token.Pos
	Name string
}

func (err *ErrUndefinedLabel) Error() string {
	return f("%v: semantic error: undefined label '%v'", err.Pos, err.Name)
}

// ErrEncodingOverflow reports an operand value that exceeds its binary
// word field width.
type ErrEncodingOverflow struct {
	Pos token.Pos
	Err error
}

func (err *ErrEncodingOverflow) Error() string {
	return f("%v: encoding error: %v", err.Pos, err.Err)
}

func (err *ErrEncodingOverflow) Unwrap() error {
	return err.Err
}
