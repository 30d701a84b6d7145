// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm compiles CSM assembly text into a binary memory image.
//
// The pipeline runs in fixed stages, each consuming the previous stage's
// output: Expander (directives and compile-time expressions), Lexer,
// Parser, Analyzer (label resolution and validation), and Generator
// (binary encoding). The first error encountered aborts the pipeline.
package asm

import (
	"io"
	"iter"

	"github.com/csm-lang/csm/arch"
)

// Program is a compiled memory image together with the configuration and
// the source mapping needed for runtime diagnostics.
type Program struct {
	Image  []arch.Word
	Config Config
	Insts  []Inst
	Labels map[string]uint32
}

// Words iterates the image words in address order.
func (prog *Program) Words() iter.Seq2[uint32, arch.Word] {
	return func(yield func(addr uint32, word arch.Word) bool) {
		for n, word := range prog.Image {
			if !yield(uint32(BaseAddress+n), word) {
				return
			}
		}
	}
}

// LineOf returns the source line that generated the word at an address,
// or 0 when the address is outside the image.
func (prog *Program) LineOf(addr uint32) int {
	for n := range prog.Insts {
		inst := &prog.Insts[n]
		if inst.Addr == addr {
			return inst.Pos.Line
		}
	}

	return 0
}

// Assembler runs the whole compilation pipeline.
type Assembler struct {
	Verbose bool

	expander *Expander
}

// NewAssembler creates an assembler with the default configuration.
func NewAssembler() *Assembler {
	return &Assembler{expander: NewExpander()}
}

// Directive applies a command line !OPTION=VALUE configuration override
// before assembly.
func (asm *Assembler) Directive(directive string) error {
	return asm.expander.Directive(directive)
}

// Assemble compiles source text into a Program. The first lexical, syntax,
// semantic, or encoding error aborts compilation and is returned.
func (asm *Assembler) Assemble(input io.Reader) (prog *Program, err error) {
	if asm.expander == nil {
		asm.expander = NewExpander()
	}
	asm.expander.Verbose = asm.Verbose

	source, err := asm.expander.Expand(input)
	if err != nil {
		return
	}

	lexer := &Lexer{Verbose: asm.Verbose}
	tokens, err := lexer.Lex(source)
	if err != nil {
		return
	}

	parser := &Parser{Verbose: asm.Verbose}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		return
	}

	analyzer := &Analyzer{Verbose: asm.Verbose, Config: asm.expander.Config}
	insts, err := analyzer.Analyze(stmts)
	if err != nil {
		return
	}

	generator := &Generator{Verbose: asm.Verbose}
	image, err := generator.Generate(insts)
	if err != nil {
		return
	}

	prog = &Program{
		Image:  image,
		Config: asm.expander.Config,
		Insts:  insts,
		Labels: analyzer.Labels(),
	}

	return
}
