package asm

import (
	"log"

	"github.com/csm-lang/csm/arch"
	"github.com/csm-lang/csm/token"
)

// BaseAddress is where the first generated word is placed.
const BaseAddress = 0

// labelDef records where a label was bound.
type labelDef struct {
	addr uint32
	pos  token.Pos
}

// Analyzer validates parsed statements against the architecture table and
// resolves labels to addresses.
type Analyzer struct {
	Verbose bool
	Config  Config

	labels map[string]labelDef
}

// wordCount returns how many memory words a statement occupies once
// generated. Every instruction and data word is a single word.
func (ana *Analyzer) wordCount(stmt *Statement) uint32 {
	return 1
}

// collect is the first pass: walk the statements in order, binding each
// label definition to the running address counter.
func (ana *Analyzer) collect(stmts []Statement) (err error) {
	ana.labels = make(map[string]labelDef, 16)

	addr := uint32(BaseAddress)
	for n := range stmts {
		stmt := &stmts[n]

		if len(stmt.Label) != 0 {
			prior, ok := ana.labels[stmt.Label]
			if ok {
				err = &ErrDuplicateLabel{Pos: stmt.LabelPos, Name: stmt.Label, Prior: prior.pos}
				return
			}
			ana.labels[stmt.Label] = labelDef{addr: addr, pos: stmt.LabelPos}

			if ana.Verbose {
				log.Printf("analyze: %v = @%v", stmt.Label, addr)
			}
		}

		addr += ana.wordCount(stmt)
	}

	return
}

// Labels returns the resolved label table.
func (ana *Analyzer) Labels() (labels map[string]uint32) {
	labels = make(map[string]uint32, len(ana.labels))
	for name, def := range ana.labels {
		labels[name] = def.addr
	}
	return
}

// resolveOperand checks one operand against its position spec and replaces
// label references with resolved addresses.
func (ana *Analyzer) resolveOperand(stmt *Statement, index int, spec arch.OperandSpec) (op Operand, err error) {
	op = stmt.Operands[index]

	mismatch := func() error {
		return &ErrOperandMismatch{
			Pos:      op.Pos,
			Index:    index,
			Expected: spec.String(),
			Found:    op.Kind.String(),
		}
	}

	switch spec {
	case arch.OPERAND_REG:
		if op.Kind != OPERAND_REGISTER {
			err = mismatch()
			return
		}
	case arch.OPERAND_VAL:
		if op.Kind != OPERAND_REGISTER && op.Kind != OPERAND_IMMEDIATE {
			err = mismatch()
			return
		}
	case arch.OPERAND_ADDR:
		switch op.Kind {
		case OPERAND_LABEL:
			def, ok := ana.labels[op.Name]
			if !ok {
				err = &ErrUndefinedLabel{Pos: op.Pos, Name: op.Name}
				return
			}
			op = Operand{Kind: OPERAND_ADDRESS, Value: int64(def.addr), Pos: op.Pos}
		case OPERAND_IMMEDIATE:
			if op.Value < 0 {
				err = mismatch()
				return
			}
			op.Kind = OPERAND_ADDRESS
		default:
			err = mismatch()
			return
		}
	}

	if op.Kind == OPERAND_REGISTER {
		if op.Value < 0 || op.Value >= int64(ana.Config.Registers) {
			err = &ErrRegisterRange{Pos: op.Pos, Index: op.Value, Count: ana.Config.Registers}
			return
		}
	}

	return
}

// validate is the second pass: look up every mnemonic, match each operand
// against the table entry's shape, and resolve all label references.
func (ana *Analyzer) validate(stmts []Statement) (insts []Inst, err error) {
	addr := uint32(BaseAddress)

	for n := range stmts {
		stmt := &stmts[n]

		inst := Inst{
			Addr:     addr,
			Pos:      stmt.Pos,
			Mnemonic: stmt.Mnemonic,
		}
		addr += ana.wordCount(stmt)

		if stmt.Mnemonic == arch.DirectiveData {
			// DAT takes one numeric value and emits a raw data word.
			if len(stmt.Operands) != 1 {
				err = &ErrOperandCount{Pos: stmt.Pos, Mnemonic: stmt.Mnemonic, Want: 1, Got: len(stmt.Operands)}
				return
			}
			op := stmt.Operands[0]
			if op.Kind != OPERAND_IMMEDIATE {
				err = &ErrOperandMismatch{Pos: op.Pos, Index: 0,
					Expected: f("a number"), Found: op.Kind.String()}
				return
			}
			inst.Operands = []Operand{op}
			insts = append(insts, inst)
			continue
		}

		entry, _err := arch.Lookup(stmt.Mnemonic)
		if _err != nil {
			err = &ErrUnknownMnemonic{Pos: stmt.Pos, Err: _err}
			return
		}
		inst.Entry = entry

		if len(stmt.Operands) != len(entry.Operands) {
			err = &ErrOperandCount{Pos: stmt.Pos, Mnemonic: entry.Mnemonic,
				Want: len(entry.Operands), Got: len(stmt.Operands)}
			return
		}

		for i, spec := range entry.Operands {
			var op Operand
			op, err = ana.resolveOperand(stmt, i, spec)
			if err != nil {
				return
			}
			inst.Operands = append(inst.Operands, op)
		}

		insts = append(insts, inst)
	}

	return
}

// Analyze runs both passes over the statement list, producing fully
// resolved instructions with only register, immediate, and address operands.
func (ana *Analyzer) Analyze(stmts []Statement) (insts []Inst, err error) {
	err = ana.collect(stmts)
	if err != nil {
		return
	}

	return ana.validate(stmts)
}
