package asm

import (
	"log"

	"github.com/csm-lang/csm/arch"
)

// Generator turns a resolved instruction list into the binary memory image.
// Generation is a pure transformation in statement order; no reordering.
type Generator struct {
	Verbose bool
}

// field converts one resolved operand to its packed codec field, range
// checking the value against the field's declared width.
func (gen *Generator) field(inst *Inst, op Operand) (field arch.Field, err error) {
	switch op.Kind {
	case OPERAND_REGISTER:
		if op.Value < 0 || op.Value > arch.ValueMax {
			err = &ErrEncodingOverflow{Pos: op.Pos,
				Err: &arch.ErrFieldOverflow{Field: "register", Value: op.Value, Bits: arch.ValueBits}}
			return
		}
		field = arch.Reg(uint32(op.Value))
	case OPERAND_IMMEDIATE:
		if op.Value < arch.ImmMin || op.Value > arch.ImmMax {
			err = &ErrEncodingOverflow{Pos: op.Pos,
				Err: &arch.ErrFieldOverflow{Field: "immediate", Value: op.Value, Bits: arch.ValueBits}}
			return
		}
		field = arch.Imm(op.Value)
	case OPERAND_ADDRESS:
		if op.Value < 0 || op.Value > arch.ValueMax {
			err = &ErrEncodingOverflow{Pos: op.Pos,
				Err: &arch.ErrFieldOverflow{Field: "address", Value: op.Value, Bits: arch.ValueBits}}
			return
		}
		field = arch.Addr(uint32(op.Value))
	}

	return
}

// data converts a DAT operand to a raw data word. Data words span the whole
// word width and accept any 32-bit signed or unsigned value.
func (gen *Generator) data(inst *Inst) (word arch.Word, err error) {
	value := inst.Operands[0].Value
	if value < -(1<<31) || value > (1<<32)-1 {
		err = &ErrEncodingOverflow{Pos: inst.Operands[0].Pos,
			Err: &arch.ErrFieldOverflow{Field: "data", Value: value, Bits: arch.WordWidth}}
		return
	}

	word = arch.Word(uint32(value))

	return
}

// Generate encodes every instruction into its binary word, in address order.
func (gen *Generator) Generate(insts []Inst) (image []arch.Word, err error) {
	image = make([]arch.Word, 0, len(insts))

	for n := range insts {
		inst := &insts[n]

		var word arch.Word
		if inst.Entry == nil {
			word, err = gen.data(inst)
			if err != nil {
				return
			}
		} else {
			var fields [2]arch.Field
			for i := range inst.Operands {
				fields[i], err = gen.field(inst, inst.Operands[i])
				if err != nil {
					return
				}
			}

			word, err = arch.Encode(inst.Entry.Opcode, fields[0], fields[1])
			if err != nil {
				err = &ErrEncodingOverflow{Pos: inst.Pos, Err: err}
				return
			}
		}

		if gen.Verbose {
			log.Printf("generate: %03x: %v", inst.Addr, word)
		}

		image = append(image, word)
	}

	return
}
