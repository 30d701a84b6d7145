package arch

import (
	"fmt"
)

// Binary word field widths. The layout is shared by the code generator and
// the virtual machine; any change invalidates previously generated images.
const (
	WordWidth  = 32 // Total bits in a memory word.
	OpcodeBits = 6  // Bits in the opcode field.
	KindBits   = 2  // Bits in each operand kind field.
	ValueBits  = 11 // Bits in each operand value field.
)

// Field bit positions, most significant field first:
// [31:26] opcode, [25:24] kind A, [23:13] value A, [12:11] kind B, [10:0] value B.
const (
	opcodeShift = 26
	kindAShift  = 24
	valueAShift = 13
	kindBShift  = 11
	valueBShift = 0

	opcodeMask = (1 << OpcodeBits) - 1
	kindMask   = (1 << KindBits) - 1
	valueMask  = (1 << ValueBits) - 1
)

// Signed range of an immediate operand value.
const (
	ImmMin = -(1 << (ValueBits - 1))
	ImmMax = (1 << (ValueBits - 1)) - 1
)

// Unsigned limit of a register or address operand value.
const ValueMax = valueMask

// Word is one fixed-width unit of instruction or data memory.
type Word uint32

// Kind tags how an operand field is interpreted at execution time.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_NONE = Kind(0) // none
	KIND_REG  = Kind(1) // register
	KIND_IMM  = Kind(2) // immediate
	KIND_ADDR = Kind(3) // address
)

// Field is one packed operand: a kind tag and an 11-bit value pattern.
type Field struct {
	Kind  Kind
	Value uint32
}

// Reg builds a register operand field.
func Reg(index uint32) Field {
	return Field{Kind: KIND_REG, Value: index}
}

// Imm builds an immediate operand field from a signed value.
// The value is truncated to the field width; Encode range-checks separately.
func Imm(value int64) Field {
	return Field{Kind: KIND_IMM, Value: uint32(value) & valueMask}
}

// Addr builds an address operand field.
func Addr(address uint32) Field {
	return Field{Kind: KIND_ADDR, Value: address}
}

// Signed returns the field value sign-extended from ValueBits bits.
// Only meaningful for immediate fields.
func (field Field) Signed() int32 {
	value := field.Value
	if value&(1<<(ValueBits-1)) != 0 {
		value |= ^uint32(valueMask)
	}
	return int32(value)
}

func (field Field) String() string {
	switch field.Kind {
	case KIND_REG:
		return fmt.Sprintf("r%d", field.Value)
	case KIND_IMM:
		return fmt.Sprintf("#%d", field.Signed())
	case KIND_ADDR:
		return fmt.Sprintf("@%d", field.Value)
	}
	return "-"
}

// Encode packs an opcode and two operand fields into a single word.
// Fails with ErrFieldOverflow when any value exceeds its declared bit width.
func Encode(opcode Opcode, a, b Field) (word Word, err error) {
	if uint32(opcode) > opcodeMask {
		err = &ErrFieldOverflow{Field: "opcode", Value: int64(opcode), Bits: OpcodeBits}
		return
	}
	if a.Value > valueMask {
		err = &ErrFieldOverflow{Field: "operand 1", Value: int64(a.Value), Bits: ValueBits}
		return
	}
	if b.Value > valueMask {
		err = &ErrFieldOverflow{Field: "operand 2", Value: int64(b.Value), Bits: ValueBits}
		return
	}

	word = Word(uint32(opcode)<<opcodeShift |
		uint32(a.Kind)<<kindAShift | a.Value<<valueAShift |
		uint32(b.Kind)<<kindBShift | b.Value<<valueBShift)

	return
}

// Decode unpacks a word into its opcode and operand fields.
// Decode is the exact inverse of Encode for all in-range inputs.
func Decode(word Word) (opcode Opcode, a, b Field) {
	opcode = Opcode((uint32(word) >> opcodeShift) & opcodeMask)
	a = Field{
		Kind:  Kind((uint32(word) >> kindAShift) & kindMask),
		Value: (uint32(word) >> valueAShift) & valueMask,
	}
	b = Field{
		Kind:  Kind((uint32(word) >> kindBShift) & kindMask),
		Value: (uint32(word) >> valueBShift) & valueMask,
	}
	return
}

func (word Word) String() string {
	opcode, a, b := Decode(word)
	return fmt.Sprintf("%v %v %v (0x%08x)", opcode, a, b, uint32(word))
}
