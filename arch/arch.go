// Package arch holds the CSM instruction set table and the binary word
// codec shared by the code generator and the virtual machine.
package arch

import (
	"fmt"
	"strings"
)

// Opcode is a machine operation code.
type Opcode int

const (
	OP_HLT  = Opcode(0)
	OP_NOP  = Opcode(1)
	OP_MOV  = Opcode(2)
	OP_ADD  = Opcode(3)
	OP_SUB  = Opcode(4)
	OP_AND  = Opcode(5)
	OP_OR   = Opcode(6)
	OP_XOR  = Opcode(7)
	OP_NOT  = Opcode(8)
	OP_SHL  = Opcode(9)
	OP_SHR  = Opcode(10)
	OP_CMP  = Opcode(11)
	OP_LDR  = Opcode(12)
	OP_STR  = Opcode(13)
	OP_JMP  = Opcode(14)
	OP_JMZ  = Opcode(15)
	OP_JNZ  = Opcode(16)
	OP_JMN  = Opcode(17)
	OP_CALL = Opcode(18)
	OP_RET  = Opcode(19)
	OP_INP  = Opcode(20)
	OP_OUT  = Opcode(21)
	OP_OTC  = Opcode(22)
)

func (op Opcode) String() string {
	if entry := ByOpcode(op); entry != nil {
		return entry.Mnemonic
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// OperandSpec constrains what may appear at one operand position.
type OperandSpec int

//go:generate go tool stringer -linecomment -type=OperandSpec
const (
	OPERAND_REG  = OperandSpec(0) // register
	OPERAND_VAL  = OperandSpec(1) // register or immediate
	OPERAND_ADDR = OperandSpec(2) // address
)

// Entry describes one instruction in the architecture table.
type Entry struct {
	Mnemonic string
	Opcode   Opcode
	Operands []OperandSpec
}

// DirectiveData is the instruction-like keyword that emits one raw data word.
// It is not part of the instruction set and has no opcode.
const DirectiveData = "DAT"

var table = []Entry{
	{"HLT", OP_HLT, nil},
	{"NOP", OP_NOP, nil},
	{"MOV", OP_MOV, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"ADD", OP_ADD, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"SUB", OP_SUB, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"AND", OP_AND, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"OR", OP_OR, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"XOR", OP_XOR, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"NOT", OP_NOT, []OperandSpec{OPERAND_REG}},
	{"SHL", OP_SHL, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"SHR", OP_SHR, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"CMP", OP_CMP, []OperandSpec{OPERAND_REG, OPERAND_VAL}},
	{"LDR", OP_LDR, []OperandSpec{OPERAND_REG, OPERAND_ADDR}},
	{"STR", OP_STR, []OperandSpec{OPERAND_REG, OPERAND_ADDR}},
	{"JMP", OP_JMP, []OperandSpec{OPERAND_ADDR}},
	{"JMZ", OP_JMZ, []OperandSpec{OPERAND_ADDR}},
	{"JNZ", OP_JNZ, []OperandSpec{OPERAND_ADDR}},
	{"JMN", OP_JMN, []OperandSpec{OPERAND_ADDR}},
	{"CALL", OP_CALL, []OperandSpec{OPERAND_ADDR}},
	{"RET", OP_RET, nil},
	{"INP", OP_INP, []OperandSpec{OPERAND_REG}},
	{"OUT", OP_OUT, []OperandSpec{OPERAND_VAL}},
	{"OTC", OP_OTC, []OperandSpec{OPERAND_VAL}},
}

var byMnemonic map[string]*Entry
var byOpcode map[Opcode]*Entry

func init() {
	byMnemonic = make(map[string]*Entry, len(table))
	byOpcode = make(map[Opcode]*Entry, len(table))

	for n := range table {
		entry := &table[n]
		if uint32(entry.Opcode) > opcodeMask {
			panic("opcode exceeds the codec opcode field width: " + entry.Mnemonic)
		}
		if _, ok := byOpcode[entry.Opcode]; ok {
			panic("duplicate opcode in architecture table: " + entry.Mnemonic)
		}
		if _, ok := byMnemonic[entry.Mnemonic]; ok {
			panic("duplicate mnemonic in architecture table: " + entry.Mnemonic)
		}
		byMnemonic[entry.Mnemonic] = entry
		byOpcode[entry.Opcode] = entry
	}
}

// Lookup finds the table entry for a mnemonic, case-insensitively.
// Fails with ErrUnknownMnemonic when absent.
func Lookup(mnemonic string) (entry *Entry, err error) {
	entry, ok := byMnemonic[strings.ToUpper(mnemonic)]
	if !ok {
		err = ErrUnknownMnemonic(mnemonic)
		return
	}

	return
}

// ByOpcode finds the table entry for an opcode, or nil if undefined.
func ByOpcode(opcode Opcode) *Entry {
	return byOpcode[opcode]
}

// Entries returns the architecture table in opcode order.
func Entries() []Entry {
	return table
}
