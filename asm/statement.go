package asm

import (
	"fmt"

	"github.com/csm-lang/csm/arch"
	"github.com/csm-lang/csm/token"
)

// OperandKind is the variant tag of a statement operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REGISTER  = OperandKind(0) // register
	OPERAND_IMMEDIATE = OperandKind(1) // immediate
	OPERAND_LABEL     = OperandKind(2) // label reference
	OPERAND_ADDRESS   = OperandKind(3) // address
)

// Operand is one instruction argument. The parser produces register,
// immediate, and label reference operands; the semantic analyzer replaces
// every label reference with a resolved address operand.
type Operand struct {
	Kind  OperandKind
	Value int64  // Register index, immediate value, or resolved address.
	Name  string // Label name, for label references only.
	Pos   token.Pos
}

func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_REGISTER:
		return fmt.Sprintf("R%d", op.Value)
	case OPERAND_LABEL:
		return op.Name
	case OPERAND_ADDRESS:
		return fmt.Sprintf("@%d", op.Value)
	}
	return fmt.Sprintf("%d", op.Value)
}

// Statement is one parsed source line: an optional label definition, a
// mnemonic, and its operands. The parser performs no semantic validation;
// the mnemonic may be unknown to the architecture table.
type Statement struct {
	Label    string // Optional label definition, upper-cased, without ':'.
	LabelPos token.Pos
	Mnemonic string
	Pos      token.Pos // Position of the mnemonic.
	Operands []Operand
}

// Inst is a fully analyzed statement bound to its word address, ready for
// encoding. Entry is nil for DAT data words.
type Inst struct {
	Addr     uint32
	Pos      token.Pos
	Mnemonic string
	Entry    *arch.Entry
	Operands []Operand
}
