package vm

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/csm-lang/csm/arch"
)

// handlerFunc executes one decoded instruction and returns the next program
// counter. All arithmetic wraps modulo 2^32.
type handlerFunc func(m *Machine, a, b arch.Field) (next uint32, err error)

var handlers = [1 << arch.OpcodeBits]handlerFunc{
	arch.OP_HLT:  opHlt,
	arch.OP_NOP:  opNop,
	arch.OP_MOV:  opMov,
	arch.OP_ADD:  opAdd,
	arch.OP_SUB:  opSub,
	arch.OP_AND:  opAnd,
	arch.OP_OR:   opOr,
	arch.OP_XOR:  opXor,
	arch.OP_NOT:  opNot,
	arch.OP_SHL:  opShl,
	arch.OP_SHR:  opShr,
	arch.OP_CMP:  opCmp,
	arch.OP_LDR:  opLdr,
	arch.OP_STR:  opStr,
	arch.OP_JMP:  opJmp,
	arch.OP_JMZ:  opJmz,
	arch.OP_JNZ:  opJnz,
	arch.OP_JMN:  opJmn,
	arch.OP_CALL: opCall,
	arch.OP_RET:  opRet,
	arch.OP_INP:  opInp,
	arch.OP_OUT:  opOut,
	arch.OP_OTC:  opOtc,
}

// register resolves a register operand to its bank index.
func (m *Machine) register(field arch.Field) (index uint32, err error) {
	if field.Kind != arch.KIND_REG || int(field.Value) >= len(m.Registers) {
		err = ErrOperandInvalid
		return
	}
	index = field.Value

	return
}

// value resolves a register or immediate operand to its 32-bit value.
// Immediates are sign-extended from the field width.
func (m *Machine) value(field arch.Field) (value uint32, err error) {
	switch field.Kind {
	case arch.KIND_REG:
		index, _err := m.register(field)
		if _err != nil {
			err = _err
			return
		}
		value = m.Registers[index]
	case arch.KIND_IMM:
		value = uint32(field.Signed())
	default:
		err = ErrOperandInvalid
	}

	return
}

// address resolves an address operand, checking it against the memory size.
func (m *Machine) address(field arch.Field) (addr uint32, err error) {
	if field.Kind != arch.KIND_ADDR {
		err = ErrOperandInvalid
		return
	}
	if int(field.Value) >= len(m.Memory) {
		err = &ErrMemoryFault{Addr: field.Value}
		return
	}
	addr = field.Value

	return
}

// setZN updates the zero and negative flags from a result value.
func (m *Machine) setZN(result uint32) {
	m.Flags.Zero = result == 0
	m.Flags.Negative = int32(result) < 0
}

// binary runs a register/value operation and stores the result back into
// the destination register.
func (m *Machine) binary(a, b arch.Field, fn func(av, bv uint32) uint32) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}
	bv, err := m.value(b)
	if err != nil {
		return
	}

	result := fn(m.Registers[index], bv)
	m.Registers[index] = result
	m.setZN(result)

	next = m.PC + 1

	return
}

func opHlt(m *Machine, a, b arch.Field) (next uint32, err error) {
	m.status = STATUS_HALTED
	next = m.PC
	return
}

func opNop(m *Machine, a, b arch.Field) (next uint32, err error) {
	next = m.PC + 1
	return
}

func opMov(m *Machine, a, b arch.Field) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}
	bv, err := m.value(b)
	if err != nil {
		return
	}

	m.Registers[index] = bv
	next = m.PC + 1

	return
}

func opAdd(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 {
		sum := uint64(av) + uint64(bv)
		m.Flags.Carry = sum > 0xFFFFFFFF
		return uint32(sum)
	})
}

func opSub(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 {
		m.Flags.Carry = bv > av
		return av - bv
	})
}

func opAnd(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 { return av & bv })
}

func opOr(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 { return av | bv })
}

func opXor(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 { return av ^ bv })
}

func opNot(m *Machine, a, b arch.Field) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}

	result := ^m.Registers[index]
	m.Registers[index] = result
	m.setZN(result)

	next = m.PC + 1

	return
}

func opShl(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 { return av << (bv & 31) })
}

func opShr(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.binary(a, b, func(av, bv uint32) uint32 { return av >> (bv & 31) })
}

func opCmp(m *Machine, a, b arch.Field) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}
	bv, err := m.value(b)
	if err != nil {
		return
	}

	av := m.Registers[index]
	m.Flags.Carry = bv > av
	m.setZN(av - bv)

	next = m.PC + 1

	return
}

func opLdr(m *Machine, a, b arch.Field) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}
	addr, err := m.address(b)
	if err != nil {
		return
	}

	m.Registers[index] = uint32(m.Memory[addr])
	next = m.PC + 1

	return
}

func opStr(m *Machine, a, b arch.Field) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}
	addr, err := m.address(b)
	if err != nil {
		return
	}

	m.Memory[addr] = arch.Word(m.Registers[index])
	next = m.PC + 1

	return
}

func opJmp(m *Machine, a, b arch.Field) (next uint32, err error) {
	return m.address(a)
}

func opJmz(m *Machine, a, b arch.Field) (next uint32, err error) {
	if m.Flags.Zero {
		return m.address(a)
	}
	next = m.PC + 1
	return
}

func opJnz(m *Machine, a, b arch.Field) (next uint32, err error) {
	if !m.Flags.Zero {
		return m.address(a)
	}
	next = m.PC + 1
	return
}

func opJmn(m *Machine, a, b arch.Field) (next uint32, err error) {
	if m.Flags.Negative {
		return m.address(a)
	}
	next = m.PC + 1
	return
}

func opCall(m *Machine, a, b arch.Field) (next uint32, err error) {
	next, err = m.address(a)
	if err != nil {
		return
	}

	m.RR = m.PC + 1

	return
}

func opRet(m *Machine, a, b arch.Field) (next uint32, err error) {
	next = m.RR
	return
}

func opInp(m *Machine, a, b arch.Field) (next uint32, err error) {
	index, err := m.register(a)
	if err != nil {
		return
	}

	if m.scanner == nil {
		m.scanner = bufio.NewScanner(m.Input)
	}
	if !m.scanner.Scan() {
		_err := m.scanner.Err()
		if _err == nil {
			_err = errors.New(f("end of input"))
		}
		err = &ErrInput{Err: _err}
		return
	}

	value, _err := strconv.ParseInt(strings.TrimSpace(m.scanner.Text()), 0, 64)
	if _err != nil {
		err = &ErrInput{Err: _err}
		return
	}
	if value < -(1<<31) || value > (1<<32)-1 {
		err = &ErrInput{Err: errors.New(f("value out of 32 bit range"))}
		return
	}

	m.Registers[index] = uint32(value)
	next = m.PC + 1

	return
}

func opOut(m *Machine, a, b arch.Field) (next uint32, err error) {
	value, err := m.value(a)
	if err != nil {
		return
	}

	fmt.Fprintf(m.Output, "%d\n", int32(value))
	next = m.PC + 1

	return
}

func opOtc(m *Machine, a, b arch.Field) (next uint32, err error) {
	value, err := m.value(a)
	if err != nil {
		return
	}

	fmt.Fprintf(m.Output, "%c", rune(value))
	next = m.PC + 1

	return
}
