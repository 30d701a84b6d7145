package vm

import (
	"errors"

	"github.com/csm-lang/csm/arch"
	"github.com/csm-lang/csm/translate"
)

var f = translate.From

// ErrOperandInvalid reports an operand field whose kind is meaningless for
// the operation, which only a hand-built image can produce.
var ErrOperandInvalid = errors.New(f("invalid operand field"))

// ErrMemoryFault reports an access outside the configured memory.
type ErrMemoryFault struct {
	Addr uint32
}

func (err *ErrMemoryFault) Error() string {
	return f("memory fault at @%v", err.Addr)
}

// ErrIllegalOpcode reports a fetched word whose opcode has no handler.
type ErrIllegalOpcode struct {
	Opcode arch.Opcode
}

func (err *ErrIllegalOpcode) Error() string {
	return f("illegal opcode %v", int(err.Opcode))
}

// ErrExecutionLimit reports that the instruction ceiling was reached before
// the program halted.
type ErrExecutionLimit struct {
	Limit int
}

func (err *ErrExecutionLimit) Error() string {
	return f("execution limit of %v instructions exceeded", err.Limit)
}

// ErrInput reports an INP instruction that could not read an integer.
type ErrInput struct {
	Err error
}

func (err *ErrInput) Error() string {
	return f("input error: %v", err.Err)
}

func (err *ErrInput) Unwrap() error {
	return err.Err
}

// ErrRuntime wraps any execution failure with the source line of the
// faulting instruction, when known.
type ErrRuntime struct {
	Line int
	Err  error
}

func (err *ErrRuntime) Error() string {
	if err.Line > 0 {
		return f("%v: runtime error: %v", err.Line, err.Err)
	}
	return f("runtime error: %v", err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
