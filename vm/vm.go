// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package vm executes a compiled memory image on the fetch, decode,
// execute cycle until the program halts or faults.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/csm-lang/csm/arch"
	"github.com/csm-lang/csm/asm"
	"github.com/csm-lang/csm/internal"
)

// Status is the machine execution state.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_READY   = Status(0) // ready
	STATUS_RUNNING = Status(1) // running
	STATUS_HALTED  = Status(2) // halted
	STATUS_FAULTED = Status(3) // faulted
)

// Flags are the condition flags updated by arithmetic and comparison.
type Flags struct {
	Zero     bool
	Negative bool
	Carry    bool
}

// Machine is one CSM virtual machine instance.
type Machine struct {
	Input   io.Reader
	Output  io.Writer
	Verbose bool
	Limit   int // Instruction ceiling; 0 means unbounded.

	Registers []uint32
	Memory    []arch.Word
	PC        uint32
	RR        uint32 // Return register, set by CALL and consumed by RET.
	Flags     Flags
	Steps     int

	status  Status
	clock   time.Duration
	prog    *asm.Program
	scanner *bufio.Scanner
}

// New creates a machine loaded with a compiled program, positioned at the
// first instruction. Memory grows beyond the configured size only when the
// image itself is larger.
func New(prog *asm.Program) (m *Machine) {
	m = &Machine{
		Input:     os.Stdin,
		Output:    os.Stdout,
		Limit:     prog.Config.Limit,
		Registers: make([]uint32, prog.Config.Registers),
		Memory:    make([]arch.Word, max(prog.Config.Memory, len(prog.Image))),
		clock:     time.Duration(prog.Config.Clock) * time.Millisecond,
		prog:      prog,
	}
	copy(m.Memory, prog.Image)

	return
}

// Status returns the current execution state.
func (m *Machine) Status() Status {
	return m.status
}

// Halted reports whether the program reached a HLT instruction.
func (m *Machine) Halted() bool {
	return m.status == STATUS_HALTED
}

// fault transitions the machine to the faulted state, attaching the source
// line of the instruction at the current program counter.
func (m *Machine) fault(err error) error {
	m.status = STATUS_FAULTED

	line := 0
	if m.prog != nil {
		line = m.prog.LineOf(m.PC)
	}

	return &ErrRuntime{Line: line, Err: err}
}

// Step fetches, decodes, and executes a single instruction. Once halted or
// faulted the machine makes no further progress.
func (m *Machine) Step() (err error) {
	if m.status == STATUS_HALTED || m.status == STATUS_FAULTED {
		return
	}
	m.status = STATUS_RUNNING

	if m.Limit > 0 && m.Steps >= m.Limit {
		err = m.fault(&ErrExecutionLimit{Limit: m.Limit})
		return
	}

	if int(m.PC) >= len(m.Memory) {
		err = m.fault(&ErrMemoryFault{Addr: m.PC})
		return
	}
	word := m.Memory[m.PC]

	opcode, a, b := arch.Decode(word)
	handler := handlers[opcode]
	if handler == nil {
		err = m.fault(&ErrIllegalOpcode{Opcode: opcode})
		return
	}

	if m.Verbose {
		log.Printf("vm: @%03x: %v", m.PC, word)
	}

	var next uint32
	next, err = handler(m, a, b)
	if err != nil {
		err = m.fault(err)
		return
	}

	m.PC = next
	m.Steps += 1

	return
}

// Run executes until the program halts. The first fault stops the machine
// and is returned.
func (m *Machine) Run() (err error) {
	for !m.Halted() {
		err = m.Step()
		if err != nil {
			return
		}
		if m.clock > 0 {
			time.Sleep(m.clock)
		}
	}

	return
}

// registerRows yields the register bank, program counter, and return
// register, in display order.
func (m *Machine) registerRows() iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		for n, value := range m.Registers {
			if !yield(fmt.Sprintf("R%d", n), value) {
				return
			}
		}
		if !yield("PC", m.PC) {
			return
		}
		yield("RR", m.RR)
	}
}

// labelRows yields every program label with the memory word it points at,
// in name order.
func (m *Machine) labelRows() iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		if m.prog == nil {
			return
		}

		names := make([]string, 0, len(m.prog.Labels))
		for name := range m.prog.Labels {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			addr := m.prog.Labels[name]
			var value uint32
			if int(addr) < len(m.Memory) {
				value = uint32(m.Memory[addr])
			}
			if !yield(name, value) {
				return
			}
		}
	}
}

// String renders the machine state: status line, then one row per register
// and per program label.
func (m *Machine) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%v after %v step(s), Z=%v N=%v C=%v\n",
		m.status, m.Steps, m.Flags.Zero, m.Flags.Negative, m.Flags.Carry)

	for name, value := range internal.IterSeq2Concat(m.registerRows(), m.labelRows()) {
		fmt.Fprintf(&sb, "  %-10s 0x%08x (%d)\n", name, value, int32(value))
	}

	return sb.String()
}
