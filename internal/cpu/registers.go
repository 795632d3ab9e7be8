// Package cpu implements the instruction interpreter: registers, the
// ALU, and the 256-entry primary and CB-prefixed opcode tables.
package cpu

import (
	"fmt"

	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/internal/memory"
)

// Register is a single 8-bit register.
type Register = uint8

// RegisterPair composes two Registers into a 16-bit view, high byte
// first, without copying: Get/Set read and write through the pointers
// to the backing A/B/C/.../L fields on CPU. For AF, Set zeroes F's
// reserved lower nibble.
type RegisterPair struct {
	High, Low *Register
	maskLow   bool
}

func (p *RegisterPair) Get() uint16 {
	return uint16(*p.High)<<8 | uint16(*p.Low)
}

func (p *RegisterPair) Set(v uint16) {
	*p.High = uint8(v >> 8)
	*p.Low = uint8(v)
	if p.maskLow {
		*p.Low &= 0xF0
	}
}

// mode tracks the handful of non-normal fetch states HALT and the
// halt-bug introduce.
type mode uint8

const (
	modeNormal mode = iota
	modeHalted
)

// CPU is the Game Boy's instruction interpreter: eight 8-bit
// registers (addressable individually or paired), SP/PC, the
// interrupt master-enable flag with its one-instruction delay, and a
// back-reference to the bus every memory-accessing instruction uses.
type CPU struct {
	A, F, B, C, D, E, H, L Register
	SP, PC                 uint16

	BC, DE, HL, AF *RegisterPair

	IME bool

	imeEnableCountdown  int
	imeDisableCountdown int

	mode    mode
	haltBug bool // next fetch must not advance PC

	opcodeCounts [256]uint64

	bus *memory.Bus
	irq *interrupts.Controller
}

// OpcodeCounts returns how many times each primary-table opcode has
// been dispatched since the CPU was created, for profiling tools.
func (c *CPU) OpcodeCounts() [256]uint64 { return c.opcodeCounts }

// New returns a CPU wired to bus for memory access and irq for
// checking pending interrupts from the HALT instruction. All
// registers start zeroed; SP/PC are set by the caller (the console
// aggregate, after the boot ROM or a direct cartridge-entry skip).
func New(bus *memory.Bus, irq *interrupts.Controller) *CPU {
	c := &CPU{bus: bus, irq: irq}
	c.BC = &RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &RegisterPair{High: &c.H, Low: &c.L}
	c.AF = &RegisterPair{High: &c.A, Low: &c.F, maskLow: true}
	return c
}

// Halted reports whether the CPU is suspended in HALT.
func (c *CPU) Halted() bool { return c.mode == modeHalted }

// ClearHalt wakes the CPU from HALT. Called by interrupt servicing
// whenever a pending+enabled interrupt exists, regardless of IME.
func (c *CPU) ClearHalt() { c.mode = modeNormal }

// registerIndex maps the 3-bit register-select field shared by many
// opcode groups to the Register it names: B,C,D,E,H,L,(HL),A.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("cpu: invalid register index %d", index))
}
