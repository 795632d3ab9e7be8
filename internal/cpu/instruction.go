package cpu

import "fmt"

// Instruction is one entry in a 256-slot opcode table: a mnemonic for
// debug output and the function that executes it and returns its
// cycle cost.
type Instruction struct {
	name string
	fn   func(*CPU) uint8
}

// InstructionSet and InstructionSetCB are the primary and
// CB-prefixed dispatch tables, indexed directly by opcode byte. A nil
// fn marks an opcode this core does not implement.
var InstructionSet [256]Instruction
var InstructionSetCB [256]Instruction

// DefineInstruction registers a primary-table entry. Instructions
// register themselves from init() in instructions.go, so a fixed
// array can be indexed directly at dispatch time with no map lookup.
func DefineInstruction(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

func DefineInstructionCB(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// haltCycles is the fixed cost of a Step call while halted.
const haltCycles = 4

// Step executes one instruction: opcode is the byte the caller
// already fetched from bus.Read(PC). It returns the number of cycles
// consumed. While halted, it performs no work and returns 4.
func (c *CPU) Step(opcode uint8) uint8 {
	if c.mode == modeHalted {
		return haltCycles
	}

	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}

	c.applyDeferredIME()
	c.opcodeCounts[opcode]++

	inst := InstructionSet[opcode]
	if inst.fn == nil {
		panic(fmt.Sprintf("cpu: unknown opcode 0x%02X at PC 0x%04X", opcode, c.PC-1))
	}
	return inst.fn(c)
}

// stepCB is reached from the 0xCB entry in the primary table: it
// fetches the extended opcode and dispatches through InstructionSetCB.
func (c *CPU) stepCB() uint8 {
	opcode := c.imm8()
	inst := InstructionSetCB[opcode]
	if inst.fn == nil {
		panic(fmt.Sprintf("cpu: unknown CB opcode 0x%02X at PC 0x%04X", opcode, c.PC-1))
	}
	return inst.fn(c)
}

// applyDeferredIME ticks the EI/DI countdowns before decoding the
// current opcode and commits an effect when its countdown reaches
// zero: EI/DI arm a countdown of 2, so the instruction right after
// them still runs with the old IME and the one after that sees the
// new value.
func (c *CPU) applyDeferredIME() {
	if c.imeEnableCountdown > 0 {
		c.imeEnableCountdown--
		if c.imeEnableCountdown == 0 {
			c.IME = true
		}
	}
	if c.imeDisableCountdown > 0 {
		c.imeDisableCountdown--
		if c.imeDisableCountdown == 0 {
			c.IME = false
		}
	}
}

// halt suspends fetch/execute until an enabled interrupt is pending.
// If IME is already false and an interrupt is already pending, real
// hardware fails to advance PC on the following fetch (the HALT bug);
// this core reproduces that rather than silently skipping it.
func (c *CPU) halt() {
	if !c.IME && c.irq.Pending() != 0 {
		c.haltBug = true
		return
	}
	c.mode = modeHalted
}
