package cpu

func init() {
	defineCBRotates()
	defineCBBitOps()
}

// cbOperand reads the operand register/HL-indirect for CB opcode
// register-select field s, and cbStore writes it back.
func (c *CPU) cbOperand(s uint8) uint8 {
	if s == 6 {
		return c.readByte(c.HL.Get())
	}
	return *c.registerIndex(s)
}

func (c *CPU) cbStore(s uint8, v uint8) {
	if s == 6 {
		c.writeByte(c.HL.Get(), v)
		return
	}
	*c.registerIndex(s) = v
}

// defineCBRotates registers the shift/rotate group, opcodes
// 0x00-0x3F: eight operations across the eight register slots.
func defineCBRotates() {
	ops := []struct {
		name string
		base uint8
		fn   func(*CPU, uint8) uint8
	}{
		{"RLC", 0x00, (*CPU).rlc},
		{"RRC", 0x08, (*CPU).rrc},
		{"RL", 0x10, (*CPU).rl},
		{"RR", 0x18, (*CPU).rr},
		{"SLA", 0x20, (*CPU).sla},
		{"SRA", 0x28, (*CPU).sra},
		{"SWAP", 0x30, (*CPU).swap},
		{"SRL", 0x38, (*CPU).srl},
	}
	for _, op := range ops {
		op := op
		for s := uint8(0); s < 8; s++ {
			s := s
			cycles := uint8(8)
			if s == 6 {
				cycles = 16
			}
			DefineInstructionCB(op.base+s, op.name+" "+r8name[s], func(c *CPU) uint8 {
				result := op.fn(c, c.cbOperand(s))
				c.setZeroFromResult(result)
				c.cbStore(s, result)
				return cycles
			})
		}
	}
}

// defineCBBitOps registers BIT/RES/SET, opcodes 0x40-0xFF: three
// groups of eight bit indices across the eight register slots.
func defineCBBitOps() {
	for bit := uint8(0); bit < 8; bit++ {
		for s := uint8(0); s < 8; s++ {
			bit, s := bit, s

			bitCycles := uint8(8)
			otherCycles := uint8(8)
			if s == 6 {
				bitCycles = 12
				otherCycles = 16
			}

			DefineInstructionCB(0x40|bit<<3|s, "BIT", func(c *CPU) uint8 {
				c.bit(c.cbOperand(s), bit)
				return bitCycles
			})
			DefineInstructionCB(0x80|bit<<3|s, "RES", func(c *CPU) uint8 {
				c.cbStore(s, c.res(c.cbOperand(s), bit))
				return otherCycles
			})
			DefineInstructionCB(0xC0|bit<<3|s, "SET", func(c *CPU) uint8 {
				c.cbStore(s, c.set(c.cbOperand(s), bit))
				return otherCycles
			})
		}
	}
}
