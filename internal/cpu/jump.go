package cpu

// condition evaluates one of the four branch conditions against the
// current flags: NZ, Z, NC, C.
type condition uint8

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

func (c *CPU) test(cond condition) bool {
	switch cond {
	case condNZ:
		return !c.isFlagSet(FlagZero)
	case condZ:
		return c.isFlagSet(FlagZero)
	case condNC:
		return !c.isFlagSet(FlagCarry)
	case condC:
		return c.isFlagSet(FlagCarry)
	}
	return false
}

// defineJumps registers JP/JR/CALL/RET/RETI/RST, unconditional and
// conditional, with the taken/not-taken cycle costs the ISA specifies.
func defineJumps() {
	DefineInstruction(0xC3, "JP nn", func(c *CPU) uint8 { c.PC = c.imm16(); return 16 })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) uint8 { c.PC = c.HL.Get(); return 4 })
	DefineInstruction(0x18, "JR e8", func(c *CPU) uint8 {
		e := c.signedImm8()
		c.PC = uint16(int32(c.PC) + int32(e))
		return 12
	})

	conds := []struct {
		jp, jr uint8
		cond   condition
		name   string
	}{
		{0xC2, 0x20, condNZ, "NZ"},
		{0xCA, 0x28, condZ, "Z"},
		{0xD2, 0x30, condNC, "NC"},
		{0xDA, 0x38, condC, "C"},
	}
	for _, cc := range conds {
		cc := cc
		DefineInstruction(cc.jp, "JP "+cc.name+",nn", func(c *CPU) uint8 {
			target := c.imm16()
			if c.test(cc.cond) {
				c.PC = target
				return 16
			}
			return 12
		})
		DefineInstruction(cc.jr, "JR "+cc.name+",e8", func(c *CPU) uint8 {
			e := c.signedImm8()
			if c.test(cc.cond) {
				c.PC = uint16(int32(c.PC) + int32(e))
				return 12
			}
			return 8
		})
	}

	DefineInstruction(0xCD, "CALL nn", func(c *CPU) uint8 {
		target := c.imm16()
		c.pushWord(c.PC)
		c.PC = target
		return 24
	})
	for _, cc := range conds {
		cc := cc
		opcode := map[condition]uint8{condNZ: 0xC4, condZ: 0xCC, condNC: 0xD4, condC: 0xDC}[cc.cond]
		DefineInstruction(opcode, "CALL "+cc.name+",nn", func(c *CPU) uint8 {
			target := c.imm16()
			if c.test(cc.cond) {
				c.pushWord(c.PC)
				c.PC = target
				return 24
			}
			return 12
		})
	}

	DefineInstruction(0xC9, "RET", func(c *CPU) uint8 { c.PC = c.popWord(); return 16 })
	DefineInstruction(0xD9, "RETI", func(c *CPU) uint8 {
		c.PC = c.popWord()
		c.IME = true
		return 16
	})
	for _, cc := range conds {
		cc := cc
		opcode := map[condition]uint8{condNZ: 0xC0, condZ: 0xC8, condNC: 0xD0, condC: 0xD8}[cc.cond]
		DefineInstruction(opcode, "RET "+cc.name, func(c *CPU) uint8 {
			if c.test(cc.cond) {
				c.PC = c.popWord()
				return 20
			}
			return 8
		})
	}

	for i, target := range []uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		target := target
		DefineInstruction(uint8(0xC7|i<<3), "RST", func(c *CPU) uint8 {
			c.pushWord(c.PC)
			c.PC = target
			return 16
		})
	}
}
