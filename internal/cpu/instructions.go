package cpu

// r8name gives the debug mnemonic for the standard 3-bit register
// encoding 0..7 = B,C,D,E,H,L,(HL),A.
var r8name = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func init() {
	defineLoads()
	defineArithmetic()
	defineRotatesAndMisc()
	defineJumps()
	defineStack()
}

// defineLoads registers the LD family: the 8x8 register-to-register
// grid (opcodes 0x40-0x7F, with 0x76 reserved for HALT), immediate
// loads, and the memory/indirect forms.
func defineLoads() {
	DefineInstruction(0x00, "NOP", func(c *CPU) uint8 { return 4 })

	// LD r,r' grid: opcode 0b01dddsss selects destination d, source s.
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 | dst<<3 | src
			if dst == 6 && src == 6 {
				continue // 0x76 is HALT, defined separately
			}
			d, s := dst, src
			name := "LD " + r8name[d] + "," + r8name[s]
			DefineInstruction(opcode, name, func(c *CPU) uint8 {
				if d == 6 {
					c.writeByte(c.HL.Get(), *c.registerIndex(s))
					return 8
				}
				if s == 6 {
					*c.registerIndex(d) = c.readByte(c.HL.Get())
					return 8
				}
				*c.registerIndex(d) = *c.registerIndex(s)
				return 4
			})
		}
	}
	DefineInstruction(0x76, "HALT", func(c *CPU) uint8 { c.halt(); return 4 })

	// LD r,d8: opcode 0b00ddd110.
	for dst := uint8(0); dst < 8; dst++ {
		if dst == 6 {
			continue
		}
		d := dst
		DefineInstruction(0x06|d<<3, "LD "+r8name[d]+",d8", func(c *CPU) uint8 {
			*c.registerIndex(d) = c.imm8()
			return 8
		})
	}
	DefineInstruction(0x36, "LD (HL),d8", func(c *CPU) uint8 {
		c.writeByte(c.HL.Get(), c.imm8())
		return 12
	})

	DefineInstruction(0x02, "LD (BC),A", func(c *CPU) uint8 { c.writeByte(c.BC.Get(), c.A); return 8 })
	DefineInstruction(0x12, "LD (DE),A", func(c *CPU) uint8 { c.writeByte(c.DE.Get(), c.A); return 8 })
	DefineInstruction(0x0A, "LD A,(BC)", func(c *CPU) uint8 { c.A = c.readByte(c.BC.Get()); return 8 })
	DefineInstruction(0x1A, "LD A,(DE)", func(c *CPU) uint8 { c.A = c.readByte(c.DE.Get()); return 8 })
	DefineInstruction(0xEA, "LD (nn),A", func(c *CPU) uint8 { c.writeByte(c.imm16(), c.A); return 16 })
	DefineInstruction(0xFA, "LD A,(nn)", func(c *CPU) uint8 { c.A = c.readByte(c.imm16()); return 16 })

	DefineInstruction(0x22, "LD (HL+),A", func(c *CPU) uint8 {
		c.writeByte(c.HL.Get(), c.A)
		c.HL.Set(c.HL.Get() + 1)
		return 8
	})
	DefineInstruction(0x2A, "LD A,(HL+)", func(c *CPU) uint8 {
		c.A = c.readByte(c.HL.Get())
		c.HL.Set(c.HL.Get() + 1)
		return 8
	})
	DefineInstruction(0x32, "LD (HL-),A", func(c *CPU) uint8 {
		c.writeByte(c.HL.Get(), c.A)
		c.HL.Set(c.HL.Get() - 1)
		return 8
	})
	DefineInstruction(0x3A, "LD A,(HL-)", func(c *CPU) uint8 {
		c.A = c.readByte(c.HL.Get())
		c.HL.Set(c.HL.Get() - 1)
		return 8
	})

	DefineInstruction(0xE0, "LDH (n),A", func(c *CPU) uint8 { c.writeByte(0xFF00+uint16(c.imm8()), c.A); return 12 })
	DefineInstruction(0xF0, "LDH A,(n)", func(c *CPU) uint8 { c.A = c.readByte(0xFF00 + uint16(c.imm8())); return 12 })
	DefineInstruction(0xE2, "LD (C),A", func(c *CPU) uint8 { c.writeByte(0xFF00+uint16(c.C), c.A); return 8 })
	DefineInstruction(0xF2, "LD A,(C)", func(c *CPU) uint8 { c.A = c.readByte(0xFF00 + uint16(c.C)); return 8 })

	// 16-bit loads.
	pairs16 := []struct {
		name string
		get  func(*CPU) *RegisterPair
	}{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }},
	}
	for i, p := range pairs16 {
		opcode := uint8(0x01 | i<<4)
		get := p.get
		DefineInstruction(opcode, "LD "+p.name+",d16", func(c *CPU) uint8 {
			get(c).Set(c.imm16())
			return 12
		})
	}
	DefineInstruction(0x31, "LD SP,d16", func(c *CPU) uint8 { c.SP = c.imm16(); return 12 })
	DefineInstruction(0x08, "LD (nn),SP", func(c *CPU) uint8 { c.writeWord(c.imm16(), c.SP); return 20 })
	DefineInstruction(0xF9, "LD SP,HL", func(c *CPU) uint8 { c.SP = c.HL.Get(); return 8 })
	DefineInstruction(0xF8, "LD HL,SP+e8", func(c *CPU) uint8 {
		e := c.signedImm8()
		c.HL.Set(c.addSPSigned(e))
		return 12
	})
}

// aluOperand returns the byte the ALU opcode grid should operate on
// for register-select field s: (HL) is dereferenced, everything else
// is a direct register.
func (c *CPU) aluOperand(s uint8) uint8 {
	if s == 6 {
		return c.readByte(c.HL.Get())
	}
	return *c.registerIndex(s)
}

// defineArithmetic registers the 8-bit ALU grid (0x80-0xBF), the
// immediate ALU forms, INC/DEC (8 and 16-bit), and 16-bit ADD.
func defineArithmetic() {
	type aluOp struct {
		name string
		base uint8
		fn   func(c *CPU, v uint8)
	}
	ops := []aluOp{
		{"ADD", 0x80, func(c *CPU, v uint8) { c.add(v, 0) }},
		{"ADC", 0x88, func(c *CPU, v uint8) {
			var carry uint8
			if c.isFlagSet(FlagCarry) {
				carry = 1
			}
			c.add(v, carry)
		}},
		{"SUB", 0x90, func(c *CPU, v uint8) { c.sub(v, 0, false) }},
		{"SBC", 0x98, func(c *CPU, v uint8) {
			var carry uint8
			if c.isFlagSet(FlagCarry) {
				carry = 1
			}
			c.sub(v, carry, false)
		}},
		{"AND", 0xA0, func(c *CPU, v uint8) { c.and(v) }},
		{"XOR", 0xA8, func(c *CPU, v uint8) { c.xor(v) }},
		{"OR", 0xB0, func(c *CPU, v uint8) { c.or(v) }},
		{"CP", 0xB8, func(c *CPU, v uint8) { c.sub(v, 0, true) }},
	}
	for _, op := range ops {
		op := op
		for s := uint8(0); s < 8; s++ {
			s := s
			cycles := uint8(4)
			if s == 6 {
				cycles = 8
			}
			DefineInstruction(op.base+s, op.name+" A,"+r8name[s], func(c *CPU) uint8 {
				op.fn(c, c.aluOperand(s))
				return cycles
			})
		}
	}

	imm := []struct {
		opcode uint8
		name   string
		fn     func(c *CPU, v uint8)
	}{
		{0xC6, "ADD A,d8", func(c *CPU, v uint8) { c.add(v, 0) }},
		{0xCE, "ADC A,d8", func(c *CPU, v uint8) {
			var carry uint8
			if c.isFlagSet(FlagCarry) {
				carry = 1
			}
			c.add(v, carry)
		}},
		{0xD6, "SUB d8", func(c *CPU, v uint8) { c.sub(v, 0, false) }},
		{0xDE, "SBC A,d8", func(c *CPU, v uint8) {
			var carry uint8
			if c.isFlagSet(FlagCarry) {
				carry = 1
			}
			c.sub(v, carry, false)
		}},
		{0xE6, "AND d8", func(c *CPU, v uint8) { c.and(v) }},
		{0xEE, "XOR d8", func(c *CPU, v uint8) { c.xor(v) }},
		{0xF6, "OR d8", func(c *CPU, v uint8) { c.or(v) }},
		{0xFE, "CP d8", func(c *CPU, v uint8) { c.sub(v, 0, true) }},
	}
	for _, op := range imm {
		op := op
		DefineInstruction(op.opcode, op.name, func(c *CPU) uint8 {
			op.fn(c, c.imm8())
			return 8
		})
	}

	// INC/DEC r, r in {B,C,D,E,H,L,(HL),A}.
	for s := uint8(0); s < 8; s++ {
		s := s
		incOp, decOp := 0x04|s<<3, 0x05|s<<3
		if s == 6 {
			DefineInstruction(incOp, "INC (HL)", func(c *CPU) uint8 {
				v := c.readByte(c.HL.Get())
				c.inc8(&v)
				c.writeByte(c.HL.Get(), v)
				return 12
			})
			DefineInstruction(decOp, "DEC (HL)", func(c *CPU) uint8 {
				v := c.readByte(c.HL.Get())
				c.dec8(&v)
				c.writeByte(c.HL.Get(), v)
				return 12
			})
			continue
		}
		DefineInstruction(incOp, "INC "+r8name[s], func(c *CPU) uint8 { c.inc8(c.registerIndex(s)); return 4 })
		DefineInstruction(decOp, "DEC "+r8name[s], func(c *CPU) uint8 { c.dec8(c.registerIndex(s)); return 4 })
	}

	pairs16 := []struct {
		name string
		get  func(*CPU) *RegisterPair
	}{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }},
	}
	for i, p := range pairs16 {
		i, get := i, p.get
		DefineInstruction(uint8(0x03|i<<4), "INC "+p.name, func(c *CPU) uint8 { get(c).Set(get(c).Get() + 1); return 8 })
		DefineInstruction(uint8(0x0B|i<<4), "DEC "+p.name, func(c *CPU) uint8 { get(c).Set(get(c).Get() - 1); return 8 })
		DefineInstruction(uint8(0x09|i<<4), "ADD HL,"+p.name, func(c *CPU) uint8 { c.addHL16(get(c).Get()); return 8 })
	}
	DefineInstruction(0x33, "INC SP", func(c *CPU) uint8 { c.SP++; return 8 })
	DefineInstruction(0x3B, "DEC SP", func(c *CPU) uint8 { c.SP--; return 8 })
	DefineInstruction(0x39, "ADD HL,SP", func(c *CPU) uint8 { c.addHL16(c.SP); return 8 })
	DefineInstruction(0xE8, "ADD SP,e8", func(c *CPU) uint8 {
		e := c.signedImm8()
		c.SP = c.addSPSigned(e)
		return 16
	})
}

// defineRotatesAndMisc registers the accumulator rotates, DAA/CPL/
// SCF/CCF, and the interrupt/speed control instructions.
func defineRotatesAndMisc() {
	DefineInstruction(0x07, "RLCA", func(c *CPU) uint8 { c.A = c.rlc(c.A); c.clearFlag(FlagZero); return 4 })
	DefineInstruction(0x17, "RLA", func(c *CPU) uint8 { c.A = c.rl(c.A); c.clearFlag(FlagZero); return 4 })
	DefineInstruction(0x0F, "RRCA", func(c *CPU) uint8 { c.A = c.rrc(c.A); c.clearFlag(FlagZero); return 4 })
	DefineInstruction(0x1F, "RRA", func(c *CPU) uint8 { c.A = c.rr(c.A); c.clearFlag(FlagZero); return 4 })

	DefineInstruction(0x27, "DAA", func(c *CPU) uint8 { c.daa(); return 4 })
	DefineInstruction(0x2F, "CPL", func(c *CPU) uint8 {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
		return 4
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) uint8 {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		return 4
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) uint8 {
		c.setFlagIf(FlagCarry, !c.isFlagSet(FlagCarry))
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		return 4
	})

	DefineInstruction(0xF3, "DI", func(c *CPU) uint8 { c.imeDisableCountdown = 2; return 4 })
	DefineInstruction(0xFB, "EI", func(c *CPU) uint8 { c.imeEnableCountdown = 2; return 4 })

	// STOP behaves as a NOP here; real hardware halts the clock until
	// joypad input. Console.Stopped/SetStopped lets a host front-end
	// impose that behavior itself.
	DefineInstruction(0x10, "STOP", func(c *CPU) uint8 { c.imm8(); return 4 })

	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) uint8 { return c.stepCB() })
}
