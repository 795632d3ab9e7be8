package cpu

// defineStack registers PUSH/POP for the four register pairs. POP AF
// masks F's reserved nibble; the others don't need it since the
// invariant already holds for every other pair.
func defineStack() {
	pairs := []struct {
		opcode uint8
		name   string
		get    func(*CPU) *RegisterPair
	}{
		{0xC1, "BC", func(c *CPU) *RegisterPair { return c.BC }},
		{0xD1, "DE", func(c *CPU) *RegisterPair { return c.DE }},
		{0xE1, "HL", func(c *CPU) *RegisterPair { return c.HL }},
	}
	for _, p := range pairs {
		p := p
		DefineInstruction(p.opcode, "POP "+p.name, func(c *CPU) uint8 {
			p.get(c).Set(c.popWord())
			return 12
		})
		DefineInstruction(p.opcode+0x04, "PUSH "+p.name, func(c *CPU) uint8 {
			c.pushWord(p.get(c).Get())
			return 16
		})
	}
	DefineInstruction(0xF1, "POP AF", func(c *CPU) uint8 { c.popAF(); return 12 })
	DefineInstruction(0xF5, "PUSH AF", func(c *CPU) uint8 { c.pushWord(c.AF.Get()); return 16 })
}
