package cpu

import "github.com/kestrel-emu/gbcore/pkg/bits"

func (c *CPU) readByte(addr uint16) uint8       { return c.bus.Read(addr) }
func (c *CPU) writeByte(addr uint16, v uint8)   { c.bus.Write(addr, v) }
func (c *CPU) readWord(addr uint16) uint16      { return c.bus.ReadWord(addr) }
func (c *CPU) writeWord(addr uint16, v uint16)  { c.bus.WriteWord(addr, v) }

// imm8 fetches the byte at PC and advances PC past it.
func (c *CPU) imm8() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

// imm16 fetches the little-endian word at PC and advances PC by 2.
func (c *CPU) imm16() uint16 {
	v := c.readWord(c.PC)
	c.PC += 2
	return v
}

func (c *CPU) signedImm8() int8 { return bits.Signed(c.imm8()) }

// pushWord writes v through SP: high byte at SP-1, low byte at SP-2,
// then SP -= 2.
func (c *CPU) pushWord(v uint16) {
	c.SP -= 2
	c.writeWord(c.SP, v)
}

// popWord reads low at SP, high at SP+1, then SP += 2.
func (c *CPU) popWord() uint16 {
	v := c.readWord(c.SP)
	c.SP += 2
	return v
}

// popAF pops into AF, masking F's reserved lower nibble to zero: real
// hardware never lets those bits become settable through POP AF.
func (c *CPU) popAF() {
	c.AF.Set(c.popWord() & 0xFFF0)
}
