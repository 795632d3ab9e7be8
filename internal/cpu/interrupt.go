package cpu

// Dispatch pushes the current PC and jumps to vector, the push/jump
// half of interrupt servicing. The caller (the console aggregate) is
// responsible for having already cleared IME and the halted flag.
func (c *CPU) Dispatch(vector uint16) {
	c.pushWord(c.PC)
	c.PC = vector
}
