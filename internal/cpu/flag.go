package cpu

import "github.com/kestrel-emu/gbcore/pkg/bits"

// Flag identifies a bit position in F. Only the upper nibble is ever
// non-zero.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

func (c *CPU) setFlag(flag Flag)   { c.F = bits.Set(c.F, flag) }
func (c *CPU) clearFlag(flag Flag) { c.F = bits.Reset(c.F, flag) }

func (c *CPU) setFlagIf(flag Flag, cond bool) {
	if cond {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

func (c *CPU) isFlagSet(flag Flag) bool { return bits.Test(c.F, flag) }

// setZeroFromResult sets the Zero flag from whether v is zero and
// forces the reserved lower nibble of F back to zero, restoring the
// F&0x0F==0 invariant after every write.
func (c *CPU) setZeroFromResult(v uint8) {
	c.setFlagIf(FlagZero, v == 0)
	c.F &= 0xF0
}
