package cpu

import (
	"testing"

	"github.com/kestrel-emu/gbcore/internal/boot"
	"github.com/kestrel-emu/gbcore/internal/cartridge"
	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/internal/joypad"
	"github.com/kestrel-emu/gbcore/internal/memory"
	"github.com/kestrel-emu/gbcore/internal/ppu"
	"github.com/kestrel-emu/gbcore/internal/timer"
)

// newTestCPU wires a CPU to a fully-populated bus backed by a
// no-mapper cartridge, PC parked past the boot overlay.
func newTestCPU(t *testing.T) (*CPU, *memory.Bus) {
	t.Helper()
	rom := make([]byte, 0x8000)
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	irq := interrupts.New()
	tmr := timer.New(irq)
	pad := joypad.New(irq)
	video := ppu.New(irq, nil)
	bus := memory.New(cart, boot.Default(), irq, tmr, pad, video, nil)
	bus.Write(0xFF50, 1) // disable boot overlay so writes to 0x0000-0x00FF go nowhere unexpected

	c := New(bus, irq)
	c.PC = 0xC000
	c.SP = 0xFFFE
	return c, bus
}

func step(c *CPU, bus *memory.Bus, opcode uint8, operands ...uint8) uint8 {
	bus.Write(c.PC, opcode)
	for i, b := range operands {
		bus.Write(c.PC+1+uint16(i), b)
	}
	return c.Step(bus.Read(c.PC))
}

func TestFlagLowerNibbleAlwaysZero(t *testing.T) {
	c, bus := newTestCPU(t)
	c.A = 0x3A
	c.B = 0xC6
	step(c, bus, 0x80) // ADD A,B
	if c.F&0x0F != 0 {
		t.Fatalf("F lower nibble = 0x%X, want 0", c.F&0x0F)
	}
}

func TestRegisterPairRoundTrip(t *testing.T) {
	c, _ := newTestCPU(t)
	for _, v := range []uint16{0x0000, 0x1234, 0xFFFF, 0xABCD} {
		c.AF.Set(v)
		if got := c.AF.Get(); got != v&0xFFF0 {
			t.Errorf("AF round trip: set 0x%04X, got 0x%04X, want 0x%04X", v, got, v&0xFFF0)
		}
		c.BC.Set(v)
		if got := c.BC.Get(); got != v {
			t.Errorf("BC round trip: set 0x%04X, got 0x%04X", v, got)
		}
	}
}

func TestStackInverse(t *testing.T) {
	c, _ := newTestCPU(t)
	c.SP = 0xFFFE
	for _, x := range []uint16{0x0000, 0x1234, 0xFFFF} {
		startSP := c.SP
		c.pushWord(x)
		got := c.popWord()
		if got != x {
			t.Errorf("push/pop round trip: got 0x%04X, want 0x%04X", got, x)
		}
		if c.SP != startSP {
			t.Errorf("SP not restored: got 0x%04X, want 0x%04X", c.SP, startSP)
		}
	}
}

func TestPCWraps(t *testing.T) {
	c, bus := newTestCPU(t)
	c.PC = 0xFFFF
	step(c, bus, 0x00) // NOP
	if c.PC != 0x0000 {
		t.Fatalf("PC after NOP at 0xFFFF = 0x%04X, want 0x0000", c.PC)
	}
}

func TestADDHalfCarryScenario(t *testing.T) {
	c, bus := newTestCPU(t)
	c.A = 0x3A
	c.B = 0xC6
	step(c, bus, 0x80) // ADD A,B
	if c.A != 0x00 {
		t.Errorf("A = 0x%02X, want 0x00", c.A)
	}
	if !c.isFlagSet(FlagZero) || c.isFlagSet(FlagSubtract) || !c.isFlagSet(FlagHalfCarry) || !c.isFlagSet(FlagCarry) {
		t.Errorf("flags = 0x%02X, want Z=1 N=0 H=1 C=1", c.F)
	}
}

func TestDAAAfterAdd(t *testing.T) {
	c, bus := newTestCPU(t)
	c.A = 0x45
	c.B = 0x38
	step(c, bus, 0x80) // ADD A,B -> 0x7D
	if c.A != 0x7D {
		t.Fatalf("A after ADD = 0x%02X, want 0x7D", c.A)
	}
	step(c, bus, 0x27) // DAA
	if c.A != 0x83 {
		t.Errorf("A after DAA = 0x%02X, want 0x83", c.A)
	}
	if c.isFlagSet(FlagHalfCarry) || c.isFlagSet(FlagZero) || c.isFlagSet(FlagCarry) {
		t.Errorf("flags after DAA = 0x%02X, want H=0 Z=0 C=0", c.F)
	}
}

func TestConditionalJumpCycles(t *testing.T) {
	c, bus := newTestCPU(t)
	start := c.PC
	c.clearFlag(FlagZero)
	cycles := step(c, bus, 0x28, 0x05) // JR Z,+5, not taken
	if cycles != 8 {
		t.Errorf("not-taken cycles = %d, want 8", cycles)
	}
	if c.PC != start+2 {
		t.Errorf("PC not-taken = 0x%04X, want 0x%04X", c.PC, start+2)
	}

	c.PC = start
	c.setFlag(FlagZero)
	cycles = step(c, bus, 0x28, 0x05) // JR Z,+5, taken
	if cycles != 12 {
		t.Errorf("taken cycles = %d, want 12", cycles)
	}
	if c.PC != start+2+5 {
		t.Errorf("PC taken = 0x%04X, want 0x%04X", c.PC, start+2+5)
	}
}

func TestHaltReturnsFourCyclesAndSuspendsFetch(t *testing.T) {
	c, bus := newTestCPU(t)
	step(c, bus, 0x76) // HALT
	if !c.Halted() {
		t.Fatalf("expected CPU to be halted")
	}
	before := c.PC
	cycles := step(c, bus, 0x3C) // INC A, but should be swallowed by HALT
	if cycles != 4 {
		t.Errorf("halted step cycles = %d, want 4", cycles)
	}
	if c.PC != before {
		t.Errorf("PC advanced while halted: 0x%04X -> 0x%04X", before, c.PC)
	}
}

func TestEIDelaysEnableByOneInstruction(t *testing.T) {
	c, bus := newTestCPU(t)
	c.IME = false

	step(c, bus, 0xFB) // EI
	if c.IME {
		t.Fatalf("IME set immediately after EI, want deferred")
	}
	step(c, bus, 0x00) // NOP, the instruction EI still delays through
	if c.IME {
		t.Fatalf("IME set after only one instruction following EI, want two")
	}
	step(c, bus, 0x00) // NOP, IME should now be live
	if !c.IME {
		t.Errorf("IME not set two instructions after EI")
	}
}

func TestHaltBugDoublesFollowingInstruction(t *testing.T) {
	c, bus := newTestCPU(t)
	c.IME = false
	c.irq.WriteIE(1 << interrupts.VBlank)
	c.irq.Request(interrupts.VBlank) // pending with IME false arms the halt bug

	step(c, bus, 0x76) // HALT
	if c.Halted() {
		t.Fatalf("expected the halt bug to suppress the actual halt")
	}

	c.A = 0
	step(c, bus, 0x3C) // INC A, fetched at the address HALT left PC pointing to
	step(c, bus, 0x3C) // re-fetched at the same address: PC did not advance
	if c.A != 2 {
		t.Errorf("A = %d, want 2 (INC A executed twice by the halt bug)", c.A)
	}
}

func TestUnknownOpcodePanics(t *testing.T) {
	c, bus := newTestCPU(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown opcode")
		}
	}()
	step(c, bus, 0xD3) // unassigned in the primary table
}
