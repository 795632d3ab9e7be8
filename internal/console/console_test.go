package console

import "testing"

func TestInterruptDispatchScenario(t *testing.T) {
	c, err := New(make([]byte, 0x8000), SkipBootROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.CPU.IME = true
	c.Interrupts.WriteIF(0x04)
	c.Interrupts.WriteIE(0x04)
	c.CPU.PC = 0x1234
	c.CPU.SP = 0xFFFE

	c.service()

	if c.CPU.PC != 0x0050 {
		t.Errorf("PC = 0x%04X, want 0x0050", c.CPU.PC)
	}
	if c.Interrupts.ReadIF()&0x1F != 0x00 {
		t.Errorf("IF = 0x%02X, want 0x00", c.Interrupts.ReadIF()&0x1F)
	}
	if c.CPU.IME {
		t.Errorf("expected IME cleared after dispatch")
	}
	if got := c.Bus.ReadWord(0xFFFC); got != 0x1234 {
		t.Errorf("word at 0xFFFC = 0x%04X, want 0x1234", got)
	}
	if c.CPU.SP != 0xFFFC {
		t.Errorf("SP = 0x%04X, want 0xFFFC", c.CPU.SP)
	}
}

func TestHaltWakesOnPendingEvenWithoutIME(t *testing.T) {
	c, err := New(make([]byte, 0x8000), SkipBootROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.CPU.IME = false
	opcode := uint8(0x76) // HALT
	c.Bus.Write(c.CPU.PC, opcode)
	c.CPU.Step(opcode)
	if !c.CPU.Halted() {
		t.Fatalf("expected CPU halted")
	}

	c.Interrupts.WriteIE(0x01)
	c.Interrupts.Request(0) // VBlank
	c.service()

	if c.CPU.Halted() {
		t.Errorf("expected HALT to clear on pending interrupt even with IME false")
	}
	if c.CPU.PC == 0x0040 {
		t.Errorf("dispatch should not occur while IME is false")
	}
}
