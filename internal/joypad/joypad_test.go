package joypad

import (
	"testing"

	"github.com/kestrel-emu/gbcore/internal/interrupts"
)

func TestReadWithNoButtonsSelectsNothing(t *testing.T) {
	s := New(interrupts.New())
	s.Write(0x30) // both columns deselected
	if got := s.Read(); got != 0xFF {
		t.Errorf("Read = 0x%02X, want 0xFF", got)
	}
}

func TestActionColumnReportsPressedBits(t *testing.T) {
	s := New(interrupts.New())
	s.Press(ButtonA)
	s.Press(ButtonStart)
	s.Write(0x10) // select action column (bit5=0), direction deselected (bit4=1)

	got := s.Read()
	if got&0x01 != 0 {
		t.Errorf("A line should read 0 (pressed)")
	}
	if got&0x08 != 0 {
		t.Errorf("Start line should read 0 (pressed)")
	}
	if got&0x02 == 0 || got&0x04 == 0 {
		t.Errorf("B and Select should read 1 (not pressed)")
	}
}

func TestDirectionColumnIndependentFromAction(t *testing.T) {
	s := New(interrupts.New())
	s.Press(ButtonUp)
	s.Write(0x20) // select direction column (bit4=0), action deselected (bit5=1)

	got := s.Read()
	if got&0x04 != 0 {
		t.Errorf("Up line should read 0 (pressed)")
	}
	s.Release(ButtonUp)
	if got := s.Read(); got&0x04 == 0 {
		t.Errorf("Up line should read 1 after release")
	}
}

func TestPressRequestsJoypadInterrupt(t *testing.T) {
	irq := interrupts.New()
	s := New(irq)
	s.Press(ButtonB)
	if irq.ReadIF()&(1<<interrupts.Joypad) == 0 {
		t.Errorf("expected Joypad interrupt requested on press")
	}
}

func TestTopBitsAlwaysSet(t *testing.T) {
	s := New(interrupts.New())
	if got := s.Read(); got&0xC0 != 0xC0 {
		t.Errorf("bits 6-7 = 0x%02X, want set", got&0xC0)
	}
}
