package memory

import (
	"testing"

	"github.com/kestrel-emu/gbcore/internal/boot"
	"github.com/kestrel-emu/gbcore/internal/cartridge"
	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/internal/joypad"
	"github.com/kestrel-emu/gbcore/internal/ppu"
	"github.com/kestrel-emu/gbcore/internal/timer"
)

func newTestBus(t *testing.T) *Bus {
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
	bus := New(cart, boot.Default(), irq, tmr, pad, video, nil)
	bus.Write(0xFF50, 1) // disable boot overlay for these tests
	return bus
}

func TestLittleEndianWord(t *testing.T) {
	b := newTestBus(t)
	b.WriteWord(0xC100, 0xBEEF)
	if got := b.Read(0xC100); got != 0xEF {
		t.Errorf("low byte = 0x%02X, want 0xEF", got)
	}
	if got := b.Read(0xC101); got != 0xBE {
		t.Errorf("high byte = 0x%02X, want 0xBE", got)
	}
	if got := b.ReadWord(0xC100); got != 0xBEEF {
		t.Errorf("ReadWord = 0x%04X, want 0xBEEF", got)
	}
}

func TestMirrorRegion(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC050, 0x42)
	if got := b.Read(0xE050); got != 0x42 {
		t.Errorf("mirror read = 0x%02X, want 0x42", got)
	}
	b.Write(0xE060, 0x99)
	if got := b.Read(0xC060); got != 0x99 {
		t.Errorf("write through mirror = 0x%02X, want 0x99", got)
	}
}

func TestDMATransfer(t *testing.T) {
	b := newTestBus(t)
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(0xC000+i, uint8(i))
	}
	b.Write(0xFF46, 0xC0) // trigger DMA from 0xC000
	for i := uint16(0); i < 0xA0; i++ {
		if got := b.Read(0xFE00 + i); got != uint8(i) {
			t.Fatalf("OAM[%d] = 0x%02X, want 0x%02X", i, got, uint8(i))
		}
	}
}

func TestDividerWriteResets(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFF04, 0xFF)
	if got := b.Read(0xFF04); got != 0 {
		t.Errorf("DIV after write = 0x%02X, want 0", got)
	}
}

func TestBootOverlayDisable(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0x99 // cartridge byte at 0x0000
	cart, _ := cartridge.New(rom)
	irq := interrupts.New()
	tmr := timer.New(irq)
	pad := joypad.New(irq)
	video := ppu.New(irq, nil)
	b := New(cart, boot.Default(), irq, tmr, pad, video, nil)

	if b.Read(0x0000) == 0x99 {
		t.Fatalf("expected boot overlay to shadow cartridge at 0x0000")
	}
	b.Write(0xFF50, 1)
	if got := b.Read(0x0000); got != 0x99 {
		t.Errorf("after boot disable, Read(0x0000) = 0x%02X, want 0x99", got)
	}
}
