package timer

import (
	"testing"

	"github.com/kestrel-emu/gbcore/internal/interrupts"
)

func TestDividerRate(t *testing.T) {
	c := New(interrupts.New())
	const k = 10
	for i := 0; i < k; i++ {
		// 256 cycles per k, in two calls since Advance takes a uint8
		c.Advance(128)
		c.Advance(128)
	}
	if got := c.ReadDIV(); got != k%256 {
		t.Errorf("DIV = %d, want %d", got, k%256)
	}
}

func TestDividerWriteResetsButNotCountdown(t *testing.T) {
	c := New(interrupts.New())
	c.Advance(100)
	c.WriteDIV(0xFF)
	if got := c.ReadDIV(); got != 0 {
		t.Fatalf("DIV after write = %d, want 0", got)
	}
	c.Advance(156) // countdown was already 156 short of reload before the write
	if got := c.ReadDIV(); got != 1 {
		t.Errorf("DIV after remaining countdown = %d, want 1", got)
	}
}

func TestTIMAOverflowReloadsAndInterrupts(t *testing.T) {
	irq := interrupts.New()
	c := New(irq)
	c.WriteTMA(0x10)
	c.WriteTAC(0x05) // enabled, frequency select 1 -> reload 16
	c.WriteTIMA(0xFF)

	c.Advance(16)
	if got := c.ReadTIMA(); got != 0x10 {
		t.Errorf("TIMA after overflow = 0x%02X, want 0x10", got)
	}
	if irq.ReadIF()&(1<<interrupts.Timer) == 0 {
		t.Errorf("expected Timer interrupt requested")
	}
}

func TestDisabledTimerDoesNotAdvanceTIMA(t *testing.T) {
	c := New(interrupts.New())
	c.WriteTAC(0x00) // disabled
	for i := 0; i < 40; i++ {
		c.Advance(250) // 10000 cycles in total
	}
	if got := c.ReadTIMA(); got != 0 {
		t.Errorf("TIMA = %d, want 0 while disabled", got)
	}
}
