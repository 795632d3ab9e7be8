package ppu

import (
	"testing"

	"github.com/kestrel-emu/gbcore/internal/interrupts"
)

type countingSink struct {
	presented int
}

func (c *countingSink) Present(*[screenWidth * screenHeight]uint32) { c.presented++ }

func TestModeTransitionsFollowCycleBudgets(t *testing.T) {
	p := New(interrupts.New(), nil)
	p.WriteLCDC(0x80)

	p.Advance(79)
	if p.mode != ModeOAMScan {
		t.Fatalf("mode = %d, want OAMScan before budget exhausted", p.mode)
	}
	p.Advance(1)
	if p.mode != ModeVRAMAccess {
		t.Fatalf("mode = %d, want VRAMAccess at 80 cycles", p.mode)
	}
	p.Advance(171)
	if p.mode != ModeVRAMAccess {
		t.Fatalf("mode = %d, want still VRAMAccess", p.mode)
	}
	p.Advance(1)
	if p.mode != ModeHBlank {
		t.Fatalf("mode = %d, want HBlank at 252 cycles", p.mode)
	}
	p.Advance(203)
	if p.mode != ModeHBlank {
		t.Fatalf("mode = %d, want still HBlank", p.mode)
	}
	p.Advance(1)
	if p.mode != ModeOAMScan || p.ly != 1 {
		t.Fatalf("mode = %d, ly = %d, want OAMScan/1 at line boundary", p.mode, p.ly)
	}
}

func TestLCDOffHaltsTheStateMachine(t *testing.T) {
	p := New(interrupts.New(), nil)
	for i := 0; i < 40; i++ {
		p.Advance(250) // 10000 cycles in total
	}
	if p.mode != ModeOAMScan || p.ly != 0 {
		t.Fatalf("expected no progress while LCDC bit 7 is clear")
	}
}

func TestFullFrameFlushesSinkOnce(t *testing.T) {
	sink := &countingSink{}
	p := New(interrupts.New(), sink)
	p.WriteLCDC(0x80)

	for total := 154 * 456; total > 0; {
		chunk := total
		if chunk > 255 {
			chunk = 255
		}
		p.Advance(uint8(chunk))
		total -= chunk
	}
	if sink.presented != 1 {
		t.Fatalf("Present called %d times after a full frame, want 1", sink.presented)
	}
	if p.ly != 0 {
		t.Errorf("ly = %d, want 0 after wraparound", p.ly)
	}
}

func TestLYCCoincidenceRequestsLCDInterrupt(t *testing.T) {
	irq := interrupts.New()
	irq.WriteIE(1 << interrupts.LCD)
	p := New(irq, nil)
	p.WriteLCDC(0x80)
	p.WriteLYC(2)
	p.WriteSTAT(0x40) // enable LYC=LY interrupt source

	for line := 0; line < 2; line++ {
		p.Advance(255)
		p.Advance(201)
	}

	if p.ly != 2 {
		t.Fatalf("ly = %d, want 2", p.ly)
	}
	if p.stat&0x04 == 0 {
		t.Errorf("STAT coincidence bit not set at LY=LYC")
	}
	if irq.ReadIF()&(1<<interrupts.LCD) == 0 {
		t.Errorf("expected LCD interrupt requested on coincidence")
	}
}

func TestBackgroundTilePixelResolution(t *testing.T) {
	p := New(interrupts.New(), nil)
	p.vram[0x1800] = 1 // tile map entry (0,0) -> tile 1, map base 0x9800
	p.vram[0x8010-0x8000] = 0xFF
	p.vram[0x8011-0x8000] = 0x00
	p.WriteBGP(0xE4)
	p.WriteLCDC(0x80 | 0x10) // LCD on, tile data select 0x8000

	p.Advance(252) // run OAM scan + VRAM access, triggers drawScanline for line 0

	if got := p.frame[0]; got != shades[1] {
		t.Errorf("pixel(0,0) = 0x%08X, want shade 1 (0x%08X)", got, shades[1])
	}
}

func TestSpriteCompositingSkipsTransparentPixels(t *testing.T) {
	p := New(interrupts.New(), nil)
	p.WriteLCDC(0x02) // sprites enabled, 8x8
	p.WriteOBP0(0xE4)

	p.oam[0] = 16 // Y (screen row 0 after the -16 offset)
	p.oam[1] = 8  // X (screen col 0 after the -8 offset)
	p.oam[2] = 0  // tile 0
	p.oam[3] = 0  // attrs: no flip, palette 0, in front of BG

	p.vram[0] = 0x80 // plane0: leftmost pixel set
	p.vram[1] = 0x00

	p.renderSprites()

	if got := p.frame[0]; got == 0 {
		t.Fatalf("expected leftmost sprite pixel to be drawn")
	}
	if got := p.frame[1]; got != 0 {
		t.Errorf("pixel(1,0) should remain transparent (untouched), got 0x%08X", got)
	}
}

func TestSpriteSkipsOffscreenEntries(t *testing.T) {
	p := New(interrupts.New(), nil)
	p.WriteLCDC(0x02)
	p.oam[0] = 0 // Y=0 is the documented "hidden" sentinel
	p.oam[1] = 8
	p.vram[0] = 0xFF
	p.vram[1] = 0xFF

	p.renderSprites()

	for i, px := range p.frame {
		if px != 0 {
			t.Fatalf("frame[%d] = 0x%08X, want untouched (sprite at Y=0 must be skipped)", i, px)
		}
	}
}
