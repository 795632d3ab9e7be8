// Package ppu implements the scanline-granularity video pipeline: a
// four-mode timing state machine that renders one scanline's worth of
// background and window pixels per batch rather than dot by dot, and
// composites sprites once per frame at the V-blank wraparound.
package ppu

import (
	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/pkg/bits"
)

// Mode identifies which phase of the scanline timing state machine
// the PPU currently occupies; its numeric value is also the value
// written into STAT bits 0-1.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModeVRAMAccess
)

const (
	cyclesOAMScan    = 80
	cyclesVRAMAccess = 172
	cyclesHBlank     = 204
	cyclesPerLine    = 456
	visibleLines     = 144
	totalLines       = 154

	screenWidth  = 160
	screenHeight = 144
)

// shades is the fixed four-level monochrome palette, indexed by a
// 2-bit palette lookup result.
var shades = [4]uint32{0xFFFFFFFF, 0xFFCCCCCC, 0xFF777777, 0xFF000000}

// VideoSink is the host-facing presentation surface: a full frame of
// 160x144 ARGB8888 pixels, flushed once per V-blank wraparound.
type VideoSink interface {
	Present(frame *[screenWidth * screenHeight]uint32)
}

// PPU is the video subsystem: register file, VRAM, OAM, a 160x144
// framebuffer, and the scanline timing state machine.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat, scy, scx, ly, lyc uint8
	bgp, obp0, obp1               uint8
	wy, wx                        uint8

	mode       Mode
	cycleDebt  int
	frame      [screenWidth * screenHeight]uint32
	windowLine int // rows of window plane actually drawn so far this frame

	modeCycles [4]uint64 // cumulative T-cycles spent in each Mode, for profiling

	irq  *interrupts.Controller
	sink VideoSink
}

// ModeCycles returns the cumulative T-cycles spent in each Mode since
// the PPU was created, indexed by Mode value.
func (p *PPU) ModeCycles() [4]uint64 { return p.modeCycles }

// New returns a PPU in its post-reset state: mode OAM-scan, line 0.
func New(irq *interrupts.Controller, sink VideoSink) *PPU {
	p := &PPU{irq: irq, sink: sink, mode: ModeOAMScan}
	p.stat = uint8(ModeOAMScan)
	return p
}

// Frame returns the current framebuffer, valid until the next
// Advance call draws into it.
func (p *PPU) Frame() *[screenWidth * screenHeight]uint32 { return &p.frame }

// SetSink attaches (or replaces) the host presentation surface
// completed frames are flushed to.
func (p *PPU) SetSink(sink VideoSink) { p.sink = sink }

// VRAM and OAM expose the raw backing stores the bus maps directly.
func (p *PPU) VRAM() *[0x2000]byte { return &p.vram }
func (p *PPU) OAM() *[0xA0]byte    { return &p.oam }

func (p *PPU) ReadLCDC() uint8   { return p.lcdc }
func (p *PPU) WriteLCDC(v uint8) { p.lcdc = v }
func (p *PPU) ReadSTAT() uint8   { return p.stat | 0x80 }
func (p *PPU) WriteSTAT(v uint8) { p.stat = p.stat&0x07 | v&0x78 }
func (p *PPU) ReadSCY() uint8    { return p.scy }
func (p *PPU) WriteSCY(v uint8)  { p.scy = v }
func (p *PPU) ReadSCX() uint8    { return p.scx }
func (p *PPU) WriteSCX(v uint8)  { p.scx = v }
func (p *PPU) ReadLY() uint8     { return p.ly }

// WriteLY models the bus contract: any CPU-visible write resets the
// current scanline to 0.
func (p *PPU) WriteLY(uint8) { p.ly = 0 }

func (p *PPU) ReadLYC() uint8    { return p.lyc }
func (p *PPU) WriteLYC(v uint8)  { p.lyc = v }
func (p *PPU) ReadBGP() uint8    { return p.bgp }
func (p *PPU) WriteBGP(v uint8)  { p.bgp = v }
func (p *PPU) ReadOBP0() uint8   { return p.obp0 }
func (p *PPU) WriteOBP0(v uint8) { p.obp0 = v }
func (p *PPU) ReadOBP1() uint8   { return p.obp1 }
func (p *PPU) WriteOBP1(v uint8) { p.obp1 = v }
func (p *PPU) ReadWY() uint8     { return p.wy }
func (p *PPU) WriteWY(v uint8)   { p.wy = v }
func (p *PPU) ReadWX() uint8     { return p.wx }
func (p *PPU) WriteWX(v uint8)   { p.wx = v }

// setLY writes the scanline counter directly, bypassing the
// reset-on-write contract WriteLY enforces for the bus.
func (p *PPU) setLY(v uint8) {
	p.ly = v
	p.checkCoincidence()
}

func (p *PPU) checkCoincidence() {
	if p.ly == p.lyc {
		p.stat = bits.Set(p.stat, 2)
		if bits.Test(p.stat, 6) {
			p.irq.Request(interrupts.LCD)
		}
	} else {
		p.stat = bits.Reset(p.stat, 2)
	}
}

func (p *PPU) setMode(m Mode) {
	p.mode = m
	p.stat = p.stat&0xFC | uint8(m)
}

// Advance runs the timing state machine forward by cycles T-cycles,
// producing zero or more mode transitions and, on VRAM-access exit,
// drawing one scanline into the framebuffer.
func (p *PPU) Advance(cycles uint8) {
	if !bits.Test(p.lcdc, 7) {
		return
	}

	p.cycleDebt += int(cycles)

	for {
		switch p.mode {
		case ModeOAMScan:
			if p.cycleDebt < cyclesOAMScan {
				return
			}
			p.cycleDebt -= cyclesOAMScan
			p.modeCycles[ModeOAMScan] += cyclesOAMScan
			p.setMode(ModeVRAMAccess)

		case ModeVRAMAccess:
			if p.cycleDebt < cyclesVRAMAccess {
				return
			}
			p.cycleDebt -= cyclesVRAMAccess
			p.modeCycles[ModeVRAMAccess] += cyclesVRAMAccess
			p.drawScanline()
			p.setMode(ModeHBlank)
			if bits.Test(p.stat, 3) {
				p.irq.Request(interrupts.LCD)
			}

		case ModeHBlank:
			if p.cycleDebt < cyclesHBlank {
				return
			}
			p.cycleDebt -= cyclesHBlank
			p.modeCycles[ModeHBlank] += cyclesHBlank
			p.setLY(p.ly + 1)
			if p.ly == visibleLines {
				p.setMode(ModeVBlank)
				p.irq.Request(interrupts.VBlank)
			} else {
				p.setMode(ModeOAMScan)
			}

		case ModeVBlank:
			if p.cycleDebt < cyclesPerLine {
				return
			}
			p.cycleDebt -= cyclesPerLine
			p.modeCycles[ModeVBlank] += cyclesPerLine
			p.setLY(p.ly + 1)
			if p.ly == totalLines {
				p.renderSprites()
				if p.sink != nil {
					p.sink.Present(&p.frame)
				}
				p.setLY(0)
				p.windowLine = 0
				p.setMode(ModeOAMScan)
			}
		}
	}
}

func (p *PPU) drawScanline() {
	y := int(p.ly)
	p.drawBackground(y)
	if bits.Test(p.lcdc, 5) && y >= int(p.wy) {
		p.drawWindow(y)
	}
}

func (p *PPU) drawBackground(y int) {
	mapBase := uint16(0x9800)
	if bits.Test(p.lcdc, 3) {
		mapBase = 0x9C00
	}
	sy := (y + int(p.scy)) & 0xFF
	for x := 0; x < screenWidth; x++ {
		sx := (x + int(p.scx)) & 0xFF
		shade := p.tilePixel(mapBase, sx, sy)
		p.frame[y*screenWidth+x] = shades[shade]
	}
}

func (p *PPU) drawWindow(y int) {
	mapBase := uint16(0x9800)
	if bits.Test(p.lcdc, 6) {
		mapBase = 0x9C00
	}
	origin := int(p.wx) - 7
	wy := p.windowLine
	drawn := false
	for x := 0; x < screenWidth; x++ {
		wx := x - origin
		if wx < 0 {
			continue
		}
		shade := p.tilePixel(mapBase, wx, wy)
		p.frame[y*screenWidth+x] = shades[shade]
		drawn = true
	}
	if drawn {
		p.windowLine++
	}
}

// tilePixel resolves a single background/window pixel at tile-space
// coordinates (sx, sy) against the map at mapBase, per the tile-id and
// tile-data addressing rules LCDC bit 4 selects.
func (p *PPU) tilePixel(mapBase uint16, sx, sy int) uint8 {
	mapIndex := uint16((sy/8)*32 + sx/8)
	tileID := p.vram[mapBase+mapIndex-0x8000]

	var tileAddr uint16
	if bits.Test(p.lcdc, 4) {
		tileAddr = 0x8000 + uint16(tileID)*16
	} else {
		tileAddr = uint16(0x9000 + int(bits.Signed(tileID))*16)
	}

	row := (sy % 8) * 2
	plane0 := p.vram[tileAddr+uint16(row)-0x8000]
	plane1 := p.vram[tileAddr+uint16(row)+1-0x8000]

	px := uint8(sx % 8)
	bit0 := bits.Val(plane0, 7-px)
	bit1 := bits.Val(plane1, 7-px)
	index := bit1<<1 | bit0

	return (p.bgp >> (index * 2)) & 0x03
}

type spriteEntry struct {
	y, x, tile, attrs uint8
}

// renderSprites composes all 40 OAM entries against the current
// framebuffer once per frame, matching the documented once-per-frame
// simplification rather than per-scanline sprite compositing.
func (p *PPU) renderSprites() {
	if !bits.Test(p.lcdc, 1) {
		return
	}
	height := 8
	if bits.Test(p.lcdc, 2) {
		height = 16
	}

	for i := 0; i < 40; i++ {
		e := spriteEntry{
			y:     p.oam[i*4],
			x:     p.oam[i*4+1],
			tile:  p.oam[i*4+2],
			attrs: p.oam[i*4+3],
		}
		if e.y == 0 || e.y >= 160 || e.x == 0 || e.x >= 168 {
			continue
		}
		p.drawSprite(e, height)
	}
}

func (p *PPU) drawSprite(e spriteEntry, height int) {
	originX := int(e.x) - 8
	originY := int(e.y) - 16

	palette := p.obp0
	if bits.Test(e.attrs, 4) {
		palette = p.obp1
	}
	flipX := bits.Test(e.attrs, 5)
	flipY := bits.Test(e.attrs, 6)
	behindBG := bits.Test(e.attrs, 7)

	tile := e.tile
	if height == 16 {
		tile &^= 0x01
	}

	for row := 0; row < height; row++ {
		py := originY + row
		if py < 0 || py >= screenHeight {
			continue
		}
		srcRow := row
		if flipY {
			srcRow = height - 1 - row
		}
		tileAddr := 0x8000 + uint16(tile)*16 + uint16(srcRow/8)*16
		plane0 := p.vram[tileAddr+uint16((srcRow%8)*2)-0x8000]
		plane1 := p.vram[tileAddr+uint16((srcRow%8)*2)+1-0x8000]

		for col := 0; col < 8; col++ {
			px := originX + col
			if px < 0 || px >= screenWidth {
				continue
			}
			srcCol := col
			if flipX {
				srcCol = 7 - col
			}
			bit0 := bits.Val(plane0, uint8(7-srcCol))
			bit1 := bits.Val(plane1, uint8(7-srcCol))
			index := bit1<<1 | bit0
			if index == 0 {
				continue // transparent
			}
			shade := (palette >> (index * 2)) & 0x03

			offset := py*screenWidth + px
			if behindBG && p.frame[offset] != shades[0] {
				continue
			}
			p.frame[offset] = shades[shade]
		}
	}
}
