// Package memory implements the unified 16-bit address bus: the
// single path every other component uses to read and write the
// machine's state. It owns video RAM, work RAM, OAM and high RAM
// directly, and dispatches the rest to the collaborators registered
// with it.
package memory

import (
	"github.com/kestrel-emu/gbcore/internal/boot"
	"github.com/kestrel-emu/gbcore/internal/cartridge"
	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/internal/joypad"
	"github.com/kestrel-emu/gbcore/internal/timer"
	"github.com/kestrel-emu/gbcore/internal/types"
	"github.com/kestrel-emu/gbcore/pkg/log"
)

// PPU is the facet of the video subsystem the bus needs: the register
// file writes are routed to, plus the raw VRAM/OAM backing stores.
type PPU interface {
	ReadLCDC() uint8
	WriteLCDC(uint8)
	ReadSTAT() uint8
	WriteSTAT(uint8)
	ReadSCY() uint8
	WriteSCY(uint8)
	ReadSCX() uint8
	WriteSCX(uint8)
	ReadLY() uint8
	WriteLY(uint8) // any CPU-visible write resets the scanline to 0
	ReadLYC() uint8
	WriteLYC(uint8)
	ReadBGP() uint8
	WriteBGP(uint8)
	ReadOBP0() uint8
	WriteOBP0(uint8)
	ReadOBP1() uint8
	WriteOBP1(uint8)
	ReadWY() uint8
	WriteWY(uint8)
	ReadWX() uint8
	WriteWX(uint8)

	VRAM() *[0x2000]byte
	OAM() *[0xA0]byte
}

// Bus is the Game Boy's unified address space.
type Bus struct {
	cart cartridge.Cartridge
	boot *boot.ROM
	irq  *interrupts.Controller
	tmr  *timer.Controller
	pad  *joypad.State
	ppu  PPU

	wram [0x2000]byte
	hram [0x7F]byte

	bootEnabled bool

	log log.Logger
}

// New wires a Bus to its collaborators. The boot ROM overlay starts
// enabled; writing 1 to FF50 permanently disables it.
func New(cart cartridge.Cartridge, bootROM *boot.ROM, irq *interrupts.Controller, tmr *timer.Controller, pad *joypad.State, ppu PPU, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.Null()
	}
	return &Bus{
		cart:        cart,
		boot:        bootROM,
		irq:         irq,
		tmr:         tmr,
		pad:         pad,
		ppu:         ppu,
		bootEnabled: bootROM != nil,
		log:         logger,
	}
}

// Read dispatches a single-byte load.
func (b *Bus) Read(addr types.Address) uint8 {
	switch {
	case addr < 0x100 && b.bootEnabled:
		return b.boot.Read(addr)
	case addr < 0x8000:
		return b.cart.Read(addr)
	case addr < 0xA000:
		return b.ppu.VRAM()[addr-0x8000]
	case addr < 0xC000:
		return b.cart.Read(addr)
	case addr < 0xE000:
		return b.wram[addr-0xC000]
	case addr < 0xFE00:
		return b.wram[addr-0x2000-0xC000]
	case addr < 0xFEA0:
		return b.ppu.OAM()[addr-0xFE00]
	case addr < 0xFF00:
		return 0xFF // unmapped region reads high
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.irq.ReadIE()
	}
}

// Write dispatches a single-byte store.
func (b *Bus) Write(addr types.Address, v uint8) {
	switch {
	case addr < 0x8000:
		b.cart.Write(addr, v) // bank/latch control, not a memory write
	case addr < 0xA000:
		b.ppu.VRAM()[addr-0x8000] = v
	case addr < 0xC000:
		b.cart.Write(addr, v)
	case addr < 0xE000:
		b.wram[addr-0xC000] = v
	case addr < 0xFE00:
		b.wram[addr-0x2000-0xC000] = v
	case addr < 0xFEA0:
		b.ppu.OAM()[addr-0xFE00] = v
	case addr < 0xFF00:
		b.log.Debugf("memory: write to unmapped address 0x%04X", addr)
	case addr < 0xFF80:
		b.writeIO(addr, v)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = v
	default:
		b.irq.WriteIE(v)
	}
}

func (b *Bus) readIO(addr types.Address) uint8 {
	switch addr {
	case types.P1:
		return b.pad.Read()
	case types.DIV:
		return b.tmr.ReadDIV()
	case types.TIMA:
		return b.tmr.ReadTIMA()
	case types.TMA:
		return b.tmr.ReadTMA()
	case types.TAC:
		return b.tmr.ReadTAC()
	case types.IF:
		return b.irq.ReadIF()
	case types.LCDC:
		return b.ppu.ReadLCDC()
	case types.STAT:
		return b.ppu.ReadSTAT()
	case types.SCY:
		return b.ppu.ReadSCY()
	case types.SCX:
		return b.ppu.ReadSCX()
	case types.LY:
		return b.ppu.ReadLY()
	case types.LYC:
		return b.ppu.ReadLYC()
	case types.BGP:
		return b.ppu.ReadBGP()
	case types.OBP0:
		return b.ppu.ReadOBP0()
	case types.OBP1:
		return b.ppu.ReadOBP1()
	case types.WY:
		return b.ppu.ReadWY()
	case types.WX:
		return b.ppu.ReadWX()
	case types.BOOT:
		if b.bootEnabled {
			return 0x00
		}
		return 0x01
	default:
		b.log.Debugf("memory: read from unmapped I/O address 0x%04X", addr)
		return 0xFF
	}
}

func (b *Bus) writeIO(addr types.Address, v uint8) {
	switch addr {
	case types.P1:
		b.pad.Write(v)
	case types.DIV:
		b.tmr.WriteDIV(v)
	case types.TIMA:
		b.tmr.WriteTIMA(v)
	case types.TMA:
		b.tmr.WriteTMA(v)
	case types.TAC:
		b.tmr.WriteTAC(v)
	case types.IF:
		b.irq.WriteIF(v)
	case types.LCDC:
		b.ppu.WriteLCDC(v)
	case types.STAT:
		b.ppu.WriteSTAT(v)
	case types.SCY:
		b.ppu.WriteSCY(v)
	case types.SCX:
		b.ppu.WriteSCX(v)
	case types.LY:
		b.ppu.WriteLY(v) // any write resets the scanline
	case types.LYC:
		b.ppu.WriteLYC(v)
	case types.DMA:
		b.transferDMA(v)
	case types.BGP:
		b.ppu.WriteBGP(v)
	case types.OBP0:
		b.ppu.WriteOBP0(v)
	case types.OBP1:
		b.ppu.WriteOBP1(v)
	case types.WY:
		b.ppu.WriteWY(v)
	case types.WX:
		b.ppu.WriteWX(v)
	case types.BOOT:
		if v&0x01 != 0 {
			b.bootEnabled = false
		}
	default:
		b.log.Debugf("memory: write to unmapped I/O address 0x%04X", addr)
	}
}

// transferDMA performs the synchronous OAM DMA transfer triggered by a
// write to FF46: 160 bytes from n*0x100 are copied to FE00-FE9F.
func (b *Bus) transferDMA(n uint8) {
	src := uint16(n) << 8
	oam := b.ppu.OAM()
	for i := uint16(0); i < 0xA0; i++ {
		oam[i] = b.Read(src + i)
	}
}

// ReadWord/WriteWord access a little-endian 16-bit value.
func (b *Bus) ReadWord(addr types.Address) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

func (b *Bus) WriteWord(addr types.Address, v uint16) {
	b.Write(addr, uint8(v))
	b.Write(addr+1, uint8(v>>8))
}
