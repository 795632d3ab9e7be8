// Package cartridge owns the ROM image and any external RAM, and
// mediates bank switching and RTC access through the mapper chip the
// header declares.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
)

// Cartridge is the bus-facing surface every mapper implements:
// addresses 0x0000-0x7FFF (ROM, possibly banked) and 0xA000-0xBFFF
// (external RAM or RTC registers, possibly banked) are routed here.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Header() Header
	// SaveRAM/LoadRAM expose external RAM for a host-level battery
	// save, which this core never writes to disk itself (out of scope).
	SaveRAM() []byte
	LoadRAM([]byte)
}

// ErrUnsupportedMapper is returned for mapper chips this core
// recognizes but does not emulate. MBC2 and MBC5 are documented
// extension points: the header byte is recognized so the failure is
// specific, rather than falling through to a panic on first access.
var ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")

// New parses the header out of rom and returns a Cartridge backed by
// the mapper the header's cartridge-type byte selects. Unknown
// cartridge-type bytes that aren't one of the recognized MBC2/MBC5
// extension points are treated as no mapper (ROM-only).
func New(rom []byte) (Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	switch header.CartridgeType {
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return newMBC1(rom, header), nil
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		return newMBC3(rom, header), nil
	case MBC2, MBC2BATT, MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return nil, fmt.Errorf("%w: type 0x%02X (%s)", ErrUnsupportedMapper, uint8(header.CartridgeType), extensionPointName(header.CartridgeType))
	default:
		return newNoMBC(rom, header), nil
	}
}

func extensionPointName(t Type) string {
	switch t {
	case MBC2, MBC2BATT:
		return "MBC2"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	}
	return "unknown"
}

// Fingerprint returns a fast, non-cryptographic checksum of the raw
// ROM image, used to identify a cartridge across runs without hashing
// the whole file on every lookup (xxhash is orders of magnitude
// faster than the header checksum alone, which only covers 79 bytes).
func Fingerprint(rom []byte) uint64 {
	return xxhash.Sum64(rom)
}

// clampBank bounds bank to the number of bankSize-sized regions that
// fit in a ramSize-byte backing store, so an out-of-range bank-select
// write wraps instead of indexing past the backing slice. A cartridge
// with no RAM always clamps to bank 0.
func clampBank(bank, ramSize, bankSize int) int {
	banks := ramSize / bankSize
	if banks == 0 {
		return 0
	}
	return bank % banks
}
