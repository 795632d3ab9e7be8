package cartridge

import (
	"fmt"
	"strings"
)

// Type is the raw cartridge-type byte at 0x0147, identifying both the
// mapper chip and what peripherals (RAM, battery, RTC) it exposes.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
)

// ramSizes maps the header byte at 0x0148 to its RAM size in bytes.
var ramSizes = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed 0x0100-0x014F cartridge header.
type Header struct {
	Title          string
	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
}

// parseHeader reads the header fields the core consults out of the
// first 0x150 bytes of a ROM image. ROMSize is taken from the image
// length itself: nothing else consults a separate ROM-size byte.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: ROM too short to contain a header (%d bytes)", len(rom))
	}

	h := Header{
		Title:          strings.TrimRight(string(rom[0x134:0x144]), "\x00"),
		CartridgeType:  Type(rom[0x147]),
		ROMSize:        uint(len(rom)),
		RAMSize:        ramSizes[rom[0x148]],
		HeaderChecksum: rom[0x14D],
	}

	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("%q type=0x%02X rom=%dKiB ram=%dKiB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
