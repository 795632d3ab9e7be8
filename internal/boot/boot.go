// Package boot provides the 256-byte boot ROM that shadows cartridge
// addresses 0x0000-0x00FF until the boot-complete latch is written.
package boot

import "crypto/md5"

// Size is the length of a DMG boot ROM.
const Size = 256

// image is a minimal startup stub (set SP, disable the boot overlay,
// jump to the cartridge entry point) rather than the original Nintendo
// binary, which this project has no license to redistribute. It
// disables itself and hands control to 0x0100 like the real thing.
var image = func() [Size]byte {
	var rom [Size]byte
	program := []byte{
		0x31, 0xFE, 0xFF, // LD SP, 0xFFFE
		0x3E, 0x01, // LD A, 0x01
		0xE0, 0x50, // LDH (0x50), A  -- disables the boot overlay
		0xC3, 0x00, 0x01, // JP 0x0100
	}
	copy(rom[:], program)
	return rom
}()

// ROM is an immutable 256-byte boot image.
type ROM struct {
	raw      [Size]byte
	checksum [16]byte
}

// Default returns the embedded reference boot ROM.
func Default() *ROM {
	return New(image)
}

// New wraps a caller-supplied 256-byte boot image, so a real Nintendo
// dump can be substituted at runtime without touching the core.
func New(raw [Size]byte) *ROM {
	return &ROM{raw: raw, checksum: md5.Sum(raw[:])}
}

// Read returns the byte at addr, which must be < Size.
func (r *ROM) Read(addr uint16) uint8 {
	return r.raw[addr]
}

// Checksum returns the MD5 checksum of the boot image, for logging.
func (r *ROM) Checksum() [16]byte {
	return r.checksum
}
