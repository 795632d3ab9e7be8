package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newMBC1ROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	rom[0x147] = uint8(MBC1RAMBATT)
	rom[0x148] = 0x03 // 32KiB RAM, 4 banks
	return rom
}

func TestMBC1BankWrap(t *testing.T) {
	rom := newMBC1ROM(64)
	c, err := New(rom)
	require.NoError(t, err)
	m := c.(*mbc1)

	m.Write(0x2000, 0x00)
	require.EqualValues(t, 1, m.romBank, "writing 0x00 should select bank 1")

	m.Write(0x2000, 0x20)
	require.EqualValues(t, 0x21, m.romBank, "writing 0x20 should select bank 0x21")
}

func TestMBC1RAMEnableAndBankSelect(t *testing.T) {
	rom := newMBC1ROM(4)
	c, err := New(rom)
	require.NoError(t, err)
	m := c.(*mbc1)

	require.Equal(t, uint8(0xFF), m.Read(0xA000), "RAM reads 0xFF when disabled")

	m.Write(0x0000, 0x0A)
	m.Write(0x4000, 0x01)
	m.Write(0xA000, 0x55)
	require.Equal(t, uint8(0x55), m.Read(0xA000))

	m.Write(0x4000, 0x00)
	require.NotEqual(t, uint8(0x55), m.Read(0xA000), "switching RAM bank should expose a different region")
}
