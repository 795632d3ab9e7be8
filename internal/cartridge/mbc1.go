package cartridge

// mbc1 implements the MBC1 mapper: a switchable 16KiB ROM bank window
// at 0x4000-0x7FFF and up to four 8KiB RAM banks at 0xA000-0xBFFF,
// gated by a RAM-enable latch.
type mbc1 struct {
	rom []byte
	ram []byte

	header Header

	romBank    uint8
	ramBank    uint8
	ramEnabled bool
}

func newMBC1(rom []byte, header Header) *mbc1 {
	return &mbc1{
		rom:     rom,
		ram:     make([]byte, header.RAMSize),
		header:  header,
		romBank: 1,
	}
}

func (m *mbc1) Header() Header { return m.header }

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		offset := uint32(m.romBank)*0x4000 + uint32(address-0x4000)
		if int(offset) >= len(m.rom) {
			return 0xFF
		}
		return m.rom[offset]
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		bank := clampBank(int(m.ramBank), len(m.ram), 0x2000)
		return m.ram[bank*0x2000+int(address-0xA000)]
	}
	return 0xFF
}

// Write forwards bank/latch control writes in 0x0000-0x7FFF (these
// are not actual memory writes) and stores into external RAM in
// 0xA000-0xBFFF when enabled.
func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		// any value enables RAM; the low-nibble 0x0A check real MBC1
		// hardware does is not modeled
		m.ramEnabled = true
	case address < 0x4000:
		bank := value & 0x7F
		switch bank {
		case 0x00, 0x20, 0x40, 0x60:
			bank++
		}
		m.romBank = bank
	case address < 0x6000:
		m.ramBank = value & 0x03
	case address < 0x8000:
		// ROM/RAM mode select is not modeled independently; MBC1's
		// large-ROM mode only matters above 1MiB carts, out of scope.
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		bank := clampBank(int(m.ramBank), len(m.ram), 0x2000)
		m.ram[bank*0x2000+int(address-0xA000)] = value
	}
}

func (m *mbc1) SaveRAM() []byte { return append([]byte(nil), m.ram...) }
func (m *mbc1) LoadRAM(data []byte) {
	copy(m.ram, data)
}
