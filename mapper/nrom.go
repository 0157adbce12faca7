package mapper

// NROM is mapper 0: no bank switching, no IRQ, hardwired mirroring from
// the cartridge header.
//
// CPU space: $6000-$7FFF is PRG-RAM (if present); $8000-$FFFF indexes
// PRG-ROM with addr & (len-1), so a 16 KiB image mirrors across
// $8000-$BFFF/$C000-$FFFF. PPU space: $0000-$1FFF indexes CHR-ROM or
// writable CHR-RAM. Writes to ROM are ignored.
type NROM struct {
	mirroring Mirroring

	prgROM []byte
	chrROM []byte
	chrRAM bool

	prgRAM []byte
}

// NewNROM builds an NROM mapper. chrROM is writable in place when chrIsRAM
// is true (cartridges with no CHR-ROM blocks supply 8 KiB of CHR-RAM).
func NewNROM(mirroring Mirroring, prgROM, chrROM []byte, chrIsRAM bool, prgRAMSize int) *NROM {
	m := &NROM{
		mirroring: mirroring,
		prgROM:    prgROM,
		chrROM:    chrROM,
		chrRAM:    chrIsRAM,
	}
	if prgRAMSize > 0 {
		m.prgRAM = make([]byte, prgRAMSize)
	}
	return m
}

func (m *NROM) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if len(m.prgRAM) == 0 {
			return 0
		}
		return m.prgRAM[int(addr-0x6000)%len(m.prgRAM)]
	case addr >= 0x8000:
		if len(m.prgROM) == 0 {
			return 0
		}
		return m.prgROM[int(addr-0x8000)&(len(m.prgROM)-1)]
	default:
		return 0
	}
}

func (m *NROM) CPUWrite(addr uint16, data uint8) {
	if addr >= 0x6000 && addr < 0x8000 && len(m.prgRAM) > 0 {
		m.prgRAM[int(addr-0x6000)%len(m.prgRAM)] = data
	}
	// Writes to $8000-$FFFF target ROM and are silently ignored.
}

func (m *NROM) PPURead(addr uint16) uint8 {
	if len(m.chrROM) == 0 {
		return 0
	}
	return m.chrROM[int(addr)%len(m.chrROM)]
}

func (m *NROM) PPUWrite(addr uint16, data uint8) {
	if m.chrRAM && len(m.chrROM) > 0 {
		m.chrROM[int(addr)%len(m.chrROM)] = data
	}
	// CHR-ROM writes are silently ignored.
}

func (m *NROM) MirrorAddr(addr uint16) uint16 {
	return MirrorAddr(m.mirroring, addr)
}

func (m *NROM) IRQPending() bool { return false }
func (m *NROM) OnTick()          {}

// PRGRAM exposes the battery-backed save RAM for a host that wants to
// persist it; the core itself performs no file I/O (§7, §1 non-goals).
func (m *NROM) PRGRAM() []byte { return m.prgRAM }
