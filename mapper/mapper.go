// Package mapper defines the cartridge mapper capability interface and the
// NROM (mapper 0) implementation. Mappers own PRG/CHR memory and answer
// CPU- and PPU-side reads/writes in cartridge space; they are the only part
// of the bus/PPU address-decode fabric that varies per cartridge.
//
// Only NROM is implemented, so the Mapper interface has exactly one
// concrete implementation. Cartridge-space accesses are dispatched through
// the interface's methods, not a type switch; New picks the concrete type
// with a switch on the mapper number, so an MMC1/MMC3-style mapper is
// added as another type implementing Mapper plus a case in that switch.
package mapper

import "github.com/pkg/errors"

// Mapper is the capability set every cartridge mapper must implement.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, data uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, data uint8)
	MirrorAddr(addr uint16) uint16
	IRQPending() bool
	OnTick()
}

// Mirroring is the nametable mirroring policy a mapper exposes to the PPU.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleScreenA
	MirrorSingleScreenB
	MirrorFourScreen
)

// MirrorAddr maps a 12-bit nametable offset (addr-$2000, masked to 12 bits)
// to an index into the PPU's internal nametable VRAM, per spec §4.B. The
// result is in [0, 0x07FF] for every mode except FourScreen, which uses the
// full [0, 0x0FFF]; the PPU indexes its 4 KiB nametable VRAM with it
// directly, without further masking.
func MirrorAddr(mode Mirroring, addr uint16) uint16 {
	addr &= 0x0FFF
	switch mode {
	case MirrorVertical:
		return addr & 0x07FF
	case MirrorHorizontal:
		return ((addr & 0x0800) >> 1) | (addr & 0x03FF)
	case MirrorSingleScreenA:
		return addr & 0x03FF
	case MirrorSingleScreenB:
		return 0x0400 | (addr & 0x03FF)
	case MirrorFourScreen:
		return addr
	default:
		return addr & 0x07FF
	}
}

// New constructs the mapper named by number. Only mapper 0 (NROM) is
// supported; every other mapper number is a load-time refusal per spec §7.
func New(number uint16, mirroring Mirroring, prgROM, chrROM []byte, chrIsRAM bool, prgRAMSize int) (Mapper, error) {
	switch number {
	case 0:
		return NewNROM(mirroring, prgROM, chrROM, chrIsRAM, prgRAMSize), nil
	default:
		return nil, errors.Errorf("mapper: unsupported mapper number %d", number)
	}
}
