// Package rom decodes the 16-byte iNES / NES 2.0 cartridge header into the
// typed parameters the mapper and PPU need (sizes, mirroring, console
// timing). It does not read files; it consumes the raw header bytes a host
// has already loaded.
package rom

import (
	"github.com/pkg/errors"
)

// Kind identifies which header dialect was decoded.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindINES
	KindNES2
)

// Mirroring is the nametable mirroring mode declared by the header. A
// mapper may still override this at runtime (e.g. MMC1 single-screen
// switching); this is only the cartridge's hardwired default.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

// ConsoleType distinguishes the handful of console variants NES 2.0 can
// describe. Only ConsoleNES is in scope for this core; others are decoded
// for completeness and rejected by the cartridge loader.
type ConsoleType uint8

const (
	ConsoleNES ConsoleType = iota
	ConsoleVsSystem
	ConsolePlayChoice10
	ConsoleExtended
)

// Timing is the console's video timing region.
type Timing uint8

const (
	TimingNTSC Timing = iota
	TimingPAL
	TimingMultiRegion
	TimingDendy
)

// magic is the fixed 4-byte iNES/NES2.0 signature: "NES" followed by DOS EOF.
var magic = [4]byte{0x4E, 0x45, 0x53, 0x1A}

// Header is the decoded form of a 16-byte ROM container header.
type Header struct {
	Kind Kind

	Mapper    uint16 // 12-bit mapper number
	Submapper uint8  // 4-bit, NES2 only; 0 for iNES

	PRGROMSize  int // bytes
	CHRROMSize  int // bytes
	PRGRAMSize  int // bytes
	PRGNVRAMSize int // bytes
	CHRRAMSize  int // bytes
	CHRNVRAMSize int // bytes

	Mirroring       Mirroring
	Console         ConsoleType
	Timing          Timing
	HasTrainer      bool
	HasBattery      bool
	ExpansionDevice uint8 // NES2 default expansion device id; 0 for iNES
}

// Decode parses a 16-byte header. It never panics: malformed or
// unsupported input is reported through Kind == KindUnsupported and a
// non-nil error; every other accessor on an unsupported header returns 0
// or its zero-value enum variant, per spec.
func Decode(raw [16]byte) (Header, error) {
	if raw[0] != magic[0] || raw[1] != magic[1] || raw[2] != magic[2] || raw[3] != magic[3] {
		return Header{Kind: KindUnsupported}, errors.Errorf("rom: bad magic bytes %02x %02x %02x %02x", raw[0], raw[1], raw[2], raw[3])
	}

	flags6 := raw[6]
	flags7 := raw[7]

	h := Header{
		HasBattery: flags6&0x02 != 0,
		HasTrainer: flags6&0x04 != 0,
	}

	if flags7&0x0C == 0x08 {
		h.Kind = KindNES2
		return decodeNES2(raw, h, flags6, flags7)
	}
	h.Kind = KindINES
	return decodeINES(raw, h, flags6, flags7)
}

func mirroringOf(flags6 byte) Mirroring {
	if flags6&0x08 != 0 {
		return MirrorFourScreen
	}
	if flags6&0x01 != 0 {
		return MirrorVertical
	}
	return MirrorHorizontal
}

func decodeINES(raw [16]byte, h Header, flags6, flags7 byte) (Header, error) {
	h.Mapper = uint16(flags6>>4) | uint16(flags7&0xF0)
	h.Mirroring = mirroringOf(flags6)
	h.Console = consoleTypeOf(flags7)
	h.Timing = TimingNTSC

	h.PRGROMSize = int(raw[4]) * 16384
	h.CHRROMSize = int(raw[5]) * 8192

	// iNES carries no standard RAM-size field; byte 8 is sometimes repurposed
	// by archaic dumps but is not part of the format this core decodes.
	// Per spec, iNES RAM sizes are always 0 — a mapper that needs PRG-RAM
	// or CHR-RAM sizing information on an iNES image has to fall back to
	// its own default, the way real iNES-only mappers do.
	h.PRGRAMSize = 0
	h.CHRRAMSize = 0

	return h, nil
}

func consoleTypeOf(flags7 byte) ConsoleType {
	switch flags7 & 0x03 {
	case 1:
		return ConsoleVsSystem
	case 2:
		return ConsolePlayChoice10
	case 3:
		return ConsoleExtended
	default:
		return ConsoleNES
	}
}

func decodeNES2(raw [16]byte, h Header, flags6, flags7 byte) (Header, error) {
	flags8 := raw[8]
	flags9 := raw[9]
	flags10 := raw[10]
	flags11 := raw[11]
	flags12 := raw[12]
	flags15 := raw[15]

	h.Mapper = uint16(flags6>>4) | uint16(flags7&0xF0) | (uint16(flags8&0x0F) << 8)
	h.Submapper = flags8 >> 4
	h.Mirroring = mirroringOf(flags6)
	h.Console = consoleTypeOf(flags7)
	h.ExpansionDevice = flags15 & 0x3F

	switch flags12 & 0x03 {
	case 0:
		h.Timing = TimingNTSC
	case 1:
		h.Timing = TimingPAL
	case 2:
		h.Timing = TimingMultiRegion
	case 3:
		h.Timing = TimingDendy
	}
	// Multi-region timing collapses to NTSC for this core's purposes; PAL
	// and Dendy are kept as decoded.
	if h.Timing == TimingMultiRegion {
		h.Timing = TimingNTSC
	}

	prgSize, err := nes2RomSize(raw[4], flags9&0x0F, 16384)
	if err != nil {
		return Header{Kind: KindUnsupported}, errors.Wrap(err, "rom: PRG-ROM size")
	}
	h.PRGROMSize = prgSize

	chrSize, err := nes2RomSize(raw[5], flags9>>4, 8192)
	if err != nil {
		return Header{Kind: KindUnsupported}, errors.Wrap(err, "rom: CHR-ROM size")
	}
	h.CHRROMSize = chrSize

	h.PRGRAMSize = nes2ShiftSize(flags10 & 0x0F)
	h.PRGNVRAMSize = nes2ShiftSize(flags10 >> 4)
	h.CHRRAMSize = nes2ShiftSize(flags11 & 0x0F)
	h.CHRNVRAMSize = nes2ShiftSize(flags11 >> 4)

	return h, nil
}

// nes2RomSize implements the NES 2.0 PRG/CHR size field: a plain multiplier
// by default, or an exponent-mantissa form when the high nibble of the
// size-high byte is all-ones. The exponent form is explicitly unsupported
// by this core (§4.A: "return 0 = unsupported").
func nes2RomSize(low byte, high4 byte, unit int) (int, error) {
	if high4 == 0x0F {
		return 0, errors.New("exponent-form ROM size is unsupported")
	}
	return (int(high4)<<8 | int(low)) * unit, nil
}

// nes2ShiftSize implements the NES 2.0 logarithmic (non-)volatile RAM size
// field: 0 means absent, otherwise 64 << shift bytes.
func nes2ShiftSize(shift byte) int {
	if shift == 0 {
		return 0
	}
	return 64 << shift
}
