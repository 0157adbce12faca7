// Package ppu implements the dot-accurate picture processing unit: the
// 341x262 scanline/dot engine, loopy scroll registers, background and
// sprite pipelines, sprite-0 hit, and the CPU-visible $2000-$2007 register
// interface. Pattern tables and nametable mirroring are delegated to the
// attached mapper; the PPU itself owns nametable VRAM, palette RAM, and OAM.
package ppu

import "github.com/antonegas/nes/mapper"

// Framebuffer is the host sink for decoded pixels. Put is called once per
// visible dot; Swap is called once per frame at the VBlank transition. The
// core never assumes a concrete pixel type or does any file/window I/O, so
// this interface is intentionally minimal (§1: host rendering is out of
// scope for the core).
type Framebuffer interface {
	Put(x, y int, r, g, b uint8)
	Swap()
}

type spriteSlot struct {
	lo, hi  uint8
	attr    uint8
	xCount  uint8
	isZero  bool
}

// PPU is one NES picture processing unit.
type PPU struct {
	mp  mapper.Mapper
	pal *Palette
	fb  Framebuffer

	// vram backs the PPU's own nametable RAM. 4 KiB, not the usual 2 KiB:
	// every mirroring mode except FourScreen only ever indexes the low
	// 2 KiB half (mapper.MirrorAddr caps its result at 0x07FF for them),
	// but FourScreen needs the full 4 KiB per spec §4.B.
	vram    [4096]byte
	paletteRAM [32]byte
	oam     [256]byte

	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	v, t loopyAddr
	x    uint8
	w    bool

	readBuffer uint8
	lastWrite  uint8

	bgShiftLo, bgShiftHi     uint16
	attrShiftLo, attrShiftHi uint16
	ntLatch, atLatch         uint8
	bgLoLatch, bgHiLatch     uint8

	secondaryOAM  [32]byte
	secondaryN    int
	spriteZeroSecondary bool
	sprites       [8]spriteSlot
	spriteCount   int

	scanline int
	dot      int
	odd      bool

	nmi bool
}

// New constructs a PPU with an all-black placeholder palette; call
// LoadPalette before the first frame for real colors.
func New() *PPU {
	p := &PPU{pal: NewPalette()}
	p.Reset()
	return p
}

// ConnectMapper attaches the cartridge mapper that backs pattern tables
// and nametable mirroring decisions.
func (p *PPU) ConnectMapper(m mapper.Mapper) { p.mp = m }

// ConnectFramebuffer attaches the host pixel sink.
func (p *PPU) ConnectFramebuffer(fb Framebuffer) { p.fb = fb }

// LoadPalette decodes and installs a 192- or 1536-byte NES palette file.
func (p *PPU) LoadPalette(raw []byte) error { return p.pal.Load(raw) }

// Reset restores power-on register state. VRAM, palette RAM, and OAM are
// left as-is: real hardware leaves them in indeterminate contents, and
// nothing in this core depends on their reset value.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer, p.lastWrite = 0, 0
	p.scanline, p.dot, p.odd = 0, 0, false
	p.nmi = false
}

// NMIPending reports whether the PPU has an NMI request the bus has not
// yet acknowledged.
func (p *PPU) NMIPending() bool { return p.nmi }

// AckNMI clears a pending NMI request once the bus has latched it.
func (p *PPU) AckNMI() { p.nmi = false }

// DMAWrite is the OAM DMA engine's write path: it writes through the
// current OAMADDR and post-increments it, like a CPU write to $2004,
// since that is the register OAM DMA is wired through on real hardware.
// Unlike writeOAMData it is never suppressed while rendering is active.
func (p *PPU) DMAWrite(data uint8) {
	p.oam[p.oamAddr] = data
	p.oamAddr++
}

// --- CPU-visible register interface ($2000-$2007, reg already mod 8) ---

// RegRead services a CPU read of PPUCTRL..PPUDATA (reg in [0,7]).
func (p *PPU) RegRead(reg uint8) uint8 {
	switch reg & 7 {
	case 2:
		return p.readStatus()
	case 4:
		return p.readOAMData()
	case 7:
		return p.readData()
	default:
		// Write-only registers return open-bus: the last value written
		// to any PPU register, per spec §4.E's stale-bus-bits note.
		return p.lastWrite
	}
}

// RegWrite services a CPU write of PPUCTRL..PPUDATA (reg in [0,7]).
func (p *PPU) RegWrite(reg uint8, data uint8) {
	p.lastWrite = data
	switch reg & 7 {
	case 0:
		p.writeCtrl(data)
	case 1:
		p.mask = data
		r, g, b := p.maskEmphasis()
		p.pal.SetEmphasis(r, g, b)
	case 2:
		// PPUSTATUS is read-only.
	case 3:
		p.oamAddr = data
	case 4:
		p.writeOAMData(data)
	case 5:
		p.writeScroll(data)
	case 6:
		p.writeAddr(data)
	case 7:
		p.writeData(data)
	}
}

func (p *PPU) writeCtrl(data uint8) {
	wasNMI := p.ctrlNMIEnable()
	p.ctrl = data
	p.t.setNametable(uint16(data) & 0x03)
	if !wasNMI && p.ctrlNMIEnable() && p.status&statusVBlank != 0 {
		p.nmi = true
	}
}

func (p *PPU) readStatus() uint8 {
	val := (p.status &^ 0x1F) | (p.lastWrite & 0x1F)
	p.status &^= statusVBlank
	p.w = false
	return val
}

func (p *PPU) readOAMData() uint8 {
	if p.scanline >= 0 && p.scanline < 240 && p.dot >= 1 && p.dot <= 64 {
		return 0xFF
	}
	return p.oam[p.oamAddr]
}

func (p *PPU) writeOAMData(data uint8) {
	if p.renderingEnabled() && (p.scanline < 240 || p.scanline == 261) {
		return
	}
	p.oam[p.oamAddr] = data
	p.oamAddr++
}

func (p *PPU) writeScroll(data uint8) {
	if !p.w {
		p.t.setCoarseX(uint16(data) >> 3)
		p.x = data & 0x07
		p.w = true
	} else {
		p.t.setCoarseY(uint16(data) >> 3)
		p.t.setFineY(uint16(data) & 0x07)
		p.w = false
	}
}

func (p *PPU) writeAddr(data uint8) {
	if !p.w {
		p.t.setHigh(data & 0x3F)
		p.w = true
	} else {
		p.t.setLow(data)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) readData() uint8 {
	addr := uint16(p.v) & 0x3FFF
	var result uint8
	if addr >= 0x3F00 {
		result = p.busRead(addr)
		p.readBuffer = p.busRead(addr - 0x1000)
	} else {
		result = p.readBuffer
		p.readBuffer = p.busRead(addr)
	}
	p.v = loopyAddr(uint16(p.v) + p.ctrlIncrement())
	return result
}

func (p *PPU) writeData(data uint8) {
	p.busWrite(uint16(p.v)&0x3FFF, data)
	p.v = loopyAddr(uint16(p.v) + p.ctrlIncrement())
}

// --- PPU-internal memory map ($0000-$3FFF) ---

func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.mp == nil {
			return 0
		}
		return p.mp.PPURead(addr)
	case addr < 0x3F00:
		return p.vram[p.nametableIndex(addr)]
	default:
		return p.readPaletteByte(addr)
	}
}

func (p *PPU) busWrite(addr uint16, data uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.mp != nil {
			p.mp.PPUWrite(addr, data)
		}
	case addr < 0x3F00:
		p.vram[p.nametableIndex(addr)] = data
	default:
		p.paletteRAM[paletteIndex(addr)] = data
	}
}

// nametableIndex resolves a $2000-$2FFF PPU-bus address to a vram index.
// mapper.MirrorAddr already returns a value that fits the active mode's
// backing size (0x07FF for every mode but FourScreen, 0x0FFF for
// FourScreen), so this must not re-mask down to 2 KiB: that was exactly
// the bug that aliased the upper half of four-screen nametable space onto
// the lower half.
func (p *PPU) nametableIndex(addr uint16) uint16 {
	off := (addr - 0x2000) & 0x0FFF
	if p.mp == nil {
		return off & 0x07FF
	}
	return p.mp.MirrorAddr(off)
}

// paletteIndex applies the four-byte sprite-palette-to-background-palette
// aliasing rule: $3F10/$14/$18/$1C alias $3F00/$04/$08/$0C.
func paletteIndex(addr uint16) uint16 {
	a := addr & 0x1F
	if a&0x10 != 0 && a&0x03 == 0 {
		a &^= 0x10
	}
	return a
}

func (p *PPU) readPaletteByte(addr uint16) uint8 { return p.paletteRAM[paletteIndex(addr)] }

func reverseBits(v uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= v & 1
		v >>= 1
	}
	return r
}
