package ppu

// loopyAddr is the 15-bit packed PPU VRAM address/scroll register described
// in spec as fineY(3)|nt(2)|coarseY(5)|coarseX(5). It is kept as an opaque
// value with bit accessors rather than a bitfield struct: correctness here
// depends on the bit positions below, not on any particular memory layout.
type loopyAddr uint16

func (l loopyAddr) coarseX() uint16   { return uint16(l) & 0x001F }
func (l loopyAddr) coarseY() uint16   { return (uint16(l) >> 5) & 0x001F }
func (l loopyAddr) nametable() uint16 { return (uint16(l) >> 10) & 0x0003 }
func (l loopyAddr) fineY() uint16     { return (uint16(l) >> 12) & 0x0007 }

func (l *loopyAddr) setCoarseX(v uint16)   { *l = loopyAddr((uint16(*l) &^ 0x001F) | (v & 0x001F)) }
func (l *loopyAddr) setCoarseY(v uint16)   { *l = loopyAddr((uint16(*l) &^ 0x03E0) | ((v & 0x001F) << 5)) }
func (l *loopyAddr) setNametable(v uint16) { *l = loopyAddr((uint16(*l) &^ 0x0C00) | ((v & 0x0003) << 10)) }
func (l *loopyAddr) setFineY(v uint16)     { *l = loopyAddr((uint16(*l) &^ 0x7000) | ((v & 0x0007) << 12)) }
func (l *loopyAddr) setHigh(v uint8)       { *l = loopyAddr((uint16(*l) & 0x00FF) | ((uint16(v) & 0x3F) << 8)) }
func (l *loopyAddr) setLow(v uint8)        { *l = loopyAddr((uint16(*l) & 0xFF00) | uint16(v)) }

// incCoarseX wraps coarse X at 32 tiles, flipping the horizontal nametable
// bit when it does.
func (l *loopyAddr) incCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		*l ^= 0x0400
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

// incFineYAndCoarseY is the once-per-scanline vertical increment run at dot
// 256: fine Y rolls into coarse Y, which wraps at 30 (flipping the vertical
// nametable bit); from the out-of-range value 31 (where some programs park
// the scroll to read attribute data early) it wraps to 0 without flipping.
func (l *loopyAddr) incFineYAndCoarseY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		*l ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

func (l *loopyAddr) copyHorizontal(t loopyAddr) {
	*l = loopyAddr((uint16(*l) &^ 0x041F) | (uint16(t) & 0x041F))
}

func (l *loopyAddr) copyVertical(t loopyAddr) {
	*l = loopyAddr((uint16(*l) &^ 0x7BE0) | (uint16(t) & 0x7BE0))
}

// PPUSTATUS bit positions.
const (
	statusOverflow   = 1 << 5
	statusSprite0Hit = 1 << 6
	statusVBlank     = 1 << 7
)

func (p *PPU) ctrlNametable() uint16 { return uint16(p.ctrl) & 0x03 }

func (p *PPU) ctrlIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) ctrlSpriteTable() uint16 {
	if p.ctrl&0x08 != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) ctrlBackgroundTable() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) ctrlSpriteSize() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) ctrlNMIEnable() bool { return p.ctrl&0x80 != 0 }

func (p *PPU) maskGrayscale() bool           { return p.mask&0x01 != 0 }
func (p *PPU) maskShowBackgroundLeft() bool  { return p.mask&0x02 != 0 }
func (p *PPU) maskShowSpritesLeft() bool     { return p.mask&0x04 != 0 }
func (p *PPU) maskShowBackground() bool      { return p.mask&0x08 != 0 }
func (p *PPU) maskShowSprites() bool         { return p.mask&0x10 != 0 }

func (p *PPU) maskEmphasis() (r, g, b bool) {
	return p.mask&0x20 != 0, p.mask&0x40 != 0, p.mask&0x80 != 0
}

func (p *PPU) renderingEnabled() bool {
	return p.maskShowBackground() || p.maskShowSprites()
}
