package ppu

// Tick advances the PPU by one dot, running the background fetch
// pipeline, sprite evaluation/fetch, pixel mux, and VBlank/NMI signalling
// described in spec §4.E.
func (p *PPU) Tick() {
	visible := p.scanline >= 0 && p.scanline < 240
	preRender := p.scanline == 261
	rendering := p.renderingEnabled()

	if rendering {
		bgWindow := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)
		if (visible || preRender) && bgWindow {
			p.shiftBackground()
			switch p.dot % 8 {
			case 1:
				p.ntLatch = p.busRead(0x2000 | (uint16(p.v) & 0x0FFF))
			case 3:
				addr := 0x23C0 | (uint16(p.v) & 0x0C00) |
					((p.v.coarseY() >> 2) << 3) | (p.v.coarseX() >> 2)
				b := p.busRead(addr)
				shift := uint8(0)
				if p.v.coarseY()&0x02 != 0 {
					shift += 4
				}
				if p.v.coarseX()&0x02 != 0 {
					shift += 2
				}
				p.atLatch = (b >> shift) & 0x03
			case 5:
				p.bgLoLatch = p.busRead(p.ctrlBackgroundTable() | (uint16(p.ntLatch) << 4) | p.v.fineY())
			case 7:
				p.bgHiLatch = p.busRead(p.ctrlBackgroundTable() | (uint16(p.ntLatch) << 4) | p.v.fineY() | 8)
			case 0:
				p.loadBackgroundShifters()
				p.v.incCoarseX()
			}
		}
		if (visible || preRender) && p.dot == 256 {
			p.v.incFineYAndCoarseY()
		}
		if (visible || preRender) && p.dot == 257 {
			p.v.copyHorizontal(p.t)
		}
		if preRender && p.dot >= 280 && p.dot <= 304 {
			p.v.copyVertical(p.t)
		}

		if visible {
			switch p.dot {
			case 1:
				p.clearSecondaryOAM()
			case 257:
				p.evaluateSprites()
			case 321:
				p.loadSpritePatterns()
			}
		}
	}

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel(p.dot-1, p.scanline)
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.fb != nil {
			p.fb.Swap()
		}
		if p.ctrlNMIEnable() {
			p.nmi = true
		}
	}
	if preRender && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusOverflow
	}

	p.advanceDot(rendering)
}

func (p *PPU) shiftBackground() {
	p.bgShiftLo <<= 1
	p.bgShiftHi <<= 1
	p.attrShiftLo <<= 1
	p.attrShiftHi <<= 1
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShiftLo = (p.bgShiftLo & 0xFF00) | uint16(p.bgLoLatch)
	p.bgShiftHi = (p.bgShiftHi & 0xFF00) | uint16(p.bgHiLatch)
	var loFill, hiFill uint16
	if p.atLatch&0x01 != 0 {
		loFill = 0xFF
	}
	if p.atLatch&0x02 != 0 {
		hiFill = 0xFF
	}
	p.attrShiftLo = (p.attrShiftLo & 0xFF00) | loFill
	p.attrShiftHi = (p.attrShiftHi & 0xFF00) | hiFill
}

func (p *PPU) advanceDot(rendering bool) {
	p.dot++
	if p.scanline == 261 && p.dot == 340 && p.odd && rendering {
		p.dot = 341
	}
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.odd = !p.odd
		}
	}
}

func (p *PPU) clearSecondaryOAM() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.secondaryN = 0
	p.spriteZeroSecondary = false
}

// evaluateSprites scans primary OAM for sprites intersecting the NEXT
// scanline, filling secondary OAM (up to 8 entries) and reproducing the
// hardware's buggy diagonal sprite-overflow walk once 8 are found.
func (p *PPU) evaluateSprites() {
	targetLine := p.scanline + 1
	height := p.ctrlSpriteSize()

	n, m := 0, 0
	for n < 64 {
		y := int(p.oam[n*4+m])
		inRange := targetLine >= y && targetLine < y+height
		if p.secondaryN < 8 {
			if inRange {
				copy(p.secondaryOAM[p.secondaryN*4:p.secondaryN*4+4], p.oam[n*4:n*4+4])
				if n == 0 {
					p.spriteZeroSecondary = true
				}
				p.secondaryN++
			}
			n++
			continue
		}
		if inRange {
			p.status |= statusOverflow
		}
		// The real PPU does not reset its secondary byte offset once the
		// eighth sprite is found, so the comparison on subsequent sprites
		// walks diagonally through y/tile/attr/x instead of staying on y.
		n++
		m++
		if m == 4 {
			m = 0
		}
	}
}

// loadSpritePatterns fetches pattern bytes for every sprite evaluated for
// the next scanline into the motion-picture buffer.
func (p *PPU) loadSpritePatterns() {
	p.spriteCount = p.secondaryN
	targetLine := p.scanline + 1
	for i := 0; i < 8; i++ {
		if i >= p.secondaryN {
			p.sprites[i] = spriteSlot{}
			continue
		}
		y := p.secondaryOAM[i*4+0]
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		addr := p.spritePatternAddr(tile, attr, y, targetLine)
		lo := uint8(0)
		hi := uint8(0)
		if p.mp != nil {
			lo = p.mp.PPURead(addr)
			hi = p.mp.PPURead(addr + 8)
		}
		if attr&0x40 != 0 {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.sprites[i] = spriteSlot{
			lo:     lo,
			hi:     hi,
			attr:   attr,
			xCount: x,
			isZero: i == 0 && p.spriteZeroSecondary,
		}
	}
}

func (p *PPU) spritePatternAddr(tile, attr, y uint8, line int) uint16 {
	flipV := attr&0x80 != 0
	if p.ctrlSpriteSize() == 16 {
		yInTile := line - int(y)
		if flipV {
			yInTile = 15 - yInTile
		}
		half := 0
		if yInTile >= 8 {
			half = 1
			yInTile -= 8
		}
		return (uint16(tile&0x01) << 12) | (uint16(tile&0xFE) << 4) | uint16(half<<4) | uint16(yInTile)
	}
	yInTile := line - int(y)
	if flipV {
		yInTile = 7 - yInTile
	}
	return p.ctrlSpriteTable() | (uint16(tile) << 4) | uint16(yInTile)
}

// renderPixel composes and outputs the background/sprite-muxed color for
// one visible dot, updating sprite-0 hit as a side effect.
func (p *PPU) renderPixel(x, y int) {
	if !p.renderingEnabled() {
		idx := uint8(0)
		if uint16(p.v)&0x3FFF >= 0x3F00 {
			idx = p.readPaletteByte(uint16(p.v))
		}
		p.putPixel(x, y, idx)
		return
	}

	bg2 := uint8(0)
	bgPalette := uint8(0)
	if p.maskShowBackground() {
		bit := uint(15 - p.x)
		lo := (p.bgShiftLo >> bit) & 1
		hi := (p.bgShiftHi >> bit) & 1
		bg2 = uint8(lo | hi<<1)
		aLo := (p.attrShiftLo >> bit) & 1
		aHi := (p.attrShiftHi >> bit) & 1
		bgPalette = uint8(aLo | aHi<<1)
	}

	sp2 := uint8(0)
	spPalette := uint8(0)
	spFront := false
	spIsZero := false
	if p.maskShowSprites() {
		// The per-dot shift/countdown always runs so slot timing stays
		// correct across the left-edge masking window; only the pixel's
		// visible contribution is suppressed below.
		found := false
		for i := 0; i < p.spriteCount; i++ {
			s := &p.sprites[i]
			if s.xCount > 0 {
				s.xCount--
				continue
			}
			bit0 := (s.lo >> 7) & 1
			bit1 := (s.hi >> 7) & 1
			px := bit0 | bit1<<1
			s.lo <<= 1
			s.hi <<= 1
			if !found && px != 0 {
				found = true
				sp2 = px
				spPalette = s.attr & 0x03
				spFront = s.attr&0x20 == 0
				spIsZero = s.isZero
			}
		}
	}

	if x < 8 && !p.maskShowBackgroundLeft() {
		bg2 = 0
	}
	if x < 8 && !p.maskShowSpritesLeft() {
		sp2 = 0
	}

	leftMasked := x < 8 && (!p.maskShowBackgroundLeft() || !p.maskShowSpritesLeft())
	if bg2 != 0 && sp2 != 0 && spIsZero && x != 255 && !leftMasked {
		p.status |= statusSprite0Hit
	}

	var idx uint8
	switch {
	case bg2 == 0 && sp2 == 0:
		idx = 0
	case bg2 == 0:
		idx = 0x10 + spPalette*4 + sp2
	case sp2 == 0:
		idx = bgPalette*4 + bg2
	case spFront:
		idx = 0x10 + spPalette*4 + sp2
	default:
		idx = bgPalette*4 + bg2
	}
	p.putPixel(x, y, idx)
}

func (p *PPU) putPixel(x, y int, paletteIdx uint8) {
	val := p.readPaletteByte(0x3F00 + uint16(paletteIdx))
	if p.maskGrayscale() {
		val &= 0x30
	}
	if p.fb == nil {
		return
	}
	r, g, b := p.pal.RGB(val)
	p.fb.Put(x, y, r, g, b)
}
