package ppu

import "testing"

// fakeMapper is a trivial CHR-RAM-backed stand-in satisfying mapper.Mapper
// for PPU-side tests that don't need NROM's PRG-side behavior.
type fakeMapper struct {
	chr [8192]byte
}

func (m *fakeMapper) CPURead(addr uint16) uint8         { return 0 }
func (m *fakeMapper) CPUWrite(addr uint16, data uint8)  {}
func (m *fakeMapper) PPURead(addr uint16) uint8         { return m.chr[addr%8192] }
func (m *fakeMapper) PPUWrite(addr uint16, data uint8)  { m.chr[addr%8192] = data }
func (m *fakeMapper) MirrorAddr(addr uint16) uint16     { return addr & 0x07FF }
func (m *fakeMapper) IRQPending() bool                  { return false }
func (m *fakeMapper) OnTick()                           {}

func newTestPPU() *PPU {
	p := New()
	p.ConnectMapper(&fakeMapper{})
	return p
}

// fourScreenMapper mirrors addresses the way mapper.MirrorFourScreen does:
// unmasked, so the full 4 KiB nametable offset is significant.
type fourScreenMapper struct {
	fakeMapper
}

func (m *fourScreenMapper) MirrorAddr(addr uint16) uint16 { return addr & 0x0FFF }

func TestFourScreenNametableDoesNotAliasUpperHalf(t *testing.T) {
	p := New()
	p.ConnectMapper(&fourScreenMapper{})

	p.busWrite(0x2000, 0x11) // low half, offset 0x000
	p.busWrite(0x2800, 0x22) // high half, offset 0x800 -- only reachable in FourScreen's 4KiB space

	if got := p.busRead(0x2000); got != 0x11 {
		t.Errorf("read $2000 = %#x, want 0x11", got)
	}
	if got := p.busRead(0x2800); got != 0x22 {
		t.Errorf("read $2800 = %#x, want 0x22 (must not alias onto $2000's 0x11)", got)
	}
}

func TestPaletteAliasing(t *testing.T) {
	p := newTestPPU()
	pairs := [][2]uint16{{0x3F10, 0x3F00}, {0x3F14, 0x3F04}, {0x3F18, 0x3F08}, {0x3F1C, 0x3F0C}}
	for _, pr := range pairs {
		p.busWrite(pr[1], 0x15)
		if got := p.busRead(pr[0]); got != 0x15 {
			t.Errorf("read %#x after writing %#x = %#x, want 0x15", pr[0], pr[1], got)
		}
	}
}

func TestScrollWriteTwoStage(t *testing.T) {
	p := newTestPPU()
	p.RegWrite(5, 0x7D) // first write: coarseX=15, fineX=5
	if !p.w {
		t.Fatalf("w should be true after first $2005 write")
	}
	if p.t.coarseX() != 15 || p.x != 5 {
		t.Errorf("coarseX=%d x=%d, want 15,5", p.t.coarseX(), p.x)
	}
	p.RegWrite(5, 0x5E) // second write: coarseY=11, fineY=6
	if p.w {
		t.Fatalf("w should be false after second $2005 write")
	}
	if p.t.coarseY() != 11 || p.t.fineY() != 6 {
		t.Errorf("coarseY=%d fineY=%d, want 11,6", p.t.coarseY(), p.t.fineY())
	}
}

func TestAddrWriteLatchesV(t *testing.T) {
	p := newTestPPU()
	p.RegWrite(6, 0x20)
	p.RegWrite(6, 0x00)
	if p.v != 0x2000 {
		t.Fatalf("v = %#x, want $2000", uint16(p.v))
	}
	if p.w {
		t.Fatalf("w should be false after second $2006 write")
	}
}

func TestPPUDATABufferedRead(t *testing.T) {
	p := newTestPPU()
	p.RegWrite(6, 0x20)
	p.RegWrite(6, 0x00)
	p.RegWrite(7, 0xAB) // VRAM[$2000] = $AB, v -> $2001

	p.RegWrite(6, 0x20)
	p.RegWrite(6, 0x00)

	first := p.RegRead(7)
	second := p.RegRead(7)
	if second != 0xAB {
		t.Fatalf("second PPUDATA read = %#x, want 0xAB", second)
	}
	if first == 0xAB {
		t.Fatalf("first PPUDATA read should return the stale buffer, not the fresh byte")
	}
}

func TestPPUDATAIncrementMode(t *testing.T) {
	p := newTestPPU()
	p.RegWrite(0, 0x04) // increment mode = 32
	p.RegWrite(6, 0x20)
	p.RegWrite(6, 0x00)
	p.RegWrite(7, 0x01)
	if p.v != 0x2020 {
		t.Fatalf("v = %#x, want $2020 after +32 increment", uint16(p.v))
	}
}

func TestStatusReadClearsVBlankAndToggle(t *testing.T) {
	p := newTestPPU()
	p.status |= statusVBlank
	p.w = true
	val := p.RegRead(2)
	if val&statusVBlank == 0 {
		t.Fatalf("expected VBlank bit set in read value")
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("VBlank bit should clear after the read")
	}
	if p.w {
		t.Fatalf("write toggle should clear after reading $2002")
	}
}

func TestSprite0Hit(t *testing.T) {
	p := newTestPPU()
	p.RegWrite(1, 0x18) // show background + sprites

	// Tile 0's low pattern plane is all-ones on every row so the test
	// doesn't need to track exact fine-Y/scroll pipeline latency; the high
	// plane stays zero, giving a steady nonzero (palette index 1) pixel.
	for row := uint16(0); row < 8; row++ {
		p.mp.PPUWrite(row, 0xFF)
	}
	// OAM sprite 0 at (x=16, y=16) using tile 0 (CHR-RAM shared; bit7 also set)
	p.oam[0] = 16 // y
	p.oam[1] = 0  // tile
	p.oam[2] = 0  // attr: front priority, palette 0
	p.oam[3] = 16 // x

	// Drive the PPU from scanline 16 (evaluates for scanline 17) through
	// scanline 17 dot 24, where the spec's worked example expects the hit.
	p.scanline, p.dot = 16, 0
	for !(p.scanline == 17 && p.dot == 25) {
		p.Tick()
	}
	if p.status&statusSprite0Hit == 0 {
		t.Fatalf("expected sprite-0 hit to be set by scanline 17 dot 24")
	}
}
