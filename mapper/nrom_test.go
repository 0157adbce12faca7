package mapper

import "testing"

func TestNROMPRGMirroring16K(t *testing.T) {
	prg := make([]byte, 16384)
	prg[0] = 0xAA
	prg[16383] = 0xBB
	m := NewNROM(MirrorVertical, prg, nil, true, 0)

	if got := m.CPURead(0x8000); got != 0xAA {
		t.Errorf("CPURead($8000) = %#x, want 0xAA", got)
	}
	if got := m.CPURead(0xC000); got != 0xAA {
		t.Errorf("CPURead($C000) = %#x, want mirrored 0xAA", got)
	}
	if got := m.CPURead(0xFFFF); got != 0xBB {
		t.Errorf("CPURead($FFFF) = %#x, want 0xBB", got)
	}
}

func TestNROMPRGRAM(t *testing.T) {
	m := NewNROM(MirrorHorizontal, make([]byte, 32768), nil, true, 8192)
	m.CPUWrite(0x6000, 0x42)
	if got := m.CPURead(0x6000); got != 0x42 {
		t.Errorf("CPURead($6000) = %#x, want 0x42", got)
	}
	if got := m.CPURead(0x7FFF); got != 0 {
		t.Errorf("CPURead($7FFF) = %#x, want 0", got)
	}
}

func TestNROMCHRRAMWritable(t *testing.T) {
	chr := make([]byte, 8192)
	m := NewNROM(MirrorHorizontal, make([]byte, 16384), chr, true, 0)
	m.PPUWrite(0x0010, 0x77)
	if got := m.PPURead(0x0010); got != 0x77 {
		t.Errorf("PPURead($0010) = %#x, want 0x77", got)
	}
}

func TestNROMCHRROMIgnoresWrites(t *testing.T) {
	chr := make([]byte, 8192)
	chr[5] = 0x11
	m := NewNROM(MirrorHorizontal, make([]byte, 16384), chr, false, 0)
	m.PPUWrite(0x0005, 0x99)
	if got := m.PPURead(0x0005); got != 0x11 {
		t.Errorf("CHR-ROM write should be ignored, got %#x", got)
	}
}

func TestMirrorAddrVertical(t *testing.T) {
	for _, addr := range []uint16{0x0000, 0x0400, 0x0800, 0x0C00} {
		a := MirrorAddr(MirrorVertical, addr)
		b := MirrorAddr(MirrorVertical, addr+0x0800)
		if a != b {
			t.Errorf("vertical mirroring: addr %#x and %#x should alias, got %#x vs %#x", addr, addr+0x0800, a, b)
		}
	}
}

func TestMirrorAddrHorizontal(t *testing.T) {
	a := MirrorAddr(MirrorHorizontal, 0x0000)
	b := MirrorAddr(MirrorHorizontal, 0x0400)
	if a != b {
		t.Errorf("horizontal mirroring: $2000 and $2400 should alias, got %#x vs %#x", a, b)
	}
	c := MirrorAddr(MirrorHorizontal, 0x0800)
	d := MirrorAddr(MirrorHorizontal, 0x0C00)
	if c != d {
		t.Errorf("horizontal mirroring: $2800 and $2C00 should alias, got %#x vs %#x", c, d)
	}
}

func TestNewUnsupportedMapper(t *testing.T) {
	_, err := New(4, MirrorHorizontal, nil, nil, false, 0)
	if err == nil {
		t.Fatalf("expected error for unsupported mapper number")
	}
}
