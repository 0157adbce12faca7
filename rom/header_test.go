package rom

import "testing"

func mkHeader(mods func(b *[16]byte)) [16]byte {
	var b [16]byte
	b[0], b[1], b[2], b[3] = 'N', 'E', 'S', 0x1A
	if mods != nil {
		mods(&b)
	}
	return b
}

func TestDecodeBadMagic(t *testing.T) {
	var b [16]byte
	h, err := Decode(b)
	if err == nil {
		t.Fatalf("expected error for bad magic")
	}
	if h.Kind != KindUnsupported {
		t.Fatalf("expected KindUnsupported, got %v", h.Kind)
	}
}

func TestDecodeINESSizesAndMirroring(t *testing.T) {
	b := mkHeader(func(b *[16]byte) {
		b[4] = 2 // 32 KiB PRG
		b[5] = 1 // 8 KiB CHR
		b[6] = 0x01 | 0x10 // vertical mirroring, mapper low nibble 1
		b[7] = 0x20 // mapper high nibble 2 -> mapper 0x21
	})
	h, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Kind != KindINES {
		t.Fatalf("expected KindINES, got %v", h.Kind)
	}
	if h.PRGROMSize != 2*16384 {
		t.Errorf("PRGROMSize = %d, want %d", h.PRGROMSize, 2*16384)
	}
	if h.CHRROMSize != 1*8192 {
		t.Errorf("CHRROMSize = %d, want %d", h.CHRROMSize, 8192)
	}
	if h.Mirroring != MirrorVertical {
		t.Errorf("Mirroring = %v, want Vertical", h.Mirroring)
	}
	if h.Mapper != 0x21 {
		t.Errorf("Mapper = %#x, want 0x21", h.Mapper)
	}
	if h.PRGRAMSize != 0 {
		t.Errorf("PRGRAMSize = %d, want 0 (iNES carries no RAM-size field)", h.PRGRAMSize)
	}
	if h.CHRRAMSize != 0 {
		t.Errorf("CHRRAMSize = %d, want 0 (iNES carries no RAM-size field)", h.CHRRAMSize)
	}
}

func TestDecodeINESRAMSizesAlwaysZero(t *testing.T) {
	b := mkHeader(func(b *[16]byte) {
		b[5] = 0    // no CHR-ROM, so a de-facto convention might be tempted to assume CHR-RAM size
		b[8] = 0x04 // a raw byte 8 value an archaic "PRG-RAM units" convention would read as nonzero
	})
	h, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.PRGRAMSize != 0 || h.CHRRAMSize != 0 {
		t.Errorf("PRGRAMSize=%d CHRRAMSize=%d, want 0/0 regardless of byte 8 or CHR-ROM absence", h.PRGRAMSize, h.CHRRAMSize)
	}
}

func TestDecodeNES2Detection(t *testing.T) {
	b := mkHeader(func(b *[16]byte) {
		b[7] = 0x08 // NES2.0 signature bits
	})
	h, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Kind != KindNES2 {
		t.Fatalf("expected KindNES2, got %v", h.Kind)
	}
}

func TestDecodeNES2ExponentFormUnsupported(t *testing.T) {
	b := mkHeader(func(b *[16]byte) {
		b[7] = 0x08
		b[9] = 0x0F // PRG high nibble exponent marker
	})
	h, err := Decode(b)
	if err == nil {
		t.Fatalf("expected error for exponent-form size")
	}
	if h.Kind != KindUnsupported {
		t.Fatalf("expected KindUnsupported, got %v", h.Kind)
	}
	if h.PRGROMSize != 0 {
		t.Errorf("PRGROMSize = %d, want 0 on unsupported header", h.PRGROMSize)
	}
}

func TestDecodeNES2RAMShiftSizes(t *testing.T) {
	b := mkHeader(func(b *[16]byte) {
		b[7] = 0x08
		b[10] = 0x21 // PRG-RAM shift=1 (64<<1=128), PRG-NVRAM shift=2 (64<<2=256)
	})
	h, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.PRGRAMSize != 128 {
		t.Errorf("PRGRAMSize = %d, want 128", h.PRGRAMSize)
	}
	if h.PRGNVRAMSize != 256 {
		t.Errorf("PRGNVRAMSize = %d, want 256", h.PRGNVRAMSize)
	}
}

func TestDecodeFourScreenMirroringWins(t *testing.T) {
	b := mkHeader(func(b *[16]byte) {
		b[6] = 0x09 // vertical bit set AND four-screen bit set
	})
	h, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Mirroring != MirrorFourScreen {
		t.Errorf("Mirroring = %v, want FourScreen", h.Mirroring)
	}
}
