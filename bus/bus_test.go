package bus

import (
	"testing"

	"github.com/antonegas/nes/controller"
)

type fakeMapper struct {
	prg [0x8000]byte
	chr [0x2000]byte
}

func (m *fakeMapper) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	return m.prg[addr-0x8000]
}
func (m *fakeMapper) CPUWrite(addr uint16, data uint8) {}
func (m *fakeMapper) PPURead(addr uint16) uint8         { return m.chr[addr%0x2000] }
func (m *fakeMapper) PPUWrite(addr uint16, data uint8)  { m.chr[addr%0x2000] = data }
func (m *fakeMapper) MirrorAddr(addr uint16) uint16     { return addr & 0x07FF }
func (m *fakeMapper) IRQPending() bool                  { return false }
func (m *fakeMapper) OnTick()                           {}

func newTestBus() (*Bus, *fakeMapper) {
	b := New(NTSC)
	m := &fakeMapper{}
	b.ConnectMapper(m)
	b.Reset()
	return b, m
}

func TestRAMMirroring(t *testing.T) {
	b, _ := newTestBus()
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Errorf("Read($0800) = %#x, want mirrored 0x42", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Errorf("Read($1800) = %#x, want mirrored 0x42", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b, _ := newTestBus()
	b.Write(0x2000, 0x80) // PPUCTRL via $2000
	b.Write(0x2008, 0x00) // same register via its $2008 mirror
	// Smoke test only: checks that a write through the $2008 mirror and a
	// PPUSTATUS read do not panic; it does not check which register the
	// mirrored write reached.
	_ = b.Read(0x2002)
}

func TestControllerStrobeRoutesToBothPads(t *testing.T) {
	b, _ := newTestBus()
	pad0, pad1 := &controller.Standard{}, &controller.Standard{}
	b.ConnectController(0, pad0)
	b.ConnectController(1, pad1)
	pad0.SetButton(controller.A, true)
	pad1.SetButton(controller.A, true)
	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)
	if got := b.Read(0x4016); got != 1 {
		t.Errorf("controller 0 first read = %d, want 1 (A pressed)", got)
	}
	if got := b.Read(0x4017); got != 1 {
		t.Errorf("controller 1 first read = %d, want 1 (A pressed)", got)
	}
}

func TestUnconnectedControllerReadsZero(t *testing.T) {
	b, _ := newTestBus()
	if got := b.Read(0x4016); got != 0 {
		t.Errorf("Read($4016) with no controller connected = %d, want 0", got)
	}
	if got := b.Read(0x4017); got != 0 {
		t.Errorf("Read($4017) with no controller connected = %d, want 0", got)
	}
}

func TestMapperCPURoundTrip(t *testing.T) {
	b, m := newTestBus()
	m.prg[0] = 0xAB
	if got := b.Read(0x8000); got != 0xAB {
		t.Errorf("Read($8000) = %#x, want 0xAB", got)
	}
}

func TestOAMDMATakes513Or514Cycles(t *testing.T) {
	b, _ := newTestBus()
	// Force an aligned (even) start.
	b.cpuCycles = 0
	startCPUCycles := b.cpuCycles
	b.Write(0x4014, 0x02) // page $02
	if !b.cpu.Suspended() {
		t.Fatalf("CPU should be suspended once DMA starts")
	}
	masterTicks := 0
	for b.dma.active {
		b.Tick()
		masterTicks++
		if masterTicks > 20000 {
			t.Fatalf("DMA never completed")
		}
	}
	if b.cpu.Suspended() {
		t.Fatalf("CPU should resume once DMA completes")
	}
	// tickCPU (and with it b.cpuCycles) only advances once every CPUDiv
	// master ticks, so the delta in b.cpuCycles across the loop is the
	// actual CPU-cycle cost of the DMA, independent of PPU-side phasing.
	cpuCycles := b.cpuCycles - startCPUCycles
	if cpuCycles != 513 && cpuCycles != 514 {
		t.Fatalf("OAM DMA took %d CPU cycles, want 513 or 514", cpuCycles)
	}
}

func TestOAMDMACopiesFullPage(t *testing.T) {
	b, _ := newTestBus()
	for i := 0; i < 256; i++ {
		b.ram.write(uint16(i), uint8(i))
	}
	b.Write(0x4014, 0x00) // RAM page 0
	for b.dma.active {
		b.Tick()
	}
	for i := 0; i < 256; i++ {
		b.ppu.RegWrite(3, uint8(i)) // OAMADDR = i
		if got := b.ppu.RegRead(4); got != uint8(i) {
			t.Fatalf("OAM[%d] = %#x, want %#x", i, got, uint8(i))
		}
	}
}

