// Package bus implements the memory-mapped address-decode fabric tying
// the CPU, PPU, APU, controllers, and cartridge mapper together: the
// CPU-side read/write dispatch table, the OAM DMA state machine, and the
// tick-phased master clock loop that drives the CPU and PPU at their
// NTSC/PAL/Dendy clock ratio.
package bus

import (
	"github.com/antonegas/nes/apu"
	"github.com/antonegas/nes/controller"
	"github.com/antonegas/nes/cpu"
	"github.com/antonegas/nes/mapper"
	"github.com/antonegas/nes/ppu"
)

// Bus owns every component that shares the address space and drives
// them from one master-clock tick loop.
type Bus struct {
	ram ram

	cpu *cpu.CPU
	ppu *ppu.PPU
	apu *apu.APU
	mp  mapper.Mapper

	controllers [2]*controller.Standard

	region Region
	cycle  int // position within one cpuDiv*ppuDiv master-clock period

	cpuCycles int // running CPU-clock parity counter, used by DMA alignment
	dma       dmaState

	lastNs  int64
	nsAccum float64
}

// New constructs a bus configured for the given console timing region.
// Call ConnectMapper before Reset. Controllers are not constructed here:
// per §5 they are supplied by the host and merely weak-referenced by the
// bus, so a slot reads as 0 until ConnectController is called.
func New(region Region) *Bus {
	b := &Bus{region: region}
	b.ppu = ppu.New()
	b.apu = apu.New()
	b.cpu = cpu.New(b)
	return b
}

// CPU, PPU, and APU expose the owned components for host wiring
// (connecting a framebuffer, reading debug state, and so on).
func (b *Bus) CPU() *cpu.CPU { return b.cpu }
func (b *Bus) PPU() *ppu.PPU { return b.ppu }
func (b *Bus) APU() *apu.APU { return b.apu }

// ConnectController attaches a host-owned controller device to slot 0 or
// 1. The bus only holds a weak reference; the host retains ownership and
// may call SetButton on it directly at any time.
func (b *Bus) ConnectController(slot int, device *controller.Standard) {
	b.controllers[slot] = device
}

// Controller returns the device connected to slot 0 or 1, or nil if none
// has been connected yet.
func (b *Bus) Controller(slot int) *controller.Standard { return b.controllers[slot] }

// ConnectMapper attaches the cartridge. It backs both CPU-side PRG
// access (through the bus) and PPU-side CHR/nametable-mirroring access
// (wired directly to the PPU, which owns its own $0000-$3FFF decode).
func (b *Bus) ConnectMapper(m mapper.Mapper) {
	b.mp = m
	b.ppu.ConnectMapper(m)
}

// ConnectFramebuffer attaches the host pixel sink the PPU renders into.
func (b *Bus) ConnectFramebuffer(fb ppu.Framebuffer) { b.ppu.ConnectFramebuffer(fb) }

// Reset runs the CPU/PPU/APU power-on sequence and clears tick phasing
// and any in-flight DMA.
func (b *Bus) Reset() {
	b.cpu.Reset()
	b.ppu.Reset()
	b.apu.Reset()
	b.cycle = 0
	b.cpuCycles = 0
	b.dma = dmaState{}
}

// Read services a CPU-side memory access.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram.read(addr)
	case addr < 0x4000:
		return b.ppu.RegRead(uint8(addr & 7))
	case addr == 0x4014:
		return 0 // OAM DMA trigger is write-only
	case addr >= 0x4000 && addr <= 0x4013:
		return b.apu.Read(addr)
	case addr == 0x4015:
		return b.apu.Read(addr)
	case addr == 0x4016:
		if b.controllers[0] == nil {
			return 0
		}
		return b.controllers[0].Read()
	case addr == 0x4017:
		if b.controllers[1] == nil {
			return 0
		}
		return b.controllers[1].Read()
	case addr >= 0x4018 && addr <= 0x401F:
		return 0 // disabled APU/IO test-mode registers
	default:
		if b.mp == nil {
			return 0
		}
		return b.mp.CPURead(addr)
	}
}

// Write services a CPU-side memory access.
func (b *Bus) Write(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		b.ram.write(addr, data)
	case addr < 0x4000:
		b.ppu.RegWrite(uint8(addr&7), data)
	case addr == 0x4014:
		b.dmaInit(data)
	case (addr >= 0x4000 && addr <= 0x4013) || addr == 0x4015 || addr == 0x4017:
		b.apu.Write(addr, data)
	case addr == 0x4016:
		on := data&0x01 != 0
		if b.controllers[0] != nil {
			b.controllers[0].SetStrobe(on)
		}
		if b.controllers[1] != nil {
			b.controllers[1].SetStrobe(on)
		}
	case addr >= 0x4018 && addr <= 0x401F:
		// disabled test-mode registers, writes silently ignored
	default:
		if b.mp != nil {
			b.mp.CPUWrite(addr, data)
		}
	}
}

// Tick advances every component by one master clock.
func (b *Bus) Tick() {
	if b.cycle%b.region.CPUDiv == 0 {
		b.tickCPU()
	}
	if b.cycle%b.region.PPUDiv == 0 {
		b.ppu.Tick()
	}
	if b.ppu.NMIPending() {
		b.cpu.NMI()
		b.ppu.AckNMI()
	}
	b.cycle = (b.cycle + 1) % (b.region.CPUDiv * b.region.PPUDiv)
}

func (b *Bus) tickCPU() {
	b.cpuCycles++

	irq := b.apu.IRQPending() || (b.mp != nil && b.mp.IRQPending())
	b.cpu.SetIRQ(irq)

	b.cpu.Tick()
	if b.dma.active {
		b.stepDMA()
	}
	b.apu.Tick()
	if b.mp != nil {
		b.mp.OnTick()
	}
}
