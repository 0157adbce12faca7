package bus

// dmaState is the OAM DMA engine's progress through a 256-byte transfer.
//
// The source this core's bus logic is grounded on tracks alignment by
// toggling a read/write parity bit every CPU cycle unconditionally and
// inferring "aligned" from clock%2; that couples the DMA engine to the
// CPU's own cycle-counting in a way that's easy to get subtly wrong.
// This implementation instead decides the wait length once, at dmaInit
// time, from a single running CPU-cycle counter — the "cleaner model"
// a single even/odd counter gives, which the DMA state machine then just
// counts down.
type dmaState struct {
	active     bool
	waitCycles int
	page       uint8
	lower      uint8
	data       uint8
	readPhase  bool
}

// dmaInit starts an OAM DMA transfer from CPU page `page`, suspending
// CPU instruction fetch until all 256 bytes have been copied.
func (b *Bus) dmaInit(page uint8) {
	wait := 1
	if b.cpuCycles%2 != 0 {
		wait = 2
	}
	b.dma = dmaState{active: true, waitCycles: wait, page: page, readPhase: true}
	b.cpu.Suspend(true)
}

// stepDMA runs one CPU-cycle's worth of the DMA state machine: the
// initial alignment wait, then alternating read-from-CPU-space and
// write-to-OAM phases, two cycles per byte.
func (b *Bus) stepDMA() {
	d := &b.dma
	if d.waitCycles > 0 {
		d.waitCycles--
		return
	}
	if d.readPhase {
		d.data = b.Read(uint16(d.page)<<8 | uint16(d.lower))
		d.readPhase = false
		return
	}
	b.ppu.DMAWrite(d.data)
	d.lower++
	d.readPhase = true
	if d.lower == 0 {
		d.active = false
		b.cpu.Suspend(false)
	}
}
