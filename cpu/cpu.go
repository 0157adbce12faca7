// Package cpu implements a cycle-counted MOS 6502 (the NES's 2A03/2A07
// core, minus its separately-clocked APU half): all 151 official and 105
// documented unofficial opcodes, the reset/NMI/IRQ sequence, and the
// indirect-JMP page-wrap bug.
//
// Tick is meant to be called once per CPU clock; internally an
// instruction's side effects run at the cycle its opcode fetch completes
// and the remaining cycles are paid out as plain ticks. That keeps every
// instruction's total cycle count exact against the table in opcodes.go
// without needing a distinct micro-op for every bus access a real 6502
// performs, which is the dimension of "cycle-accurate" this core
// targets.
package cpu

// CPU is one 6502 core driving a shared Bus.
type CPU struct {
	Registers

	bus Bus

	cycles int // cycles left to pay out before the next fetch/interrupt check

	nmiPending bool
	irqLine    bool
	halted     bool
	suspended  bool

	// pageCrossed is scratch state set by resolveOperand and consumed by
	// the owning instruction's extraOnPageCross check.
	pageCrossed bool
	// extraCycles accumulates cycle adjustments an instruction's own
	// handler decides mid-execution (branch taken/page-crossed) that
	// aren't expressible as a static per-opcode table flag.
	extraCycles int
}

// New constructs a CPU wired to bus. Call Reset before the first Tick.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset runs the 6502's power-on/reset sequence: seven dead cycles while
// PC is loaded from the reset vector at $FFFC/$FFFD.
func (c *CPU) Reset() {
	c.Registers.reset()
	lo := c.bus.Read(0xFFFC)
	hi := c.bus.Read(0xFFFD)
	c.PC = uint16(lo) | uint16(hi)<<8
	c.cycles = 7
	c.halted = false
	c.nmiPending = false
	c.irqLine = false
}

// NMI latches a non-maskable interrupt request. It is edge-triggered:
// the bus calls this each time the PPU raises its NMI flag, and the CPU services it at
// the next instruction boundary regardless of the I flag.
func (c *CPU) NMI() { c.nmiPending = true }

// SetIRQ sets the level of the shared IRQ line. Unlike NMI this is not
// edge-latched: any device still asserting it (the APU frame counter, a
// mapper's scanline IRQ) must keep calling SetIRQ(true) until serviced.
func (c *CPU) SetIRQ(asserted bool) { c.irqLine = asserted }

// Halted reports whether the CPU has executed a JAM/KIL opcode and
// stopped fetching.
func (c *CPU) Halted() bool { return c.halted }

// Suspend halts instruction fetch/execute for the duration of OAM DMA.
// While suspended, Tick is a no-op: the bus's DMA engine does the actual
// page-copy reads/writes itself and calls Suspend(false) once done.
func (c *CPU) Suspend(on bool) { c.suspended = on }

// Suspended reports whether the bus currently has the CPU halted for DMA.
func (c *CPU) Suspended() bool { return c.suspended }

// Tick advances the CPU by one clock cycle.
func (c *CPU) Tick() {
	if c.suspended {
		return
	}
	if c.halted {
		return
	}
	if c.cycles > 0 {
		c.cycles--
		return
	}
	if c.nmiPending {
		c.nmiPending = false
		c.pushInterrupt(0xFFFA, false)
		c.cycles = 6
		return
	}
	if c.irqLine && !c.flag(FlagI) {
		c.pushInterrupt(0xFFFE, false)
		c.cycles = 6
		return
	}
	c.step()
}

// pushInterrupt pushes PC and P and loads PC from the given vector. brk
// distinguishes a software BRK from a hardware NMI/IRQ in the status
// byte that lands on the stack; callers are responsible for PC's own
// pre-push adjustment (BRK skips a padding byte the others don't have).
func (c *CPU) pushInterrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	flags := c.P &^ FlagB
	if brk {
		flags |= FlagB
	}
	c.push8(flags | FlagU)
	c.setFlag(FlagI, true)
	lo := c.bus.Read(vector)
	hi := c.bus.Read(vector + 1)
	c.PC = uint16(lo) | uint16(hi)<<8
}

func (c *CPU) step() {
	opcode := c.bus.Read(c.PC)
	c.PC++
	in := &opcodes[opcode]

	c.pageCrossed = false
	c.extraCycles = 0
	addr := c.resolveOperand(in.mode)

	in.exec(c, addr, in.mode)

	total := int(in.cycles) + c.extraCycles
	if in.extraOnPageCross && c.pageCrossed {
		total++
	}
	c.cycles = total - 1
}

// resolveOperand computes the effective address for every addressing
// mode except the register-only Implied/Accumulator modes (for Relative
// it returns the branch target), advancing PC past the operand bytes and
// recording indexed page crossings in c.pageCrossed.
func (c *CPU) resolveOperand(mode addrMode) uint16 {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0
	case modeImmediate:
		addr := c.PC
		c.PC++
		return addr
	case modeZeroPage:
		addr := uint16(c.bus.Read(c.PC))
		c.PC++
		return addr
	case modeZeroPageX:
		addr := uint16(uint8(c.bus.Read(c.PC)) + c.X)
		c.PC++
		return addr
	case modeZeroPageY:
		addr := uint16(uint8(c.bus.Read(c.PC)) + c.Y)
		c.PC++
		return addr
	case modeAbsolute:
		return c.readAbs()
	case modeAbsoluteX:
		base := c.readAbs()
		addr := base + uint16(c.X)
		c.pageCrossed = base&0xFF00 != addr&0xFF00
		return addr
	case modeAbsoluteY:
		base := c.readAbs()
		addr := base + uint16(c.Y)
		c.pageCrossed = base&0xFF00 != addr&0xFF00
		return addr
	case modeIndirect:
		ptr := c.readAbs()
		return c.readIndirectWrapped(ptr)
	case modeIndirectX:
		zp := c.bus.Read(c.PC) + c.X
		c.PC++
		return c.readZP16(zp)
	case modeIndirectY:
		zp := c.bus.Read(c.PC)
		c.PC++
		base := c.readZP16(zp)
		addr := base + uint16(c.Y)
		c.pageCrossed = base&0xFF00 != addr&0xFF00
		return addr
	case modeRelative:
		offset := int8(c.bus.Read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset))
	default:
		return 0
	}
}

func (c *CPU) readAbs() uint16 {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	return uint16(lo) | uint16(hi)<<8
}

// readZP16 reads a little-endian pointer out of the zero page, wrapping
// within page zero rather than crossing into page one.
func (c *CPU) readZP16(zp uint8) uint16 {
	lo := c.bus.Read(uint16(zp))
	hi := c.bus.Read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}

// readIndirectWrapped reproduces JMP ($xxFF)'s page-wrap bug: the high
// byte is fetched from $xx00, not $(xx+1)00.
func (c *CPU) readIndirectWrapped(ptr uint16) uint16 {
	lo := c.bus.Read(ptr)
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := c.bus.Read(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push8(v uint8) {
	c.bus.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.bus.Read(0x0100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(lo) | uint16(hi)<<8
}

// operand reads an instruction's 8-bit operand for every mode except
// Accumulator, where the value lives in A instead of memory.
func (c *CPU) operand(addr uint16, mode addrMode) uint8 {
	if mode == modeAccumulator {
		return c.A
	}
	return c.bus.Read(addr)
}

func (c *CPU) storeResult(addr uint16, mode addrMode, v uint8) {
	if mode == modeAccumulator {
		c.A = v
		return
	}
	c.bus.Write(addr, v)
}
