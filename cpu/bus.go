package cpu

// Bus is the address space the CPU drives. Implemented by the root bus
// package, which fans reads/writes out to RAM, the PPU/APU register
// windows, and the cartridge mapper; defined here (rather than imported)
// so cpu has no dependency on anything above it.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}
