package bus

// ram is the NES's 2 KiB of console work RAM, mirrored four times across
// $0000-$1FFF.
type ram [2048]byte

func (r *ram) read(addr uint16) uint8        { return r[addr&0x07FF] }
func (r *ram) write(addr uint16, data uint8) { r[addr&0x07FF] = data }
