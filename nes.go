// Package nes wires the cpu, ppu, apu, bus, mapper, rom, and controller
// packages into the console-level lifecycle a host embeds: power on,
// insert a cartridge, connect a screen and controllers, feed it wall
// time. It owns no emulation logic of its own — every tick and every
// register access happens inside the bus — this package only assembles
// the pieces and exposes the external interface spec'd at the boundary.
package nes

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/antonegas/nes/bus"
	"github.com/antonegas/nes/controller"
	"github.com/antonegas/nes/mapper"
	"github.com/antonegas/nes/ppu"
	"github.com/antonegas/nes/rom"
)

// Console is the top-level, host-facing NES console. The zero value is
// not usable; construct one with New.
type Console struct {
	bus     *bus.Bus
	verbose bool
}

// Option configures a Console at construction time. Following
// `nes_options.go`'s functional-options pattern, an Option can fail
// (e.g. a malformed palette) and New panics on the first error rather
// than returning a half-configured Console.
type Option func(*Console) error

// WithRegion selects the console timing variant (NTSC by default). Use
// bus.NTSC, bus.PAL, or bus.Dendy. It replaces the bus wholesale, so list
// it before any option that touches the bus (WithPalette).
func WithRegion(region bus.Region) Option {
	return func(c *Console) error {
		c.bus = bus.New(region)
		return nil
	}
}

// WithPalette installs the NES palette immediately at construction,
// equivalent to calling SetPalette right after New.
func WithPalette(raw []byte) Option {
	return func(c *Console) error {
		return c.SetPalette(raw)
	}
}

// WithVerbose enables glog-backed tracing of cartridge loads and
// lifecycle transitions.
func WithVerbose(verbose bool) Option {
	return func(c *Console) error {
		c.verbose = verbose
		return nil
	}
}

// New constructs a powered-off console. Call Power once a cartridge,
// screen, and controllers are connected.
func New(opts ...Option) *Console {
	c := &Console{bus: bus.New(bus.NTSC)}
	for i, opt := range opts {
		if err := opt(c); err != nil {
			panic(errors.Wrapf(err, "nes: option %d", i))
		}
	}
	return c
}

// Power runs the CPU/PPU/APU power-on sequence. It must be called after
// InsertCartridge; calling it before leaves the bus with no mapper, so
// cartridge-space reads yield open bus (0) until one is connected.
func (c *Console) Power() {
	if c.verbose {
		glog.Infoln("nes: power on")
	}
	c.bus.Reset()
}

// Reset is a soft reset: equivalent to the console's reset button, as
// opposed to a full power cycle. It runs the same bus.Reset sequence as
// Power, but the two are not equivalent internally: cpu.Registers.reset
// decrements S by 3 relative to whatever it already holds rather than
// forcing a fixed value, so a warm reset leaves S (and the other flags
// in P) reflecting prior execution instead of snapping back to the
// power-on state. Sharing one code path is still correct because that
// relative decrement degenerates to the power-on case when S/P start at
// their Go zero values.
func (c *Console) Reset() {
	if c.verbose {
		glog.Infoln("nes: reset")
	}
	c.bus.Reset()
}

// InsertCartridge attaches an already-constructed mapper, per the
// host-facing `insert_cartridge(mapper)` boundary: building the mapper
// from raw ROM bytes is a separate step the host performs with
// LoadCartridge, rom.Decode, or mapper.New directly, so a host that
// already has a Mapper (e.g. reconstructed from saved PRG-RAM) can
// attach it without re-parsing a header.
func (c *Console) InsertCartridge(m mapper.Mapper) {
	c.bus.ConnectMapper(m)
}

// LoadCartridge decodes a raw ROM image's 16-byte header, slices out the
// PRG/CHR banks it describes, constructs the matching mapper, and
// attaches it. It is a convenience wrapper around rom.Decode,
// mapper.New, and InsertCartridge for hosts that only have file bytes on
// hand; the lower-level calls remain available for hosts that need more
// control (e.g. a trainer region, or a cartridge with battery-backed
// PRG-RAM loaded from a save file).
func (c *Console) LoadCartridge(raw []byte) error {
	if len(raw) < 16 {
		return errors.New("nes: ROM image shorter than a header")
	}
	var header [16]byte
	copy(header[:], raw[:16])

	h, err := rom.Decode(header)
	if err != nil {
		return errors.Wrap(err, "nes: decode ROM header")
	}
	if h.Console != rom.ConsoleNES {
		return errors.Errorf("nes: unsupported console type %d (only plain NES is supported)", h.Console)
	}

	offset := 16
	if h.HasTrainer {
		offset += 512
	}
	if offset+h.PRGROMSize > len(raw) {
		return errors.Errorf("nes: PRG-ROM size %d overruns image (have %d bytes after header)", h.PRGROMSize, len(raw)-offset)
	}
	prgROM := raw[offset : offset+h.PRGROMSize]
	offset += h.PRGROMSize

	chrIsRAM := h.CHRROMSize == 0
	var chrROM []byte
	if chrIsRAM {
		// The header's CHR-RAM size is not used here (iNES headers always
		// report 0; a NES 2.0 header's value is ignored), so a cartridge
		// with no CHR-ROM banks gets the 8 KiB every NROM CHR-RAM board
		// actually shipped with; a
		// host that knows better can bypass LoadCartridge and call
		// mapper.New directly.
		chrROM = make([]byte, 8192)
	} else {
		if offset+h.CHRROMSize > len(raw) {
			return errors.Errorf("nes: CHR-ROM size %d overruns image", h.CHRROMSize)
		}
		chrROM = raw[offset : offset+h.CHRROMSize]
	}

	m, err := mapper.New(h.Mapper, mirroringOf(h.Mirroring), prgROM, chrROM, chrIsRAM, h.PRGRAMSize)
	if err != nil {
		return errors.Wrap(err, "nes: construct mapper")
	}

	if c.verbose {
		glog.Infof("nes: loaded cartridge mapper=%d prg=%dKiB chr=%dKiB mirroring=%v", h.Mapper, h.PRGROMSize/1024, len(chrROM)/1024, h.Mirroring)
	}
	c.InsertCartridge(m)
	return nil
}

// mirroringOf translates the header's declared mirroring into the
// mapper package's runtime mirroring enum. NROM never overrides this at
// runtime, but the conversion is shared with any future mapper that
// would.
func mirroringOf(m rom.Mirroring) mapper.Mirroring {
	switch m {
	case rom.MirrorVertical:
		return mapper.MirrorVertical
	case rom.MirrorFourScreen:
		return mapper.MirrorFourScreen
	default:
		return mapper.MirrorHorizontal
	}
}

// ConnectScreen attaches the framebuffer the PPU writes pixels into.
func (c *Console) ConnectScreen(fb ppu.Framebuffer) {
	c.bus.ConnectFramebuffer(fb)
}

// ConnectController attaches a host-owned controller device to slot 0
// or 1. The host retains ownership; this only gives the bus a weak
// reference to read from, per §5's controller ownership model.
func (c *Console) ConnectController(slot int, device *controller.Standard) {
	c.bus.ConnectController(slot, device)
}

// SetPalette installs the 192- or 1536-byte NES palette the PPU uses to
// turn palette-RAM indices into RGB triples.
func (c *Console) SetPalette(raw []byte) error {
	return c.bus.PPU().LoadPalette(raw)
}

// Update advances emulation by the wall-clock time elapsed since the
// previous call, given as a monotonic nanosecond timestamp.
func (c *Console) Update(nowNs int64) {
	c.bus.Update(nowNs)
}

// Bus exposes the underlying bus for callers that need lower-level
// access (debugging, direct register peeks) beyond this package's
// lifecycle surface.
func (c *Console) Bus() *bus.Bus { return c.bus }
