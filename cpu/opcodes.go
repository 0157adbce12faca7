package cpu

// addrMode names one of the 6502's addressing modes. Relative is kept
// distinct from the others because, although resolveOperand computes the
// branch target, branch handlers apply their own extra-cycle rules.
type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

// instruction describes one of the 256 opcode slots: its mnemonic (for
// disassembly/tests), addressing mode, base cycle count, whether a page
// crossing during operand resolution costs an extra cycle, and the
// handler that carries out the effect.
type instruction struct {
	name       string
	mode       addrMode
	cycles     uint8
	extraOnPageCross bool
	exec       func(c *CPU, addr uint16, mode addrMode)
}

// opcodes is the full 256-entry decode table: 151 official opcodes plus
// the 105 documented unofficial slots, including the 12 genuine JAM/KIL
// halts. The handful of unofficial opcodes with chip-dependent "unstable"
// results (XAA/ANE, the SHA/SHX/SHY/TAS family, LXA, LAS) are mapped to
// kil rather than approximated: precise emulation of those is explicitly
// out of scope, and a hang is a safer stand-in than a plausible-looking
// wrong answer a ROM might depend on.
var opcodes = [256]instruction{
	0x00: {"BRK", modeImplied, 7, false, brk},
	0x01: {"ORA", modeIndirectX, 6, false, ora},
	0x02: {"KIL", modeImplied, 1, false, kil},
	0x03: {"SLO", modeIndirectX, 8, false, slo},
	0x04: {"NOP", modeZeroPage, 3, false, nop},
	0x05: {"ORA", modeZeroPage, 3, false, ora},
	0x06: {"ASL", modeZeroPage, 5, false, asl},
	0x07: {"SLO", modeZeroPage, 5, false, slo},
	0x08: {"PHP", modeImplied, 3, false, php},
	0x09: {"ORA", modeImmediate, 2, false, ora},
	0x0A: {"ASL", modeAccumulator, 2, false, asl},
	0x0B: {"ANC", modeImmediate, 2, false, anc},
	0x0C: {"NOP", modeAbsolute, 4, false, nop},
	0x0D: {"ORA", modeAbsolute, 4, false, ora},
	0x0E: {"ASL", modeAbsolute, 6, false, asl},
	0x0F: {"SLO", modeAbsolute, 6, false, slo},

	0x10: {"BPL", modeRelative, 2, false, branch(FlagN, false)},
	0x11: {"ORA", modeIndirectY, 5, true, ora},
	0x12: {"KIL", modeImplied, 1, false, kil},
	0x13: {"SLO", modeIndirectY, 8, false, slo},
	0x14: {"NOP", modeZeroPageX, 4, false, nop},
	0x15: {"ORA", modeZeroPageX, 4, false, ora},
	0x16: {"ASL", modeZeroPageX, 6, false, asl},
	0x17: {"SLO", modeZeroPageX, 6, false, slo},
	0x18: {"CLC", modeImplied, 2, false, clc},
	0x19: {"ORA", modeAbsoluteY, 4, true, ora},
	0x1A: {"NOP", modeImplied, 2, false, nop},
	0x1B: {"SLO", modeAbsoluteY, 7, false, slo},
	0x1C: {"NOP", modeAbsoluteX, 4, true, nop},
	0x1D: {"ORA", modeAbsoluteX, 4, true, ora},
	0x1E: {"ASL", modeAbsoluteX, 7, false, asl},
	0x1F: {"SLO", modeAbsoluteX, 7, false, slo},

	0x20: {"JSR", modeAbsolute, 6, false, jsr},
	0x21: {"AND", modeIndirectX, 6, false, and},
	0x22: {"KIL", modeImplied, 1, false, kil},
	0x23: {"RLA", modeIndirectX, 8, false, rla},
	0x24: {"BIT", modeZeroPage, 3, false, bit},
	0x25: {"AND", modeZeroPage, 3, false, and},
	0x26: {"ROL", modeZeroPage, 5, false, rol},
	0x27: {"RLA", modeZeroPage, 5, false, rla},
	0x28: {"PLP", modeImplied, 4, false, plp},
	0x29: {"AND", modeImmediate, 2, false, and},
	0x2A: {"ROL", modeAccumulator, 2, false, rol},
	0x2B: {"ANC", modeImmediate, 2, false, anc},
	0x2C: {"BIT", modeAbsolute, 4, false, bit},
	0x2D: {"AND", modeAbsolute, 4, false, and},
	0x2E: {"ROL", modeAbsolute, 6, false, rol},
	0x2F: {"RLA", modeAbsolute, 6, false, rla},

	0x30: {"BMI", modeRelative, 2, false, branch(FlagN, true)},
	0x31: {"AND", modeIndirectY, 5, true, and},
	0x32: {"KIL", modeImplied, 1, false, kil},
	0x33: {"RLA", modeIndirectY, 8, false, rla},
	0x34: {"NOP", modeZeroPageX, 4, false, nop},
	0x35: {"AND", modeZeroPageX, 4, false, and},
	0x36: {"ROL", modeZeroPageX, 6, false, rol},
	0x37: {"RLA", modeZeroPageX, 6, false, rla},
	0x38: {"SEC", modeImplied, 2, false, sec},
	0x39: {"AND", modeAbsoluteY, 4, true, and},
	0x3A: {"NOP", modeImplied, 2, false, nop},
	0x3B: {"RLA", modeAbsoluteY, 7, false, rla},
	0x3C: {"NOP", modeAbsoluteX, 4, true, nop},
	0x3D: {"AND", modeAbsoluteX, 4, true, and},
	0x3E: {"ROL", modeAbsoluteX, 7, false, rol},
	0x3F: {"RLA", modeAbsoluteX, 7, false, rla},

	0x40: {"RTI", modeImplied, 6, false, rti},
	0x41: {"EOR", modeIndirectX, 6, false, eor},
	0x42: {"KIL", modeImplied, 1, false, kil},
	0x43: {"SRE", modeIndirectX, 8, false, sre},
	0x44: {"NOP", modeZeroPage, 3, false, nop},
	0x45: {"EOR", modeZeroPage, 3, false, eor},
	0x46: {"LSR", modeZeroPage, 5, false, lsr},
	0x47: {"SRE", modeZeroPage, 5, false, sre},
	0x48: {"PHA", modeImplied, 3, false, pha},
	0x49: {"EOR", modeImmediate, 2, false, eor},
	0x4A: {"LSR", modeAccumulator, 2, false, lsr},
	0x4B: {"ALR", modeImmediate, 2, false, alr},
	0x4C: {"JMP", modeAbsolute, 3, false, jmp},
	0x4D: {"EOR", modeAbsolute, 4, false, eor},
	0x4E: {"LSR", modeAbsolute, 6, false, lsr},
	0x4F: {"SRE", modeAbsolute, 6, false, sre},

	0x50: {"BVC", modeRelative, 2, false, branch(FlagV, false)},
	0x51: {"EOR", modeIndirectY, 5, true, eor},
	0x52: {"KIL", modeImplied, 1, false, kil},
	0x53: {"SRE", modeIndirectY, 8, false, sre},
	0x54: {"NOP", modeZeroPageX, 4, false, nop},
	0x55: {"EOR", modeZeroPageX, 4, false, eor},
	0x56: {"LSR", modeZeroPageX, 6, false, lsr},
	0x57: {"SRE", modeZeroPageX, 6, false, sre},
	0x58: {"CLI", modeImplied, 2, false, cli},
	0x59: {"EOR", modeAbsoluteY, 4, true, eor},
	0x5A: {"NOP", modeImplied, 2, false, nop},
	0x5B: {"SRE", modeAbsoluteY, 7, false, sre},
	0x5C: {"NOP", modeAbsoluteX, 4, true, nop},
	0x5D: {"EOR", modeAbsoluteX, 4, true, eor},
	0x5E: {"LSR", modeAbsoluteX, 7, false, lsr},
	0x5F: {"SRE", modeAbsoluteX, 7, false, sre},

	0x60: {"RTS", modeImplied, 6, false, rts},
	0x61: {"ADC", modeIndirectX, 6, false, adc},
	0x62: {"KIL", modeImplied, 1, false, kil},
	0x63: {"RRA", modeIndirectX, 8, false, rra},
	0x64: {"NOP", modeZeroPage, 3, false, nop},
	0x65: {"ADC", modeZeroPage, 3, false, adc},
	0x66: {"ROR", modeZeroPage, 5, false, ror},
	0x67: {"RRA", modeZeroPage, 5, false, rra},
	0x68: {"PLA", modeImplied, 4, false, pla},
	0x69: {"ADC", modeImmediate, 2, false, adc},
	0x6A: {"ROR", modeAccumulator, 2, false, ror},
	0x6B: {"ARR", modeImmediate, 2, false, arr},
	0x6C: {"JMP", modeIndirect, 5, false, jmp},
	0x6D: {"ADC", modeAbsolute, 4, false, adc},
	0x6E: {"ROR", modeAbsolute, 6, false, ror},
	0x6F: {"RRA", modeAbsolute, 6, false, rra},

	0x70: {"BVS", modeRelative, 2, false, branch(FlagV, true)},
	0x71: {"ADC", modeIndirectY, 5, true, adc},
	0x72: {"KIL", modeImplied, 1, false, kil},
	0x73: {"RRA", modeIndirectY, 8, false, rra},
	0x74: {"NOP", modeZeroPageX, 4, false, nop},
	0x75: {"ADC", modeZeroPageX, 4, false, adc},
	0x76: {"ROR", modeZeroPageX, 6, false, ror},
	0x77: {"RRA", modeZeroPageX, 6, false, rra},
	0x78: {"SEI", modeImplied, 2, false, sei},
	0x79: {"ADC", modeAbsoluteY, 4, true, adc},
	0x7A: {"NOP", modeImplied, 2, false, nop},
	0x7B: {"RRA", modeAbsoluteY, 7, false, rra},
	0x7C: {"NOP", modeAbsoluteX, 4, true, nop},
	0x7D: {"ADC", modeAbsoluteX, 4, true, adc},
	0x7E: {"ROR", modeAbsoluteX, 7, false, ror},
	0x7F: {"RRA", modeAbsoluteX, 7, false, rra},

	0x80: {"NOP", modeImmediate, 2, false, nop},
	0x81: {"STA", modeIndirectX, 6, false, sta},
	0x82: {"NOP", modeImmediate, 2, false, nop},
	0x83: {"SAX", modeIndirectX, 6, false, sax},
	0x84: {"STY", modeZeroPage, 3, false, sty},
	0x85: {"STA", modeZeroPage, 3, false, sta},
	0x86: {"STX", modeZeroPage, 3, false, stx},
	0x87: {"SAX", modeZeroPage, 3, false, sax},
	0x88: {"DEY", modeImplied, 2, false, dey},
	0x89: {"NOP", modeImmediate, 2, false, nop},
	0x8A: {"TXA", modeImplied, 2, false, txa},
	0x8B: {"KIL", modeImplied, 1, false, kil},
	0x8C: {"STY", modeAbsolute, 4, false, sty},
	0x8D: {"STA", modeAbsolute, 4, false, sta},
	0x8E: {"STX", modeAbsolute, 4, false, stx},
	0x8F: {"SAX", modeAbsolute, 4, false, sax},

	0x90: {"BCC", modeRelative, 2, false, branch(FlagC, false)},
	0x91: {"STA", modeIndirectY, 6, false, sta},
	0x92: {"KIL", modeImplied, 1, false, kil},
	0x93: {"KIL", modeImplied, 1, false, kil},
	0x94: {"STY", modeZeroPageX, 4, false, sty},
	0x95: {"STA", modeZeroPageX, 4, false, sta},
	0x96: {"STX", modeZeroPageY, 4, false, stx},
	0x97: {"SAX", modeZeroPageY, 4, false, sax},
	0x98: {"TYA", modeImplied, 2, false, tya},
	0x99: {"STA", modeAbsoluteY, 5, false, sta},
	0x9A: {"TXS", modeImplied, 2, false, txs},
	0x9B: {"KIL", modeImplied, 1, false, kil},
	0x9C: {"KIL", modeImplied, 1, false, kil},
	0x9D: {"STA", modeAbsoluteX, 5, false, sta},
	0x9E: {"KIL", modeImplied, 1, false, kil},
	0x9F: {"KIL", modeImplied, 1, false, kil},

	0xA0: {"LDY", modeImmediate, 2, false, ldy},
	0xA1: {"LDA", modeIndirectX, 6, false, lda},
	0xA2: {"LDX", modeImmediate, 2, false, ldx},
	0xA3: {"LAX", modeIndirectX, 6, false, lax},
	0xA4: {"LDY", modeZeroPage, 3, false, ldy},
	0xA5: {"LDA", modeZeroPage, 3, false, lda},
	0xA6: {"LDX", modeZeroPage, 3, false, ldx},
	0xA7: {"LAX", modeZeroPage, 3, false, lax},
	0xA8: {"TAY", modeImplied, 2, false, tay},
	0xA9: {"LDA", modeImmediate, 2, false, lda},
	0xAA: {"TAX", modeImplied, 2, false, tax},
	0xAB: {"KIL", modeImplied, 1, false, kil},
	0xAC: {"LDY", modeAbsolute, 4, false, ldy},
	0xAD: {"LDA", modeAbsolute, 4, false, lda},
	0xAE: {"LDX", modeAbsolute, 4, false, ldx},
	0xAF: {"LAX", modeAbsolute, 4, false, lax},

	0xB0: {"BCS", modeRelative, 2, false, branch(FlagC, true)},
	0xB1: {"LDA", modeIndirectY, 5, true, lda},
	0xB2: {"KIL", modeImplied, 1, false, kil},
	0xB3: {"LAX", modeIndirectY, 5, true, lax},
	0xB4: {"LDY", modeZeroPageX, 4, false, ldy},
	0xB5: {"LDA", modeZeroPageX, 4, false, lda},
	0xB6: {"LDX", modeZeroPageY, 4, false, ldx},
	0xB7: {"LAX", modeZeroPageY, 4, false, lax},
	0xB8: {"CLV", modeImplied, 2, false, clv},
	0xB9: {"LDA", modeAbsoluteY, 4, true, lda},
	0xBA: {"TSX", modeImplied, 2, false, tsx},
	0xBB: {"KIL", modeImplied, 1, false, kil},
	0xBC: {"LDY", modeAbsoluteX, 4, true, ldy},
	0xBD: {"LDA", modeAbsoluteX, 4, true, lda},
	0xBE: {"LDX", modeAbsoluteY, 4, true, ldx},
	0xBF: {"LAX", modeAbsoluteY, 4, true, lax},

	0xC0: {"CPY", modeImmediate, 2, false, cpy},
	0xC1: {"CMP", modeIndirectX, 6, false, cmp},
	0xC2: {"NOP", modeImmediate, 2, false, nop},
	0xC3: {"DCP", modeIndirectX, 8, false, dcp},
	0xC4: {"CPY", modeZeroPage, 3, false, cpy},
	0xC5: {"CMP", modeZeroPage, 3, false, cmp},
	0xC6: {"DEC", modeZeroPage, 5, false, dec},
	0xC7: {"DCP", modeZeroPage, 5, false, dcp},
	0xC8: {"INY", modeImplied, 2, false, iny},
	0xC9: {"CMP", modeImmediate, 2, false, cmp},
	0xCA: {"DEX", modeImplied, 2, false, dex},
	0xCB: {"AXS", modeImmediate, 2, false, axs},
	0xCC: {"CPY", modeAbsolute, 4, false, cpy},
	0xCD: {"CMP", modeAbsolute, 4, false, cmp},
	0xCE: {"DEC", modeAbsolute, 6, false, dec},
	0xCF: {"DCP", modeAbsolute, 6, false, dcp},

	0xD0: {"BNE", modeRelative, 2, false, branch(FlagZ, false)},
	0xD1: {"CMP", modeIndirectY, 5, true, cmp},
	0xD2: {"KIL", modeImplied, 1, false, kil},
	0xD3: {"DCP", modeIndirectY, 8, false, dcp},
	0xD4: {"NOP", modeZeroPageX, 4, false, nop},
	0xD5: {"CMP", modeZeroPageX, 4, false, cmp},
	0xD6: {"DEC", modeZeroPageX, 6, false, dec},
	0xD7: {"DCP", modeZeroPageX, 6, false, dcp},
	0xD8: {"CLD", modeImplied, 2, false, cld},
	0xD9: {"CMP", modeAbsoluteY, 4, true, cmp},
	0xDA: {"NOP", modeImplied, 2, false, nop},
	0xDB: {"DCP", modeAbsoluteY, 7, false, dcp},
	0xDC: {"NOP", modeAbsoluteX, 4, true, nop},
	0xDD: {"CMP", modeAbsoluteX, 4, true, cmp},
	0xDE: {"DEC", modeAbsoluteX, 7, false, dec},
	0xDF: {"DCP", modeAbsoluteX, 7, false, dcp},

	0xE0: {"CPX", modeImmediate, 2, false, cpx},
	0xE1: {"SBC", modeIndirectX, 6, false, sbc},
	0xE2: {"NOP", modeImmediate, 2, false, nop},
	0xE3: {"ISC", modeIndirectX, 8, false, isc},
	0xE4: {"CPX", modeZeroPage, 3, false, cpx},
	0xE5: {"SBC", modeZeroPage, 3, false, sbc},
	0xE6: {"INC", modeZeroPage, 5, false, inc},
	0xE7: {"ISC", modeZeroPage, 5, false, isc},
	0xE8: {"INX", modeImplied, 2, false, inx},
	0xE9: {"SBC", modeImmediate, 2, false, sbc},
	0xEA: {"NOP", modeImplied, 2, false, nop},
	0xEB: {"SBC", modeImmediate, 2, false, sbc},
	0xEC: {"CPX", modeAbsolute, 4, false, cpx},
	0xED: {"SBC", modeAbsolute, 4, false, sbc},
	0xEE: {"INC", modeAbsolute, 6, false, inc},
	0xEF: {"ISC", modeAbsolute, 6, false, isc},

	0xF0: {"BEQ", modeRelative, 2, false, branch(FlagZ, true)},
	0xF1: {"SBC", modeIndirectY, 5, true, sbc},
	0xF2: {"KIL", modeImplied, 1, false, kil},
	0xF3: {"ISC", modeIndirectY, 8, false, isc},
	0xF4: {"NOP", modeZeroPageX, 4, false, nop},
	0xF5: {"SBC", modeZeroPageX, 4, false, sbc},
	0xF6: {"INC", modeZeroPageX, 6, false, inc},
	0xF7: {"ISC", modeZeroPageX, 6, false, isc},
	0xF8: {"SED", modeImplied, 2, false, sed},
	0xF9: {"SBC", modeAbsoluteY, 4, true, sbc},
	0xFA: {"NOP", modeImplied, 2, false, nop},
	0xFB: {"ISC", modeAbsoluteY, 7, false, isc},
	0xFC: {"NOP", modeAbsoluteX, 4, true, nop},
	0xFD: {"SBC", modeAbsoluteX, 4, true, sbc},
	0xFE: {"INC", modeAbsoluteX, 7, false, inc},
	0xFF: {"ISC", modeAbsoluteX, 7, false, isc},
}
