package assembler

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestHeaderFields(t *testing.T) {
	tests := []struct {
		inst     Instruction
		expected uint32
	}{
		{Instruction{}, 0},
		{Instruction{Opcode: OpcodeDone}, 28 << 26},
		{Instruction{Opcode: 63}, 0xFC000000},
		{Instruction{CondExecute: true}, 1 << 25},
		{Instruction{CondInvert: true}, 1 << 24},
		{Instruction{Cond: 15}, 0xF << 20},
		{Instruction{Dest: [2]uint8{0, 15}}, 0xF << 16},
		{Instruction{Dest: [2]uint8{15, 0}}, 0xF << 12},
		{Instruction{Src: [2]uint8{0, 15}}, 0xF << 8},
		{Instruction{Src: [2]uint8{15, 0}}, 0xF << 4},
		{Instruction{Write: [2]bool{false, true}}, 1 << 3},
		{Instruction{Write: [2]bool{true, false}}, 1 << 2},
		{Instruction{HasImm: [2]bool{false, true}}, 1 << 1},
		{Instruction{HasImm: [2]bool{true, false}}, 1},
	}

	for _, tt := range tests {
		be.Equal(t, tt.inst.Header(), tt.expected)
		be.Equal(t, DecodeHeader(tt.expected), tt.inst)
	}
}

func TestHeaderMasksOversizedFields(t *testing.T) {
	inst := Instruction{Opcode: 0x7F, Cond: 0x1F, Dest: [2]uint8{0x12, 0x34}}
	be.Equal(t, inst.Header(), uint32(0xFC000000|0xF<<20|0x4<<16|0x2<<12))
}

func TestHeaderRoundTrip(t *testing.T) {
	inst := Instruction{
		Opcode:      OpcodeDiv,
		CondExecute: true,
		CondInvert:  true,
		Cond:        9,
		Dest:        [2]uint8{2, 3},
		Write:       [2]bool{true, true},
		Src:         [2]uint8{7, 11},
		HasImm:      [2]bool{false, true},
	}
	be.Equal(t, DecodeHeader(inst.Header()), inst)
}

func TestEncodeImmediates(t *testing.T) {
	tests := []struct {
		hasImm  [2]bool
		words   int
		offset1 uint32
	}{
		{[2]bool{false, false}, 1, 1},
		{[2]bool{true, false}, 2, 2},
		{[2]bool{false, true}, 2, 1},
		{[2]bool{true, true}, 3, 2},
	}

	for _, tt := range tests {
		inst := Instruction{Opcode: OpcodeAdd, Imm: [2]uint32{111, 222}, HasImm: tt.hasImm}
		words := inst.Encode()
		be.Equal(t, len(words), tt.words)
		be.Equal(t, inst.WordCount(), tt.words)
		be.Equal(t, inst.ImmediateOffset(0), uint32(1))
		be.Equal(t, inst.ImmediateOffset(1), tt.offset1)

		if tt.hasImm[0] {
			be.Equal(t, words[inst.ImmediateOffset(0)], uint32(111))
		}
		if tt.hasImm[1] {
			be.Equal(t, words[inst.ImmediateOffset(1)], uint32(222))
		}
	}
}

func TestDecode(t *testing.T) {
	inst, ok := Decode([]uint32{0x58000003, 100, 5})
	be.True(t, ok)
	be.Equal(t, inst.Opcode, OpcodeStore8)
	be.Equal(t, inst.Imm, [2]uint32{100, 5})

	_, ok = Decode([]uint32{0x58000003, 100})
	be.True(t, !ok)

	_, ok = Decode(nil)
	be.True(t, !ok)
}

func TestOpcodeNumbering(t *testing.T) {
	mnemonics := []string{
		"mov", "not", "or", "nor", "and", "nand", "xor", "xnor", "neg", "add",
		"sub", "lt", "nlt", "slt", "nslt", "sl", "sr", "ssl", "ssr", "rep",
		"mul", "div", "sto8", "sto16", "sto32", "lod8", "lod16", "lod32", "done",
	}
	for i, mnemonic := range mnemonics {
		be.Equal(t, Opcode(i).String(), mnemonic)
	}
	be.Equal(t, Opcode(40).String(), "op40")
}
