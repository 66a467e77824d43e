package assembler

import "strconv"

type Opcode uint8

const (
	OpcodeMove Opcode = iota
	OpcodeNot
	OpcodeOr
	OpcodeNor
	OpcodeAnd
	OpcodeNand
	OpcodeXor
	OpcodeXnor
	OpcodeNegate
	OpcodeAdd
	OpcodeSub
	OpcodeLess
	OpcodeNotLess
	OpcodeSignedLess
	OpcodeNotSignedLess
	OpcodeShiftLeft
	OpcodeShiftRight
	OpcodeSignedShiftLeft
	OpcodeSignedShiftRight
	OpcodeReplicate
	OpcodeMul
	OpcodeDiv
	OpcodeStore8
	OpcodeStore16
	OpcodeStore32
	OpcodeLoad8
	OpcodeLoad16
	OpcodeLoad32
	OpcodeDone
)

var opcodeMnemonics = [...]string{
	OpcodeMove:             "mov",
	OpcodeNot:              "not",
	OpcodeOr:               "or",
	OpcodeNor:              "nor",
	OpcodeAnd:              "and",
	OpcodeNand:             "nand",
	OpcodeXor:              "xor",
	OpcodeXnor:             "xnor",
	OpcodeNegate:           "neg",
	OpcodeAdd:              "add",
	OpcodeSub:              "sub",
	OpcodeLess:             "lt",
	OpcodeNotLess:          "nlt",
	OpcodeSignedLess:       "slt",
	OpcodeNotSignedLess:    "nslt",
	OpcodeShiftLeft:        "sl",
	OpcodeShiftRight:       "sr",
	OpcodeSignedShiftLeft:  "ssl",
	OpcodeSignedShiftRight: "ssr",
	OpcodeReplicate:        "rep",
	OpcodeMul:              "mul",
	OpcodeDiv:              "div",
	OpcodeStore8:           "sto8",
	OpcodeStore16:          "sto16",
	OpcodeStore32:          "sto32",
	OpcodeLoad8:            "lod8",
	OpcodeLoad16:           "lod16",
	OpcodeLoad32:           "lod32",
	OpcodeDone:             "done",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeMnemonics) {
		return opcodeMnemonics[op]
	}
	return "op" + strconv.Itoa(int(op))
}

// Header word layout, most significant bit first:
//
//	31..26 opcode
//	25     conditional execute
//	24     condition invert
//	23..20 condition register
//	19..16 dest1
//	15..12 dest0
//	11..8  src1
//	7..4   src0
//	3      write enable 1
//	2      write enable 0
//	1      immediate 1 present
//	0      immediate 0 present
//
// Immediate 0 follows the header when present, then immediate 1.
const (
	shiftImm0    = 0
	shiftImm1    = 1
	shiftWrite0  = 2
	shiftWrite1  = 3
	shiftSrc0    = 4
	shiftSrc1    = 8
	shiftDest0   = 12
	shiftDest1   = 16
	shiftCond    = 20
	shiftInvert  = 24
	shiftExecute = 25
	shiftOpcode  = 26

	maskOpcode   = 0x3F
	maskRegister = 0xF
)

// Instruction is the transient builder for one encoded instruction.
type Instruction struct {
	Opcode      Opcode
	CondExecute bool
	CondInvert  bool
	Cond        uint8
	Dest        [2]uint8
	Write       [2]bool
	Src         [2]uint8
	Imm         [2]uint32
	HasImm      [2]bool
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Header packs the header word.
func (inst *Instruction) Header() uint32 {
	return (uint32(inst.Opcode)&maskOpcode)<<shiftOpcode |
		bit(inst.CondExecute)<<shiftExecute |
		bit(inst.CondInvert)<<shiftInvert |
		(uint32(inst.Cond)&maskRegister)<<shiftCond |
		(uint32(inst.Dest[1])&maskRegister)<<shiftDest1 |
		(uint32(inst.Dest[0])&maskRegister)<<shiftDest0 |
		(uint32(inst.Src[1])&maskRegister)<<shiftSrc1 |
		(uint32(inst.Src[0])&maskRegister)<<shiftSrc0 |
		bit(inst.Write[1])<<shiftWrite1 |
		bit(inst.Write[0])<<shiftWrite0 |
		bit(inst.HasImm[1])<<shiftImm1 |
		bit(inst.HasImm[0])<<shiftImm0
}

// WordCount is the number of words Encode produces: the header plus one per
// present immediate.
func (inst *Instruction) WordCount() int {
	return 1 + int(bit(inst.HasImm[0])) + int(bit(inst.HasImm[1]))
}

// ImmediateOffset is the position of immediate slot relative to the header.
func (inst *Instruction) ImmediateOffset(slot int) uint32 {
	if slot == 0 {
		return 1
	}
	return 1 + bit(inst.HasImm[0])
}

func (inst *Instruction) Encode() []uint32 {
	words := make([]uint32, 1, 3)
	words[0] = inst.Header()
	if inst.HasImm[0] {
		words = append(words, inst.Imm[0])
	}
	if inst.HasImm[1] {
		words = append(words, inst.Imm[1])
	}
	return words
}

// DecodeHeader unpacks a header word. Immediate values live in the following
// words and are left zero.
func DecodeHeader(word uint32) Instruction {
	return Instruction{
		Opcode:      Opcode((word >> shiftOpcode) & maskOpcode),
		CondExecute: (word>>shiftExecute)&1 == 1,
		CondInvert:  (word>>shiftInvert)&1 == 1,
		Cond:        uint8((word >> shiftCond) & maskRegister),
		Dest:        [2]uint8{uint8((word >> shiftDest0) & maskRegister), uint8((word >> shiftDest1) & maskRegister)},
		Src:         [2]uint8{uint8((word >> shiftSrc0) & maskRegister), uint8((word >> shiftSrc1) & maskRegister)},
		Write:       [2]bool{(word>>shiftWrite0)&1 == 1, (word>>shiftWrite1)&1 == 1},
		HasImm:      [2]bool{(word>>shiftImm0)&1 == 1, (word>>shiftImm1)&1 == 1},
	}
}

// Decode unpacks the instruction starting at words[0], reading immediates from
// the words after it. ok is false if the header claims more words than remain.
func Decode(words []uint32) (inst Instruction, ok bool) {
	if len(words) == 0 {
		return Instruction{}, false
	}
	inst = DecodeHeader(words[0])
	if len(words) < inst.WordCount() {
		return inst, false
	}
	for slot := 0; slot < 2; slot++ {
		if inst.HasImm[slot] {
			inst.Imm[slot] = words[inst.ImmediateOffset(slot)]
		}
	}
	return inst, true
}
