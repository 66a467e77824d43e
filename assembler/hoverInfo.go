package assembler

type hoverInfoFormatsType struct {
	labelDefinition string
	labelReference  string
	undefinedLabel  string
	integerLiteral  string
	register        string
	encoded         string
}

var hoverInfoFormats = hoverInfoFormatsType{
	labelDefinition: "Definition of label `%s`.\n\nAddress of word 0x%X",
	labelReference:  "Reference to label `%s`\n\nEvaluates to `%d`",
	undefinedLabel:  "Reference to undefined label `%s`\n\nEvaluates to `0`",
	integerLiteral:  "Integer Literal `%d` (`0x%X`)",
	register:        "Register `r%d`. 32-Bit General Purpose Register",
	encoded:         "Encoded as `%s`\n\n```\n%s\n```",
}

var operatorHoverInfo = map[TokenKind]string{
	TokenNot:         "Logical Not.\n\n`!x -> rD` selects `not`. `!(a | b)`, `!(a & b)`, `!(a ^ b)` and `!(a < b)` select `nor`, `nand`, `xnor` and `nlt`.\n\nAs a condition, `? !(rN = 0)` executes only when `rN` is non-zero.",
	TokenOr:          "OR Instruction.\n\nExample: `r1 | r2 -> r3` is the same as `r3 = r1 | r2`",
	TokenAnd:         "AND Instruction.\n\nExample: `r1 & r2 -> r3` is the same as `r3 = r1 & r2`",
	TokenXor:         "XOR Instruction.\n\nExample: `r1 ^ r2 -> r3` is the same as `r3 = r1 ^ r2`",
	TokenAdd:         "Addition Instruction.\n\nExample: `r1 + 5 -> r3` is the same as `r3 = r1 + 5`",
	TokenSub:         "Subtraction Instruction, or negation when it starts an operand.\n\nExample: `r1 - r2 -> r3`, `-r1 -> r3`",
	TokenMul:         "Multiplication Instruction.\n\nExample: `r1 * r2 -> r3` is the same as `r3 = r1 * r2`",
	TokenDiv:         "Division Instruction, or bit replicate when it starts an operand.\n\nExample: `r1 / r2 -> r3, r4`, `/r1 -> r3`",
	TokenEqual:       "Equality.\n\nOnly valid inside a condition: `? !(rN = 0)`",
	TokenLess:        "Set Less Than Instruction.\n\nExample: `r1 < r2 -> r3` sets `r3` to `1` if `r1 < r2`, otherwise `0`",
	TokenGreater:     "Set Greater Than.\n\n`a > b` is encoded as `b < a`",
	TokenShiftLeft:   "Shift Left Instruction.\n\nExample: `r1 << 2 -> r3` is the same as `r3 = r1 << 2`",
	TokenShiftRight:  "Shift Right Instruction.\n\nExample: `r1 >> 2 -> r3` is the same as `r3 = r1 >> 2`",
	TokenArrow:       "Assignment.\n\n`value -> destination`. A register destination selects an ALU or load instruction, a `memN(...)` destination selects a store.",
	TokenQuestion:    "Condition.\n\n`instruction ? !(rN = 0)` executes the instruction only when `rN` is non-zero.",
	TokenMem8:        "8-Bit Memory Access.\n\n`mem8(addr) -> rD` loads a byte, `rS -> mem8(addr)` stores one.",
	TokenMem16:       "16-Bit Memory Access.\n\n`mem16(addr) -> rD` loads a half word, `rS -> mem16(addr)` stores one.",
	TokenMem32:       "32-Bit Memory Access.\n\n`mem32(addr) -> rD` loads a word, `rS -> mem32(addr)` stores one. `[addr]` is shorthand.",
	TokenLeftBracket: "32-Bit Memory Access.\n\n`[addr]` is the same as `mem32(addr)`.",
	TokenEmpty:       "Empty operand.\n\nLeaves a source slot unused or a destination unwritten.",
}
