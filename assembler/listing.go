package assembler

import (
	"fmt"
	"strings"
)

func (op Opcode) sourceCount() int {
	switch op {
	case OpcodeDone:
		return 0
	case OpcodeMove, OpcodeNot, OpcodeNegate, OpcodeReplicate,
		OpcodeLoad8, OpcodeLoad16, OpcodeLoad32:
		return 1
	}
	return 2
}

func (op Opcode) isStore() bool {
	return op == OpcodeStore8 || op == OpcodeStore16 || op == OpcodeStore32
}

func (inst *Instruction) source(slot int) string {
	if inst.HasImm[slot] {
		return fmt.Sprintf("#%d", inst.Imm[slot])
	}
	return fmt.Sprintf("r%d", inst.Src[slot])
}

// Describe renders the instruction in a compact register-transfer form, e.g.
// `add r2 <- r0, #5 if r3 != 0`.
func (inst *Instruction) Describe() string {
	var sb strings.Builder
	sb.WriteString(inst.Opcode.String())

	if inst.Opcode.isStore() {
		fmt.Fprintf(&sb, " [%s] <- %s", inst.source(0), inst.source(1))
	} else {
		var dests []string
		for slot := 0; slot < 2; slot++ {
			if inst.Write[slot] {
				dests = append(dests, fmt.Sprintf("r%d", inst.Dest[slot]))
			}
		}
		if len(dests) == 0 {
			dests = append(dests, "_")
		}
		var srcs []string
		for slot := 0; slot < inst.Opcode.sourceCount(); slot++ {
			srcs = append(srcs, inst.source(slot))
		}
		if len(srcs) > 0 {
			sb.WriteString(" " + strings.Join(dests, ", ") + " <- " + strings.Join(srcs, ", "))
		}
	}

	if inst.CondExecute {
		cmp := "!="
		if inst.CondInvert {
			cmp = "=="
		}
		fmt.Fprintf(&sb, " if r%d %s 0", inst.Cond, cmp)
	}
	return sb.String()
}

// Listing renders one line per emitted statement: word offset, words in hex,
// decoded form and the source line.
func (a *AssembledResult) Listing() string {
	var sb strings.Builder
	for _, span := range a.Spans {
		words := a.Words[span.Start : span.Start+uint32(span.Count)]
		hex := make([]string, len(words))
		for i, w := range words {
			hex[i] = fmt.Sprintf("%08x", w)
		}

		desc := fmt.Sprintf(".word %d", words[0])
		if span.Kind == SpanInstruction {
			if inst, ok := Decode(words); ok {
				desc = inst.Describe()
			}
		}

		source := ""
		if span.Line >= 0 && span.Line < len(a.fileContents) {
			source = strings.TrimSpace(a.fileContents[span.Line])
		}
		fmt.Fprintf(&sb, "%04x  %-26s  %-30s  %s\n", span.Start, strings.Join(hex, " "), desc, source)
	}
	return sb.String()
}
