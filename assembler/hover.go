package assembler

import (
	"fmt"
	"strings"
)

// HeaderBits renders a header word with its fields separated, most
// significant first.
func HeaderBits(word uint32) string {
	inst := DecodeHeader(word)
	return fmt.Sprintf("%06b %d %d %04b %04b %04b %04b %04b %d %d %d %d",
		uint8(inst.Opcode), bit(inst.CondExecute), bit(inst.CondInvert), inst.Cond,
		inst.Dest[1], inst.Dest[0], inst.Src[1], inst.Src[0],
		bit(inst.Write[1]), bit(inst.Write[0]), bit(inst.HasImm[1]), bit(inst.HasImm[0]))
}

// tokenAt lexes a single line and returns the token covering char.
func tokenAt(line string, char int) (Token, bool) {
	l := NewLexer(line)
	for {
		tok, err := l.Next()
		if err != nil || tok.Kind == TokenEOF {
			return Token{}, false
		}
		start := tok.Loc.Offset
		end := l.loc.Offset
		if char >= start && char < end {
			return tok, true
		}
		if start > char {
			return Token{}, false
		}
	}
}

func (a *AssembledResult) instructionOnLine(line int) (Instruction, bool) {
	for _, span := range a.Spans {
		if span.Line == line && span.Kind == SpanInstruction {
			return Decode(a.Words[span.Start : span.Start+uint32(span.Count)])
		}
	}
	return Instruction{}, false
}

// EvaluateHover returns markdown describing the token under position, and
// false if there is nothing to show.
func (a *AssembledResult) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(a.fileContents) {
		return "", false
	}
	line := a.fileContents[position.Line]

	tok, ok := tokenAt(line, position.Char)
	if !ok {
		return "", false
	}

	switch tok.Kind {
	case TokenRegister:
		return fmt.Sprintf(hoverInfoFormats.register, tok.Value), true
	case TokenNumber:
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, tok.Value, tok.Value), true
	case TokenIdentifier:
		addr, defined := a.Labels[tok.Text]
		if defined && IsLabelLine(line) {
			return fmt.Sprintf(hoverInfoFormats.labelDefinition, tok.Text, addr), true
		}
		if !defined {
			return fmt.Sprintf(hoverInfoFormats.undefinedLabel, tok.Text), true
		}
		return fmt.Sprintf(hoverInfoFormats.labelReference, tok.Text, addr), true
	}

	text, ok := operatorHoverInfo[tok.Kind]
	if !ok {
		return "", false
	}
	if inst, ok := a.instructionOnLine(position.Line); ok {
		text += "\n\n" + fmt.Sprintf(hoverInfoFormats.encoded, inst.Describe(), HeaderBits(inst.Header()))
	}
	return strings.TrimSpace(text), true
}
