package assembler_test

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
)

func TestProgramCountdown(t *testing.T) {
	source := `# count r0 down from 10
	10 -> r0
loop
	r0 - 1 -> r0
	loop -> r15 ? !(r0 = 0)
	r0 -> mem32(result)
result
	0
`
	expected := []uint32{
		0x00000005, 10,
		0x28000006, 1,
		0x0200F005, 2,
		0x60000001, 8,
		0,
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, nil)
}

func TestProgramForwardJump(t *testing.T) {
	source := `	skip -> r15
	r1 + r2 -> r3
skip
	r3 -> r4
`
	expected := []uint32{
		0x0000F005, 3,
		0x24003214,
		0x00004034,
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, nil)
}

func TestProgramUndefinedLabel(t *testing.T) {
	source := "\tnowhere -> r15\n"
	expected := []uint32{0x0000F005, 0}
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 0, Char: 1},
				End:   assembler.TextPosition{Line: 0, Char: 8},
			},
			Message:  `Undefined label: "nowhere", resolved to address 0`,
			Severity: assembler.Warning,
		},
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, expectedDiagnostics)
}

func TestProgramSyntaxError(t *testing.T) {
	source := "\tr0 -> r1\n\t(r0 -> r1\n"
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 1, Char: 5},
				End:   assembler.TextPosition{Line: 1, Char: 6},
			},
			Message:  "expected ')': got ->",
			Severity: assembler.Error,
		},
	}

	program := assembler.Assemble(source)
	validateResult(t, program, nil, expectedDiagnostics)
	be.True(t, program.HasErrors())
}

func TestProgramInvalidRegister(t *testing.T) {
	source := "\tr0 -> r16\n"
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 0, Char: 8},
				End:   assembler.TextPosition{Line: 0, Char: 10},
			},
			Message:  "register out of range (r0-r15): r16",
			Severity: assembler.Error,
		},
	}

	program := assembler.Assemble(source)
	validateResult(t, program, nil, expectedDiagnostics)
}

func TestProgramStrictLabels(t *testing.T) {
	program := assembler.AssembleWithConfig("\tnowhere -> r15\n", assembler.Config{StrictLabels: true})
	be.True(t, program.HasErrors())
	be.Equal(t, len(program.Words), 0)
	be.Equal(t, program.Diagnostics[0].Message, "undefined label: nowhere")
}

func TestGlobalConfig(t *testing.T) {
	defer assembler.SetConfig(assembler.GetConfig())

	assembler.SetConfig(assembler.Config{ExtendedGuards: true})
	program := assembler.Assemble("\tr0 -> r1 ? r2 = 0\n")
	validateResult(t, program, []uint32{0x03201004}, nil)

	assembler.SetConfig(assembler.Config{})
	program = assembler.Assemble("\tr0 -> r1 ? r2 = 0\n")
	be.True(t, program.HasErrors())
}

func TestCompile(t *testing.T) {
	words, err := assembler.Compile("\tjmp -> r0\njmp\n")
	be.Err(t, err, nil)
	be.Equal(t, words, []uint32{0x00000005, 2})

	words, err = assembler.Compile("\tr0 -> r1 ? r2")
	be.True(t, words == nil)
	be.True(t, assembler.IsKind(err, assembler.ErrInvalidGuard))
}

func TestSideTables(t *testing.T) {
	source := "start\n\t7\n\n\tr1 + 5 -> r2\nend\n\tstart -> r15\n"
	program := assembler.Assemble(source)
	be.True(t, !program.HasErrors())

	be.Equal(t, program.Labels["start"], uint32(0))
	be.Equal(t, program.Labels["end"], uint32(3))
	be.Equal(t, program.LabelToLine["start"], 0)
	be.Equal(t, program.LabelToLine["end"], 4)

	be.Equal(t, program.AddressToLine[0], 1)
	be.Equal(t, program.AddressToLine[1], 3)
	be.Equal(t, program.AddressToLine[2], 3)
	be.Equal(t, program.AddressToLine[3], 5)
	be.Equal(t, program.AddressToLine[4], 5)
	be.Equal(t, len(program.Nodes), 5)
}

func TestListing(t *testing.T) {
	source := "\t5 -> mem8(100)\nloop\n\tr0 -> r1 ? !(r2 = 0)\n\tloop\n"
	program := assembler.Assemble(source)
	lines := strings.Split(strings.TrimRight(program.Listing(), "\n"), "\n")

	be.Equal(t, len(lines), 3)
	be.True(t, strings.HasPrefix(lines[0], "0000  58000003 00000064 00000005"))
	be.True(t, strings.Contains(lines[0], "sto8 [#100] <- #5"))
	be.True(t, strings.HasSuffix(lines[0], "5 -> mem8(100)"))
	be.True(t, strings.HasPrefix(lines[1], "0003  02201004"))
	be.True(t, strings.Contains(lines[1], "mov r1 <- r0 if r2 != 0"))
	be.True(t, strings.HasPrefix(lines[2], "0004  00000003"))
	be.True(t, strings.Contains(lines[2], ".word 3"))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		words    []uint32
		expected string
	}{
		{[]uint32{0x24002016, 5}, "add r2 <- r1, #5"},
		{[]uint32{0x5403210C}, "div r2, r3 <- r0, r1"},
		{[]uint32{0x03201004}, "mov r1 <- r0 if r2 == 0"},
		{[]uint32{0x60000100}, "sto32 [r0] <- r1"},
		{[]uint32{0x70000000}, "done"},
	}

	for _, tt := range tests {
		inst, ok := assembler.Decode(tt.words)
		be.True(t, ok)
		be.Equal(t, inst.Describe(), tt.expected)
	}
}

func TestHover(t *testing.T) {
	source := "loop\n\tr1 + 5 -> r2\n\tloop -> r15\n\tmissing -> r0\n"
	program := assembler.Assemble(source)

	tests := []struct {
		line, char int
		contains   string
	}{
		{0, 1, "Definition of label `loop`"},
		{1, 2, "Register `r1`"},
		{1, 6, "Integer Literal `5` (`0x5`)"},
		{1, 4, "Addition Instruction"},
		{1, 4, "001001 0 0 0000 0000 0010 0000 0001 0 1 1 0"},
		{1, 8, "Assignment"},
		{2, 2, "Reference to label `loop`"},
		{3, 3, "Reference to undefined label `missing`"},
	}

	for _, tt := range tests {
		text, ok := program.EvaluateHover(assembler.TextPosition{Line: tt.line, Char: tt.char})
		be.True(t, ok)
		be.True(t, strings.Contains(text, tt.contains))
	}

	_, ok := program.EvaluateHover(assembler.TextPosition{Line: 1, Char: 0})
	be.True(t, !ok)
	_, ok = program.EvaluateHover(assembler.TextPosition{Line: 40, Char: 0})
	be.True(t, !ok)
}

func TestHoverIndentedLabel(t *testing.T) {
	program := assembler.Assemble("  loop # top\n\tloop -> r0\n")

	text, ok := program.EvaluateHover(assembler.TextPosition{Line: 0, Char: 3})
	be.True(t, ok)
	be.True(t, strings.Contains(text, "Definition of label `loop`"))

	text, ok = program.EvaluateHover(assembler.TextPosition{Line: 1, Char: 2})
	be.True(t, ok)
	be.True(t, strings.Contains(text, "Reference to label `loop`"))
}

func TestWordsToBytes(t *testing.T) {
	b := assembler.WordsToBytes([]uint32{0x00001004, 0xAABBCCDD})
	be.Equal(t, b, []byte{0x04, 0x10, 0x00, 0x00, 0xDD, 0xCC, 0xBB, 0xAA})

	words, err := assembler.BytesToWords(b)
	be.Err(t, err, nil)
	be.Equal(t, words, []uint32{0x00001004, 0xAABBCCDD})

	_, err = assembler.BytesToWords([]byte{1, 2, 3})
	be.Err(t, err, "not a multiple of 4")
}

func validateResult(t *testing.T, program *assembler.AssembledResult, expectedWords []uint32, expectedDiagnostics []assembler.Diagnostic) {
	if len(program.Diagnostics) != len(expectedDiagnostics) {
		t.Fatalf("Expected %d diagnostics, got %d (%v)", len(expectedDiagnostics), len(program.Diagnostics), program.Diagnostics)
	}

	for i, diagnostic := range program.Diagnostics {
		if diagnostic.Severity != expectedDiagnostics[i].Severity {
			t.Errorf("Expected diagnostic %d to have severity %d, got %d", i, expectedDiagnostics[i].Severity, diagnostic.Severity)
		}

		if diagnostic.Range.Start != expectedDiagnostics[i].Range.Start {
			t.Errorf("Expected diagnostic %d to start at %v, got %v", i, expectedDiagnostics[i].Range.Start, diagnostic.Range.Start)
		}

		if diagnostic.Range.End != expectedDiagnostics[i].Range.End {
			t.Errorf("Expected diagnostic %d to end at %v, got %v", i, expectedDiagnostics[i].Range.End, diagnostic.Range.End)
		}

		if diagnostic.Message != expectedDiagnostics[i].Message {
			t.Errorf("Expected diagnostic %d to be \"%s\", got \"%s\"", i, expectedDiagnostics[i].Message, diagnostic.Message)
		}
	}

	if len(program.Words) != len(expectedWords) {
		t.Fatalf("Expected %d words, got %d", len(expectedWords), len(program.Words))
	}

	for i, word := range program.Words {
		if word != expectedWords[i] {
			t.Errorf("Expected word %d to be 0x%08x, got 0x%08x", i, expectedWords[i], word)
		}
	}
}
