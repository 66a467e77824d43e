package asmtest

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtractTestCases_Basic(t *testing.T) {
	markdown := `# Moves

## Test: register move
` + fence + `jcpu
	r0 -> r1
` + fence + `
` + fence + `ast
(to r0 r1)
` + fence + `
` + fence + `words
00001004
` + fence + `

## Test: immediate move
` + fence + `jcpu
	5 -> r1
` + fence + `
` + fence + `words
0x00001005 0x00000005
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "register move")
	be.Equal(t, tc1.Input, "\tr0 -> r1\n")
	be.Equal(t, len(tc1.Assertions), 2)
	be.Equal(t, tc1.Assertions[0].Type, AssertionAST)
	be.Equal(t, tc1.Assertions[0].Content, "(to r0 r1)")
	be.Equal(t, tc1.Assertions[1].Type, AssertionWords)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "immediate move")
	words, err := tc2.Assertions[0].Words()
	be.Err(t, err, nil)
	be.Equal(t, words, []uint32{0x1005, 5})
}

func TestExtractTestCases_IgnoresOtherHeadingsAndPlainFences(t *testing.T) {
	markdown := `# Notes

Some prose.

` + fence + `
not a test
` + fence + `

## Test: data
` + fence + `jcpu
	7
` + fence + `
` + fence + `error
1:1: nothing
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Assertions[0].Type, AssertionError)
	be.Equal(t, testCases[0].Assertions[0].Content, "1:1: nothing")
}

func TestExtractTestCases_Errors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		contains string
	}{
		{
			name:     "fence outside test",
			markdown: fence + "jcpu\n\tr0 -> r1\n" + fence,
			contains: "outside of a test case",
		},
		{
			name:     "missing input",
			markdown: "## Test: empty\n" + fence + "words\n00000000\n" + fence,
			contains: "has no jcpu fence",
		},
		{
			name:     "missing assertions",
			markdown: "## Test: lonely\n" + fence + "jcpu\n\t1\n" + fence,
			contains: "has no assertion fences",
		},
		{
			name:     "unknown fence",
			markdown: "## Test: odd\n" + fence + "python\nprint()\n" + fence,
			contains: `unknown fence language "python"`,
		},
		{
			name: "two inputs",
			markdown: "## Test: twice\n" + fence + "jcpu\n\t1\n" + fence + "\n" +
				fence + "jcpu\n\t2\n" + fence,
			contains: "multiple input fences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTestCases(tt.markdown)
			if err == nil {
				t.Fatalf("expected an error containing %q", tt.contains)
			}
			be.True(t, strings.Contains(err.Error(), tt.contains))
		})
	}
}

func TestAssertionWords_Invalid(t *testing.T) {
	_, err := Assertion{Type: AssertionWords, Content: "00001004 zz", Line: 12}.Words()
	if err == nil {
		t.Fatal("expected an error")
	}
	be.True(t, strings.HasPrefix(err.Error(), "line 12: invalid word \"zz\""))
}
