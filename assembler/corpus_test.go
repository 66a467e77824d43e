package assembler_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/asmtest"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
)

func TestCorpus(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := asmtest.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					for _, assertion := range tc.Assertions {
						checkAssertion(t, tc.Input, assertion)
					}
				})
			}
		})
	}
}

func checkAssertion(t *testing.T, input string, assertion asmtest.Assertion) {
	t.Helper()
	switch assertion.Type {
	case asmtest.AssertionWords:
		expected, err := assertion.Words()
		be.Err(t, err, nil)
		words, err := assembler.Compile(input)
		be.Err(t, err, nil)
		be.Equal(t, hexWords(words), hexWords(expected))

	case asmtest.AssertionAST:
		nodes, err := assembler.Parse(input)
		be.Err(t, err, nil)
		be.Equal(t, strings.TrimRight(assembler.FormatNodes(nodes), "\n"), assertion.Content)

	case asmtest.AssertionError:
		_, err := assembler.Compile(input)
		if err == nil {
			t.Fatalf("line %d: expected error %q, got none", assertion.Line, assertion.Content)
		}
		be.Equal(t, err.Error(), assertion.Content)
	}
}

func hexWords(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%08x", w)
	}
	return strings.Join(parts, " ")
}
