package languageServer

import (
	"strings"

	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
)

// splitComment separates a line at its first '#'.
func splitComment(line string) (code, comment string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i], strings.TrimRight(line[i:], " \t\r")
	}
	return line, ""
}

// FormatSource rewrites source into the canonical layout: label lines flush
// left, statements behind exactly one tab, single spaces between tokens and
// no trailing whitespace. Comments are kept as written. A label indented with
// spaces is still a label and is moved back to the left edge.
func FormatSource(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		code, comment := splitComment(line)
		indented := len(code) > 0 && (code[0] == '\t' || code[0] == ' ') && !assembler.IsLabelLine(code)
		code = strings.Join(strings.Fields(code), " ")

		prefix := ""
		if indented {
			prefix = "\t"
		}

		switch {
		case code == "" && comment == "":
			lines[i] = ""
		case code == "":
			lines[i] = prefix + comment
		case comment == "":
			lines[i] = prefix + code
		default:
			lines[i] = prefix + code + " " + comment
		}
	}
	return strings.Join(lines, "\n")
}
