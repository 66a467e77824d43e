package assembler

import "strconv"

// Location is a snapshot of a position in the source. Offset and Column count
// characters, not bytes. Line and Column are 1-based.
type Location struct {
	Offset int
	Line   int
	Column int
}

func (l Location) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Position converts the location to a 0-based editor position.
func (l Location) Position() TextPosition {
	return TextPosition{Line: l.Line - 1, Char: l.Column - 1}
}

type Config struct {
	StrictLabels   bool // undefined or redefined labels are errors instead of warnings
	ExtendedGuards bool // accept `rN = 0` guards, encoded with the invert flag
}

type SpanKind int

const (
	SpanData SpanKind = iota
	SpanInstruction
)

// Span covers the words emitted by one statement.
type Span struct {
	Start uint32
	Count int
	Kind  SpanKind
	Line  int // 0-based
}

type AssembledResult struct {
	Words         []uint32
	Labels        map[string]uint32 // label name to word offset
	LabelToLine   map[string]int    // label name to 0-based line number
	AddressToLine map[uint32]int    // word offset to 0-based line number
	Spans         []Span
	Nodes         []Node
	Diagnostics   []Diagnostic
	fileContents  []string // each line of the file
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
}

// HasErrors reports whether any diagnostic has Error severity.
func (a *AssembledResult) HasErrors() bool {
	for _, d := range a.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
