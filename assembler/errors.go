package assembler

import (
	"errors"
	"fmt"
	"strconv"
)

type ErrorKind int

const (
	// lexer
	ErrInvalidCharacter ErrorKind = iota
	ErrInvalidRegister
	ErrNumberOutOfRange

	// parser
	ErrExpectedProgram
	ErrExpectedLine
	ErrExpectedStatement
	ErrExpectedAtom
	ErrExpectedParen
	ErrExpectedBracket

	// generator
	ErrInvalidInstruction
	ErrInvalidGuard
	ErrUndefinedLabel
	ErrRedefinedLabel
)

var errorKindText = map[ErrorKind]string{
	ErrInvalidCharacter:   "invalid character",
	ErrInvalidRegister:    "register out of range (r0-r15)",
	ErrNumberOutOfRange:   "number literal out of range",
	ErrExpectedProgram:    "expected a tab-indented statement or a label",
	ErrExpectedLine:       "expected end of line",
	ErrExpectedStatement:  "expected statement after tab",
	ErrExpectedAtom:       "expected operand",
	ErrExpectedParen:      "expected ')'",
	ErrExpectedBracket:    "expected ']'",
	ErrInvalidInstruction: "invalid instruction",
	ErrInvalidGuard:       "invalid condition, expected !(rN = 0)",
	ErrUndefinedLabel:     "undefined label",
	ErrRedefinedLabel:     "label redefined",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// AssemblyError is the single diagnostic that aborts a compilation.
type AssemblyError struct {
	Kind   ErrorKind
	Loc    Location
	Length int // characters covered, at least 1
	Detail string
}

func (e *AssemblyError) Error() string {
	if e.Detail == "" {
		return e.Loc.String() + ": " + e.Kind.String()
	}
	return e.Loc.String() + ": " + e.Kind.String() + ": " + e.Detail
}

// Diagnostic converts the error into an editor diagnostic.
func (e *AssemblyError) Diagnostic() Diagnostic {
	start := e.Loc.Position()
	length := e.Length
	if length < 1 {
		length = 1
	}
	message := e.Kind.String()
	if e.Detail != "" {
		message += ": " + e.Detail
	}
	return Diagnostic{
		Range:    TextRange{Start: start, End: TextPosition{Line: start.Line, Char: start.Char + length}},
		Message:  message,
		Source:   "Assembler",
		Severity: Error,
	}
}

// IsKind reports whether err is an AssemblyError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var asmErr *AssemblyError
	return errors.As(err, &asmErr) && asmErr.Kind == kind
}

// Errors
type assemblyError struct{}

var Errors assemblyError

func (assemblyError) InvalidCharacter(r rune, loc Location) *AssemblyError {
	return &AssemblyError{Kind: ErrInvalidCharacter, Loc: loc, Length: 1, Detail: strconv.QuoteRune(r)}
}

func (assemblyError) InvalidRegister(digits string, loc Location) *AssemblyError {
	return &AssemblyError{Kind: ErrInvalidRegister, Loc: loc, Length: len(digits), Detail: "r" + digits}
}

func (assemblyError) NumberOutOfRange(digits string, loc Location) *AssemblyError {
	return &AssemblyError{Kind: ErrNumberOutOfRange, Loc: loc, Length: len(digits), Detail: digits}
}

func (assemblyError) ExpectedProgram(got Token) *AssemblyError {
	return &AssemblyError{Kind: ErrExpectedProgram, Loc: got.Loc, Length: 1, Detail: "got " + got.String()}
}

func (assemblyError) ExpectedLine(got Token) *AssemblyError {
	return &AssemblyError{Kind: ErrExpectedLine, Loc: got.Loc, Length: 1, Detail: "got " + got.String()}
}

func (assemblyError) ExpectedStatement(got Token) *AssemblyError {
	return &AssemblyError{Kind: ErrExpectedStatement, Loc: got.Loc, Length: 1, Detail: "got " + got.String()}
}

func (assemblyError) ExpectedAtom(got Token) *AssemblyError {
	return &AssemblyError{Kind: ErrExpectedAtom, Loc: got.Loc, Length: 1, Detail: "got " + got.String()}
}

func (assemblyError) ExpectedParen(got Token) *AssemblyError {
	return &AssemblyError{Kind: ErrExpectedParen, Loc: got.Loc, Length: 1, Detail: "got " + got.String()}
}

func (assemblyError) ExpectedBracket(got Token) *AssemblyError {
	return &AssemblyError{Kind: ErrExpectedBracket, Loc: got.Loc, Length: 1, Detail: "got " + got.String()}
}

func (assemblyError) InvalidInstruction(n Node) *AssemblyError {
	return &AssemblyError{Kind: ErrInvalidInstruction, Loc: n.Loc(), Length: 1, Detail: n.String()}
}

func (assemblyError) InvalidGuard(n Node) *AssemblyError {
	return &AssemblyError{Kind: ErrInvalidGuard, Loc: n.Loc(), Length: 1, Detail: n.String()}
}

func (assemblyError) UndefinedLabel(name string, loc Location) *AssemblyError {
	return &AssemblyError{Kind: ErrUndefinedLabel, Loc: loc, Length: len(name), Detail: name}
}

func (assemblyError) RedefinedLabel(name string, loc Location) *AssemblyError {
	return &AssemblyError{Kind: ErrRedefinedLabel, Loc: loc, Length: len(name), Detail: name}
}

// Warnings
type assemblyWarning struct{}

var Warnings assemblyWarning

func warningAt(loc Location, length int, message string) Diagnostic {
	start := loc.Position()
	return Diagnostic{
		Range:    TextRange{Start: start, End: TextPosition{Line: start.Line, Char: start.Char + length}},
		Message:  message,
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) UnusedLabel(label string, loc Location) Diagnostic {
	return warningAt(loc, len(label), "Unused label: \""+label+"\"")
}

func (assemblyWarning) UndefinedLabel(label string, loc Location) Diagnostic {
	return warningAt(loc, len(label), fmt.Sprintf("Undefined label: %q, resolved to address 0", label))
}

func (assemblyWarning) RedefinedLabel(label string, previous uint32, loc Location) Diagnostic {
	return warningAt(loc, len(label), fmt.Sprintf("Label %q redefined, previous address %d", label, previous))
}
