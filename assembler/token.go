package assembler

import "fmt"

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	TokenEOF TokenKind = iota // end of input, returned forever once reached

	TokenLine // \n
	TokenTab  // \t at the start of a statement line

	// Payload-carrying
	TokenIdentifier // label name
	TokenNumber     // unsigned decimal literal
	TokenRegister   // r0..r15
	TokenEmpty      // _

	// Memory access keywords
	TokenMem8  // mem8
	TokenMem16 // mem16
	TokenMem32 // mem32

	// Operators
	TokenNot        // !
	TokenOr         // |
	TokenAnd        // &
	TokenXor        // ^
	TokenAdd        // +
	TokenSub        // -
	TokenMul        // *
	TokenDiv        // /
	TokenEqual      // =
	TokenLess       // <
	TokenGreater    // >
	TokenShiftLeft  // <<
	TokenShiftRight // >>

	// Punctuation
	TokenComma        // ,
	TokenArrow        // ->
	TokenQuestion     // ?
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
)

var tokenNames = map[TokenKind]string{
	TokenEOF:          "end of file",
	TokenLine:         "line break",
	TokenTab:          "tab",
	TokenIdentifier:   "identifier",
	TokenNumber:       "number",
	TokenRegister:     "register",
	TokenEmpty:        "_",
	TokenMem8:         "mem8",
	TokenMem16:        "mem16",
	TokenMem32:        "mem32",
	TokenNot:          "!",
	TokenOr:           "|",
	TokenAnd:          "&",
	TokenXor:          "^",
	TokenAdd:          "+",
	TokenSub:          "-",
	TokenMul:          "*",
	TokenDiv:          "/",
	TokenEqual:        "=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenShiftLeft:    "<<",
	TokenShiftRight:   ">>",
	TokenComma:        ",",
	TokenArrow:        "->",
	TokenQuestion:     "?",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical unit. Text is set for identifiers, Value for numbers
// and registers.
type Token struct {
	Kind  TokenKind
	Text  string
	Value uint32
	Loc   Location
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return t.Text
	case TokenNumber:
		return fmt.Sprintf("%d", t.Value)
	case TokenRegister:
		return fmt.Sprintf("r%d", t.Value)
	}
	return t.Kind.String()
}

var keywords = map[string]TokenKind{
	"_":     TokenEmpty,
	"mem8":  TokenMem8,
	"mem16": TokenMem16,
	"mem32": TokenMem32,
}
