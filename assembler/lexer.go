package assembler

import (
	"strconv"
	"unicode/utf8"
)

// Lexer produces one token per call to Next. Spaces are skipped; tabs and line
// breaks are tokens because they decide the shape of a line.
type Lexer struct {
	src       string
	pos       int // byte index into src; loc counts characters
	loc       Location
	lineStart bool // no token has been produced on the current line yet
}

func NewLexer(src string) *Lexer {
	return &Lexer{
		src:       src,
		loc:       Location{Offset: 0, Line: 1, Column: 1},
		lineStart: true,
	}
}

var punctuation = map[byte]TokenKind{
	'!': TokenNot,
	'|': TokenOr,
	'&': TokenAnd,
	'^': TokenXor,
	'+': TokenAdd,
	'*': TokenMul,
	'/': TokenDiv,
	',': TokenComma,
	'=': TokenEqual,
	'?': TokenQuestion,
	'(': TokenLeftParen,
	')': TokenRightParen,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	'\t': TokenTab,
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() {
	if l.atEnd() {
		return
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if r == '\n' {
		l.loc.Line++
		l.loc.Column = 1
	} else {
		l.loc.Column++
	}
	l.loc.Offset++
	l.pos += size
}

func (l *Lexer) token(kind TokenKind, start Location) Token {
	l.lineStart = false
	return Token{Kind: kind, Loc: start}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) digits() string {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.src[start:l.pos]
}

// Next returns the next token. Once the input is exhausted every call returns
// an EOF token.
func (l *Lexer) Next() (Token, error) {
	for {
		if l.atEnd() {
			return Token{Kind: TokenEOF, Loc: l.loc}, nil
		}

		start := l.loc
		c := l.peek()
		switch {
		case c == ' ' || c == '\r':
			l.advance()
			continue

		case c == '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
			// a comment-only line disappears with its line break, a trailing
			// comment leaves the break to terminate the statement
			if l.lineStart {
				l.advance()
			}
			continue

		case c == '\n':
			l.advance()
			l.lineStart = true
			return Token{Kind: TokenLine, Loc: start}, nil

		case c == 'r' && isDigit(l.peekNext()):
			l.advance()
			digitsLoc := l.loc
			digits := l.digits()
			value, err := strconv.ParseUint(digits, 10, 8)
			if err != nil || value > 15 {
				return Token{}, Errors.InvalidRegister(digits, digitsLoc)
			}
			tok := l.token(TokenRegister, start)
			tok.Value = uint32(value)
			return tok, nil

		case isIdentStart(c):
			begin := l.pos
			for isIdentPart(l.peek()) {
				l.advance()
			}
			text := l.src[begin:l.pos]
			if kind, ok := keywords[text]; ok {
				return l.token(kind, start), nil
			}
			tok := l.token(TokenIdentifier, start)
			tok.Text = text
			return tok, nil

		case isDigit(c):
			digits := l.digits()
			value, err := strconv.ParseUint(digits, 10, 32)
			if err != nil {
				return Token{}, Errors.NumberOutOfRange(digits, start)
			}
			tok := l.token(TokenNumber, start)
			tok.Value = uint32(value)
			return tok, nil

		case c == '-':
			l.advance()
			if l.peek() == '>' {
				l.advance()
				return l.token(TokenArrow, start), nil
			}
			return l.token(TokenSub, start), nil

		case c == '<':
			l.advance()
			if l.peek() == '<' {
				l.advance()
				return l.token(TokenShiftLeft, start), nil
			}
			return l.token(TokenLess, start), nil

		case c == '>':
			l.advance()
			if l.peek() == '>' {
				l.advance()
				return l.token(TokenShiftRight, start), nil
			}
			return l.token(TokenGreater, start), nil
		}

		if kind, ok := punctuation[c]; ok {
			l.advance()
			return l.token(kind, start), nil
		}

		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		return Token{}, Errors.InvalidCharacter(r, start)
	}
}

// Tokenize lexes the whole source, ending with the EOF token.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

// IsLabelLine reports whether line, a single source line, defines a label:
// one identifier with no tab in front of it. Spaces and comments don't count.
func IsLabelLine(line string) bool {
	tokens, err := Tokenize(line)
	return err == nil && len(tokens) == 2 && tokens[0].Kind == TokenIdentifier
}
