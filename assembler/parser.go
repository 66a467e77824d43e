package assembler

// Parser is a recursive descent parser holding one token of lookahead.
type Parser struct {
	lexer *Lexer
	cur   Token
}

// Parse turns source text into the ordered statement list. It stops at the
// first lexical or syntax error.
func Parse(src string) ([]Node, error) {
	p := &Parser{lexer: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

var chainOperators = map[TokenKind]BinaryOp{
	TokenOr:         OpOr,
	TokenAnd:        OpAnd,
	TokenXor:        OpXor,
	TokenAdd:        OpAdd,
	TokenSub:        OpSub,
	TokenMul:        OpMul,
	TokenDiv:        OpDiv,
	TokenEqual:      OpEqual,
	TokenLess:       OpLess,
	TokenGreater:    OpLess, // operands swapped
	TokenShiftLeft:  OpShiftLeft,
	TokenShiftRight: OpShiftRight,
}

var prefixOperators = map[TokenKind]UnaryOp{
	TokenNot: OpNot,
	TokenSub: OpNegate,
	TokenDiv: OpReplicate,
}

var memoryKeywords = map[TokenKind]UnaryOp{
	TokenMem8:  OpMem8,
	TokenMem16: OpMem16,
	TokenMem32: OpMem32,
}

func startsStatement(kind TokenKind) bool {
	switch kind {
	case TokenNumber, TokenIdentifier, TokenRegister, TokenEmpty,
		TokenNot, TokenSub, TokenDiv,
		TokenMem8, TokenMem16, TokenMem32,
		TokenLeftParen, TokenLeftBracket:
		return true
	}
	return false
}

// parseParen parses `( operands )`.
func (p *Parser) parseParen() (Node, error) {
	if p.cur.Kind != TokenLeftParen {
		return nil, Errors.ExpectedAtom(p.cur)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseOperands()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokenRightParen {
		return nil, Errors.ExpectedParen(p.cur)
	}
	return n, p.advance()
}

func (p *Parser) parseAtom() (Node, error) {
	tok := p.cur
	switch tok.Kind {
	case TokenNumber:
		return &Number{base{tok.Loc}, tok.Value}, p.advance()
	case TokenIdentifier:
		return &Identifier{base{tok.Loc}, tok.Text}, p.advance()
	case TokenRegister:
		return &Register{base{tok.Loc}, uint8(tok.Value)}, p.advance()
	case TokenEmpty:
		return &Empty{base{tok.Loc}}, p.advance()
	case TokenLeftBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseOperands()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != TokenRightBracket {
			return nil, Errors.ExpectedBracket(p.cur)
		}
		return &Unary{base{tok.Loc}, OpMem32, x}, p.advance()
	}

	if op, ok := prefixOperators[tok.Kind]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &Unary{base{tok.Loc}, op, x}, nil
	}

	if op, ok := memoryKeywords[tok.Kind]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseParen()
		if err != nil {
			return nil, err
		}
		return &Unary{base{tok.Loc}, op, x}, nil
	}

	return p.parseParen()
}

// parseChain folds atoms left to right. There is no precedence:
// `a + b * c` is `(a + b) * c`.
func (p *Parser) parseChain() (Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := chainOperators[p.cur.Kind]
		if !ok {
			return left, nil
		}
		swap := p.cur.Kind == TokenGreater
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if swap {
			left = &Binary{base{left.Loc()}, op, right, left}
		} else {
			left = &Binary{base{left.Loc()}, op, left, right}
		}
	}
}

func (p *Parser) parseOperands() (Node, error) {
	first, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokenComma {
		return first, nil
	}
	list := &OperandList{base: base{first.Loc()}, Items: []Node{first}}
	for p.cur.Kind == TokenComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, n)
	}
	return list, nil
}

func (p *Parser) parseStatement() (Node, error) {
	n, err := p.parseOperands()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == TokenArrow {
		if err := p.advance(); err != nil {
			return nil, err
		}
		dest, err := p.parseOperands()
		if err != nil {
			return nil, err
		}
		n = &Assign{base{n.Loc()}, n, dest}
	}
	if p.cur.Kind == TokenQuestion {
		if err := p.advance(); err != nil {
			return nil, err
		}
		guard, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		n = &Conditional{base{n.Loc()}, n, guard}
	}
	return n, nil
}

// endLine consumes the line break that ends a statement or label line.
func (p *Parser) endLine() error {
	switch p.cur.Kind {
	case TokenLine:
		return p.advance()
	case TokenEOF:
		return nil
	}
	return Errors.ExpectedLine(p.cur)
}

func (p *Parser) parseProgram() ([]Node, error) {
	nodes := []Node{}
	for {
		switch p.cur.Kind {
		case TokenEOF:
			return nodes, nil

		case TokenLine:
			if err := p.advance(); err != nil {
				return nil, err
			}

		case TokenTab:
			for p.cur.Kind == TokenTab {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			if p.cur.Kind == TokenLine || p.cur.Kind == TokenEOF {
				// whitespace-only line
				continue
			}
			if !startsStatement(p.cur.Kind) {
				return nil, Errors.ExpectedStatement(p.cur)
			}
			n, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
			if err := p.endLine(); err != nil {
				return nil, err
			}

		case TokenIdentifier:
			nodes = append(nodes, &Label{base{p.cur.Loc}, p.cur.Text})
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.endLine(); err != nil {
				return nil, err
			}

		default:
			return nil, Errors.ExpectedProgram(p.cur)
		}
	}
}
