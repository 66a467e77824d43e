package assembler

import "sort"

// Generator walks the statement list once, front to back, selecting and
// encoding instructions. It owns the symbol table, the patch queue and the
// output buffer for the duration of one Generate call.
type Generator struct {
	config Config

	words  []uint32
	labels map[string]uint32   // resolved label addresses
	queue  map[string][]uint32 // label name to word offsets waiting for it

	labelLocs map[string]Location
	firstUse  map[string]Location
	used      map[string]bool
	spans     []Span
	warnings  []Diagnostic
}

func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

var binaryOpcodes = map[BinaryOp]Opcode{
	OpOr:         OpcodeOr,
	OpAnd:        OpcodeAnd,
	OpXor:        OpcodeXor,
	OpAdd:        OpcodeAdd,
	OpSub:        OpcodeSub,
	OpLess:       OpcodeLess,
	OpShiftLeft:  OpcodeShiftLeft,
	OpShiftRight: OpcodeShiftRight,
	OpMul:        OpcodeMul,
	OpDiv:        OpcodeDiv,
}

// negated binary forms that have their own opcode
var fusedNotOpcodes = map[BinaryOp]Opcode{
	OpOr:   OpcodeNor,
	OpAnd:  OpcodeNand,
	OpXor:  OpcodeXnor,
	OpLess: OpcodeNotLess,
}

var loadOpcodes = map[UnaryOp]Opcode{
	OpMem8:  OpcodeLoad8,
	OpMem16: OpcodeLoad16,
	OpMem32: OpcodeLoad32,
}

var storeOpcodes = map[UnaryOp]Opcode{
	OpMem8:  OpcodeStore8,
	OpMem16: OpcodeStore16,
	OpMem32: OpcodeStore32,
}

func (g *Generator) reset() {
	g.words = []uint32{}
	g.labels = make(map[string]uint32)
	g.queue = make(map[string][]uint32)
	g.labelLocs = make(map[string]Location)
	g.firstUse = make(map[string]Location)
	g.used = make(map[string]bool)
	g.spans = nil
	g.warnings = nil
}

func (g *Generator) cursor() uint32 {
	return uint32(len(g.words))
}

// Generate produces the word stream for nodes. Any failure aborts the whole
// run and no words are returned. State is reset on every call, so generating
// the same nodes twice gives identical output.
func (g *Generator) Generate(nodes []Node) ([]uint32, error) {
	g.reset()
	for _, n := range nodes {
		if err := g.statement(n); err != nil {
			return nil, err
		}
	}
	if err := g.finish(); err != nil {
		return nil, err
	}
	return g.words, nil
}

// Labels returns the symbol table of the last Generate call.
func (g *Generator) Labels() map[string]uint32 { return g.labels }

// Spans returns the words emitted per statement by the last Generate call.
func (g *Generator) Spans() []Span { return g.spans }

// Warnings returns non-fatal diagnostics from the last Generate call.
func (g *Generator) Warnings() []Diagnostic { return g.warnings }

func (g *Generator) statement(n Node) error {
	switch n := n.(type) {
	case *Label:
		return g.define(n)
	case *Number:
		g.emitData(n.Value, n)
		return nil
	case *Identifier:
		g.emitData(g.resolve(n, g.cursor()), n)
		return nil
	case *Unary:
		if num, ok := n.X.(*Number); ok && n.Op == OpNegate {
			g.emitData(-num.Value, n)
			return nil
		}
	case *Assign:
		inst, refs, err := g.selectAssign(n)
		if err != nil {
			return err
		}
		g.emitInstruction(inst, refs, n)
		return nil
	case *Conditional:
		assign, ok := n.Instruction.(*Assign)
		if !ok {
			return Errors.InvalidInstruction(n)
		}
		inst, refs, err := g.selectAssign(assign)
		if err != nil {
			return err
		}
		if err := g.guard(inst, n.Guard); err != nil {
			return err
		}
		g.emitInstruction(inst, refs, n)
		return nil
	}
	return Errors.InvalidInstruction(n)
}

func (g *Generator) emitData(word uint32, n Node) {
	g.spans = append(g.spans, Span{Start: g.cursor(), Count: 1, Kind: SpanData, Line: n.Loc().Line - 1})
	g.words = append(g.words, word)
}

func (g *Generator) emitInstruction(inst *Instruction, refs [2]*Identifier, n Node) {
	at := g.cursor()
	for slot, ref := range refs {
		if ref != nil {
			inst.Imm[slot] = g.resolve(ref, at+inst.ImmediateOffset(slot))
		}
	}
	words := inst.Encode()
	g.spans = append(g.spans, Span{Start: at, Count: len(words), Kind: SpanInstruction, Line: n.Loc().Line - 1})
	g.words = append(g.words, words...)
}

// resolve returns the address of a label, or queues offset to be patched when
// the label is defined and returns 0.
func (g *Generator) resolve(ref *Identifier, offset uint32) uint32 {
	g.used[ref.Name] = true
	if addr, ok := g.labels[ref.Name]; ok {
		return addr
	}
	if _, seen := g.firstUse[ref.Name]; !seen {
		g.firstUse[ref.Name] = ref.Loc()
	}
	g.queue[ref.Name] = append(g.queue[ref.Name], offset)
	return 0
}

func (g *Generator) define(label *Label) error {
	if prev, ok := g.labels[label.Name]; ok {
		if g.config.StrictLabels {
			return Errors.RedefinedLabel(label.Name, label.Loc())
		}
		g.warnings = append(g.warnings, Warnings.RedefinedLabel(label.Name, prev, label.Loc()))
	}

	addr := g.cursor()
	g.labels[label.Name] = addr
	g.labelLocs[label.Name] = label.Loc()
	for _, offset := range g.queue[label.Name] {
		g.words[offset] = addr
	}
	delete(g.queue, label.Name)
	return nil
}

// finish reports labels still pending (left as 0) and labels never referenced.
func (g *Generator) finish() error {
	pending := make([]string, 0, len(g.queue))
	for name := range g.queue {
		pending = append(pending, name)
	}
	sort.Strings(pending)
	for _, name := range pending {
		if g.config.StrictLabels {
			return Errors.UndefinedLabel(name, g.firstUse[name])
		}
		g.warnings = append(g.warnings, Warnings.UndefinedLabel(name, g.firstUse[name]))
	}

	unused := make([]string, 0)
	for name := range g.labels {
		if !g.used[name] {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	for _, name := range unused {
		g.warnings = append(g.warnings, Warnings.UnusedLabel(name, g.labelLocs[name]))
	}
	return nil
}

// operand fills source slot from a leaf node.
func (g *Generator) operand(inst *Instruction, refs *[2]*Identifier, slot int, n Node) error {
	switch n := n.(type) {
	case *Number:
		inst.HasImm[slot] = true
		inst.Imm[slot] = n.Value
	case *Register:
		inst.Src[slot] = n.Index
	case *Identifier:
		inst.HasImm[slot] = true
		refs[slot] = n
	case *Empty:
	default:
		return Errors.InvalidInstruction(n)
	}
	return nil
}

func (g *Generator) destination(inst *Instruction, n Node) error {
	items := []Node{n}
	if list, ok := n.(*OperandList); ok {
		items = list.Items
	}
	if len(items) > 2 {
		return Errors.InvalidInstruction(n)
	}
	for slot, item := range items {
		switch item := item.(type) {
		case *Register:
			inst.Dest[slot] = item.Index
			inst.Write[slot] = true
		case *Empty:
		default:
			return Errors.InvalidInstruction(item)
		}
	}
	return nil
}

func (g *Generator) selectAssign(a *Assign) (*Instruction, [2]*Identifier, error) {
	inst := &Instruction{}
	var refs [2]*Identifier

	if mem, ok := a.Dest.(*Unary); ok && mem.Op.IsMemory() {
		inst.Opcode = storeOpcodes[mem.Op]
		if err := g.operand(inst, &refs, 0, mem.X); err != nil {
			return nil, refs, err
		}
		if err := g.operand(inst, &refs, 1, a.Source); err != nil {
			return nil, refs, err
		}
		return inst, refs, nil
	}

	if err := g.destination(inst, a.Dest); err != nil {
		return nil, refs, err
	}
	if err := g.selectSource(inst, &refs, a.Source); err != nil {
		return nil, refs, err
	}
	return inst, refs, nil
}

// selectSource picks the opcode from the shape of the value being assigned.
func (g *Generator) selectSource(inst *Instruction, refs *[2]*Identifier, n Node) error {
	switch src := n.(type) {
	case *Number, *Register, *Identifier:
		inst.Opcode = OpcodeMove
		return g.operand(inst, refs, 0, src)

	case *Binary:
		op, ok := binaryOpcodes[src.Op]
		if !ok {
			return Errors.InvalidInstruction(src)
		}
		inst.Opcode = op
		return g.binaryOperands(inst, refs, src)

	case *Unary:
		switch src.Op {
		case OpNot:
			if inner, ok := src.X.(*Binary); ok {
				op, ok := fusedNotOpcodes[inner.Op]
				if !ok {
					return Errors.InvalidInstruction(src)
				}
				inst.Opcode = op
				return g.binaryOperands(inst, refs, inner)
			}
			inst.Opcode = OpcodeNot
		case OpNegate:
			inst.Opcode = OpcodeNegate
		case OpReplicate:
			inst.Opcode = OpcodeReplicate
		default:
			inst.Opcode = loadOpcodes[src.Op]
		}
		return g.operand(inst, refs, 0, src.X)
	}
	return Errors.InvalidInstruction(n)
}

func (g *Generator) binaryOperands(inst *Instruction, refs *[2]*Identifier, b *Binary) error {
	if err := g.operand(inst, refs, 0, b.Left); err != nil {
		return err
	}
	return g.operand(inst, refs, 1, b.Right)
}

func isZero(n Node) bool {
	num, ok := n.(*Number)
	return ok && num.Value == 0
}

// guard accepts `!(rN = 0)` or `!(0 = rN)`: execute when rN is non-zero.
// With ExtendedGuards, `rN = 0` sets the invert flag as well.
func (g *Generator) guard(inst *Instruction, n Node) error {
	cond := n
	invert := false
	if not, ok := n.(*Unary); ok && not.Op == OpNot {
		cond = not.X
	} else if g.config.ExtendedGuards {
		invert = true
	} else {
		return Errors.InvalidGuard(n)
	}

	eq, ok := cond.(*Binary)
	if !ok || eq.Op != OpEqual {
		return Errors.InvalidGuard(n)
	}
	var reg *Register
	if r, ok := eq.Left.(*Register); ok && isZero(eq.Right) {
		reg = r
	} else if r, ok := eq.Right.(*Register); ok && isZero(eq.Left) {
		reg = r
	} else {
		return Errors.InvalidGuard(n)
	}

	inst.CondExecute = true
	inst.CondInvert = invert
	inst.Cond = reg.Index
	return nil
}
