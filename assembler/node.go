package assembler

import (
	"strconv"
	"strings"
)

// Node is one element of the statement tree. Every variant owns its children;
// the set of variants is closed.
//
// String renders the node as an S-expression, e.g. `(to (or r0 r1) r2)`.
type Node interface {
	Loc() Location
	String() string
	node()
}

type base struct {
	loc Location
}

func (b base) Loc() Location { return b.loc }
func (base) node()           {}

// Leaves

type Number struct {
	base
	Value uint32
}

type Register struct {
	base
	Index uint8
}

type Identifier struct {
	base
	Name string
}

// Label is a label definition line.
type Label struct {
	base
	Name string
}

// Empty is the `_` placeholder operand.
type Empty struct {
	base
}

func (n *Number) String() string     { return strconv.FormatUint(uint64(n.Value), 10) }
func (n *Register) String() string   { return "r" + strconv.Itoa(int(n.Index)) }
func (n *Identifier) String() string { return n.Name }
func (n *Label) String() string      { return "(label " + n.Name + ")" }
func (n *Empty) String() string      { return "_" }

// Unary forms

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNegate
	OpReplicate
	OpMem8
	OpMem16
	OpMem32
)

var unaryNames = [...]string{
	OpNot:       "not",
	OpNegate:    "neg",
	OpReplicate: "rep",
	OpMem8:      "mem8",
	OpMem16:     "mem16",
	OpMem32:     "mem32",
}

func (op UnaryOp) String() string { return unaryNames[op] }

// IsMemory reports whether op is one of the sized memory wrappers.
func (op UnaryOp) IsMemory() bool {
	return op == OpMem8 || op == OpMem16 || op == OpMem32
}

type Unary struct {
	base
	Op UnaryOp
	X  Node
}

func (n *Unary) String() string {
	return "(" + n.Op.String() + " " + n.X.String() + ")"
}

// Binary forms

type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpXor
	OpAdd
	OpSub
	OpShiftLeft
	OpShiftRight
	OpMul
	OpDiv
	OpEqual
	OpLess
)

var binaryNames = [...]string{
	OpOr:         "or",
	OpAnd:        "and",
	OpXor:        "xor",
	OpAdd:        "add",
	OpSub:        "sub",
	OpShiftLeft:  "shl",
	OpShiftRight: "shr",
	OpMul:        "mul",
	OpDiv:        "div",
	OpEqual:      "eq",
	OpLess:       "lt",
}

func (op BinaryOp) String() string { return binaryNames[op] }

type Binary struct {
	base
	Op          BinaryOp
	Left, Right Node
}

func (n *Binary) String() string {
	return "(" + n.Op.String() + " " + n.Left.String() + " " + n.Right.String() + ")"
}

// Statement forms

// OperandList holds two or more comma separated operands.
type OperandList struct {
	base
	Items []Node
}

func (n *OperandList) String() string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		parts[i] = item.String()
	}
	return "(opers " + strings.Join(parts, " ") + ")"
}

// Assign is `Source -> Dest`.
type Assign struct {
	base
	Source, Dest Node
}

func (n *Assign) String() string {
	return "(to " + n.Source.String() + " " + n.Dest.String() + ")"
}

// Conditional is `Instruction ? Guard`.
type Conditional struct {
	base
	Instruction, Guard Node
}

func (n *Conditional) String() string {
	return "(cond " + n.Instruction.String() + " " + n.Guard.String() + ")"
}

// FormatNodes renders a statement list one S-expression per line.
func FormatNodes(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
