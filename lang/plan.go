package lang

import (
	"log/slog"

	"github.com/ardnew/dice/lang/op"
	"github.com/ardnew/dice/lang/token"
)

// Plan is a compiled dice expression.
//
// A Plan is read-only once [Compile] returns it. It may be cached and
// executed any number of times, concurrently, against different outcomes.
type Plan struct {
	notation string
	root     *Node
	dice     int
}

// Notation returns the source the plan was compiled from.
func (p *Plan) Notation() string { return p.notation }

// Root returns a copy of the plan tree. Plans are shared through the compile
// cache, so changes to the copy do not affect the plan.
func (p *Plan) Root() *Node { return p.root.clone() }

// DiceCount returns the number of individual dice the plan consumes.
func (p *Plan) DiceCount() int { return p.dice }

// NodeType indicates which variant a [Node] holds.
type NodeType int

const (
	// NodeOperand is a leaf: a number or a dice group.
	NodeOperand NodeType = iota

	// NodeOperation applies an operator to one or two child nodes.
	NodeOperation
)

// String returns a string representation of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeOperand:
		return "Operand"

	case NodeOperation:
		return "Operation"

	default:
		return "Unknown"
	}
}

// Node is a plan tree node.
type Node struct {
	Type NodeType
	// Exactly one of these will be set based on Type
	Operand   *Operand
	Operation *Operation
}

// clone returns a deep copy of the subtree rooted at n.
func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{Type: n.Type}

	if n.Operand != nil {
		operand := *n.Operand
		c.Operand = &operand
	}

	if n.Operation != nil {
		operation := *n.Operation

		if n.Operation.Limit != nil {
			limit := *n.Operation.Limit
			operation.Limit = &limit
		}

		operation.Operands = make([]*Node, len(n.Operation.Operands))
		for i, child := range n.Operation.Operands {
			operation.Operands[i] = child.clone()
		}

		c.Operation = &operation
	}

	return c
}

// OperandType indicates the kind of value an [Operand] holds.
type OperandType int

const (
	OperandNumber OperandType = iota
	OperandDice
)

// String returns a string representation of the operand type.
func (t OperandType) String() string {
	switch t {
	case OperandNumber:
		return "number"

	case OperandDice:
		return "dice"

	default:
		return "unknown"
	}
}

// Operand is a plan leaf.
type Operand struct {
	Type   OperandType
	Number int            // OperandNumber only
	Dice   token.DiceSpec // OperandDice only
}

// Operation is an internal plan node. Operands holds one child for suffix
// modifiers and two for binary operators.
type Operation struct {
	Operator string
	Limit    *token.LimitSpec // keep and drop only
	Operands []*Node
	apply    op.Transform
}

// builder reduces a postfix token stream to a plan tree. A builder belongs
// to a single compilation.
type builder struct {
	registry op.Registry
	stack    []*Node
	dice     int
}

// build consumes postfix tokens and returns the single remaining node.
func (b *builder) build(tokens []token.Token) (*Node, error) {
	for _, tok := range tokens {
		var err error

		switch tok.Kind {
		case token.KindNumber:
			b.push(&Node{
				Type:    NodeOperand,
				Operand: &Operand{Type: OperandNumber, Number: tok.Number},
			})

		case token.KindDice:
			b.dice += tok.Dice.Quantity
			b.push(&Node{
				Type:    NodeOperand,
				Operand: &Operand{Type: OperandDice, Dice: tok.Dice},
			})

		case token.KindPlus, token.KindMinus:
			err = b.binary(tok)

		case token.KindKeep, token.KindDrop:
			limit := tok.Limit
			err = b.suffix(tok, &limit)

		case token.KindChoice:
			err = b.suffix(tok, nil)

		default:
			err = ErrParse.With(
				slog.String("token", tok.Text),
				slog.Int("offset", tok.Offset),
			)
		}

		if err != nil {
			return nil, err
		}
	}

	if len(b.stack) != 1 {
		return nil, ErrParse.With(slog.Int("residual_nodes", len(b.stack)))
	}

	return b.stack[0], nil
}

func (b *builder) push(n *Node) { b.stack = append(b.stack, n) }

func (b *builder) pop() (*Node, bool) {
	if len(b.stack) == 0 {
		return nil, false
	}

	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	return n, true
}

// binary reduces the two topmost nodes with an infix operator.
func (b *builder) binary(tok token.Token) error {
	rhs, ok := b.pop()
	if !ok {
		return underflow(tok)
	}

	lhs, ok := b.pop()
	if !ok {
		return underflow(tok)
	}

	fn, err := b.transform(tok.Kind.String(), nil)
	if err != nil {
		return err
	}

	b.push(&Node{
		Type: NodeOperation,
		Operation: &Operation{
			Operator: tok.Kind.String(),
			Operands: []*Node{lhs, rhs},
			apply:    fn,
		},
	})

	return nil
}

// suffix wraps the topmost node with a keep, drop, or choice modifier. A
// dice operand beneath a modifier stops collapsing so that its individual
// values reach the modifier.
func (b *builder) suffix(tok token.Token, limit *token.LimitSpec) error {
	operand, ok := b.pop()
	if !ok {
		return underflow(tok)
	}

	if operand.Type == NodeOperand && operand.Operand.Type == OperandDice {
		operand.Operand.Dice.Collapse = false
	}

	fn, err := b.transform(tok.Kind.String(), limit)
	if err != nil {
		return err
	}

	b.push(&Node{
		Type: NodeOperation,
		Operation: &Operation{
			Operator: tok.Kind.String(),
			Limit:    limit,
			Operands: []*Node{operand},
			apply:    fn,
		},
	})

	return nil
}

func (b *builder) transform(name string, limit *token.LimitSpec) (op.Transform, error) {
	factory, ok := b.registry.Lookup(name)
	if !ok {
		return nil, unknownOperator(name, b.registry)
	}

	return factory(limit), nil
}

func underflow(tok token.Token) error {
	return ErrParse.With(
		slog.String("operator", tok.Kind.String()),
		slog.String("token", tok.Text),
		slog.Int("offset", tok.Offset),
		slog.String("issue", "missing operand"),
	)
}
