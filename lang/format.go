package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/dice/lang/token"
)

// Format writes the plan in canonical dice notation to the writer.
// With indent > 0, binary operators are separated from their operands by
// spaces. The output compiles to an equivalent plan.
func (p *Plan) Format(_ context.Context, w io.Writer, indent int) error {
	var sb strings.Builder

	if p.root != nil {
		formatNode(&sb, p.root, indent > 0)
	}

	_, err := fmt.Fprintln(w, sb.String())

	return err
}

// FormatJSON writes the plan as JSON to the writer.
func (p *Plan) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the plan as YAML to the writer.
func (p *Plan) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// String returns the plan in compact canonical notation.
func (p *Plan) String() string {
	if p == nil || p.root == nil {
		return ""
	}

	return p.root.String()
}

// String returns the subtree in compact canonical notation.
func (n *Node) String() string {
	var sb strings.Builder

	formatNode(&sb, n, false)

	return sb.String()
}

func formatNode(sb *strings.Builder, n *Node, spaced bool) {
	switch n.Type {
	case NodeOperand:
		formatOperand(sb, n.Operand)

	case NodeOperation:
		formatOperation(sb, n.Operation, spaced)

	default:
		sb.WriteString("<unknown>")
	}
}

func formatOperand(sb *strings.Builder, o *Operand) {
	switch o.Type {
	case OperandNumber:
		sb.WriteString(strconv.Itoa(o.Number))

	case OperandDice:
		if o.Dice.Quantity != 1 {
			sb.WriteString(strconv.Itoa(o.Dice.Quantity))
		}

		sb.WriteString(o.Dice.Label())

	default:
		sb.WriteString("<unknown>")
	}
}

func formatOperation(sb *strings.Builder, o *Operation, spaced bool) {
	switch len(o.Operands) {
	case 2:
		formatNode(sb, o.Operands[0], spaced)

		sep := infix(o.Operator)
		if spaced {
			sep = " " + sep + " "
		}

		sb.WriteString(sep)

		// Left-associative: a binary right operand needs grouping.
		formatGrouped(sb, o.Operands[1], spaced)

	case 1:
		formatGrouped(sb, o.Operands[0], spaced)
		sb.WriteString(modifier(o.Operator, o.Limit))

	default:
		sb.WriteString("<" + o.Operator + ">")
	}
}

// formatGrouped writes n, parenthesized if it is a binary operation.
func formatGrouped(sb *strings.Builder, n *Node, spaced bool) {
	if n.Type == NodeOperation && len(n.Operation.Operands) == 2 {
		sb.WriteByte('(')
		formatNode(sb, n, spaced)
		sb.WriteByte(')')

		return
	}

	formatNode(sb, n, spaced)
}

func infix(name string) string {
	switch name {
	case token.KindPlus.String():
		return "+"
	case token.KindMinus.String():
		return "-"
	default:
		return " " + name + " "
	}
}

// modifier returns the k/d surface form of a suffix operator.
func modifier(name string, limit *token.LimitSpec) string {
	var prefix string

	switch name {
	case token.KindKeep.String():
		prefix = "k"
	case token.KindDrop.String():
		prefix = "d"
	case token.KindChoice.String():
		return "c"
	default:
		return "<" + name + ">"
	}

	if limit == nil {
		return prefix + token.EdgeHigh.Letter()
	}

	s := prefix + limit.Edge.Letter()
	if limit.Quantity != 1 {
		s += strconv.Itoa(limit.Quantity)
	}

	return s
}

// FormatResult renders result values separated by spaces. Integral values
// print without a fraction and the undefined sentinel prints as NaN.
func FormatResult(result []float64) string {
	parts := make([]string, len(result))
	for i, v := range result {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}

	return strings.Join(parts, " ")
}
