package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Plan.
func (p *Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the plan to a native Go map structure.
func (p *Plan) ToMap() map[string]any {
	result := map[string]any{
		"notation": p.notation,
		"dice":     p.dice,
	}

	if p.root != nil {
		result["root"] = p.root.ToNative()
	}

	return result
}

// ToNative converts a Node to nested maps and slices.
func (n *Node) ToNative() any {
	switch n.Type {
	case NodeOperand:
		if n.Operand == nil {
			return nil
		}

		return n.Operand.ToNative()

	case NodeOperation:
		if n.Operation == nil {
			return nil
		}

		return n.Operation.ToNative()

	default:
		return nil
	}
}

// ToNative converts an Operand to a map keyed by its kind.
func (o *Operand) ToNative() any {
	switch o.Type {
	case OperandNumber:
		return map[string]any{"number": o.Number}

	case OperandDice:
		return map[string]any{
			"dice":     o.Dice.Label(),
			"quantity": o.Dice.Quantity,
			"sides":    o.Dice.Sides,
			"collapse": o.Dice.Collapse,
		}

	default:
		return nil
	}
}

// ToNative converts an Operation to a map of its operator, limit, and
// operands.
func (o *Operation) ToNative() any {
	operands := make([]any, len(o.Operands))
	for i, child := range o.Operands {
		operands[i] = child.ToNative()
	}

	result := map[string]any{
		"operator": o.Operator,
		"operands": operands,
	}

	if o.Limit != nil {
		result["limit"] = map[string]any{
			"edge":     o.Limit.Edge.String(),
			"quantity": o.Limit.Quantity,
		}
	}

	return result
}
