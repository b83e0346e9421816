package lang

import (
	"log/slog"
	"slices"

	"github.com/ardnew/dice/lang/token"
)

// Execute evaluates plan against outcomes, the values rolled for each entry
// of dice in the same order.
//
// The result has one value for an ordinary expression and one value per die
// when the root passes an uncollapsed (choice) group through. A value is NaN
// where an operator had nothing to act on, e.g. keeping more dice than were
// rolled.
//
// Execute fails with [ErrLengthMismatch] if outcomes and dice differ in
// length, [ErrInvalidRoll] if an outcome is outside [0, sides] for its die,
// and [ErrInternal] if dice does not line up with the plan's dice operands.
// Neither plan nor the argument slices are modified.
func Execute(plan *Plan, dice DiceList, outcomes []int) ([]float64, error) {
	if plan == nil || plan.root == nil {
		return nil, ErrInternal.With(slog.String("issue", "empty plan"))
	}

	if len(outcomes) != len(dice) {
		return nil, ErrLengthMismatch.With(
			slog.Int("expected", len(dice)),
			slog.Int("got", len(outcomes)),
		)
	}

	x := &execution{
		dice:     slices.Clone(dice),
		outcomes: slices.Clone(outcomes),
	}

	result, err := x.eval(plan.root)
	if err != nil {
		return nil, err
	}

	if len(x.dice) > 0 {
		return nil, ErrInternal.With(
			slog.Int("unused_dice", len(x.dice)),
			slog.String("notation", plan.notation),
		)
	}

	return result, nil
}

// Execute evaluates the plan. See [Execute].
func (p *Plan) Execute(dice DiceList, outcomes []int) ([]float64, error) {
	return Execute(p, dice, outcomes)
}

// execution holds the working state of one Execute call.
type execution struct {
	dice     DiceList
	outcomes []int
	consumed int
}

func (x *execution) eval(n *Node) ([]float64, error) {
	switch n.Type {
	case NodeOperand:
		return x.operand(n.Operand)

	case NodeOperation:
		return x.operation(n.Operation)

	default:
		return nil, ErrInternal.With(slog.String("node", n.Type.String()))
	}
}

func (x *execution) operation(o *Operation) ([]float64, error) {
	args := make([][]float64, len(o.Operands))

	for i, child := range o.Operands {
		v, err := x.eval(child)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return o.apply(args...), nil
}

func (x *execution) operand(o *Operand) ([]float64, error) {
	switch o.Type {
	case OperandNumber:
		return []float64{float64(o.Number)}, nil

	case OperandDice:
		return x.roll(o.Dice)

	default:
		return nil, ErrInternal.With(slog.String("operand", o.Type.String()))
	}
}

// roll consumes spec.Quantity dice and outcomes from the front of the
// working lists.
func (x *execution) roll(spec token.DiceSpec) ([]float64, error) {
	label := spec.Label()
	values := make([]float64, 0, spec.Quantity)

	for range spec.Quantity {
		if len(x.dice) == 0 {
			return nil, ErrInternal.With(
				slog.String("expected", label),
				slog.Int("index", x.consumed),
				slog.String("issue", "dice list exhausted"),
			)
		}

		die, outcome := x.dice[0], x.outcomes[0]
		x.dice, x.outcomes = x.dice[1:], x.outcomes[1:]

		if die != label {
			return nil, ErrInternal.With(
				slog.String("expected", label),
				slog.String("got", die),
				slog.Int("index", x.consumed),
			)
		}

		if outcome < 0 || outcome > spec.Sides {
			return nil, ErrInvalidRoll.With(
				slog.String("die", label),
				slog.Int("outcome", outcome),
				slog.Int("index", x.consumed),
			)
		}

		x.consumed++

		values = append(values, float64(outcome))
	}

	if !spec.Collapse {
		return values, nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return []float64{sum}, nil
}
