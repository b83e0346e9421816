// Package op provides the operator transforms bound to plan operations.
//
// A [Transform] maps the value sequences produced by an operation's operands
// to a single value sequence. Transforms are pure: they copy their inputs
// before sorting or removing values and keep no state between calls, so a
// compiled plan may execute them concurrently.
//
// A [Factory] produces a Transform, optionally parameterized by the
// [token.LimitSpec] of a keep or drop modifier. A [Registry] maps operator
// names to factories; [Default] holds the built-in operators.
package op

import (
	"maps"
	"math"
	"slices"

	"github.com/ardnew/dice/lang/token"
)

// Transform combines operand sequences into one result sequence.
type Transform func(args ...[]float64) []float64

// Factory constructs a Transform. Limit is nil for operators that take no
// modifier arguments.
type Factory func(limit *token.LimitSpec) Transform

// Registry maps operator names to transform factories.
type Registry map[string]Factory

// Default returns a new registry containing the built-in operators:
// plus, minus, keep, drop, and choice.
func Default() Registry {
	return Registry{
		token.KindPlus.String():   Plus,
		token.KindMinus.String():  Minus,
		token.KindKeep.String():   Keep,
		token.KindDrop.String():   Drop,
		token.KindChoice.String(): Choice,
	}
}

// Lookup returns the factory registered under name.
func (r Registry) Lookup(name string) (Factory, bool) {
	f, ok := r[name]

	return f, ok
}

// Names returns the registered operator names in sorted order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Undefined is the single-element sentinel returned when a transform cannot
// produce a value.
func Undefined() []float64 { return []float64{math.NaN()} }

// Plus returns the addition transform.
func Plus(*token.LimitSpec) Transform {
	return sum(func(a, b float64) float64 { return a + b })
}

// Minus returns the subtraction transform.
func Minus(*token.LimitSpec) Transform {
	return sum(func(a, b float64) float64 { return a - b })
}

// sum lifts a scalar operator onto two sequences.
//
// If both sides are scalar, the result is op(a, b). If only the left side is
// scalar, op is mapped over the right side with the scalar as its second
// argument; note the operands swap, so "1-3d4c" computes each die minus 1.
// Otherwise op is mapped over the left side against the first right value.
// Two multi-valued sides therefore only ever consult the head of the right
// side.
func sum(op func(a, b float64) float64) Transform {
	return func(args ...[]float64) []float64 {
		if len(args) != 2 || len(args[0]) == 0 || len(args[1]) == 0 {
			return Undefined()
		}

		a, b := args[0], args[1]

		if len(a) == 1 {
			if len(b) == 1 {
				return []float64{op(a[0], b[0])}
			}

			out := make([]float64, len(b))
			for i, v := range b {
				out[i] = op(v, a[0])
			}

			return out
		}

		out := make([]float64, len(a))
		for i, v := range a {
			out[i] = op(v, b[0])
		}

		return out
	}
}

// Keep returns a transform that sums the limit.Quantity values at
// limit.Edge of its sorted input. Keeping more values than the input holds
// is undefined.
func Keep(limit *token.LimitSpec) Transform {
	spec := limitOrDefault(limit)

	return func(args ...[]float64) []float64 {
		if len(args) != 1 || spec.Quantity > len(args[0]) {
			return Undefined()
		}

		kept, _ := split(args[0], spec)

		return []float64{total(kept)}
	}
}

// Drop returns a transform that discards the limit.Quantity values at
// limit.Edge of its sorted input and sums the rest.
func Drop(limit *token.LimitSpec) Transform {
	spec := limitOrDefault(limit)

	return func(args ...[]float64) []float64 {
		if len(args) != 1 {
			return Undefined()
		}

		_, rest := split(args[0], spec)

		return []float64{total(rest)}
	}
}

// Choice returns the identity transform. Its effect is structural: the plan
// builder leaves the dice group under a choice uncollapsed.
func Choice(*token.LimitSpec) Transform {
	return func(args ...[]float64) []float64 {
		if len(args) != 1 {
			return Undefined()
		}

		return slices.Clone(args[0])
	}
}

// split sorts a copy of values ascending and separates the spec.Quantity
// values at spec.Edge from the remainder.
func split(values []float64, spec token.LimitSpec) (edge, rest []float64) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := min(max(spec.Quantity, 0), len(sorted))

	if spec.Edge == token.EdgeLow {
		return sorted[:n], sorted[n:]
	}

	return sorted[len(sorted)-n:], sorted[:len(sorted)-n]
}

func total(values []float64) float64 {
	var t float64
	for _, v := range values {
		t += v
	}

	return t
}

func limitOrDefault(limit *token.LimitSpec) token.LimitSpec {
	if limit == nil {
		return token.LimitSpec{Edge: token.EdgeHigh, Quantity: 1}
	}

	return *limit
}
