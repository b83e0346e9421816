// Package token defines the lexical vocabulary of dice notation.
package token

import "strconv"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	// KindInvalid is the zero Kind; no valid token carries it.
	KindInvalid Kind = iota

	// KindNumber is a positive integer literal.
	KindNumber

	// KindDice is a dice spec such as "2d20" or "d6".
	KindDice

	// KindDrop is a drop modifier such as "dL", "dH2", or "-1L".
	KindDrop

	// KindKeep is a keep modifier such as "kH", "kL3", or "+2H".
	KindKeep

	// KindPlus is the addition operator.
	KindPlus

	// KindMinus is the subtraction operator.
	KindMinus

	// KindLParen opens a group.
	KindLParen

	// KindRParen closes a group.
	KindRParen

	// KindChoice keeps a dice group uncollapsed.
	KindChoice

	// KindRepeat is reserved for repeat groups "(...)xN". The lexer never
	// emits it.
	KindRepeat
)

// String returns the operator-registry name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDice:
		return "dice"
	case KindDrop:
		return "drop"
	case KindKeep:
		return "keep"
	case KindPlus:
		return "plus"
	case KindMinus:
		return "minus"
	case KindLParen:
		return "lparen"
	case KindRParen:
		return "rparen"
	case KindChoice:
		return "choice"
	case KindRepeat:
		return "repeat"
	default:
		return "invalid"
	}
}

// Edge selects which end of a sorted group a limit modifier acts on.
type Edge int

const (
	EdgeHigh Edge = iota // HIGH
	EdgeLow              // LOW
)

func (e Edge) String() string {
	if e == EdgeLow {
		return "LOW"
	}

	return "HIGH"
}

// Letter returns the single-letter notation form of the edge.
func (e Edge) Letter() string {
	if e == EdgeLow {
		return "L"
	}

	return "H"
}

// DiceSpec describes a group of identical dice.
//
// Collapse reports whether the rolled values are summed into a single value.
// It is true unless a keep, drop, or choice modifier applies to the group.
type DiceSpec struct {
	Quantity int
	Sides    int
	Collapse bool
}

// Label returns the die descriptor rolled for each die in the group.
func (d DiceSpec) Label() string {
	return Label(d.Sides)
}

// String returns the notation form of the spec, e.g. "2d20".
func (d DiceSpec) String() string {
	return strconv.Itoa(d.Quantity) + d.Label()
}

// Label returns the die descriptor for a die with the given number of sides.
func Label(sides int) string {
	return "d" + strconv.Itoa(sides)
}

// LimitSpec parameterizes the keep and drop modifiers.
type LimitSpec struct {
	Edge     Edge
	Quantity int
}

// Token is a single lexical unit of dice notation.
//
// Exactly one of Number, Dice, or Limit is meaningful, depending on Kind:
// KindNumber uses Number, KindDice uses Dice, and KindKeep/KindDrop use
// Limit. All other kinds carry no value.
type Token struct {
	Kind   Kind
	Text   string
	Offset int

	Number int
	Dice   DiceSpec
	Limit  LimitSpec
}

// String returns the raw text of the token.
func (t Token) String() string { return t.Text }
