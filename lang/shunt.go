package lang

import (
	"log/slog"

	"github.com/ardnew/dice/lang/token"
)

// Associativity of an infix or suffix operator.
type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
)

// Operator describes how tightly an operator binds.
type Operator struct {
	Precedence    int
	Associativity Associativity
}

var (
	term   = Operator{Precedence: 1, Associativity: AssocLeft}
	factor = Operator{Precedence: 2, Associativity: AssocLeft}
	suffix = Operator{Precedence: 10, Associativity: AssocLeft}
)

// operators is the precedence table. Suffix modifiers bind tightest, to the
// operand immediately before them. KindRepeat is reserved.
var operators = map[token.Kind]Operator{
	token.KindPlus:   term,
	token.KindMinus:  term,
	token.KindRepeat: factor,
	token.KindDrop:   suffix,
	token.KindKeep:   suffix,
	token.KindChoice: suffix,
}

// postfix reorders infix tokens into postfix order using Dijkstra's
// shunting-yard algorithm. Parentheses are consumed.
func postfix(tokens []token.Token) ([]token.Token, error) {
	output := make([]token.Token, 0, len(tokens))
	stack := make([]token.Token, 0, len(tokens)/2)

	top := func() token.Token { return stack[len(stack)-1] }
	pop := func() token.Token {
		t := top()
		stack = stack[:len(stack)-1]

		return t
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case token.KindLParen:
			stack = append(stack, tok)

		case token.KindRParen:
			matched := false

			for len(stack) > 0 {
				t := pop()
				if t.Kind == token.KindLParen {
					matched = true

					break
				}

				output = append(output, t)
			}

			if !matched {
				return nil, ErrMismatchedParens.
					With(slog.Int("offset", tok.Offset))
			}

		default:
			incoming, isOp := operators[tok.Kind]
			if !isOp {
				output = append(output, tok)

				continue
			}

			for len(stack) > 0 && top().Kind != token.KindLParen {
				pending := operators[top().Kind]

				if pending.Precedence < incoming.Precedence {
					break
				}

				if pending.Precedence == incoming.Precedence &&
					incoming.Associativity == AssocRight {
					break
				}

				output = append(output, pop())
			}

			stack = append(stack, tok)
		}
	}

	for len(stack) > 0 {
		t := pop()
		if t.Kind == token.KindLParen {
			return nil, ErrMismatchedParens.
				With(slog.Int("offset", t.Offset))
		}

		output = append(output, t)
	}

	return output, nil
}
