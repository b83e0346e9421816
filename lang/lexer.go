package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ardnew/dice/lang/token"
)

// notationLexer tokenizes dice notation. Rules are tried in order and the
// first match wins, so dice specs take priority over the "d" drop form and
// signed keep/drop forms take priority over bare operators.
var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Dice", Pattern: `\d*d\d+`},
	{Name: "Drop", Pattern: `-\d*[LH]|d[LH]\d*`},
	{Name: "Keep", Pattern: `\+\d*[LH]|k[LH]\d*`},
	{Name: "Number", Pattern: `[1-9]\d*`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Choice", Pattern: `c`},
})

// symbolKind maps lexer token types to notation token kinds. Whitespace is
// absent and therefore discarded.
var symbolKind = func() map[lexer.TokenType]token.Kind {
	sym := notationLexer.Symbols()

	return map[lexer.TokenType]token.Kind{
		sym["Dice"]:   token.KindDice,
		sym["Drop"]:   token.KindDrop,
		sym["Keep"]:   token.KindKeep,
		sym["Number"]: token.KindNumber,
		sym["Plus"]:   token.KindPlus,
		sym["Minus"]:  token.KindMinus,
		sym["LParen"]: token.KindLParen,
		sym["RParen"]: token.KindRParen,
		sym["Choice"]: token.KindChoice,
	}
}()

// tokenize splits notation into tokens, discarding whitespace.
func tokenize(notation string) ([]token.Token, error) {
	lex, err := notationLexer.LexString("", notation)
	if err != nil {
		return nil, ErrLex.Wrap(err)
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		lexErr := &lexer.Error{}
		if errors.As(err, &lexErr) {
			return nil, ErrLex.Wrap(errors.New(lexErr.Msg)).
				With(slog.Int("offset", lexErr.Pos.Offset))
		}

		return nil, ErrLex.Wrap(err)
	}

	tokens := make([]token.Token, 0, len(raw))

	for _, r := range raw {
		if r.EOF() {
			break
		}

		kind, ok := symbolKind[r.Type]
		if !ok {
			continue
		}

		tok, err := makeToken(kind, r.Value, r.Pos.Offset)
		if err != nil {
			return nil, ErrLex.Wrap(err).
				With(slog.String("token", r.Value), slog.Int("offset", r.Pos.Offset))
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// makeToken parses the value carried by a token of the given kind.
func makeToken(kind token.Kind, text string, offset int) (token.Token, error) {
	tok := token.Token{Kind: kind, Text: text, Offset: offset}

	var err error

	switch kind {
	case token.KindNumber:
		tok.Number, err = strconv.Atoi(text)
		if err == nil && tok.Number > MaxNumber {
			err = ErrNumber.With(slog.Int("max", MaxNumber))
		}

	case token.KindDice:
		tok.Dice, err = parseDice(text)

	case token.KindKeep, token.KindDrop:
		tok.Limit, err = parseLimit(text)
	}

	return tok, err
}

const (
	// MaxQuantity is the largest dice count a single dice term may request.
	MaxQuantity = 1 << 16

	// MaxNumber is the largest number literal. Larger values are not exactly
	// representable in a result.
	MaxNumber = 1 << 53
)

// parseDice parses "[count]dsides". An omitted count is 1.
func parseDice(text string) (token.DiceSpec, error) {
	count, sides, _ := strings.Cut(text, "d")

	spec := token.DiceSpec{Quantity: 1, Collapse: true}

	var err error

	if count != "" {
		spec.Quantity, err = strconv.Atoi(count)
		if err != nil {
			return spec, err
		}

		if spec.Quantity > MaxQuantity {
			return spec, ErrQuantity.With(slog.Int("max", MaxQuantity))
		}
	}

	spec.Sides, err = strconv.Atoi(sides)

	return spec, err
}

// parseLimit parses both surface forms of a keep or drop modifier:
//
//	+n[H|L], -n[H|L]   edge is the last character
//	k[H|L]n, d[H|L]n   edge is the second character
//
// An omitted quantity is 1.
func parseLimit(text string) (token.LimitSpec, error) {
	var edge, qty string

	switch text[0] {
	case '+', '-':
		edge, qty = text[len(text)-1:], text[1:len(text)-1]
	default:
		edge, qty = text[1:2], text[2:]
	}

	spec := token.LimitSpec{Edge: token.EdgeHigh, Quantity: 1}
	if edge == "L" {
		spec.Edge = token.EdgeLow
	}

	if qty == "" {
		return spec, nil
	}

	var err error

	spec.Quantity, err = strconv.Atoi(qty)

	return spec, err
}
