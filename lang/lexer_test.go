package lang

import (
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/dice/lang/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"d6", []token.Kind{token.KindDice}},
		{"2d20kH+4", []token.Kind{token.KindDice, token.KindKeep, token.KindPlus, token.KindNumber}},
		{"2d20dL", []token.Kind{token.KindDice, token.KindDrop}},
		{"4d6-L", []token.Kind{token.KindDice, token.KindDrop}},
		{"4d6+3H", []token.Kind{token.KindDice, token.KindKeep}},
		{"4d6-1", []token.Kind{token.KindDice, token.KindMinus, token.KindNumber}},
		{"d6+2d6", []token.Kind{token.KindDice, token.KindPlus, token.KindDice}},
		{"3d4c + 1", []token.Kind{token.KindDice, token.KindChoice, token.KindPlus, token.KindNumber}},
		{" ( d4 + d6 ) kL2 ", []token.Kind{
			token.KindLParen, token.KindDice, token.KindPlus, token.KindDice,
			token.KindRParen, token.KindKeep,
		}},
		{"", []token.Kind{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize(%q) failed: %v", tt.input, err)
			}

			if got := kinds(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_Values(t *testing.T) {
	tokens, err := tokenize("2d20kH + 14")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}

	dice := tokens[0].Dice
	if dice.Quantity != 2 || dice.Sides != 20 || !dice.Collapse {
		t.Errorf("dice = %+v, want {2 20 true}", dice)
	}

	if lim := tokens[1].Limit; lim.Edge != token.EdgeHigh || lim.Quantity != 1 {
		t.Errorf("limit = %+v, want {HIGH 1}", lim)
	}

	if tokens[3].Number != 14 {
		t.Errorf("number = %d, want 14", tokens[3].Number)
	}

	offsets := []int{tokens[0].Offset, tokens[1].Offset, tokens[2].Offset, tokens[3].Offset}
	if want := []int{0, 4, 7, 9}; !slices.Equal(offsets, want) {
		t.Errorf("offsets = %v, want %v", offsets, want)
	}

	single, err := tokenize("d8")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	if q := single[0].Dice.Quantity; q != 1 {
		t.Errorf("omitted count: quantity = %d, want 1", q)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		text string
		want token.LimitSpec
	}{
		{"kH", token.LimitSpec{Edge: token.EdgeHigh, Quantity: 1}},
		{"kL3", token.LimitSpec{Edge: token.EdgeLow, Quantity: 3}},
		{"dH2", token.LimitSpec{Edge: token.EdgeHigh, Quantity: 2}},
		{"dL", token.LimitSpec{Edge: token.EdgeLow, Quantity: 1}},
		{"+2H", token.LimitSpec{Edge: token.EdgeHigh, Quantity: 2}},
		{"+H", token.LimitSpec{Edge: token.EdgeHigh, Quantity: 1}},
		{"-L", token.LimitSpec{Edge: token.EdgeLow, Quantity: 1}},
		{"-12L", token.LimitSpec{Edge: token.EdgeLow, Quantity: 12}},
		{"kH0", token.LimitSpec{Edge: token.EdgeHigh, Quantity: 0}},
	}

	for _, tt := range tests {
		got, err := parseLimit(tt.text)
		if err != nil {
			t.Errorf("parseLimit(%q) failed: %v", tt.text, err)

			continue
		}

		if got != tt.want {
			t.Errorf("parseLimit(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestTokenize_Errors(t *testing.T) {
	for _, input := range []string{"d", "0", "2d6 ? 1", "(d6)x2", "abc", "2d6k"} {
		t.Run(input, func(t *testing.T) {
			_, err := tokenize(input)
			if !errors.Is(err, ErrLex) {
				t.Errorf("tokenize(%q) error = %v, want ErrLex", input, err)
			}
		})
	}
}

func TestTokenize_QuantityLimit(t *testing.T) {
	if _, err := tokenize("65536d6"); err != nil {
		t.Fatalf("tokenize at limit failed: %v", err)
	}

	_, err := tokenize("65537d6")
	if !errors.Is(err, ErrLex) || !errors.Is(err, ErrQuantity) {
		t.Errorf("error = %v, want ErrLex wrapping ErrQuantity", err)
	}
}

func TestTokenize_NumberLimit(t *testing.T) {
	toks, err := tokenize("9007199254740992")
	if err != nil {
		t.Fatalf("tokenize at limit failed: %v", err)
	}

	if toks[0].Number != MaxNumber {
		t.Errorf("Number = %d, want %d", toks[0].Number, MaxNumber)
	}

	for _, input := range []string{"9007199254740993", "d6+99999999999999999999"} {
		_, err := tokenize(input)
		if !errors.Is(err, ErrLex) {
			t.Errorf("tokenize(%q) error = %v, want ErrLex", input, err)
		}
	}

	if _, err := tokenize("9007199254740993"); !errors.Is(err, ErrNumber) {
		t.Errorf("error = %v, want ErrNumber", err)
	}
}
