package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/dice/lang"
)

// List prints the dice a notation requires, in the order their outcomes
// must be given to roll.
type List struct {
	Count bool `help:"Print the number of dice of each kind instead" short:"c"`

	Notation string `arg:"" help:"Dice notation" name:"notation"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	dice, err := lang.ExtractDice(ctx, l.Notation, langOptions()...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "list"))
	}

	w := outputFrom(ctx)

	if !l.Count {
		_, err = fmt.Fprintln(w, dice.String())

		return err
	}

	counts := dice.Counts()
	for _, label := range slices.Sorted(maps.Keys(counts)) {
		if _, err := fmt.Fprintf(w, "%d%s\n", counts[label], label); err != nil {
			return err
		}
	}

	return nil
}
