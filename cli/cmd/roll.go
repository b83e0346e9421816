package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/dice/lang"
)

// Roll evaluates a notation against outcomes the user has already rolled.
type Roll struct {
	Expect string `help:"Boolean expr-lang predicate over result and total, e.g. 'total >= 15'" short:"e"`

	Notation string `arg:"" help:"Dice notation"                               name:"notation"`
	Outcomes []int  `arg:"" help:"Rolled value of each die, in 'list' order" name:"outcome"  optional:""`
}

// Run executes the roll command.
func (r *Roll) Run(ctx context.Context) error {
	var expect *lang.Expectation

	if r.Expect != "" {
		var err error

		expect, err = lang.CompileExpectation(r.Expect)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "roll"))
		}
	}

	p, err := lang.Prepare(ctx, r.Notation, langOptions()...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "roll"))
	}

	result, err := p.Result(r.Outcomes)
	if err != nil {
		return lang.WrapError(err).With(
			slog.String("command", "roll"),
			slog.String("dice", p.Dice.String()),
		)
	}

	w := outputFrom(ctx)

	if _, err := fmt.Fprintln(w, lang.FormatResult(result)); err != nil {
		return err
	}

	if expect == nil {
		return nil
	}

	ok, err := expect.Test(result)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "roll"))
	}

	if !ok {
		return ErrExpectationFailed.With(
			slog.String("expect", expect.String()),
			slog.String("result", lang.FormatResult(result)),
		)
	}

	return nil
}
