package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dice/lang"
)

// Compile prints the plan compiled from a notation.
type Compile struct {
	Format string `default:"native" enum:"native,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"0"                                help:"Indent width for formatted output" short:"i"`

	Notation string `arg:"" help:"Dice notation, e.g. 2d20kH+4" name:"notation"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) error {
	plan, err := lang.Compile(ctx, c.Notation, langOptions()...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "compile"))
	}

	w := outputFrom(ctx)

	switch c.Format {
	case "json":
		return plan.FormatJSON(ctx, w, c.Indent)

	case "yaml":
		return plan.FormatYAML(ctx, w, c.Indent)

	default:
		return plan.Format(ctx, w, c.Indent)
	}
}
