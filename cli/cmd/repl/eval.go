package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dice/lang"
	"github.com/ardnew/dice/log"
)

// outcomeSeparator splits a notation from the outcomes rolled for it.
const outcomeSeparator = ":"

// evaluate interprets one line of input.
//
// A bare notation reports the dice it requires, or its value if it requires
// none. "NOTATION : o1 o2 ..." executes the notation against the given
// outcomes, which may be separated by spaces or commas.
func evaluate(ctx context.Context, line string, logger log.Logger) (string, error) {
	notation, rolls, hasRolls := strings.Cut(line, outcomeSeparator)
	notation = strings.TrimSpace(notation)

	p, err := lang.Prepare(ctx, notation,
		lang.WithLogger(logger), lang.WithCache(false))
	if err != nil {
		return "", err
	}

	if !hasRolls && len(p.Dice) > 0 {
		return "roll " + p.Dice.String(), nil
	}

	outcomes, err := parseOutcomes(rolls)
	if err != nil {
		return "", err
	}

	result, err := p.Result(outcomes)
	if err != nil {
		return "", err
	}

	return lang.FormatResult(result), nil
}

// parseOutcomes parses integers separated by spaces or commas.
func parseOutcomes(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	outcomes := make([]int, len(fields))

	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadOutcome, f)
		}

		outcomes[i] = n
	}

	return outcomes, nil
}

// hint describes what entering line would do.
func hint(ctx context.Context, line string) string {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return "Type a notation such as 2d20kH+4, or :help"

	case strings.HasPrefix(line, commandPrefix):
		if names := matchCommands(line); len(names) > 0 {
			return strings.Join(names, "  ")
		}

		return "no such command"
	}

	notation, _, _ := strings.Cut(line, outcomeSeparator)

	// Called on every keystroke; partial input must not fill the cache.
	dice, err := lang.ExtractDice(ctx, strings.TrimSpace(notation),
		lang.WithCache(false))
	if err != nil {
		return "invalid notation"
	}

	if len(dice) == 0 {
		return "no dice"
	}

	return "needs " + dice.String()
}

// commandPrefix introduces a REPL command.
const commandPrefix = ":"

var commands = []string{":clear", ":help", ":history", ":quit"}

// matchCommands returns the commands fuzzily matching input, best first.
func matchCommands(input string) []string {
	matches := fuzzy.Find(input, commands)

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Str
	}

	return names
}

func helpMessage() string {
	return `
Enter a notation to list the dice it needs:

  2d20kH+4          → roll d20 d20

then enter it again with the rolled values after a colon:

  2d20kH+4 : 8 15   → 19

Commands:

  :help     Print this message
  :history  List previous input
  :clear    Clear screen
  :quit     Exit REPL

Tab completes commands. Up/Down walk the history.
Press Ctrl+C on an empty line or Ctrl+D to exit.
`
}
