package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/dice/lang"
	"github.com/ardnew/dice/log"
)

// Check validates notations given as arguments or read from files, one per
// line. Blank lines and lines starting with '#' are ignored.
type Check struct {
	File  []string `help:"Read notations from file(s), or '-' for stdin" short:"f"`
	Quiet bool     `help:"Only report invalid notations"                 short:"q"`

	Notation []string `arg:"" help:"Dice notation(s)" name:"notation" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	w := outputFrom(ctx)

	var total, invalid int

	report := func(origin, notation string) error {
		total++

		_, err := lang.Prepare(ctx, notation, langOptions()...)
		if err == nil {
			if c.Quiet {
				return nil
			}

			_, err = fmt.Fprintf(w, "ok\t%s\n", notation)

			return err
		}

		invalid++

		log.DebugContext(ctx, "invalid notation",
			slog.String("origin", origin),
			slog.String("notation", notation),
			slog.Any("error", err),
		)

		_, err = fmt.Fprintf(w, "invalid\t%s\t%v\n", notation, err)

		return err
	}

	for _, n := range c.Notation {
		if err := report("argument", n); err != nil {
			return err
		}
	}

	srcs, failed := openSources(c.File)
	defer closeSources(srcs)

	if len(failed) > 0 {
		return ErrReadInput.With(slog.Any("files", failed))
	}

	for _, src := range srcs {
		if err := scanLines(src, report); err != nil {
			return ErrReadInput.Wrap(err).
				With(slog.String("file", src.name))
		}
	}

	if invalid > 0 {
		return ErrInvalidInput.With(
			slog.Int("invalid", invalid),
			slog.Int("total", total),
		)
	}

	return nil
}

// scanLines calls fn with each notation line of src, read ahead
// asynchronously.
func scanLines(src source, fn func(origin, line string) error) error {
	ra := readahead.NewReader(src)
	defer ra.Close()

	return eachLine(ra, func(num int, line string) error {
		return fn(fmt.Sprintf("%s:%d", src.name, num), line)
	})
}

// eachLine calls fn with each non-blank, non-comment line of r.
func eachLine(r io.Reader, fn func(num int, line string) error) error {
	scanner := bufio.NewScanner(r)

	for num := 1; scanner.Scan(); num++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := fn(num, line); err != nil {
			return err
		}
	}

	return scanner.Err()
}
