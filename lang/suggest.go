package lang

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dice/lang/op"
)

// maxSuggestions bounds the candidate names attached to an unknown
// operator error.
const maxSuggestions = 3

// unknownOperator reports an operator missing from the registry, listing
// the registered names that fuzzily match it.
func unknownOperator(name string, registry op.Registry) error {
	err := ErrUnknownOperator.With(slog.String("operator", name))

	if s := suggest(name, registry.Names()); len(s) > 0 {
		err = err.With(slog.String("suggest", strings.Join(s, ", ")))
	}

	return err
}

// suggest returns up to maxSuggestions candidates matching pattern, best
// match first.
func suggest(pattern string, candidates []string) []string {
	matches := fuzzy.Find(pattern, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
