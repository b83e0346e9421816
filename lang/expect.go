package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expectation is a compiled boolean predicate over an execution result,
// written in expr-lang syntax, e.g. "total >= 15" or "all(result, # > 1)".
type Expectation struct {
	source  string
	program *vm.Program
}

// expectEnv is the environment an expectation is evaluated in.
type expectEnv struct {
	Result []float64 `expr:"result"`
	Total  float64   `expr:"total"`
}

// CompileExpectation compiles source into an [Expectation]. The predicate
// sees the result sequence as result and its sum as total, and must
// evaluate to a boolean.
func CompileExpectation(source string) (*Expectation, error) {
	program, err := expr.Compile(source, expr.Env(expectEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrExpectation.Wrap(err).
			With(slog.String("source", source))
	}

	return &Expectation{source: source, program: program}, nil
}

// String returns the source of the expectation.
func (e *Expectation) String() string { return e.source }

// Test reports whether result satisfies the expectation.
func (e *Expectation) Test(result []float64) (bool, error) {
	env := expectEnv{Result: result}
	for _, v := range result {
		env.Total += v
	}

	out, err := vm.Run(e.program, env)
	if err != nil {
		return false, ErrExpectation.Wrap(err).
			With(slog.String("source", e.source))
	}

	ok, _ := out.(bool)

	return ok, nil
}
