package lang

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/dice/lang/op"
	"github.com/ardnew/dice/log"
)

// options configures compilation.
type options struct {
	logger   log.Logger
	registry op.Registry
	custom   bool // registry was supplied by the caller
	cache    bool
}

// Option configures compilation behavior.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry sets the operator registry that plan operations are bound
// against. Plans compiled with a caller-supplied registry are never cached.
func WithRegistry(registry op.Registry) Option {
	return func(o *options) {
		o.registry = registry
		o.custom = true
	}
}

// WithCache enables or disables the process-wide compile cache. The cache
// is enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) {
		o.cache = enable
	}
}

// makeOptions returns the default options overridden by opts.
func makeOptions(opts ...Option) options {
	o := options{
		registry: defaultRegistry,
		cache:    true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.registry == nil {
		o.registry = defaultRegistry
	}

	return o
}

// cacheable reports whether results compiled with o may be shared through
// the compile cache.
func (o options) cacheable() bool { return o.cache && !o.custom }

var defaultRegistry = op.Default()

// Prepared bundles a compiled plan with the dice that must be rolled to
// execute it.
type Prepared struct {
	Notation string
	Plan     *Plan
	Dice     DiceList
}

// Result executes the prepared plan against outcomes, one per entry of
// Dice in the same order.
func (p *Prepared) Result(outcomes []int) ([]float64, error) {
	return Execute(p.Plan, p.Dice, outcomes)
}

// Compile compiles notation into a [Plan].
//
// Any lexical, parenthesis, or structural failure is reported as
// [ErrInvalidNotation] wrapping the underlying cause.
func Compile(ctx context.Context, notation string, opts ...Option) (*Plan, error) {
	p, err := Prepare(ctx, notation, opts...)
	if err != nil {
		return nil, err
	}

	return p.Plan, nil
}

// ExtractDice returns the dice that must be rolled to execute the plan
// compiled from notation, in the order [Execute] consumes them. It fails
// exactly when [Compile] fails.
func ExtractDice(ctx context.Context, notation string, opts ...Option) (DiceList, error) {
	p, err := Prepare(ctx, notation, opts...)
	if err != nil {
		return nil, err
	}

	return p.Dice, nil
}

// Check reports whether notation compiles.
func Check(ctx context.Context, notation string, opts ...Option) bool {
	_, err := Prepare(ctx, notation, opts...)

	return err == nil
}

// Prepare compiles notation and extracts its dice list.
//
// Results are cached by notation unless caching is disabled or a custom
// registry is used. The returned value is a fresh copy; modifying its Dice
// does not affect other callers.
func Prepare(ctx context.Context, notation string, opts ...Option) (*Prepared, error) {
	o := makeOptions(opts...)

	var (
		p   *Prepared
		err error
	)

	if o.cacheable() {
		p, err = prepareCached(ctx, notation, o)
	} else {
		p, err = prepare(ctx, notation, o)
	}

	if err != nil {
		return nil, err
	}

	return &Prepared{
		Notation: p.Notation,
		Plan:     p.Plan,
		Dice:     slices.Clone(p.Dice),
	}, nil
}

// prepare runs the full pipeline without consulting the cache.
func prepare(ctx context.Context, notation string, o options) (*Prepared, error) {
	plan, err := compile(ctx, notation, o)
	if err != nil {
		return nil, ErrInvalidNotation.Wrap(err).
			With(slog.String("notation", notation))
	}

	dice := scanDice(notation)

	o.logger.TraceContext(
		ctx,
		"extract dice",
		slog.String("notation", notation),
		slog.Int("dice", len(dice)),
		slog.Int("plan_dice", plan.dice),
	)

	return &Prepared{Notation: notation, Plan: plan, Dice: dice}, nil
}

// compile lexes, reorders, and builds notation into a plan.
func compile(ctx context.Context, notation string, o options) (*Plan, error) {
	tokens, err := tokenize(notation)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(
		ctx,
		"lex",
		slog.String("notation", notation),
		slog.Int("tokens", len(tokens)),
	)

	order, err := postfix(tokens)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "postfix", slog.Int("tokens", len(order)))

	b := builder{registry: o.registry}

	root, err := b.build(order)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(
		ctx,
		"build",
		slog.String("root", root.String()),
		slog.Int("dice", b.dice),
	)

	return &Plan{notation: notation, root: root, dice: b.dice}, nil
}
