// Package lang compiles dice notation into reusable plans and executes them
// against caller-supplied roll outcomes.
//
// The package never rolls dice. [ExtractDice] reports which dice a notation
// needs, the caller rolls them by whatever means it likes, and [Execute]
// combines the outcomes according to the compiled [Plan].
//
// # Notation
//
// Informal EBNF:
//
//	expr     → term (('+' | '-') term)*
//	term     → factor modifier*
//	factor   → NUMBER | DICE | '(' expr ')'
//	modifier → keep | drop | 'c'
//	DICE     → [0-9]* 'd' [0-9]+
//	keep     → 'k' ('H' | 'L') [0-9]* | '+' [0-9]* ('H' | 'L')
//	drop     → 'd' ('H' | 'L') [0-9]* | '-' [0-9]* ('H' | 'L')
//
// A dice group such as "3d6" sums its dice unless a modifier follows it.
// Keep and drop rank the group and sum the dice kept (or not dropped) at the
// given edge; an omitted quantity is 1. The choice modifier "c" leaves the
// group unsummed, so a following "+ n" applies to each die separately.
//
// # Example
//
//	plan, err := lang.Compile(ctx, "2d20kH+4")
//	dice, err := lang.ExtractDice(ctx, "2d20kH+4") // [d20 d20]
//	result, err := plan.Execute(dice, []int{8, 15}) // [19]
//
// # Pipeline
//
// Compilation runs in four stages:
//
//  1. Lexing splits the notation into tokens using a rule-ordered lexer.
//  2. Shunting-yard reorders the tokens from infix to postfix.
//  3. The builder reduces the postfix stream to a tree of operands and
//     operations, binding each operation to a transform from an
//     [op.Registry].
//  4. Dice extraction scans the notation text for dice specs, independently
//     of the tree, to list the dice in consumption order.
//
// Plans are immutable. Each execution works on private copies of the dice
// and outcome lists, so one plan may be executed concurrently.
//
// # Errors
//
// Compile failures are reported as [ErrInvalidNotation] wrapping the cause
// ([ErrLex], [ErrMismatchedParens], [ErrParse], or [ErrUnknownOperator]).
// Execution failures are [ErrLengthMismatch] and [ErrInvalidRoll] for bad
// outcomes, or [ErrInternal] when the dice list does not match the plan.
//
// # Limitations
//
// Repeat groups "(group)xN" are counted by dice extraction but are not part
// of the compiled grammar; notations using them fail to compile.
//
// A single dice term may request at most [MaxQuantity] dice; larger counts
// fail lexing with [ErrQuantity]. Number literals above [MaxNumber] fail
// with [ErrNumber].
package lang
