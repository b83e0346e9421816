package lang

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/dice/lang/token"
)

// DiceList is the ordered sequence of die descriptors ("d6", "d20", ...)
// that must be rolled to execute a plan, one entry per die.
type DiceList []string

// Counts returns the number of dice of each descriptor.
func (d DiceList) Counts() map[string]int {
	counts := make(map[string]int)
	for _, label := range d {
		counts[label]++
	}

	return counts
}

// String returns the descriptors separated by spaces.
func (d DiceList) String() string { return strings.Join(d, " ") }

var (
	// diceSpec matches "[count]dsides" anywhere in notation text.
	diceSpec = regexp.MustCompile(`(\d*)d(\d+)`)

	// repeatGroup matches "(group)xN".
	repeatGroup = regexp.MustCompile(`\(([^)]*)\)x(\d+)`)
)

// scanDice lists the dice named in notation, in textual order, expanding
// each "[count]dsides" into count entries.
func scanDice(notation string) DiceList {
	dice := DiceList{}

	for _, m := range diceSpec.FindAllStringSubmatch(inflateRepeats(notation), -1) {
		count := 1
		if m[1] != "" {
			count, _ = strconv.Atoi(m[1])
		}

		sides, _ := strconv.Atoi(m[2])
		label := token.Label(sides)

		for range count {
			dice = append(dice, label)
		}
	}

	return dice
}

// inflateRepeats rewrites each "(group)xN" as N copies of group joined by
// "+". Repeat groups are not part of the compiled grammar, so this only
// affects how dice are counted.
func inflateRepeats(notation string) string {
	return repeatGroup.ReplaceAllStringFunc(notation, func(m string) string {
		sub := repeatGroup.FindStringSubmatch(m)

		n, err := strconv.Atoi(sub[2])
		if err != nil {
			return m
		}

		return strings.Join(slices.Repeat([]string{sub[1]}, n), "+")
	})
}
